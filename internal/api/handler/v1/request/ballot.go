package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type BallotScore struct {
	TeamID   uint    `json:"team_id"`
	Speaker  string  `json:"speaker"`
	Position int     `json:"position"`
	Score    float64 `json:"score"`
}

func (s BallotScore) Validate() error {
	return validation.ValidateStruct(
		&s,
		validation.Field(&s.TeamID, validation.Required, validation.Min(uint(1))),
		validation.Field(&s.Speaker, validation.Required, validation.Length(1, 100)),
		validation.Field(&s.Position, validation.Min(0)),
		validation.Field(&s.Score, validation.Min(0.0)),
	)
}

type BallotRank struct {
	TeamID uint  `json:"team_id"`
	Points int64 `json:"points"`
}

func (r BallotRank) Validate() error {
	return validation.ValidateStruct(
		&r,
		validation.Field(&r.TeamID, validation.Required, validation.Min(uint(1))),
		validation.Field(&r.Points, validation.Min(int64(0))),
	)
}

type SubmitBallotRequest struct {
	JudgeID uint          `json:"judge_id" binding:"required"`
	Scores  []BallotScore `json:"scores" binding:"required"`
	Ranks   []BallotRank  `json:"ranks"`
}

func (req *SubmitBallotRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.JudgeID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Scores, validation.Required, validation.Length(1, 0)),
	)
}

type ReviseBallotRequest struct {
	Change string        `json:"change" binding:"required"`
	Scores []BallotScore `json:"scores" binding:"required"`
	Ranks  []BallotRank  `json:"ranks"`
}

func (req *ReviseBallotRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Change, validation.Required, validation.Length(1, 500)),
		validation.Field(&req.Scores, validation.Required, validation.Length(1, 0)),
	)
}
