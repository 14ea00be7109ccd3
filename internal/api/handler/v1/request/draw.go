package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type MoveJudgeRequest struct {
	RoundIDs   []uint `json:"round_ids" binding:"required"`
	JudgeID    uint   `json:"judge_id" binding:"required"`
	ToDebateID *uint  `json:"to_debate_id"`
	Role       string `json:"role"`
}

func (req *MoveJudgeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RoundIDs, validation.Required, validation.Length(1, 0)),
		validation.Field(&req.JudgeID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Role, validation.In("C", "P", "T")),
	)
}

type MoveRoomRequest struct {
	RoundIDs   []uint `json:"round_ids" binding:"required"`
	RoomID     uint   `json:"room_id" binding:"required"`
	ToDebateID *uint  `json:"to_debate_id"`
}

func (req *MoveRoomRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RoundIDs, validation.Required, validation.Length(1, 0)),
		validation.Field(&req.RoomID, validation.Required, validation.Min(uint(1))),
	)
}

type SwapTeamsRequest struct {
	RoundIDs []uint `json:"round_ids" binding:"required"`
	TeamAID  uint   `json:"team_a_id" binding:"required"`
	TeamBID  uint   `json:"team_b_id" binding:"required"`
}

func (req *SwapTeamsRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RoundIDs, validation.Required, validation.Length(1, 0)),
		validation.Field(&req.TeamAID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.TeamBID, validation.Required, validation.Min(uint(1))),
	)
}

type PlaceTeamRequest struct {
	RoundIDs   []uint `json:"round_ids" binding:"required"`
	TeamID     uint   `json:"team_id" binding:"required"`
	ToDebateID *uint  `json:"to_debate_id"`
	Side       int    `json:"side"`
	Seq        int    `json:"seq"`
}

func (req *PlaceTeamRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RoundIDs, validation.Required, validation.Length(1, 0)),
		validation.Field(&req.TeamID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Side, validation.Min(0)),
		validation.Field(&req.Seq, validation.Min(0)),
	)
}
