package domain

import "time"

// DebateResult is the committee-level agreed outcome for a debate. It exists
// if and only if the debate's current ballots agree; while the ballots are in
// conflict there is deliberately no result at all.
type DebateResult struct {
	DebateID   uint            `json:"debate_id"`
	Teams      []TeamResult    `json:"teams"`
	Speakers   []SpeakerResult `json:"speakers"`
	ComputedAt time.Time       `json:"computed_at"`
}

type TeamResult struct {
	TeamID uint  `json:"team_id"`
	Points int64 `json:"points"`
}

type SpeakerResult struct {
	TeamID   uint    `json:"team_id"`
	Speaker  string  `json:"speaker"`
	Position int     `json:"position"`
	Score    float64 `json:"score"`
}
