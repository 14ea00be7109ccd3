package domain

import "time"

type RoundKind string

const (
	RoundPreliminary RoundKind = "preliminary"
	RoundElimination RoundKind = "elimination"
)

// DrawStatus tracks how far a round's draw has progressed. It only moves
// forward; rolling a draw back is an administrative action outside this
// service.
type DrawStatus string

const (
	DrawNone          DrawStatus = "none"
	DrawDraft         DrawStatus = "draft"
	DrawConfirmed     DrawStatus = "confirmed"
	DrawReleasedTeams DrawStatus = "released_teams"
	DrawReleasedFull  DrawStatus = "released_full"
)

type Round struct {
	ID         uint       `json:"id"`
	Seq        int        `json:"seq"`
	Name       string     `json:"name"`
	Kind       RoundKind  `json:"kind"`
	DrawStatus DrawStatus `json:"draw_status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
