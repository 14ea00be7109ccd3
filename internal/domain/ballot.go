package domain

import "time"

// Ballot is one adjudicator's scoring submission for a debate. Ballots are
// append-only: an edit inserts a new row with Version+1 and the old row is
// kept as history. Version 0 carries no editor or change note; every later
// version carries both.
type Ballot struct {
	ID          uint           `json:"id"`
	DebateID    uint           `json:"debate_id"`
	JudgeID     uint           `json:"judge_id"`
	Version     int64          `json:"version"`
	Change      *string        `json:"change,omitempty"`
	EditorID    *uint          `json:"editor_id,omitempty"`
	SubmittedAt time.Time      `json:"submitted_at"`
	Scores      []SpeakerScore `json:"scores"`
	Ranks       []TeamRank     `json:"ranks"`
}

type SpeakerScore struct {
	TeamID   uint    `json:"team_id"`
	Speaker  string  `json:"speaker"`
	Position int     `json:"position"`
	Score    float64 `json:"score"`
}

type TeamRank struct {
	TeamID uint  `json:"team_id"`
	Points int64 `json:"points"`
}

// TopTeam returns the team this ballot ranks first, preferring explicit rank
// entries and falling back to total speaker scores.
func (b Ballot) TopTeam() (uint, bool) {
	if len(b.Ranks) > 0 {
		best := b.Ranks[0]
		for _, r := range b.Ranks[1:] {
			if r.Points > best.Points {
				best = r
			}
		}
		return best.TeamID, true
	}

	totals := b.TeamTotals()
	if len(totals) == 0 {
		return 0, false
	}

	var (
		bestTeam  uint
		bestScore float64
		first     = true
	)
	for team, total := range totals {
		if first || total > bestScore || (total == bestScore && team < bestTeam) {
			bestTeam = team
			bestScore = total
			first = false
		}
	}
	return bestTeam, true
}

// TeamTotals sums speaker scores per team.
func (b Ballot) TeamTotals() map[uint]float64 {
	totals := make(map[uint]float64)
	for _, s := range b.Scores {
		totals[s.TeamID] += s.Score
	}
	return totals
}
