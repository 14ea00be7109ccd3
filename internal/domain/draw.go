package domain

import "time"

type JudgeRole string

const (
	RoleChair    JudgeRole = "C"
	RolePanelist JudgeRole = "P"
	RoleTrainee  JudgeRole = "T"
)

func (r JudgeRole) Valid() bool {
	return r == RoleChair || r == RolePanelist || r == RoleTrainee
}

type DebateStatus string

const (
	DebateDraft     DebateStatus = "draft"
	DebateConfirmed DebateStatus = "confirmed"
	DebateConflict  DebateStatus = "conflict"
)

type Team struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Number int    `json:"number"`
}

type Judge struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Number int    `json:"number"`
}

type Room struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type Debate struct {
	ID      uint         `json:"id"`
	RoundID uint         `json:"round_id"`
	RoomID  *uint        `json:"room_id,omitempty"`
	Number  int          `json:"number"`
	Status  DebateStatus `json:"status"`
}

// TeamSlot is a team's placement within a debate: which side it argues and
// its speaking-order tiebreak within that side.
type TeamSlot struct {
	TeamID   uint   `json:"team_id"`
	TeamName string `json:"team_name"`
	Side     int    `json:"side"`
	Seq      int    `json:"seq"`
}

type JudgeSeat struct {
	JudgeID   uint      `json:"judge_id"`
	JudgeName string    `json:"judge_name"`
	Role      JudgeRole `json:"role"`
}

type DebateView struct {
	ID     uint         `json:"id"`
	Number int          `json:"number"`
	Status DebateStatus `json:"status"`
	Room   *Room        `json:"room,omitempty"`
	Teams  []TeamSlot   `json:"teams"`
	Judges []JudgeSeat  `json:"judges"`
}

type RoundDraw struct {
	Round   Round        `json:"round"`
	Debates []DebateView `json:"debates"`
}

// DrawSnapshot is the whole-state projection sent to editors. It is never
// persisted; clients replace their local view wholesale on receipt.
type DrawSnapshot struct {
	Rounds      []RoundDraw `json:"rounds"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// DebateSeed describes one debate of a freshly generated draw, before it has
// been committed to storage.
type DebateSeed struct {
	RoomID *uint
	Teams  []TeamSeed
	Judges []JudgeSeed
}

type TeamSeed struct {
	TeamID uint
	Side   int
	Seq    int
}

type JudgeSeed struct {
	JudgeID uint
	Role    JudgeRole
}
