package domain

import "time"

type TicketKind string

const (
	TicketDraw         TicketKind = "draw"
	TicketAdjudication TicketKind = "adjudication"
)

// Ticket is a lease over "generate an allocation for round R". Tickets are
// never deleted; they form an append-only log ordered by Seq, and at most one
// ticket per (round, kind) may be unreleased at any time.
type Ticket struct {
	ID         uint       `json:"id"`
	RoundID    uint       `json:"round_id"`
	Seq        int64      `json:"seq"`
	Kind       TicketKind `json:"kind"`
	AcquiredAt time.Time  `json:"acquired_at"`
	Released   bool       `json:"released"`
	Error      string     `json:"error,omitempty"`
}
