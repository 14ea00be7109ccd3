package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrTicketActive   = errors.New("an unreleased ticket already exists for this round and kind")
	ErrTicketNotFound = errors.New("ticket not found")
	ErrTicketReleased = errors.New("ticket already released")
	ErrTicketExpired  = errors.New("ticket has been superseded by a newer one")
)

// Ticket rows are append-only. A ticket is a lease over generating an
// allocation for its round; Seq is monotonic per (round, kind) so the log can
// be replayed in order without reusing identifiers.
type Ticket struct {
	ID         uint      `gorm:"primaryKey"`
	RoundID    uint      `gorm:"not null;uniqueIndex:uniq_tickets_round_kind_seq,priority:1"`
	Kind       string    `gorm:"not null;uniqueIndex:uniq_tickets_round_kind_seq,priority:2"`
	Seq        int64     `gorm:"not null;uniqueIndex:uniq_tickets_round_kind_seq,priority:3"`
	AcquiredAt time.Time `gorm:"not null"`
	Released   bool      `gorm:"not null;default:false"`
	Error      *string
}

type TicketDAO struct {
	db *gorm.DB
}

func NewTicketDAO(db *gorm.DB) *TicketDAO {
	return &TicketDAO{
		db: db,
	}
}

// Acquire inserts a new ticket for (roundID, kind), failing with
// ErrTicketActive while an unreleased one exists. With force set, the new
// ticket supersedes the stuck one instead; the superseded ticket then fails
// its commit-time currency check.
//
// Concurrent acquires serialize on the round row lock; a latest-ticket lock
// alone is not enough because a ticket committed by a concurrent transaction
// is invisible to this one's re-check, and with no prior ticket there is no
// row to lock at all. The unique seq index backstops anything that slips
// through.
func (d *TicketDAO) Acquire(ctx context.Context, roundID uint, kind string, force bool) (Ticket, error) {
	var ticket Ticket

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var round Round
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&round, roundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoundNotFound
			}
			return err
		}

		var last Ticket
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("round_id = ? AND kind = ?", roundID, kind).
			Order("seq DESC").
			First(&last).Error

		seq := int64(0)
		switch {
		case err == nil:
			if !last.Released && !force {
				return ErrTicketActive
			}
			seq = last.Seq + 1
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first ticket for this round and kind
		default:
			return err
		}

		ticket = Ticket{
			RoundID:    roundID,
			Kind:       kind,
			Seq:        seq,
			AcquiredAt: time.Now().UTC(),
		}

		if err := tx.Create(&ticket).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrTicketActive
			}
			return err
		}

		return nil
	})
	if err != nil {
		return Ticket{}, err
	}

	return ticket, nil
}

// Release marks the ticket released, recording the job's error text if any.
// Tickets are never deleted.
func (d *TicketDAO) Release(ctx context.Context, ticketID uint, errMsg *string) (Ticket, error) {
	var ticket Ticket

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&ticket, ticketID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		if ticket.Released {
			return ErrTicketReleased
		}

		ticket.Released = true
		ticket.Error = errMsg

		return tx.Save(&ticket).Error
	})
	if err != nil {
		return Ticket{}, err
	}

	return ticket, nil
}

func (d *TicketDAO) FindByRound(ctx context.Context, roundID uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).
		Where("round_id = ?", roundID).
		Order("kind, seq").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}

// isCurrentTicket reports whether no newer ticket exists for the same round
// and kind. Generation jobs check this inside the commit transaction so a
// force-superseded job cannot overwrite the draw of its successor.
func isCurrentTicket(tx *gorm.DB, ticket Ticket) (bool, error) {
	var count int64

	err := tx.Model(&Ticket{}).
		Where("round_id = ? AND kind = ? AND seq > ?", ticket.RoundID, ticket.Kind, ticket.Seq).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count == 0, nil
}
