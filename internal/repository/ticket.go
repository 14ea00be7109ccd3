package repository

import (
	"context"
	"fmt"

	"github.com/tabhub/tabhub/internal/domain"
	"github.com/tabhub/tabhub/internal/repository/dao"
)

var (
	ErrTicketActive   = dao.ErrTicketActive
	ErrTicketNotFound = dao.ErrTicketNotFound
	ErrTicketReleased = dao.ErrTicketReleased
	ErrTicketExpired  = dao.ErrTicketExpired
	ErrRoundNotFound  = dao.ErrRoundNotFound
)

type TicketDAO interface {
	Acquire(ctx context.Context, roundID uint, kind string, force bool) (dao.Ticket, error)
	Release(ctx context.Context, ticketID uint, errMsg *string) (dao.Ticket, error)
	FindByRound(ctx context.Context, roundID uint) ([]dao.Ticket, error)
}

type TicketRepository struct {
	dao TicketDAO
}

func NewTicketRepository(dao TicketDAO) *TicketRepository {
	return &TicketRepository{
		dao: dao,
	}
}

func (r *TicketRepository) Acquire(ctx context.Context, roundID uint, kind domain.TicketKind, force bool) (domain.Ticket, error) {
	ticket, err := r.dao.Acquire(ctx, roundID, string(kind), force)
	if err != nil {
		return domain.Ticket{}, err
	}

	return ticketDaoToDomain(ticket), nil
}

func (r *TicketRepository) Release(ctx context.Context, ticketID uint, errMsg *string) (domain.Ticket, error) {
	ticket, err := r.dao.Release(ctx, ticketID, errMsg)
	if err != nil {
		return domain.Ticket{}, err
	}

	return ticketDaoToDomain(ticket), nil
}

func (r *TicketRepository) FindByRound(ctx context.Context, roundID uint) ([]domain.Ticket, error) {
	tickets, err := r.dao.FindByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByRound -> %w", err)
	}

	result := make([]domain.Ticket, len(tickets))
	for i, ticket := range tickets {
		result[i] = ticketDaoToDomain(ticket)
	}

	return result, nil
}

func ticketDaoToDomain(t dao.Ticket) domain.Ticket {
	ticket := domain.Ticket{
		ID:         t.ID,
		RoundID:    t.RoundID,
		Seq:        t.Seq,
		Kind:       domain.TicketKind(t.Kind),
		AcquiredAt: t.AcquiredAt,
		Released:   t.Released,
	}
	if t.Error != nil {
		ticket.Error = *t.Error
	}

	return ticket
}
