package service

import (
	"context"
	"fmt"

	"github.com/tabhub/tabhub/internal/domain"
	"github.com/tabhub/tabhub/internal/repository"
)

var (
	ErrTicketActive   = repository.ErrTicketActive
	ErrTicketNotFound = repository.ErrTicketNotFound
	ErrTicketReleased = repository.ErrTicketReleased
	ErrTicketExpired  = repository.ErrTicketExpired
	ErrRoundNotFound  = repository.ErrRoundNotFound
)

type TicketRepository interface {
	Acquire(ctx context.Context, roundID uint, kind domain.TicketKind, force bool) (domain.Ticket, error)
	Release(ctx context.Context, ticketID uint, errMsg *string) (domain.Ticket, error)
	FindByRound(ctx context.Context, roundID uint) ([]domain.Ticket, error)
}

// TicketService is the sole concurrency gate for generation jobs: acquiring
// and releasing happens in short transactions of their own, never inside the
// long-running computation, so a slow job holds no lock anyone else waits on.
type TicketService struct {
	repo TicketRepository
}

func NewTicketService(repo TicketRepository) *TicketService {
	return &TicketService{
		repo: repo,
	}
}

func (s *TicketService) Acquire(ctx context.Context, roundID uint, kind domain.TicketKind, force bool) (domain.Ticket, error) {
	ticket, err := s.repo.Acquire(ctx, roundID, kind, force)
	if err != nil {
		return domain.Ticket{}, err
	}

	return ticket, nil
}

// Release marks the ticket released, recording jobErr's message when the job
// failed. A ticket is never left dangling by a client-observable error; only
// a crash between acquire and release can leave one unreleased, which is
// surfaced by the audit log and resolved with a forced acquire.
func (s *TicketService) Release(ctx context.Context, ticketID uint, jobErr error) (domain.Ticket, error) {
	var errMsg *string
	if jobErr != nil {
		msg := jobErr.Error()
		errMsg = &msg
	}

	ticket, err := s.repo.Release(ctx, ticketID, errMsg)
	if err != nil {
		return domain.Ticket{}, err
	}

	return ticket, nil
}

func (s *TicketService) ListByRound(ctx context.Context, roundID uint) ([]domain.Ticket, error) {
	tickets, err := s.repo.FindByRound(ctx, roundID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByRound -> %w", err)
	}

	return tickets, nil
}
