package service

import (
	"context"
	"errors"

	"github.com/tabhub/tabhub/internal/domain"
	"github.com/tabhub/tabhub/internal/repository"
)

var (
	ErrDebateNotFound   = repository.ErrDebateNotFound
	ErrRoomNotFound     = repository.ErrRoomNotFound
	ErrTeamNotFound     = repository.ErrTeamNotFound
	ErrJudgeNotFound    = repository.ErrJudgeNotFound
	ErrChairOccupied    = repository.ErrChairOccupied
	ErrInvalidSwap      = repository.ErrInvalidSwap
	ErrCrossRound       = repository.ErrCrossRound
	ErrInvalidPlacement = repository.ErrInvalidPlacement
	ErrInvalidRole      = errors.New("invalid judge role")
)

type DrawRepository interface {
	Snapshot(ctx context.Context, roundIDs []uint) (domain.DrawSnapshot, error)
	FindDebate(ctx context.Context, debateID uint) (domain.Debate, error)
	FindAllTeams(ctx context.Context) ([]domain.Team, error)
	FindAllJudges(ctx context.Context) ([]domain.Judge, error)
	ReplaceDraw(ctx context.Context, ticketID uint, roundID uint, seeds []domain.DebateSeed) error
	ReplaceAdjudication(ctx context.Context, ticketID uint, roundID uint, seats map[uint][]domain.JudgeSeed) error
	MoveJudge(ctx context.Context, roundIDs []uint, judgeID uint, toDebateID *uint, role domain.JudgeRole) error
	MoveRoom(ctx context.Context, roundIDs []uint, roomID uint, toDebateID *uint) error
	SwapTeams(ctx context.Context, roundIDs []uint, teamAID, teamBID uint) error
	PlaceTeam(ctx context.Context, roundIDs []uint, teamID uint, toDebateID *uint, side, seq int) error
}

// DrawService is the canonical store of debates and their assignments, plus
// the move engine that edits an already-generated draw. Every mutation is a
// single all-or-nothing transaction and returns the refreshed snapshot of the
// scoped rounds for the caller to broadcast.
type DrawService struct {
	repo DrawRepository
}

func NewDrawService(repo DrawRepository) *DrawService {
	return &DrawService{
		repo: repo,
	}
}

func (s *DrawService) Snapshot(ctx context.Context, roundIDs []uint) (domain.DrawSnapshot, error) {
	snapshot, err := s.repo.Snapshot(ctx, roundIDs)
	if err != nil {
		return domain.DrawSnapshot{}, err
	}

	return snapshot, nil
}

func (s *DrawService) FindDebate(ctx context.Context, debateID uint) (domain.Debate, error) {
	debate, err := s.repo.FindDebate(ctx, debateID)
	if err != nil {
		return domain.Debate{}, err
	}

	return debate, nil
}

func (s *DrawService) MoveJudge(ctx context.Context, roundIDs []uint, judgeID uint, toDebateID *uint, role domain.JudgeRole) (domain.DrawSnapshot, error) {
	if !role.Valid() {
		return domain.DrawSnapshot{}, ErrInvalidRole
	}

	if err := s.repo.MoveJudge(ctx, roundIDs, judgeID, toDebateID, role); err != nil {
		return domain.DrawSnapshot{}, err
	}

	return s.Snapshot(ctx, roundIDs)
}

func (s *DrawService) MoveRoom(ctx context.Context, roundIDs []uint, roomID uint, toDebateID *uint) (domain.DrawSnapshot, error) {
	if err := s.repo.MoveRoom(ctx, roundIDs, roomID, toDebateID); err != nil {
		return domain.DrawSnapshot{}, err
	}

	return s.Snapshot(ctx, roundIDs)
}

func (s *DrawService) SwapTeams(ctx context.Context, roundIDs []uint, teamAID, teamBID uint) (domain.DrawSnapshot, error) {
	if teamAID == teamBID {
		return domain.DrawSnapshot{}, ErrInvalidSwap
	}

	if err := s.repo.SwapTeams(ctx, roundIDs, teamAID, teamBID); err != nil {
		return domain.DrawSnapshot{}, err
	}

	return s.Snapshot(ctx, roundIDs)
}

func (s *DrawService) PlaceTeam(ctx context.Context, roundIDs []uint, teamID uint, toDebateID *uint, side, seq int) (domain.DrawSnapshot, error) {
	if side < 0 || seq < 0 {
		return domain.DrawSnapshot{}, ErrInvalidPlacement
	}

	if err := s.repo.PlaceTeam(ctx, roundIDs, teamID, toDebateID, side, seq); err != nil {
		return domain.DrawSnapshot{}, err
	}

	return s.Snapshot(ctx, roundIDs)
}
