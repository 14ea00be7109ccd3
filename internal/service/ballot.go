package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tabhub/tabhub/internal/domain"
	"github.com/tabhub/tabhub/internal/repository"
)

var (
	ErrBallotNotFound   = repository.ErrBallotNotFound
	ErrBallotExists     = repository.ErrBallotExists
	ErrRevisionConflict = repository.ErrRevisionConflict
	ErrJudgeNotInDebate = repository.ErrJudgeNotInDebate
	ErrResultNotFound   = repository.ErrResultNotFound

	// ErrChangeRequired is returned when a revision omits the editor or the
	// change note. Revisions are audit records, an unattributed edit is
	// rejected outright.
	ErrChangeRequired = errors.New("ballot revision requires an editor and a change note")
)

type BallotRepository interface {
	Submit(ctx context.Context, ballot domain.Ballot) (domain.Ballot, error)
	Revise(ctx context.Context, ballot domain.Ballot) (domain.Ballot, error)
	CurrentOfDebate(ctx context.Context, debateID uint, roles []domain.JudgeRole) ([]domain.Ballot, error)
	FindByDebate(ctx context.Context, debateID uint) ([]domain.Ballot, error)
	FindVersions(ctx context.Context, debateID, judgeID uint) ([]domain.Ballot, error)
}

type BallotService struct {
	repo       BallotRepository
	reconciler *Reconciler
}

func NewBallotService(repo BallotRepository, reconciler *Reconciler) *BallotService {
	return &BallotService{
		repo:       repo,
		reconciler: reconciler,
	}
}

// Submit records the original ballot of a judge for a debate and re-derives
// the debate's aggregated result in the same call. A judge gets exactly one
// original; later corrections go through Revise.
func (s *BallotService) Submit(ctx context.Context, ballot domain.Ballot) (domain.Ballot, error) {
	created, err := s.repo.Submit(ctx, ballot)
	if err != nil {
		return domain.Ballot{}, fmt.Errorf("s.repo.Submit -> %w", err)
	}

	if err := s.reconciler.Reconcile(ctx, created.DebateID); err != nil {
		return domain.Ballot{}, fmt.Errorf("s.reconciler.Reconcile -> %w", err)
	}

	return created, nil
}

// Revise appends a new version on top of the judge's current ballot. The
// prior versions stay in the ledger untouched.
func (s *BallotService) Revise(ctx context.Context, ballot domain.Ballot) (domain.Ballot, error) {
	if ballot.EditorID == nil || ballot.Change == nil || *ballot.Change == "" {
		return domain.Ballot{}, ErrChangeRequired
	}

	created, err := s.repo.Revise(ctx, ballot)
	if err != nil {
		return domain.Ballot{}, fmt.Errorf("s.repo.Revise -> %w", err)
	}

	if err := s.reconciler.Reconcile(ctx, created.DebateID); err != nil {
		return domain.Ballot{}, fmt.Errorf("s.reconciler.Reconcile -> %w", err)
	}

	return created, nil
}

func (s *BallotService) ListByDebate(ctx context.Context, debateID uint) ([]domain.Ballot, error) {
	ballots, err := s.repo.FindByDebate(ctx, debateID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByDebate -> %w", err)
	}

	return ballots, nil
}

func (s *BallotService) ListVersions(ctx context.Context, debateID, judgeID uint) ([]domain.Ballot, error) {
	ballots, err := s.repo.FindVersions(ctx, debateID, judgeID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindVersions -> %w", err)
	}

	return ballots, nil
}

func (s *BallotService) ResultOfDebate(ctx context.Context, debateID uint) (domain.DebateResult, error) {
	result, err := s.reconciler.ResultOfDebate(ctx, debateID)
	if err != nil {
		return domain.DebateResult{}, fmt.Errorf("s.reconciler.ResultOfDebate -> %w", err)
	}

	return result, nil
}
