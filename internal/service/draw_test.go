package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabhub/tabhub/internal/domain"
)

type fakeDrawRepo struct {
	moveJudgeCalls int
	swapCalls      int
	placeCalls     int
}

func (f *fakeDrawRepo) Snapshot(_ context.Context, roundIDs []uint) (domain.DrawSnapshot, error) {
	rounds := make([]domain.RoundDraw, len(roundIDs))
	for i, id := range roundIDs {
		rounds[i] = domain.RoundDraw{Round: domain.Round{ID: id}, Debates: []domain.DebateView{}}
	}
	return domain.DrawSnapshot{Rounds: rounds, GeneratedAt: time.Now().UTC()}, nil
}

func (f *fakeDrawRepo) FindDebate(_ context.Context, debateID uint) (domain.Debate, error) {
	return domain.Debate{ID: debateID, RoundID: 1}, nil
}

func (f *fakeDrawRepo) FindAllTeams(_ context.Context) ([]domain.Team, error)   { return nil, nil }
func (f *fakeDrawRepo) FindAllJudges(_ context.Context) ([]domain.Judge, error) { return nil, nil }

func (f *fakeDrawRepo) ReplaceDraw(_ context.Context, _ uint, _ uint, _ []domain.DebateSeed) error {
	return nil
}

func (f *fakeDrawRepo) ReplaceAdjudication(_ context.Context, _ uint, _ uint, _ map[uint][]domain.JudgeSeed) error {
	return nil
}

func (f *fakeDrawRepo) MoveJudge(_ context.Context, _ []uint, _ uint, _ *uint, _ domain.JudgeRole) error {
	f.moveJudgeCalls++
	return nil
}

func (f *fakeDrawRepo) MoveRoom(_ context.Context, _ []uint, _ uint, _ *uint) error {
	return nil
}

func (f *fakeDrawRepo) SwapTeams(_ context.Context, _ []uint, _, _ uint) error {
	f.swapCalls++
	return nil
}

func (f *fakeDrawRepo) PlaceTeam(_ context.Context, _ []uint, _ uint, _ *uint, _, _ int) error {
	f.placeCalls++
	return nil
}

func TestDrawService_MoveJudge_RejectsUnknownRole(t *testing.T) {
	repo := &fakeDrawRepo{}
	svc := NewDrawService(repo)

	debateID := uint(5)
	_, err := svc.MoveJudge(context.Background(), []uint{1}, 10, &debateID, domain.JudgeRole("X"))

	assert.ErrorIs(t, err, ErrInvalidRole)
	assert.Equal(t, 0, repo.moveJudgeCalls)
}

func TestDrawService_MoveJudge_ReturnsRefreshedSnapshot(t *testing.T) {
	repo := &fakeDrawRepo{}
	svc := NewDrawService(repo)

	debateID := uint(5)
	snapshot, err := svc.MoveJudge(context.Background(), []uint{1, 2}, 10, &debateID, domain.RoleChair)

	require.NoError(t, err)
	assert.Equal(t, 1, repo.moveJudgeCalls)
	require.Len(t, snapshot.Rounds, 2)
	assert.Equal(t, uint(1), snapshot.Rounds[0].Round.ID)
}

func TestDrawService_SwapTeams_RejectsSameTeam(t *testing.T) {
	repo := &fakeDrawRepo{}
	svc := NewDrawService(repo)

	_, err := svc.SwapTeams(context.Background(), []uint{1}, 7, 7)

	assert.ErrorIs(t, err, ErrInvalidSwap)
	assert.Equal(t, 0, repo.swapCalls)
}

func TestDrawService_PlaceTeam_RejectsNegativeSlot(t *testing.T) {
	repo := &fakeDrawRepo{}
	svc := NewDrawService(repo)

	debateID := uint(5)
	_, err := svc.PlaceTeam(context.Background(), []uint{1}, 7, &debateID, -1, 0)

	assert.ErrorIs(t, err, ErrInvalidPlacement)
	assert.Equal(t, 0, repo.placeCalls)
}
