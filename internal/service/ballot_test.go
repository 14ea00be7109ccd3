package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabhub/tabhub/internal/domain"
)

func newBallotService(ballots *fakeBallotRepo, results *fakeResultRepo) *BallotService {
	reconciler := NewReconciler(ballots, results, ConsensusPolicy{}, []domain.JudgeRole{domain.RoleChair, domain.RolePanelist})
	return NewBallotService(ballots, reconciler)
}

func TestBallotService_Submit_ReconcilesAfterWrite(t *testing.T) {
	ballots := &fakeBallotRepo{}
	results := &fakeResultRepo{}
	svc := newBallotService(ballots, results)

	created, err := svc.Submit(context.Background(), ballotWithScores(10, map[uint]float64{100: 75, 200: 72}))

	require.NoError(t, err)
	assert.Equal(t, int64(0), created.Version)
	assert.True(t, results.replaced, "submitting the only decisive ballot must produce a result")
}

func TestBallotService_Revise_RequiresEditorAndChange(t *testing.T) {
	svc := newBallotService(&fakeBallotRepo{}, &fakeResultRepo{})

	ballot := ballotWithScores(10, map[uint]float64{100: 75})

	_, err := svc.Revise(context.Background(), ballot)
	assert.ErrorIs(t, err, ErrChangeRequired)

	editorID := uint(7)
	ballot.EditorID = &editorID
	_, err = svc.Revise(context.Background(), ballot)
	assert.ErrorIs(t, err, ErrChangeRequired)

	empty := ""
	ballot.Change = &empty
	_, err = svc.Revise(context.Background(), ballot)
	assert.ErrorIs(t, err, ErrChangeRequired)
}

func TestBallotService_Revise_ReconcilesAfterWrite(t *testing.T) {
	ballots := &fakeBallotRepo{
		current: []domain.Ballot{
			ballotWithScores(10, map[uint]float64{100: 70, 200: 74}),
		},
	}
	results := &fakeResultRepo{}
	svc := newBallotService(ballots, results)

	editorID := uint(7)
	change := "corrected reply speech score"
	ballot := ballotWithScores(10, map[uint]float64{100: 75, 200: 72})
	ballot.EditorID = &editorID
	ballot.Change = &change

	created, err := svc.Revise(context.Background(), ballot)

	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)
	assert.True(t, results.replaced)
}
