package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabhub/tabhub/internal/config"
	"github.com/tabhub/tabhub/internal/domain"
)

type fakeBallotRepo struct {
	current   []domain.Ballot
	submitted []domain.Ballot
	revised   []domain.Ballot
	err       error
}

func (f *fakeBallotRepo) Submit(_ context.Context, ballot domain.Ballot) (domain.Ballot, error) {
	if f.err != nil {
		return domain.Ballot{}, f.err
	}
	ballot.ID = uint(len(f.submitted) + 1)
	ballot.SubmittedAt = time.Now().UTC()
	f.submitted = append(f.submitted, ballot)
	f.current = append(f.current, ballot)
	return ballot, nil
}

func (f *fakeBallotRepo) Revise(_ context.Context, ballot domain.Ballot) (domain.Ballot, error) {
	if f.err != nil {
		return domain.Ballot{}, f.err
	}
	ballot.Version = 1
	f.revised = append(f.revised, ballot)
	return ballot, nil
}

func (f *fakeBallotRepo) CurrentOfDebate(_ context.Context, _ uint, _ []domain.JudgeRole) ([]domain.Ballot, error) {
	return f.current, f.err
}

func (f *fakeBallotRepo) FindByDebate(_ context.Context, _ uint) ([]domain.Ballot, error) {
	return f.current, f.err
}

func (f *fakeBallotRepo) FindVersions(_ context.Context, _, _ uint) ([]domain.Ballot, error) {
	return f.current, f.err
}

type fakeResultRepo struct {
	replaced       bool
	cleared        bool
	markedConflict bool
	teams          []domain.TeamResult
	speakers       []domain.SpeakerResult
}

func (f *fakeResultRepo) Replace(_ context.Context, _ uint, teams []domain.TeamResult, speakers []domain.SpeakerResult) error {
	f.replaced = true
	f.cleared = false
	f.markedConflict = false
	f.teams = teams
	f.speakers = speakers
	return nil
}

func (f *fakeResultRepo) Clear(_ context.Context, _ uint, markConflict bool) error {
	f.replaced = false
	f.cleared = true
	f.markedConflict = markConflict
	f.teams = nil
	f.speakers = nil
	return nil
}

func (f *fakeResultRepo) FindByDebate(_ context.Context, debateID uint) (domain.DebateResult, error) {
	if !f.replaced {
		return domain.DebateResult{}, ErrResultNotFound
	}
	return domain.DebateResult{DebateID: debateID, Teams: f.teams, Speakers: f.speakers}, nil
}

func ballotWithScores(judgeID uint, scores map[uint]float64) domain.Ballot {
	b := domain.Ballot{DebateID: 1, JudgeID: judgeID}
	for teamID, score := range scores {
		b.Scores = append(b.Scores, domain.SpeakerScore{
			TeamID:  teamID,
			Speaker: "Speaker",
			Score:   score,
		})
	}
	return b
}

func TestReconciler_Reconcile_NoBallotsClearsWithoutConflict(t *testing.T) {
	ballots := &fakeBallotRepo{}
	results := &fakeResultRepo{replaced: true}
	r := NewReconciler(ballots, results, ConsensusPolicy{}, []domain.JudgeRole{domain.RoleChair})

	err := r.Reconcile(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, results.cleared)
	assert.False(t, results.markedConflict)
}

func TestReconciler_Reconcile_ConsensusSingleBallotProducesResult(t *testing.T) {
	ballots := &fakeBallotRepo{
		current: []domain.Ballot{
			ballotWithScores(10, map[uint]float64{100: 75, 200: 72}),
		},
	}
	results := &fakeResultRepo{}
	r := NewReconciler(ballots, results, ConsensusPolicy{}, []domain.JudgeRole{domain.RoleChair})

	err := r.Reconcile(context.Background(), 1)

	require.NoError(t, err)
	require.True(t, results.replaced)
	require.Len(t, results.teams, 2)
	// Higher total speaks ranks first and scores n-1 points.
	assert.Equal(t, uint(100), results.teams[0].TeamID)
	assert.Equal(t, int64(1), results.teams[0].Points)
	assert.Equal(t, uint(200), results.teams[1].TeamID)
	assert.Equal(t, int64(0), results.teams[1].Points)
}

func TestReconciler_Reconcile_ConsensusTwoBallotsClearsAsConflict(t *testing.T) {
	ballots := &fakeBallotRepo{
		current: []domain.Ballot{
			ballotWithScores(10, map[uint]float64{100: 75, 200: 72}),
			ballotWithScores(11, map[uint]float64{100: 70, 200: 74}),
		},
	}
	results := &fakeResultRepo{replaced: true}
	r := NewReconciler(ballots, results, ConsensusPolicy{}, []domain.JudgeRole{domain.RoleChair, domain.RolePanelist})

	err := r.Reconcile(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, results.cleared)
	assert.True(t, results.markedConflict)
}

func TestReconciler_Reconcile_MajorityAgreement(t *testing.T) {
	ballots := &fakeBallotRepo{
		current: []domain.Ballot{
			ballotWithScores(10, map[uint]float64{100: 75, 200: 72}),
			ballotWithScores(11, map[uint]float64{100: 76, 200: 71}),
			ballotWithScores(12, map[uint]float64{100: 70, 200: 74}),
		},
	}
	results := &fakeResultRepo{}
	r := NewReconciler(ballots, results, MajorityPolicy{}, []domain.JudgeRole{domain.RoleChair, domain.RolePanelist})

	err := r.Reconcile(context.Background(), 1)

	require.NoError(t, err)
	require.True(t, results.replaced)
	require.Len(t, results.teams, 2)
	assert.Equal(t, uint(100), results.teams[0].TeamID)
	assert.Equal(t, int64(1), results.teams[0].Points)
}

func TestReconciler_Reconcile_MajoritySplitClearsAsConflict(t *testing.T) {
	ballots := &fakeBallotRepo{
		current: []domain.Ballot{
			ballotWithScores(10, map[uint]float64{100: 75, 200: 72}),
			ballotWithScores(11, map[uint]float64{100: 70, 200: 74}),
		},
	}
	results := &fakeResultRepo{replaced: true}
	r := NewReconciler(ballots, results, MajorityPolicy{}, []domain.JudgeRole{domain.RoleChair, domain.RolePanelist})

	err := r.Reconcile(context.Background(), 1)

	require.NoError(t, err)
	assert.True(t, results.cleared)
	assert.True(t, results.markedConflict)
}

func TestMajorityPolicy_CombineAveragesSpeakerScores(t *testing.T) {
	ballots := []domain.Ballot{
		ballotWithScores(10, map[uint]float64{100: 74, 200: 70}),
		ballotWithScores(11, map[uint]float64{100: 76, 200: 72}),
	}

	teams, speakers := MajorityPolicy{}.Combine(ballots)

	require.Len(t, teams, 2)
	require.Len(t, speakers, 2)
	for _, s := range speakers {
		switch s.TeamID {
		case 100:
			assert.InDelta(t, 75.0, s.Score, 0.001)
		case 200:
			assert.InDelta(t, 71.0, s.Score, 0.001)
		}
	}
}

func TestConsensusPolicy_CombinePrefersExplicitRanks(t *testing.T) {
	ballot := ballotWithScores(10, map[uint]float64{100: 80, 200: 70})
	// Explicit ranks contradict the speaks and must win.
	ballot.Ranks = []domain.TeamRank{
		{TeamID: 200, Points: 1},
		{TeamID: 100, Points: 0},
	}

	teams, _ := ConsensusPolicy{}.Combine([]domain.Ballot{ballot})

	require.Len(t, teams, 2)
	assert.Equal(t, uint(200), teams[0].TeamID)
	assert.Equal(t, int64(1), teams[0].Points)
}

func TestNewAggregationPolicy_SelectsByName(t *testing.T) {
	assert.IsType(t, ConsensusPolicy{}, NewAggregationPolicy(nil))
	assert.IsType(t, ConsensusPolicy{}, NewAggregationPolicy(&config.FormatConfig{Aggregation: "consensus"}))
	assert.IsType(t, MajorityPolicy{}, NewAggregationPolicy(&config.FormatConfig{Aggregation: "majority"}))
}

func TestDecisiveRoles_FiltersInvalidCodes(t *testing.T) {
	roles := DecisiveRoles(&config.FormatConfig{DecisiveRoles: []string{"C", "X", "T"}})

	assert.Equal(t, []domain.JudgeRole{domain.RoleChair, domain.RoleTrainee}, roles)
}
