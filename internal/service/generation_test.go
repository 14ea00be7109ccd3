package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabhub/tabhub/internal/config"
	"github.com/tabhub/tabhub/internal/domain"
)

type fakeTicketRepo struct {
	nextSeq    int64
	active     bool
	acquireErr error
	released   []uint
	releaseErr []*string
}

func (f *fakeTicketRepo) Acquire(_ context.Context, roundID uint, kind domain.TicketKind, force bool) (domain.Ticket, error) {
	if f.acquireErr != nil {
		return domain.Ticket{}, f.acquireErr
	}
	if f.active && !force {
		return domain.Ticket{}, ErrTicketActive
	}
	f.nextSeq++
	f.active = true
	return domain.Ticket{
		ID:         uint(f.nextSeq),
		RoundID:    roundID,
		Seq:        f.nextSeq,
		Kind:       kind,
		AcquiredAt: time.Now().UTC(),
	}, nil
}

func (f *fakeTicketRepo) Release(ctx context.Context, ticketID uint, errMsg *string) (domain.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return domain.Ticket{}, err
	}
	f.active = false
	f.released = append(f.released, ticketID)
	f.releaseErr = append(f.releaseErr, errMsg)
	return domain.Ticket{ID: ticketID, Released: true}, nil
}

func (f *fakeTicketRepo) FindByRound(_ context.Context, _ uint) ([]domain.Ticket, error) {
	return nil, nil
}

type fakeGenerationStore struct {
	teams        []domain.Team
	judges       []domain.Judge
	rooms        []domain.Room
	debates      []domain.DebateView
	drawSeeds    []domain.DebateSeed
	judgeSeats   map[uint][]domain.JudgeSeed
	replaceErr   error
	replaceCalls int
}

func (f *fakeGenerationStore) Snapshot(_ context.Context, roundIDs []uint) (domain.DrawSnapshot, error) {
	return domain.DrawSnapshot{
		Rounds: []domain.RoundDraw{
			{
				Round:   domain.Round{ID: roundIDs[0]},
				Debates: f.debates,
			},
		},
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (f *fakeGenerationStore) FindAllTeams(_ context.Context) ([]domain.Team, error) {
	return f.teams, nil
}

func (f *fakeGenerationStore) FindAllJudges(_ context.Context) ([]domain.Judge, error) {
	return f.judges, nil
}

func (f *fakeGenerationStore) FindAllRooms(_ context.Context) ([]domain.Room, error) {
	return f.rooms, nil
}

func (f *fakeGenerationStore) ReplaceDraw(_ context.Context, _ uint, _ uint, seeds []domain.DebateSeed) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaceCalls++
	f.drawSeeds = seeds
	return nil
}

func (f *fakeGenerationStore) ReplaceAdjudication(_ context.Context, _ uint, _ uint, seats map[uint][]domain.JudgeSeed) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaceCalls++
	f.judgeSeats = seats
	return nil
}

type stubGenerator struct {
	seeds  []domain.DebateSeed
	err    error
	panic  bool
	cancel context.CancelFunc
}

func (g *stubGenerator) GenerateDraw(ctx context.Context, _ GenerationInput) ([]domain.DebateSeed, error) {
	if g.panic {
		panic("pairing exploded")
	}
	if g.cancel != nil {
		g.cancel()
		return nil, ctx.Err()
	}
	return g.seeds, g.err
}

func defaultFormat() config.FormatConfig {
	return config.FormatConfig{SidesPerDebate: 2, TeamsPerSide: 1}
}

func fourTeams() []domain.Team {
	return []domain.Team{
		{ID: 1, Name: "Alpha"},
		{ID: 2, Name: "Beta"},
		{ID: 3, Name: "Gamma"},
		{ID: 4, Name: "Delta"},
	}
}

func TestGenerationService_GenerateDraw_ReleasesTicketOnSuccess(t *testing.T) {
	tickets := &fakeTicketRepo{}
	store := &fakeGenerationStore{teams: fourTeams()}
	svc := NewGenerationService(tickets, store, NewRandomPairing(), NewRoundRobinAllocation(), defaultFormat())

	_, err := svc.GenerateDraw(context.Background(), 1, false)

	require.NoError(t, err)
	require.Len(t, tickets.released, 1)
	assert.Nil(t, tickets.releaseErr[0], "successful generation must release with no error payload")
	assert.Equal(t, 1, store.replaceCalls)
}

func TestGenerationService_GenerateDraw_ReleasesTicketWithErrorOnFailure(t *testing.T) {
	tickets := &fakeTicketRepo{}
	store := &fakeGenerationStore{teams: fourTeams()}
	generator := &stubGenerator{err: errors.New("no valid pairing exists")}
	svc := NewGenerationService(tickets, store, generator, NewRoundRobinAllocation(), defaultFormat())

	_, err := svc.GenerateDraw(context.Background(), 1, false)

	require.Error(t, err)
	require.Len(t, tickets.released, 1)
	require.NotNil(t, tickets.releaseErr[0])
	assert.Contains(t, *tickets.releaseErr[0], "no valid pairing exists")
	assert.Equal(t, 0, store.replaceCalls)
}

func TestGenerationService_GenerateDraw_ReleasesTicketOnPanic(t *testing.T) {
	tickets := &fakeTicketRepo{}
	store := &fakeGenerationStore{teams: fourTeams()}
	svc := NewGenerationService(tickets, store, &stubGenerator{panic: true}, NewRoundRobinAllocation(), defaultFormat())

	_, err := svc.GenerateDraw(context.Background(), 1, false)

	require.Error(t, err)
	require.Len(t, tickets.released, 1)
	require.NotNil(t, tickets.releaseErr[0])
	assert.Contains(t, *tickets.releaseErr[0], "panicked")
}

func TestGenerationService_GenerateDraw_ReleasesTicketWhenContextCanceled(t *testing.T) {
	tickets := &fakeTicketRepo{}
	store := &fakeGenerationStore{teams: fourTeams()}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	generator := &stubGenerator{cancel: cancel}
	svc := NewGenerationService(tickets, store, generator, NewRoundRobinAllocation(), defaultFormat())

	_, err := svc.GenerateDraw(ctx, 1, false)

	require.Error(t, err)
	require.Len(t, tickets.released, 1, "the ticket must be released even when the job's context is canceled mid-run")
	require.NotNil(t, tickets.releaseErr[0])
	assert.Contains(t, *tickets.releaseErr[0], "context canceled")
	assert.Equal(t, 0, store.replaceCalls)
}

func TestGenerationService_GenerateDraw_ActiveTicketBlocksWithoutForce(t *testing.T) {
	tickets := &fakeTicketRepo{active: true}
	store := &fakeGenerationStore{teams: fourTeams()}
	svc := NewGenerationService(tickets, store, NewRandomPairing(), NewRoundRobinAllocation(), defaultFormat())

	_, err := svc.GenerateDraw(context.Background(), 1, false)
	assert.ErrorIs(t, err, ErrTicketActive)

	_, err = svc.GenerateDraw(context.Background(), 1, true)
	assert.NoError(t, err)
}

func TestGenerationService_GenerateAdjudication_RequiresDebates(t *testing.T) {
	tickets := &fakeTicketRepo{}
	store := &fakeGenerationStore{judges: []domain.Judge{{ID: 1}}}
	svc := NewGenerationService(tickets, store, NewRandomPairing(), NewRoundRobinAllocation(), defaultFormat())

	_, err := svc.GenerateAdjudication(context.Background(), 1, false)

	assert.ErrorIs(t, err, ErrNoDebates)
	require.Len(t, tickets.released, 1, "ticket must be released even when validation fails")
}

func TestRandomPairing_FillsWholeDebatesOnly(t *testing.T) {
	input := GenerationInput{
		Teams: []domain.Team{
			{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5},
		},
		Rooms:  []domain.Room{{ID: 10}},
		Format: defaultFormat(),
	}

	seeds, err := NewRandomPairing().GenerateDraw(context.Background(), input)

	require.NoError(t, err)
	require.Len(t, seeds, 2, "five teams at two per debate gives two debates")

	seen := make(map[uint]bool)
	for _, seed := range seeds {
		require.Len(t, seed.Teams, 2)
		assert.NotEqual(t, seed.Teams[0].Side, seed.Teams[1].Side)
		for _, team := range seed.Teams {
			assert.False(t, seen[team.TeamID], "a team may appear at most once")
			seen[team.TeamID] = true
		}
	}

	require.NotNil(t, seeds[0].RoomID)
	assert.Equal(t, uint(10), *seeds[0].RoomID)
	assert.Nil(t, seeds[1].RoomID, "rooms run out after the first debate")
}

func TestRandomPairing_NotEnoughTeams(t *testing.T) {
	input := GenerationInput{
		Teams:  []domain.Team{{ID: 1}},
		Format: defaultFormat(),
	}

	_, err := NewRandomPairing().GenerateDraw(context.Background(), input)

	assert.ErrorIs(t, err, ErrNotEnoughTeams)
}

func TestRoundRobinAllocation_SeatsChairsFirst(t *testing.T) {
	input := GenerationInput{
		Judges: []domain.Judge{{ID: 1}, {ID: 2}, {ID: 3}},
		Debates: []domain.DebateView{
			{ID: 100}, {ID: 200},
		},
	}

	seats, err := NewRoundRobinAllocation().AllocateJudges(context.Background(), input)

	require.NoError(t, err)
	require.Len(t, seats, 2)

	chairs := 0
	for _, assigned := range seats {
		require.NotEmpty(t, assigned)
		if assigned[0].Role == domain.RoleChair {
			chairs++
		}
	}
	assert.Equal(t, 2, chairs, "every debate gets exactly one chair")
	assert.Len(t, seats[100], 2, "the third judge joins the first debate as panelist")
	assert.Equal(t, domain.RolePanelist, seats[100][1].Role)
}
