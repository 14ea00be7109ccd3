package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/tabhub/tabhub/internal/config"
	"github.com/tabhub/tabhub/internal/domain"
)

var (
	// ErrNotEnoughTeams is returned when the registered teams cannot fill a
	// single debate of the configured format.
	ErrNotEnoughTeams = errors.New("not enough teams to generate a draw")
	// ErrNoDebates is returned when adjudication is requested for a round
	// that has no draw yet.
	ErrNoDebates = errors.New("round has no debates to adjudicate")
)

type GenerationStore interface {
	Snapshot(ctx context.Context, roundIDs []uint) (domain.DrawSnapshot, error)
	FindAllTeams(ctx context.Context) ([]domain.Team, error)
	FindAllJudges(ctx context.Context) ([]domain.Judge, error)
	FindAllRooms(ctx context.Context) ([]domain.Room, error)
	ReplaceDraw(ctx context.Context, ticketID uint, roundID uint, seeds []domain.DebateSeed) error
	ReplaceAdjudication(ctx context.Context, ticketID uint, roundID uint, seats map[uint][]domain.JudgeSeed) error
}

// GenerationInput is everything a pairing or allocation algorithm may look
// at. Algorithms receive a copy of tournament state and compute in memory;
// they never touch storage themselves.
type GenerationInput struct {
	RoundID uint
	Teams   []domain.Team
	Judges  []domain.Judge
	Rooms   []domain.Room
	Debates []domain.DebateView
	Format  config.FormatConfig
}

type DrawGenerator interface {
	GenerateDraw(ctx context.Context, input GenerationInput) ([]domain.DebateSeed, error)
}

type JudgeAllocator interface {
	AllocateJudges(ctx context.Context, input GenerationInput) (map[uint][]domain.JudgeSeed, error)
}

// GenerationService runs pairing and allocation jobs under a generation
// ticket. The ticket is acquired before the algorithm starts and released
// when the job ends, success or not, so an observer can always tell whether
// a generation is in flight and how the last one ended. No database
// transaction is held while an algorithm runs; the commit re-validates the
// ticket instead.
type GenerationService struct {
	tickets   TicketRepository
	store     GenerationStore
	generator DrawGenerator
	allocator JudgeAllocator
	conf      config.FormatConfig
}

func NewGenerationService(tickets TicketRepository, store GenerationStore, generator DrawGenerator, allocator JudgeAllocator, conf config.FormatConfig) *GenerationService {
	return &GenerationService{
		tickets:   tickets,
		store:     store,
		generator: generator,
		allocator: allocator,
		conf:      conf,
	}
}

func (s *GenerationService) GenerateDraw(ctx context.Context, roundID uint, force bool) (snapshot domain.DrawSnapshot, err error) {
	ticket, err := s.tickets.Acquire(ctx, roundID, domain.TicketDraw, force)
	if err != nil {
		return domain.DrawSnapshot{}, fmt.Errorf("s.tickets.Acquire -> %w", err)
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("draw generation panicked: %v", rec)
			snapshot = domain.DrawSnapshot{}
		}
		s.release(ctx, ticket.ID, err)
	}()

	input, err := s.loadInput(ctx, roundID)
	if err != nil {
		return domain.DrawSnapshot{}, err
	}

	seeds, err := s.generator.GenerateDraw(ctx, input)
	if err != nil {
		return domain.DrawSnapshot{}, fmt.Errorf("s.generator.GenerateDraw -> %w", err)
	}

	if err = s.store.ReplaceDraw(ctx, ticket.ID, roundID, seeds); err != nil {
		return domain.DrawSnapshot{}, fmt.Errorf("s.store.ReplaceDraw -> %w", err)
	}

	snapshot, err = s.store.Snapshot(ctx, []uint{roundID})
	if err != nil {
		return domain.DrawSnapshot{}, fmt.Errorf("s.store.Snapshot -> %w", err)
	}

	return snapshot, nil
}

func (s *GenerationService) GenerateAdjudication(ctx context.Context, roundID uint, force bool) (snapshot domain.DrawSnapshot, err error) {
	ticket, err := s.tickets.Acquire(ctx, roundID, domain.TicketAdjudication, force)
	if err != nil {
		return domain.DrawSnapshot{}, fmt.Errorf("s.tickets.Acquire -> %w", err)
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("adjudication generation panicked: %v", rec)
			snapshot = domain.DrawSnapshot{}
		}
		s.release(ctx, ticket.ID, err)
	}()

	input, err := s.loadInput(ctx, roundID)
	if err != nil {
		return domain.DrawSnapshot{}, err
	}
	if len(input.Debates) == 0 {
		return domain.DrawSnapshot{}, ErrNoDebates
	}

	seats, err := s.allocator.AllocateJudges(ctx, input)
	if err != nil {
		return domain.DrawSnapshot{}, fmt.Errorf("s.allocator.AllocateJudges -> %w", err)
	}

	if err = s.store.ReplaceAdjudication(ctx, ticket.ID, roundID, seats); err != nil {
		return domain.DrawSnapshot{}, fmt.Errorf("s.store.ReplaceAdjudication -> %w", err)
	}

	snapshot, err = s.store.Snapshot(ctx, []uint{roundID})
	if err != nil {
		return domain.DrawSnapshot{}, fmt.Errorf("s.store.Snapshot -> %w", err)
	}

	return snapshot, nil
}

func (s *GenerationService) loadInput(ctx context.Context, roundID uint) (GenerationInput, error) {
	teams, err := s.store.FindAllTeams(ctx)
	if err != nil {
		return GenerationInput{}, fmt.Errorf("s.store.FindAllTeams -> %w", err)
	}

	judges, err := s.store.FindAllJudges(ctx)
	if err != nil {
		return GenerationInput{}, fmt.Errorf("s.store.FindAllJudges -> %w", err)
	}

	rooms, err := s.store.FindAllRooms(ctx)
	if err != nil {
		return GenerationInput{}, fmt.Errorf("s.store.FindAllRooms -> %w", err)
	}

	current, err := s.store.Snapshot(ctx, []uint{roundID})
	if err != nil {
		return GenerationInput{}, fmt.Errorf("s.store.Snapshot -> %w", err)
	}

	input := GenerationInput{
		RoundID: roundID,
		Teams:   teams,
		Judges:  judges,
		Rooms:   rooms,
		Format:  s.conf,
	}
	if len(current.Rounds) > 0 {
		input.Debates = current.Rounds[0].Debates
	}

	return input, nil
}

func (s *GenerationService) release(ctx context.Context, ticketID uint, jobErr error) {
	var errMsg *string
	if jobErr != nil {
		msg := jobErr.Error()
		errMsg = &msg
	}

	// The job's context may already be canceled, e.g. the requesting client
	// disconnected mid-generation. The release must still reach the database
	// or the ticket stays stuck until a force-acquire.
	ctx = context.WithoutCancel(ctx)

	if _, err := s.tickets.Release(ctx, ticketID, errMsg); err != nil && !errors.Is(err, ErrTicketReleased) {
		zap.L().Error("failed to release generation ticket",
			zap.Uint("ticket_id", ticketID),
			zap.Error(err))
	}
}

// RandomPairing shuffles the registered teams and fills debates in order,
// assigning rooms while they last. Teams that do not fill a whole debate are
// left out of the draw.
type RandomPairing struct {
	rng *rand.Rand
}

func NewRandomPairing() *RandomPairing {
	return &RandomPairing{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *RandomPairing) GenerateDraw(_ context.Context, input GenerationInput) ([]domain.DebateSeed, error) {
	perDebate := input.Format.SidesPerDebate * input.Format.TeamsPerSide
	if perDebate <= 0 || len(input.Teams) < perDebate {
		return nil, ErrNotEnoughTeams
	}

	shuffled := make([]domain.Team, len(input.Teams))
	copy(shuffled, input.Teams)
	g.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	nDebates := len(shuffled) / perDebate
	seeds := make([]domain.DebateSeed, nDebates)
	for i := 0; i < nDebates; i++ {
		seed := domain.DebateSeed{}
		if i < len(input.Rooms) {
			roomID := input.Rooms[i].ID
			seed.RoomID = &roomID
		}
		for j := 0; j < perDebate; j++ {
			seed.Teams = append(seed.Teams, domain.TeamSeed{
				TeamID: shuffled[i*perDebate+j].ID,
				Side:   j % input.Format.SidesPerDebate,
				Seq:    j / input.Format.SidesPerDebate,
			})
		}
		seeds[i] = seed
	}

	return seeds, nil
}

// RoundRobinAllocation deals judges across the round's debates in order: the
// first pass seats a chair everywhere, later passes add panelists.
type RoundRobinAllocation struct{}

func NewRoundRobinAllocation() *RoundRobinAllocation {
	return &RoundRobinAllocation{}
}

func (a *RoundRobinAllocation) AllocateJudges(_ context.Context, input GenerationInput) (map[uint][]domain.JudgeSeed, error) {
	seats := make(map[uint][]domain.JudgeSeed, len(input.Debates))
	for _, debate := range input.Debates {
		seats[debate.ID] = nil
	}

	for i, judge := range input.Judges {
		debate := input.Debates[i%len(input.Debates)]
		role := domain.RolePanelist
		if i < len(input.Debates) {
			role = domain.RoleChair
		}
		seats[debate.ID] = append(seats[debate.ID], domain.JudgeSeed{
			JudgeID: judge.ID,
			Role:    role,
		})
	}

	return seats, nil
}
