package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/tabhub/tabhub/internal/domain"
	"github.com/tabhub/tabhub/internal/repository/dao"
)

var (
	ErrDebateNotFound   = dao.ErrDebateNotFound
	ErrRoomNotFound     = dao.ErrRoomNotFound
	ErrTeamNotFound     = dao.ErrTeamNotFound
	ErrJudgeNotFound    = dao.ErrJudgeNotFound
	ErrChairOccupied    = dao.ErrChairOccupied
	ErrInvalidSwap      = dao.ErrInvalidSwap
	ErrCrossRound       = dao.ErrCrossRound
	ErrInvalidPlacement = dao.ErrInvalidPlacement
)

type DrawDAO interface {
	FindRounds(ctx context.Context, roundIDs []uint) ([]dao.Round, error)
	FindDebate(ctx context.Context, debateID uint) (dao.Debate, error)
	DebatesOfRounds(ctx context.Context, roundIDs []uint) ([]dao.Debate, error)
	TeamSlots(ctx context.Context, debateIDs []uint) ([]dao.TeamSlotRow, error)
	JudgeSeats(ctx context.Context, debateIDs []uint) ([]dao.JudgeSeatRow, error)
	FindRooms(ctx context.Context, roomIDs []uint) ([]dao.Room, error)
	FindAllRooms(ctx context.Context) ([]dao.Room, error)
	FindAllTeams(ctx context.Context) ([]dao.Team, error)
	FindAllJudges(ctx context.Context) ([]dao.Judge, error)
	ReplaceDraw(ctx context.Context, ticketID uint, roundID uint, seeds []dao.DebateSeed) error
	ReplaceAdjudication(ctx context.Context, ticketID uint, roundID uint, seats map[uint][]dao.DebateJudge) error
	MoveJudge(ctx context.Context, roundIDs []uint, judgeID uint, toDebateID *uint, role string) error
	MoveRoom(ctx context.Context, roundIDs []uint, roomID uint, toDebateID *uint) error
	SwapTeams(ctx context.Context, roundIDs []uint, teamAID, teamBID uint) error
	PlaceTeam(ctx context.Context, roundIDs []uint, teamID uint, toDebateID *uint, side, seq int) error
}

type DrawRepository struct {
	dao DrawDAO
}

func NewDrawRepository(dao DrawDAO) *DrawRepository {
	return &DrawRepository{
		dao: dao,
	}
}

// Snapshot assembles the whole-state projection of the given rounds. It uses
// plain reads only, so it never blocks on a mutation in flight and always
// reflects the last committed state.
func (r *DrawRepository) Snapshot(ctx context.Context, roundIDs []uint) (domain.DrawSnapshot, error) {
	rounds, err := r.dao.FindRounds(ctx, roundIDs)
	if err != nil {
		return domain.DrawSnapshot{}, err
	}

	debates, err := r.dao.DebatesOfRounds(ctx, roundIDs)
	if err != nil {
		return domain.DrawSnapshot{}, fmt.Errorf("r.dao.DebatesOfRounds -> %w", err)
	}

	debateIDs := make([]uint, len(debates))
	roomIDs := make([]uint, 0)
	for i, debate := range debates {
		debateIDs[i] = debate.ID
		if debate.RoomID != nil {
			roomIDs = append(roomIDs, *debate.RoomID)
		}
	}

	slots, err := r.dao.TeamSlots(ctx, debateIDs)
	if err != nil {
		return domain.DrawSnapshot{}, fmt.Errorf("r.dao.TeamSlots -> %w", err)
	}

	seats, err := r.dao.JudgeSeats(ctx, debateIDs)
	if err != nil {
		return domain.DrawSnapshot{}, fmt.Errorf("r.dao.JudgeSeats -> %w", err)
	}

	rooms, err := r.dao.FindRooms(ctx, roomIDs)
	if err != nil {
		return domain.DrawSnapshot{}, fmt.Errorf("r.dao.FindRooms -> %w", err)
	}

	roomsByID := make(map[uint]domain.Room, len(rooms))
	for _, room := range rooms {
		roomsByID[room.ID] = domain.Room{ID: room.ID, Name: room.Name}
	}

	slotsByDebate := make(map[uint][]domain.TeamSlot)
	for _, slot := range slots {
		slotsByDebate[slot.DebateID] = append(slotsByDebate[slot.DebateID], domain.TeamSlot{
			TeamID:   slot.TeamID,
			TeamName: slot.TeamName,
			Side:     slot.Side,
			Seq:      slot.Seq,
		})
	}

	seatsByDebate := make(map[uint][]domain.JudgeSeat)
	for _, seat := range seats {
		seatsByDebate[seat.DebateID] = append(seatsByDebate[seat.DebateID], domain.JudgeSeat{
			JudgeID:   seat.JudgeID,
			JudgeName: seat.JudgeName,
			Role:      domain.JudgeRole(seat.Role),
		})
	}

	viewsByRound := make(map[uint][]domain.DebateView)
	for _, debate := range debates {
		view := domain.DebateView{
			ID:     debate.ID,
			Number: debate.Number,
			Status: domain.DebateStatus(debate.Status),
			Teams:  slotsByDebate[debate.ID],
			Judges: seatsByDebate[debate.ID],
		}
		if view.Teams == nil {
			view.Teams = []domain.TeamSlot{}
		}
		if view.Judges == nil {
			view.Judges = []domain.JudgeSeat{}
		}
		if debate.RoomID != nil {
			if room, ok := roomsByID[*debate.RoomID]; ok {
				view.Room = &room
			}
		}
		viewsByRound[debate.RoundID] = append(viewsByRound[debate.RoundID], view)
	}

	snapshot := domain.DrawSnapshot{
		Rounds:      make([]domain.RoundDraw, len(rounds)),
		GeneratedAt: time.Now().UTC(),
	}
	for i, round := range rounds {
		debatesOfRound := viewsByRound[round.ID]
		if debatesOfRound == nil {
			debatesOfRound = []domain.DebateView{}
		}
		snapshot.Rounds[i] = domain.RoundDraw{
			Round:   roundDaoToDomain(round),
			Debates: debatesOfRound,
		}
	}

	return snapshot, nil
}

func (r *DrawRepository) FindDebate(ctx context.Context, debateID uint) (domain.Debate, error) {
	debate, err := r.dao.FindDebate(ctx, debateID)
	if err != nil {
		return domain.Debate{}, err
	}

	return domain.Debate{
		ID:      debate.ID,
		RoundID: debate.RoundID,
		RoomID:  debate.RoomID,
		Number:  debate.Number,
		Status:  domain.DebateStatus(debate.Status),
	}, nil
}

func (r *DrawRepository) FindAllRooms(ctx context.Context) ([]domain.Room, error) {
	rooms, err := r.dao.FindAllRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllRooms -> %w", err)
	}

	result := make([]domain.Room, len(rooms))
	for i, room := range rooms {
		result[i] = domain.Room{ID: room.ID, Name: room.Name}
	}

	return result, nil
}

func (r *DrawRepository) FindAllTeams(ctx context.Context) ([]domain.Team, error) {
	teams, err := r.dao.FindAllTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllTeams -> %w", err)
	}

	result := make([]domain.Team, len(teams))
	for i, team := range teams {
		result[i] = domain.Team{ID: team.ID, Name: team.Name, Number: team.Number}
	}

	return result, nil
}

func (r *DrawRepository) FindAllJudges(ctx context.Context) ([]domain.Judge, error) {
	judges, err := r.dao.FindAllJudges(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAllJudges -> %w", err)
	}

	result := make([]domain.Judge, len(judges))
	for i, judge := range judges {
		result[i] = domain.Judge{ID: judge.ID, Name: judge.Name, Number: judge.Number}
	}

	return result, nil
}

func (r *DrawRepository) ReplaceDraw(ctx context.Context, ticketID uint, roundID uint, seeds []domain.DebateSeed) error {
	daoSeeds := make([]dao.DebateSeed, len(seeds))
	for i, seed := range seeds {
		daoSeed := dao.DebateSeed{RoomID: seed.RoomID}
		for _, team := range seed.Teams {
			daoSeed.Teams = append(daoSeed.Teams, dao.DebateTeam{
				TeamID: team.TeamID,
				Side:   team.Side,
				Seq:    team.Seq,
			})
		}
		for _, judge := range seed.Judges {
			daoSeed.Judges = append(daoSeed.Judges, dao.DebateJudge{
				JudgeID: judge.JudgeID,
				Role:    string(judge.Role),
			})
		}
		daoSeeds[i] = daoSeed
	}

	return r.dao.ReplaceDraw(ctx, ticketID, roundID, daoSeeds)
}

func (r *DrawRepository) ReplaceAdjudication(ctx context.Context, ticketID uint, roundID uint, seats map[uint][]domain.JudgeSeed) error {
	daoSeats := make(map[uint][]dao.DebateJudge, len(seats))
	for debateID, judges := range seats {
		for _, judge := range judges {
			daoSeats[debateID] = append(daoSeats[debateID], dao.DebateJudge{
				JudgeID: judge.JudgeID,
				Role:    string(judge.Role),
			})
		}
	}

	return r.dao.ReplaceAdjudication(ctx, ticketID, roundID, daoSeats)
}

func (r *DrawRepository) MoveJudge(ctx context.Context, roundIDs []uint, judgeID uint, toDebateID *uint, role domain.JudgeRole) error {
	return r.dao.MoveJudge(ctx, roundIDs, judgeID, toDebateID, string(role))
}

func (r *DrawRepository) MoveRoom(ctx context.Context, roundIDs []uint, roomID uint, toDebateID *uint) error {
	return r.dao.MoveRoom(ctx, roundIDs, roomID, toDebateID)
}

func (r *DrawRepository) SwapTeams(ctx context.Context, roundIDs []uint, teamAID, teamBID uint) error {
	return r.dao.SwapTeams(ctx, roundIDs, teamAID, teamBID)
}

func (r *DrawRepository) PlaceTeam(ctx context.Context, roundIDs []uint, teamID uint, toDebateID *uint, side, seq int) error {
	return r.dao.PlaceTeam(ctx, roundIDs, teamID, toDebateID, side, seq)
}

func roundDaoToDomain(round dao.Round) domain.Round {
	return domain.Round{
		ID:         round.ID,
		Seq:        round.Seq,
		Name:       round.Name,
		Kind:       domain.RoundKind(round.Kind),
		DrawStatus: domain.DrawStatus(round.DrawStatus),
		CreatedAt:  round.CreatedAt,
		UpdatedAt:  round.UpdatedAt,
	}
}
