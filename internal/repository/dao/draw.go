package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrDebateNotFound   = errors.New("debate not found")
	ErrChairOccupied    = errors.New("debate already has a chair")
	ErrInvalidSwap      = errors.New("both teams must be placed in the draw to be swapped")
	ErrCrossRound       = errors.New("entities belong to rounds outside the edit scope")
	ErrInvalidPlacement = errors.New("placement conflicts with an existing assignment")
)

// Debate is owned by its round; it is destroyed only by replacing the round's
// draw. Number is dense and zero-based within the round.
type Debate struct {
	ID      uint   `gorm:"primaryKey"`
	RoundID uint   `gorm:"not null;uniqueIndex:uniq_debates_round_number,priority:1"`
	RoomID  *uint  `gorm:"index"`
	Number  int    `gorm:"not null;uniqueIndex:uniq_debates_round_number,priority:2"`
	Status  string `gorm:"not null;default:'draft'"`
}

type DebateTeam struct {
	ID       uint `gorm:"primaryKey"`
	DebateID uint `gorm:"not null;uniqueIndex:uniq_debate_teams_team,priority:1;uniqueIndex:uniq_debate_teams_slot,priority:1"`
	TeamID   uint `gorm:"not null;uniqueIndex:uniq_debate_teams_team,priority:2"`
	Side     int  `gorm:"not null;uniqueIndex:uniq_debate_teams_slot,priority:2"`
	Seq      int  `gorm:"not null;uniqueIndex:uniq_debate_teams_slot,priority:3"`
}

type DebateJudge struct {
	ID       uint   `gorm:"primaryKey"`
	DebateID uint   `gorm:"not null;uniqueIndex:uniq_debate_judges_judge,priority:1"`
	JudgeID  uint   `gorm:"not null;uniqueIndex:uniq_debate_judges_judge,priority:2"`
	Role     string `gorm:"not null"` // "C", "P" or "T"
}

// DebateSeed is one debate of a freshly generated draw, as handed to
// ReplaceDraw by a generation job.
type DebateSeed struct {
	RoomID *uint
	Teams  []DebateTeam
	Judges []DebateJudge
}

type TeamSlotRow struct {
	DebateID uint
	TeamID   uint
	TeamName string
	Side     int
	Seq      int
}

type JudgeSeatRow struct {
	DebateID  uint
	JudgeID   uint
	JudgeName string
	Role      string
}

type DrawDAO struct {
	db *gorm.DB
}

func NewDrawDAO(db *gorm.DB) *DrawDAO {
	return &DrawDAO{
		db: db,
	}
}

func (d *DrawDAO) FindRounds(ctx context.Context, roundIDs []uint) ([]Round, error) {
	var rounds []Round

	result := d.db.WithContext(ctx).
		Where("id IN ?", roundIDs).
		Order("seq").
		Find(&rounds)
	if result.Error != nil {
		return nil, result.Error
	}
	if len(rounds) != len(roundIDs) {
		return nil, ErrRoundNotFound
	}

	return rounds, nil
}

func (d *DrawDAO) FindDebate(ctx context.Context, debateID uint) (Debate, error) {
	var debate Debate

	result := d.db.WithContext(ctx).First(&debate, debateID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Debate{}, ErrDebateNotFound
		}

		return Debate{}, result.Error
	}

	return debate, nil
}

func (d *DrawDAO) DebatesOfRounds(ctx context.Context, roundIDs []uint) ([]Debate, error) {
	var debates []Debate

	result := d.db.WithContext(ctx).
		Where("round_id IN ?", roundIDs).
		Order("round_id, number").
		Find(&debates)
	if result.Error != nil {
		return nil, result.Error
	}

	return debates, nil
}

func (d *DrawDAO) TeamSlots(ctx context.Context, debateIDs []uint) ([]TeamSlotRow, error) {
	if len(debateIDs) == 0 {
		return nil, nil
	}

	var rows []TeamSlotRow
	err := d.db.WithContext(ctx).
		Table("debate_teams").
		Select("debate_teams.debate_id, debate_teams.team_id, teams.name AS team_name, debate_teams.side, debate_teams.seq").
		Joins("JOIN teams ON teams.id = debate_teams.team_id").
		Where("debate_teams.debate_id IN ?", debateIDs).
		Order("debate_teams.debate_id, debate_teams.side, debate_teams.seq").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (d *DrawDAO) JudgeSeats(ctx context.Context, debateIDs []uint) ([]JudgeSeatRow, error) {
	if len(debateIDs) == 0 {
		return nil, nil
	}

	var rows []JudgeSeatRow
	err := d.db.WithContext(ctx).
		Table("debate_judges").
		Select("debate_judges.debate_id, debate_judges.judge_id, judges.name AS judge_name, debate_judges.role").
		Joins("JOIN judges ON judges.id = debate_judges.judge_id").
		Where("debate_judges.debate_id IN ?", debateIDs).
		Order("debate_judges.debate_id, debate_judges.role, judges.number").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (d *DrawDAO) FindRooms(ctx context.Context, roomIDs []uint) ([]Room, error) {
	if len(roomIDs) == 0 {
		return nil, nil
	}

	var rooms []Room
	result := d.db.WithContext(ctx).Where("id IN ?", roomIDs).Find(&rooms)
	if result.Error != nil {
		return nil, result.Error
	}

	return rooms, nil
}

func (d *DrawDAO) FindAllRooms(ctx context.Context) ([]Room, error) {
	var rooms []Room

	result := d.db.WithContext(ctx).Order("name").Find(&rooms)
	if result.Error != nil {
		return nil, result.Error
	}

	return rooms, nil
}

func (d *DrawDAO) FindAllTeams(ctx context.Context) ([]Team, error) {
	var teams []Team

	result := d.db.WithContext(ctx).Order("number").Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}

	return teams, nil
}

func (d *DrawDAO) FindAllJudges(ctx context.Context) ([]Judge, error) {
	var judges []Judge

	result := d.db.WithContext(ctx).Order("number").Find(&judges)
	if result.Error != nil {
		return nil, result.Error
	}

	return judges, nil
}

// ReplaceDraw atomically swaps the entire draw of a round: the previous
// debates with all their assignments, ballots and results are removed and the
// seeded debates inserted, in one transaction. The caller's ticket must still
// be the newest of its (round, kind) or the commit is rejected.
func (d *DrawDAO) ReplaceDraw(ctx context.Context, ticketID uint, roundID uint, seeds []DebateSeed) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket Ticket
		if err := tx.First(&ticket, ticketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		current, err := isCurrentTicket(tx, ticket)
		if err != nil {
			return err
		}
		if !current {
			return ErrTicketExpired
		}

		var round Round
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&round, roundID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoundNotFound
			}
			return err
		}

		if err = deleteDrawOfRound(tx, roundID); err != nil {
			return err
		}

		for number, seed := range seeds {
			debate := Debate{
				RoundID: roundID,
				RoomID:  seed.RoomID,
				Number:  number,
				Status:  "draft",
			}
			if err = tx.Create(&debate).Error; err != nil {
				return err
			}

			for _, team := range seed.Teams {
				team.ID = 0
				team.DebateID = debate.ID
				if err = tx.Create(&team).Error; err != nil {
					return err
				}
			}
			for _, judge := range seed.Judges {
				judge.ID = 0
				judge.DebateID = debate.ID
				if err = tx.Create(&judge).Error; err != nil {
					return err
				}
			}
		}

		round.DrawStatus = "draft"
		round.UpdatedAt = time.Now().UTC()

		return tx.Save(&round).Error
	})
}

// ReplaceAdjudication swaps only the judge assignments of a round's existing
// debates, leaving teams and rooms untouched. An allocation seating two
// chairs in one debate is rejected as a whole.
func (d *DrawDAO) ReplaceAdjudication(ctx context.Context, ticketID uint, roundID uint, seats map[uint][]DebateJudge) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ticket Ticket
		if err := tx.First(&ticket, ticketID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		current, err := isCurrentTicket(tx, ticket)
		if err != nil {
			return err
		}
		if !current {
			return ErrTicketExpired
		}

		var debateIDs []uint
		err = tx.Model(&Debate{}).Where("round_id = ?", roundID).Pluck("id", &debateIDs).Error
		if err != nil {
			return err
		}
		if len(debateIDs) == 0 {
			return ErrDebateNotFound
		}

		err = tx.Where("debate_id IN ?", debateIDs).Delete(&DebateJudge{}).Error
		if err != nil {
			return err
		}

		for debateID, judges := range seats {
			chairs := 0
			for _, judge := range judges {
				if judge.Role == "C" {
					chairs++
				}
			}
			if chairs > 1 {
				return ErrChairOccupied
			}

			for _, judge := range judges {
				judge.ID = 0
				judge.DebateID = debateID
				if err = tx.Create(&judge).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// MoveJudge removes the judge's assignment within the scoped rounds and, when
// a target debate is given, re-assigns them there with the given role. A
// second chair is rejected, never silently demoted.
func (d *DrawDAO) MoveJudge(ctx context.Context, roundIDs []uint, judgeID uint, toDebateID *uint, role string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var judge Judge
		if err := tx.First(&judge, judgeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrJudgeNotFound
			}
			return err
		}

		if toDebateID != nil {
			var debate Debate
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND round_id IN ?", *toDebateID, roundIDs).
				First(&debate).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrDebateNotFound
				}
				return err
			}

			if role == "C" {
				var chairs int64
				err = tx.Model(&DebateJudge{}).
					Where("debate_id = ? AND role = ? AND judge_id <> ?", debate.ID, "C", judgeID).
					Count(&chairs).Error
				if err != nil {
					return err
				}
				if chairs > 0 {
					return ErrChairOccupied
				}
			}
		}

		scoped := tx.Model(&Debate{}).Select("id").Where("round_id IN ?", roundIDs)
		err := tx.Where("judge_id = ? AND debate_id IN (?)", judgeID, scoped).
			Delete(&DebateJudge{}).Error
		if err != nil {
			return err
		}

		if toDebateID == nil {
			return nil
		}

		return tx.Create(&DebateJudge{
			DebateID: *toDebateID,
			JudgeID:  judgeID,
			Role:     role,
		}).Error
	})
}

// MoveRoom vacates whichever scoped debate currently holds the room, then
// attaches the room to the target debate if one is given.
func (d *DrawDAO) MoveRoom(ctx context.Context, roundIDs []uint, roomID uint, toDebateID *uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var room Room
		if err := tx.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}

		if toDebateID != nil {
			var debate Debate
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND round_id IN ?", *toDebateID, roundIDs).
				First(&debate).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrDebateNotFound
				}
				return err
			}
		}

		err := tx.Model(&Debate{}).
			Where("room_id = ? AND round_id IN ?", roomID, roundIDs).
			Update("room_id", nil).Error
		if err != nil {
			return err
		}

		if toDebateID == nil {
			return nil
		}

		return tx.Model(&Debate{}).
			Where("id = ?", *toDebateID).
			Update("room_id", roomID).Error
	})
}

// SwapTeams exchanges the (debate, side, seq) placements of two teams. Both
// must already be placed; assigning or removing a team goes through PlaceTeam
// instead.
func (d *DrawDAO) SwapTeams(ctx context.Context, roundIDs []uint, teamAID, teamBID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		placementA, err := lockPlacement(tx, roundIDs, teamAID)
		if err != nil {
			return err
		}
		placementB, err := lockPlacement(tx, roundIDs, teamBID)
		if err != nil {
			return err
		}

		// Delete both rows before re-inserting so the unique slot index
		// never sees an intermediate collision.
		err = tx.Delete(&DebateTeam{}, []uint{placementA.ID, placementB.ID}).Error
		if err != nil {
			return err
		}

		err = tx.Create(&DebateTeam{
			DebateID: placementB.DebateID,
			TeamID:   placementA.TeamID,
			Side:     placementB.Side,
			Seq:      placementB.Seq,
		}).Error
		if err != nil {
			return err
		}

		return tx.Create(&DebateTeam{
			DebateID: placementA.DebateID,
			TeamID:   placementB.TeamID,
			Side:     placementA.Side,
			Seq:      placementA.Seq,
		}).Error
	})
}

// PlaceTeam is the dedicated assignment operation: it removes the team's
// existing scoped placement and, when a target is given, inserts the new one.
func (d *DrawDAO) PlaceTeam(ctx context.Context, roundIDs []uint, teamID uint, toDebateID *uint, side, seq int) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var team Team
		if err := tx.First(&team, teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeamNotFound
			}
			return err
		}

		if toDebateID != nil {
			var debate Debate
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND round_id IN ?", *toDebateID, roundIDs).
				First(&debate).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrDebateNotFound
				}
				return err
			}
		}

		scoped := tx.Model(&Debate{}).Select("id").Where("round_id IN ?", roundIDs)
		err := tx.Where("team_id = ? AND debate_id IN (?)", teamID, scoped).
			Delete(&DebateTeam{}).Error
		if err != nil {
			return err
		}

		if toDebateID == nil {
			return nil
		}

		var occupied int64
		err = tx.Model(&DebateTeam{}).
			Where("debate_id = ? AND side = ? AND seq = ?", *toDebateID, side, seq).
			Count(&occupied).Error
		if err != nil {
			return err
		}
		if occupied > 0 {
			return ErrInvalidPlacement
		}

		return tx.Create(&DebateTeam{
			DebateID: *toDebateID,
			TeamID:   teamID,
			Side:     side,
			Seq:      seq,
		}).Error
	})
}

// lockPlacement fetches a team's placement row for update, distinguishing
// "no such team", "team not placed" and "placed outside the edit scope".
func lockPlacement(tx *gorm.DB, roundIDs []uint, teamID uint) (DebateTeam, error) {
	var team Team
	if err := tx.First(&team, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DebateTeam{}, ErrTeamNotFound
		}
		return DebateTeam{}, err
	}

	var placement DebateTeam
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("team_id = ?", teamID).
		First(&placement).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DebateTeam{}, ErrInvalidSwap
		}
		return DebateTeam{}, err
	}

	var inScope int64
	err = tx.Model(&Debate{}).
		Where("id = ? AND round_id IN ?", placement.DebateID, roundIDs).
		Count(&inScope).Error
	if err != nil {
		return DebateTeam{}, err
	}
	if inScope == 0 {
		return DebateTeam{}, ErrCrossRound
	}

	return placement, nil
}

// deleteDrawOfRound removes a round's debates together with everything that
// hangs off them.
func deleteDrawOfRound(tx *gorm.DB, roundID uint) error {
	var debateIDs []uint
	err := tx.Model(&Debate{}).Where("round_id = ?", roundID).Pluck("id", &debateIDs).Error
	if err != nil {
		return err
	}
	if len(debateIDs) == 0 {
		return nil
	}

	var ballotIDs []uint
	err = tx.Model(&Ballot{}).Where("debate_id IN ?", debateIDs).Pluck("id", &ballotIDs).Error
	if err != nil {
		return err
	}
	if len(ballotIDs) > 0 {
		if err = tx.Where("ballot_id IN ?", ballotIDs).Delete(&BallotScore{}).Error; err != nil {
			return err
		}
		if err = tx.Where("ballot_id IN ?", ballotIDs).Delete(&BallotTeamRank{}).Error; err != nil {
			return err
		}
		if err = tx.Where("debate_id IN ?", debateIDs).Delete(&Ballot{}).Error; err != nil {
			return err
		}
	}

	if err = tx.Where("debate_id IN ?", debateIDs).Delete(&TeamResult{}).Error; err != nil {
		return err
	}
	if err = tx.Where("debate_id IN ?", debateIDs).Delete(&SpeakerResult{}).Error; err != nil {
		return err
	}
	if err = tx.Where("debate_id IN ?", debateIDs).Delete(&DebateTeam{}).Error; err != nil {
		return err
	}
	if err = tx.Where("debate_id IN ?", debateIDs).Delete(&DebateJudge{}).Error; err != nil {
		return err
	}

	return tx.Where("round_id = ?", roundID).Delete(&Debate{}).Error
}
