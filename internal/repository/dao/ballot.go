package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrBallotNotFound   = errors.New("ballot not found")
	ErrBallotExists     = errors.New("a ballot already exists for this judge and debate")
	ErrRevisionConflict = errors.New("a concurrent revision claimed this version")
	ErrJudgeNotInDebate = errors.New("judge is not assigned to this debate")
)

// Ballot rows are append-only: revising a ballot inserts a new row with
// Version+1 and keeps every older version as history. Version 0 is the
// judge's original submission and carries no editor or change note.
type Ballot struct {
	ID          uint   `gorm:"primaryKey"`
	DebateID    uint   `gorm:"not null;uniqueIndex:uniq_ballots_version,priority:1"`
	JudgeID     uint   `gorm:"not null;uniqueIndex:uniq_ballots_version,priority:2"`
	Version     int64  `gorm:"not null;uniqueIndex:uniq_ballots_version,priority:3"`
	Change      *string
	EditorID    *uint
	SubmittedAt time.Time        `gorm:"not null"`
	Scores      []BallotScore    `gorm:"foreignKey:BallotID"`
	Ranks       []BallotTeamRank `gorm:"foreignKey:BallotID"`
}

type BallotScore struct {
	ID       uint    `gorm:"primaryKey"`
	BallotID uint    `gorm:"not null;index"`
	TeamID   uint    `gorm:"not null"`
	Speaker  string  `gorm:"not null"`
	Position int     `gorm:"not null"`
	Score    float64 `gorm:"not null"`
}

type BallotTeamRank struct {
	ID       uint  `gorm:"primaryKey"`
	BallotID uint  `gorm:"not null;index"`
	TeamID   uint  `gorm:"not null"`
	Points   int64 `gorm:"not null"`
}

type BallotDAO struct {
	db *gorm.DB
}

func NewBallotDAO(db *gorm.DB) *BallotDAO {
	return &BallotDAO{
		db: db,
	}
}

// Submit inserts the version-0 ballot for (debate, judge). The judge must be
// assigned to the debate, and no prior version may exist; edits go through
// Revise.
func (d *BallotDAO) Submit(ctx context.Context, ballot Ballot) (Ballot, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkJudgeSeat(tx, ballot.DebateID, ballot.JudgeID); err != nil {
			return err
		}

		var existing Ballot
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("debate_id = ? AND judge_id = ?", ballot.DebateID, ballot.JudgeID).
			Order("version DESC").
			First(&existing).Error
		switch {
		case err == nil:
			return ErrBallotExists
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first submission
		default:
			return err
		}

		ballot.Version = 0
		ballot.Change = nil
		ballot.EditorID = nil
		ballot.SubmittedAt = time.Now().UTC()

		if err = tx.Create(&ballot).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrBallotExists
			}
			return err
		}

		return nil
	})
	if err != nil {
		return Ballot{}, err
	}

	return ballot, nil
}

// Revise appends the next version for (debate, judge). The current version is
// locked so versions stay contiguous; a concurrent revision that committed
// the same version first surfaces as ErrRevisionConflict, because its row is
// invisible to this transaction's re-check after the lock. Callers retry.
func (d *BallotDAO) Revise(ctx context.Context, ballot Ballot) (Ballot, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current Ballot
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("debate_id = ? AND judge_id = ?", ballot.DebateID, ballot.JudgeID).
			Order("version DESC").
			First(&current).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBallotNotFound
			}
			return err
		}

		ballot.Version = current.Version + 1
		ballot.SubmittedAt = time.Now().UTC()

		if err = tx.Create(&ballot).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrRevisionConflict
			}
			return err
		}

		return nil
	})
	if err != nil {
		return Ballot{}, err
	}

	return ballot, nil
}

// CurrentOfDebate returns the highest-version ballot of each judge assigned
// to the debate with one of the given roles, with scores and ranks loaded.
func (d *BallotDAO) CurrentOfDebate(ctx context.Context, debateID uint, roles []string) ([]Ballot, error) {
	var seats []DebateJudge
	err := d.db.WithContext(ctx).
		Where("debate_id = ? AND role IN ?", debateID, roles).
		Find(&seats).Error
	if err != nil {
		return nil, err
	}

	ballots := make([]Ballot, 0, len(seats))
	for _, seat := range seats {
		var ballot Ballot
		err = d.db.WithContext(ctx).
			Preload("Scores").
			Preload("Ranks").
			Where("debate_id = ? AND judge_id = ?", debateID, seat.JudgeID).
			Order("version DESC").
			First(&ballot).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		ballots = append(ballots, ballot)
	}

	return ballots, nil
}

// FindByDebate returns every ballot version submitted for the debate, oldest
// version first per judge, for the audit trail.
func (d *BallotDAO) FindByDebate(ctx context.Context, debateID uint) ([]Ballot, error) {
	var ballots []Ballot

	err := d.db.WithContext(ctx).
		Preload("Scores").
		Preload("Ranks").
		Where("debate_id = ?", debateID).
		Order("judge_id, version").
		Find(&ballots).Error
	if err != nil {
		return nil, err
	}

	return ballots, nil
}

func (d *BallotDAO) FindVersions(ctx context.Context, debateID, judgeID uint) ([]Ballot, error) {
	var ballots []Ballot

	err := d.db.WithContext(ctx).
		Preload("Scores").
		Preload("Ranks").
		Where("debate_id = ? AND judge_id = ?", debateID, judgeID).
		Order("version").
		Find(&ballots).Error
	if err != nil {
		return nil, err
	}
	if len(ballots) == 0 {
		return nil, ErrBallotNotFound
	}

	return ballots, nil
}

// isUniqueViolation reports whether Postgres rejected an insert on a unique
// index, which can happen when two writers pass the read check concurrently.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func checkJudgeSeat(tx *gorm.DB, debateID, judgeID uint) error {
	var debate Debate
	if err := tx.First(&debate, debateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDebateNotFound
		}
		return err
	}

	var seats int64
	err := tx.Model(&DebateJudge{}).
		Where("debate_id = ? AND judge_id = ?", debateID, judgeID).
		Count(&seats).Error
	if err != nil {
		return err
	}
	if seats == 0 {
		return ErrJudgeNotInDebate
	}

	return nil
}
