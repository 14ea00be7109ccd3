package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrResultNotFound = errors.New("no aggregated result for this debate")

type TeamResult struct {
	ID       uint  `gorm:"primaryKey"`
	DebateID uint  `gorm:"not null;uniqueIndex:uniq_team_results,priority:1"`
	TeamID   uint  `gorm:"not null;uniqueIndex:uniq_team_results,priority:2"`
	Points   int64 `gorm:"not null"`
}

type SpeakerResult struct {
	ID       uint    `gorm:"primaryKey"`
	DebateID uint    `gorm:"not null;index"`
	TeamID   uint    `gorm:"not null"`
	Speaker  string  `gorm:"not null"`
	Position int     `gorm:"not null"`
	Score    float64 `gorm:"not null"`
}

type ResultDAO struct {
	db *gorm.DB
}

func NewResultDAO(db *gorm.DB) *ResultDAO {
	return &ResultDAO{
		db: db,
	}
}

// Replace swaps the debate's aggregate wholesale: previous rows are deleted
// and the new ones inserted in one transaction, so readers never observe a
// partial aggregate. It also clears a lingering conflict marker.
func (d *ResultDAO) Replace(ctx context.Context, debateID uint, teams []TeamResult, speakers []SpeakerResult) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteResults(tx, debateID); err != nil {
			return err
		}

		for _, team := range teams {
			team.ID = 0
			team.DebateID = debateID
			if err := tx.Create(&team).Error; err != nil {
				return err
			}
		}
		for _, speaker := range speakers {
			speaker.ID = 0
			speaker.DebateID = debateID
			if err := tx.Create(&speaker).Error; err != nil {
				return err
			}
		}

		return tx.Model(&Debate{}).
			Where("id = ? AND status = ?", debateID, "conflict").
			Update("status", "draft").Error
	})
}

// Clear removes any aggregate for the debate. With markConflict set the
// debate is flagged so humans can resolve the disagreement.
func (d *ResultDAO) Clear(ctx context.Context, debateID uint, markConflict bool) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteResults(tx, debateID); err != nil {
			return err
		}

		if markConflict {
			return tx.Model(&Debate{}).
				Where("id = ?", debateID).
				Update("status", "conflict").Error
		}

		return tx.Model(&Debate{}).
			Where("id = ? AND status = ?", debateID, "conflict").
			Update("status", "draft").Error
	})
}

func (d *ResultDAO) FindByDebate(ctx context.Context, debateID uint) ([]TeamResult, []SpeakerResult, error) {
	var teams []TeamResult
	err := d.db.WithContext(ctx).
		Where("debate_id = ?", debateID).
		Order("points DESC").
		Find(&teams).Error
	if err != nil {
		return nil, nil, err
	}
	if len(teams) == 0 {
		return nil, nil, ErrResultNotFound
	}

	var speakers []SpeakerResult
	err = d.db.WithContext(ctx).
		Where("debate_id = ?", debateID).
		Order("team_id, position").
		Find(&speakers).Error
	if err != nil {
		return nil, nil, err
	}

	return teams, speakers, nil
}

func deleteResults(tx *gorm.DB, debateID uint) error {
	if err := tx.Where("debate_id = ?", debateID).Delete(&TeamResult{}).Error; err != nil {
		return err
	}

	return tx.Where("debate_id = ?", debateID).Delete(&SpeakerResult{}).Error
}
