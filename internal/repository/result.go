package repository

import (
	"context"

	"github.com/tabhub/tabhub/internal/domain"
	"github.com/tabhub/tabhub/internal/repository/dao"
)

var ErrResultNotFound = dao.ErrResultNotFound

type ResultDAO interface {
	Replace(ctx context.Context, debateID uint, teams []dao.TeamResult, speakers []dao.SpeakerResult) error
	Clear(ctx context.Context, debateID uint, markConflict bool) error
	FindByDebate(ctx context.Context, debateID uint) ([]dao.TeamResult, []dao.SpeakerResult, error)
}

type ResultRepository struct {
	dao ResultDAO
}

func NewResultRepository(dao ResultDAO) *ResultRepository {
	return &ResultRepository{
		dao: dao,
	}
}

func (r *ResultRepository) Replace(ctx context.Context, debateID uint, teams []domain.TeamResult, speakers []domain.SpeakerResult) error {
	daoTeams := make([]dao.TeamResult, len(teams))
	for i, team := range teams {
		daoTeams[i] = dao.TeamResult{TeamID: team.TeamID, Points: team.Points}
	}

	daoSpeakers := make([]dao.SpeakerResult, len(speakers))
	for i, speaker := range speakers {
		daoSpeakers[i] = dao.SpeakerResult{
			TeamID:   speaker.TeamID,
			Speaker:  speaker.Speaker,
			Position: speaker.Position,
			Score:    speaker.Score,
		}
	}

	return r.dao.Replace(ctx, debateID, daoTeams, daoSpeakers)
}

func (r *ResultRepository) Clear(ctx context.Context, debateID uint, markConflict bool) error {
	return r.dao.Clear(ctx, debateID, markConflict)
}

func (r *ResultRepository) FindByDebate(ctx context.Context, debateID uint) (domain.DebateResult, error) {
	teams, speakers, err := r.dao.FindByDebate(ctx, debateID)
	if err != nil {
		return domain.DebateResult{}, err
	}

	result := domain.DebateResult{
		DebateID: debateID,
		Teams:    make([]domain.TeamResult, len(teams)),
		Speakers: make([]domain.SpeakerResult, len(speakers)),
	}
	for i, team := range teams {
		result.Teams[i] = domain.TeamResult{TeamID: team.TeamID, Points: team.Points}
	}
	for i, speaker := range speakers {
		result.Speakers[i] = domain.SpeakerResult{
			TeamID:   speaker.TeamID,
			Speaker:  speaker.Speaker,
			Position: speaker.Position,
			Score:    speaker.Score,
		}
	}

	return result, nil
}
