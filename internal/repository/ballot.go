package repository

import (
	"context"
	"fmt"

	"github.com/tabhub/tabhub/internal/domain"
	"github.com/tabhub/tabhub/internal/repository/dao"
)

var (
	ErrBallotNotFound   = dao.ErrBallotNotFound
	ErrBallotExists     = dao.ErrBallotExists
	ErrRevisionConflict = dao.ErrRevisionConflict
	ErrJudgeNotInDebate = dao.ErrJudgeNotInDebate
)

type BallotDAO interface {
	Submit(ctx context.Context, ballot dao.Ballot) (dao.Ballot, error)
	Revise(ctx context.Context, ballot dao.Ballot) (dao.Ballot, error)
	CurrentOfDebate(ctx context.Context, debateID uint, roles []string) ([]dao.Ballot, error)
	FindByDebate(ctx context.Context, debateID uint) ([]dao.Ballot, error)
	FindVersions(ctx context.Context, debateID, judgeID uint) ([]dao.Ballot, error)
}

type BallotRepository struct {
	dao BallotDAO
}

func NewBallotRepository(dao BallotDAO) *BallotRepository {
	return &BallotRepository{
		dao: dao,
	}
}

func (r *BallotRepository) Submit(ctx context.Context, ballot domain.Ballot) (domain.Ballot, error) {
	created, err := r.dao.Submit(ctx, ballotDomainToDao(ballot))
	if err != nil {
		return domain.Ballot{}, err
	}

	return ballotDaoToDomain(created), nil
}

func (r *BallotRepository) Revise(ctx context.Context, ballot domain.Ballot) (domain.Ballot, error) {
	created, err := r.dao.Revise(ctx, ballotDomainToDao(ballot))
	if err != nil {
		return domain.Ballot{}, err
	}

	return ballotDaoToDomain(created), nil
}

// CurrentOfDebate returns the highest-version ballot of every judge with one
// of the given roles in the debate.
func (r *BallotRepository) CurrentOfDebate(ctx context.Context, debateID uint, roles []domain.JudgeRole) ([]domain.Ballot, error) {
	daoRoles := make([]string, len(roles))
	for i, role := range roles {
		daoRoles[i] = string(role)
	}

	ballots, err := r.dao.CurrentOfDebate(ctx, debateID, daoRoles)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CurrentOfDebate -> %w", err)
	}

	return ballotsDaoToDomain(ballots), nil
}

func (r *BallotRepository) FindByDebate(ctx context.Context, debateID uint) ([]domain.Ballot, error) {
	ballots, err := r.dao.FindByDebate(ctx, debateID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByDebate -> %w", err)
	}

	return ballotsDaoToDomain(ballots), nil
}

func (r *BallotRepository) FindVersions(ctx context.Context, debateID, judgeID uint) ([]domain.Ballot, error) {
	ballots, err := r.dao.FindVersions(ctx, debateID, judgeID)
	if err != nil {
		return nil, err
	}

	return ballotsDaoToDomain(ballots), nil
}

func ballotDomainToDao(b domain.Ballot) dao.Ballot {
	ballot := dao.Ballot{
		DebateID: b.DebateID,
		JudgeID:  b.JudgeID,
		Version:  b.Version,
		Change:   b.Change,
		EditorID: b.EditorID,
	}
	for _, score := range b.Scores {
		ballot.Scores = append(ballot.Scores, dao.BallotScore{
			TeamID:   score.TeamID,
			Speaker:  score.Speaker,
			Position: score.Position,
			Score:    score.Score,
		})
	}
	for _, rank := range b.Ranks {
		ballot.Ranks = append(ballot.Ranks, dao.BallotTeamRank{
			TeamID: rank.TeamID,
			Points: rank.Points,
		})
	}

	return ballot
}

func ballotDaoToDomain(b dao.Ballot) domain.Ballot {
	ballot := domain.Ballot{
		ID:          b.ID,
		DebateID:    b.DebateID,
		JudgeID:     b.JudgeID,
		Version:     b.Version,
		Change:      b.Change,
		EditorID:    b.EditorID,
		SubmittedAt: b.SubmittedAt,
		Scores:      []domain.SpeakerScore{},
		Ranks:       []domain.TeamRank{},
	}
	for _, score := range b.Scores {
		ballot.Scores = append(ballot.Scores, domain.SpeakerScore{
			TeamID:   score.TeamID,
			Speaker:  score.Speaker,
			Position: score.Position,
			Score:    score.Score,
		})
	}
	for _, rank := range b.Ranks {
		ballot.Ranks = append(ballot.Ranks, domain.TeamRank{
			TeamID: rank.TeamID,
			Points: rank.Points,
		})
	}

	return ballot
}

func ballotsDaoToDomain(ballots []dao.Ballot) []domain.Ballot {
	result := make([]domain.Ballot, len(ballots))
	for i, ballot := range ballots {
		result[i] = ballotDaoToDomain(ballot)
	}

	return result
}
