package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/tabhub/tabhub/internal/config"
	"github.com/tabhub/tabhub/internal/domain"
)

type ResultRepository interface {
	Replace(ctx context.Context, debateID uint, teams []domain.TeamResult, speakers []domain.SpeakerResult) error
	Clear(ctx context.Context, debateID uint, markConflict bool) error
	FindByDebate(ctx context.Context, debateID uint) (domain.DebateResult, error)
}

// AggregationPolicy is the format-specific rule for turning a set of current
// ballots into one agreed outcome. The agreement predicate and combination
// rule vary per format and are injected from configuration rather than
// hardcoded.
type AggregationPolicy interface {
	// Agree reports whether the ballots are mutually consistent enough to
	// produce an aggregate.
	Agree(ballots []domain.Ballot) bool
	// Combine merges agreeing ballots into aggregated team and speaker rows.
	Combine(ballots []domain.Ballot) ([]domain.TeamResult, []domain.SpeakerResult)
}

// Reconciler maintains the invariant that aggregated results exist for a
// debate if and only if its current ballots agree. It always re-reads the
// full current ballot set, never a delta, so calling it redundantly or
// concurrently for the same debate converges on the same outcome.
type Reconciler struct {
	ballots       BallotRepository
	results       ResultRepository
	policy        AggregationPolicy
	decisiveRoles []domain.JudgeRole
}

func NewReconciler(ballots BallotRepository, results ResultRepository, policy AggregationPolicy, decisiveRoles []domain.JudgeRole) *Reconciler {
	return &Reconciler{
		ballots:       ballots,
		results:       results,
		policy:        policy,
		decisiveRoles: decisiveRoles,
	}
}

func (r *Reconciler) Reconcile(ctx context.Context, debateID uint) error {
	current, err := r.ballots.CurrentOfDebate(ctx, debateID, r.decisiveRoles)
	if err != nil {
		return fmt.Errorf("r.ballots.CurrentOfDebate -> %w", err)
	}

	if len(current) == 0 {
		// Insufficient ballots is not a conflict, there is just nothing
		// to aggregate yet.
		return r.results.Clear(ctx, debateID, false)
	}

	if !r.policy.Agree(current) {
		return r.results.Clear(ctx, debateID, true)
	}

	teams, speakers := r.policy.Combine(current)

	return r.results.Replace(ctx, debateID, teams, speakers)
}

func (r *Reconciler) ResultOfDebate(ctx context.Context, debateID uint) (domain.DebateResult, error) {
	result, err := r.results.FindByDebate(ctx, debateID)
	if err != nil {
		return domain.DebateResult{}, err
	}

	return result, nil
}

// NewAggregationPolicy builds the policy named by the format configuration.
func NewAggregationPolicy(conf *config.FormatConfig) AggregationPolicy {
	if conf != nil && conf.Aggregation == "majority" {
		return MajorityPolicy{}
	}

	return ConsensusPolicy{}
}

// DecisiveRoles maps the configured role codes onto domain roles, defaulting
// to chair and panelist.
func DecisiveRoles(conf *config.FormatConfig) []domain.JudgeRole {
	if conf == nil || len(conf.DecisiveRoles) == 0 {
		return []domain.JudgeRole{domain.RoleChair, domain.RolePanelist}
	}

	roles := make([]domain.JudgeRole, 0, len(conf.DecisiveRoles))
	for _, code := range conf.DecisiveRoles {
		role := domain.JudgeRole(code)
		if role.Valid() {
			roles = append(roles, role)
		}
	}

	return roles
}

// ConsensusPolicy models formats where the committee submits a single agreed
// ballot: there is agreement exactly when one decisive ballot exists, and it
// becomes the aggregate directly.
type ConsensusPolicy struct{}

func (ConsensusPolicy) Agree(ballots []domain.Ballot) bool {
	return len(ballots) == 1
}

func (ConsensusPolicy) Combine(ballots []domain.Ballot) ([]domain.TeamResult, []domain.SpeakerResult) {
	canonical := ballots[0]

	speakers := make([]domain.SpeakerResult, len(canonical.Scores))
	for i, score := range canonical.Scores {
		speakers[i] = domain.SpeakerResult{
			TeamID:   score.TeamID,
			Speaker:  score.Speaker,
			Position: score.Position,
			Score:    score.Score,
		}
	}

	if len(canonical.Ranks) > 0 {
		teams := make([]domain.TeamResult, len(canonical.Ranks))
		for i, rank := range canonical.Ranks {
			teams[i] = domain.TeamResult{TeamID: rank.TeamID, Points: rank.Points}
		}
		return teams, speakers
	}

	return rankByTotals(canonical.TeamTotals()), speakers
}

// MajorityPolicy models formats where each decisive judge submits their own
// ballot: agreement requires a strict majority naming the same winner, and
// speaker scores are averaged across ballots.
type MajorityPolicy struct{}

func (MajorityPolicy) Agree(ballots []domain.Ballot) bool {
	_, ok := majorityWinner(ballots)
	return ok
}

func (MajorityPolicy) Combine(ballots []domain.Ballot) ([]domain.TeamResult, []domain.SpeakerResult) {
	votes := make(map[uint]int)
	for _, ballot := range ballots {
		if top, ok := ballot.TopTeam(); ok {
			votes[top]++
		}
	}

	type speakerKey struct {
		teamID   uint
		speaker  string
		position int
	}
	sums := make(map[speakerKey]float64)
	counts := make(map[speakerKey]int)
	for _, ballot := range ballots {
		for _, score := range ballot.Scores {
			key := speakerKey{score.TeamID, score.Speaker, score.Position}
			sums[key] += score.Score
			counts[key]++
		}
	}

	meansByTeam := make(map[uint]float64)
	speakers := make([]domain.SpeakerResult, 0, len(sums))
	for key, sum := range sums {
		mean := sum / float64(counts[key])
		speakers = append(speakers, domain.SpeakerResult{
			TeamID:   key.teamID,
			Speaker:  key.speaker,
			Position: key.position,
			Score:    mean,
		})
		meansByTeam[key.teamID] += mean
	}
	sort.Slice(speakers, func(i, j int) bool {
		if speakers[i].TeamID != speakers[j].TeamID {
			return speakers[i].TeamID < speakers[j].TeamID
		}
		return speakers[i].Position < speakers[j].Position
	})

	teamIDs := teamsOfBallots(ballots)
	sort.Slice(teamIDs, func(i, j int) bool {
		a, b := teamIDs[i], teamIDs[j]
		if votes[a] != votes[b] {
			return votes[a] > votes[b]
		}
		if meansByTeam[a] != meansByTeam[b] {
			return meansByTeam[a] > meansByTeam[b]
		}
		return a < b
	})

	teams := make([]domain.TeamResult, len(teamIDs))
	for i, teamID := range teamIDs {
		teams[i] = domain.TeamResult{
			TeamID: teamID,
			Points: int64(len(teamIDs) - 1 - i),
		}
	}

	return teams, speakers
}

func majorityWinner(ballots []domain.Ballot) (uint, bool) {
	votes := make(map[uint]int)
	for _, ballot := range ballots {
		top, ok := ballot.TopTeam()
		if !ok {
			return 0, false
		}
		votes[top]++
	}

	for teamID, count := range votes {
		if 2*count > len(ballots) {
			return teamID, true
		}
	}

	return 0, false
}

// rankByTotals orders teams by total speaks and assigns points so the best
// team of an n-team debate scores n-1.
func rankByTotals(totals map[uint]float64) []domain.TeamResult {
	teamIDs := make([]uint, 0, len(totals))
	for teamID := range totals {
		teamIDs = append(teamIDs, teamID)
	}
	sort.Slice(teamIDs, func(i, j int) bool {
		if totals[teamIDs[i]] != totals[teamIDs[j]] {
			return totals[teamIDs[i]] > totals[teamIDs[j]]
		}
		return teamIDs[i] < teamIDs[j]
	})

	teams := make([]domain.TeamResult, len(teamIDs))
	for i, teamID := range teamIDs {
		teams[i] = domain.TeamResult{
			TeamID: teamID,
			Points: int64(len(teamIDs) - 1 - i),
		}
	}

	return teams
}

func teamsOfBallots(ballots []domain.Ballot) []uint {
	seen := make(map[uint]bool)
	var teamIDs []uint
	for _, ballot := range ballots {
		for _, score := range ballot.Scores {
			if !seen[score.TeamID] {
				seen[score.TeamID] = true
				teamIDs = append(teamIDs, score.TeamID)
			}
		}
		for _, rank := range ballot.Ranks {
			if !seen[rank.TeamID] {
				seen[rank.TeamID] = true
				teamIDs = append(teamIDs, rank.TeamID)
			}
		}
	}

	return teamIDs
}
