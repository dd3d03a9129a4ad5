package rating

import "math"

// DefaultKFactor is the base Elo K-factor. 32 suits amateur play where
// ratings should move noticeably from each game.
const DefaultKFactor = 32

// Actual-score values for the three match outcomes
const (
	ScoreWin  = 1.0
	ScoreLoss = 0.0
	ScoreDraw = 0.5
)

// Service computes ratings and rating deltas. All methods are pure
// functions over their numeric inputs; the service never touches the
// roster or any game.
type Service struct {
	kFactor int
}

// New creates a rating service with the given K-factor.
// A non-positive value selects DefaultKFactor.
func New(kFactor int) *Service {
	if kFactor <= 0 {
		kFactor = DefaultKFactor
	}
	return &Service{kFactor: kFactor}
}

// KFactor returns the configured K-factor
func (s *Service) KFactor() int {
	return s.kFactor
}

// InitialRating maps a 1-10 skill vote onto the 1000-2000 rating range.
// Integer division truncates: vote 7 gives 1666, vote 8 gives 1777.
// The caller is responsible for rejecting votes outside 1-10.
func (s *Service) InitialRating(vote int) int {
	return 1000 + (vote-1)*1000/9
}

// ExpectedScore returns the standard logistic win expectation for a team
// rated a against a team rated b. ExpectedScore(a,b)+ExpectedScore(b,a)=1.
func (s *Service) ExpectedScore(a, b float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/400))
}

// Delta computes the signed rating change for a team given its frozen
// average rating, the opponent's, the goal differential, and the actual
// score (ScoreWin, ScoreLoss or ScoreDraw). A one-goal margin carries no
// bonus; each additional goal adds 10% to the magnitude. The same delta
// is applied uniformly to every member of the team.
func (s *Service) Delta(teamRating, opponentRating float64, goalDiff int, actualScore float64) int {
	multiplier := 1.0
	if goalDiff > 1 {
		multiplier = 1 + float64(goalDiff-1)*0.1
	}
	expected := s.ExpectedScore(teamRating, opponentRating)
	return int(math.Round(float64(s.kFactor) * multiplier * (actualScore - expected)))
}

// Interface for dependency injection
type ServiceInterface interface {
	KFactor() int
	InitialRating(vote int) int
	ExpectedScore(a, b float64) float64
	Delta(teamRating, opponentRating float64, goalDiff int, actualScore float64) int
}

var _ ServiceInterface = (*Service)(nil)
