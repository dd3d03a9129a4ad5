package balancer

import (
	"math"
	"sort"

	"github.com/soltomm/PinoGPT/internal/model"
)

// Service splits ten players into two balanced teams. It is a pure
// function over already-resolved players: it never mutates the roster
// or any game.
type Service struct{}

// New creates a balancer service
func New() *Service {
	return &Service{}
}

// ProposeTeams partitions exactly ten distinct players into two teams of
// five via a snake draft over the rating-sorted sequence. The sort is
// stable, so equal ratings keep the caller's input order and the same
// input always produces the same split.
//
// Sorted picks are assigned in the pattern 1,2,2,1,1,2,2,1,1,2: team 1
// gets picks 1,4,5,8,9 and team 2 gets picks 2,3,6,7,10, which bounds
// the average-rating gap by the largest adjacent-rank difference.
func (s *Service) ProposeTeams(players []*model.Player) (*model.TeamProposal, error) {
	if len(players) != 2*model.TeamSize {
		return nil, model.NewValidationError("exactly 10 players are required to form teams")
	}

	sorted := make([]*model.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})

	var team1, team2 []*model.Player
	for i, p := range sorted {
		if i%4 == 0 || i%4 == 3 {
			team1 = append(team1, p)
		} else {
			team2 = append(team2, p)
		}
	}

	return &model.TeamProposal{
		Team1:          names(team1),
		Team2:          names(team2),
		Team1AvgRating: averageRating(team1),
		Team2AvgRating: averageRating(team2),
	}, nil
}

func names(players []*model.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}

func averageRating(players []*model.Player) int {
	sum := 0
	for _, p := range players {
		sum += p.Rating
	}
	return int(math.Round(float64(sum) / float64(len(players))))
}

// AverageRating returns the mean rating of the given players, rounded to
// the nearest integer. Used to freeze team averages at game creation.
func AverageRating(players []*model.Player) int {
	return averageRating(players)
}

// Interface for dependency injection
type ServiceInterface interface {
	ProposeTeams(players []*model.Player) (*model.TeamProposal, error)
}

var _ ServiceInterface = (*Service)(nil)
