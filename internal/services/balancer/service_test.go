package balancer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/soltomm/PinoGPT/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

func playersWithRatings(ratings ...int) []*model.Player {
	players := make([]*model.Player, len(ratings))
	for i, r := range ratings {
		players[i] = &model.Player{
			Name:   fmt.Sprintf("player%d", i+1),
			Rating: r,
		}
	}
	return players
}

func (s *ServiceSuite) TestProposeTeamsRequiresTenPlayers() {
	for _, n := range []int{0, 5, 9, 11} {
		players := playersWithRatings(make([]int, n)...)
		_, err := s.service.ProposeTeams(players)
		var verr *model.ValidationError
		s.ErrorAs(err, &verr, "n=%d", n)
	}
}

func (s *ServiceSuite) TestProposeTeamsPartitionsInput() {
	players := playersWithRatings(1900, 1100, 1300, 1700, 1500, 1450, 1650, 1350, 1850, 1150)

	proposal, err := s.service.ProposeTeams(players)
	s.Require().NoError(err)

	s.Len(proposal.Team1, 5)
	s.Len(proposal.Team2, 5)

	seen := map[string]int{}
	for _, name := range append(append([]string{}, proposal.Team1...), proposal.Team2...) {
		seen[name]++
	}
	s.Len(seen, 10, "teams must be disjoint and cover all ten players")
	for name, count := range seen {
		s.Equal(1, count, "player %s assigned more than once", name)
	}
}

func (s *ServiceSuite) TestProposeTeamsSnakeDraftOrder() {
	// Distinct descending ratings: player1 is the strongest pick,
	// player10 the weakest. Team 1 takes picks 1,4,5,8,9.
	players := playersWithRatings(2000, 1900, 1800, 1700, 1600, 1500, 1400, 1300, 1200, 1100)

	proposal, err := s.service.ProposeTeams(players)
	s.Require().NoError(err)

	s.Equal([]string{"player1", "player4", "player5", "player8", "player9"}, proposal.Team1)
	s.Equal([]string{"player2", "player3", "player6", "player7", "player10"}, proposal.Team2)
}

func (s *ServiceSuite) TestProposeTeamsSplitsExtremesAcrossTeams() {
	players := playersWithRatings(1000, 1111, 1222, 1333, 1444, 1555, 1666, 1777, 1888, 2000)

	proposal, err := s.service.ProposeTeams(players)
	s.Require().NoError(err)

	// Highest-rated (player10) lands on team 1, lowest-rated (player1)
	// on team 2.
	s.Contains(proposal.Team1, "player10")
	s.Contains(proposal.Team2, "player1")
}

func (s *ServiceSuite) TestProposeTeamsDeterministic() {
	players := playersWithRatings(1500, 1500, 1500, 1444, 1666, 1666, 1777, 1000, 2000, 1500)

	first, err := s.service.ProposeTeams(players)
	s.Require().NoError(err)
	second, err := s.service.ProposeTeams(players)
	s.Require().NoError(err)

	s.Equal(first, second)
}

func (s *ServiceSuite) TestProposeTeamsStableTieBreak() {
	// All equal ratings: the stable sort keeps input order, so the
	// snake draft reduces to the fixed pick pattern.
	players := playersWithRatings(1500, 1500, 1500, 1500, 1500, 1500, 1500, 1500, 1500, 1500)

	proposal, err := s.service.ProposeTeams(players)
	s.Require().NoError(err)

	s.Equal([]string{"player1", "player4", "player5", "player8", "player9"}, proposal.Team1)
	s.Equal([]string{"player2", "player3", "player6", "player7", "player10"}, proposal.Team2)
	s.Equal(1500, proposal.Team1AvgRating)
	s.Equal(1500, proposal.Team2AvgRating)
}

func (s *ServiceSuite) TestProposeTeamsDoesNotMutateInput() {
	players := playersWithRatings(1100, 1900, 1300, 1700, 1500, 1450, 1650, 1350, 1850, 1150)
	original := make([]*model.Player, len(players))
	copy(original, players)

	_, err := s.service.ProposeTeams(players)
	s.Require().NoError(err)

	s.Equal(original, players, "input slice order must be preserved")
}

func (s *ServiceSuite) TestProposeTeamsAverageRounding() {
	// Team sums chosen so one average rounds up and the other down.
	players := playersWithRatings(2000, 1900, 1800, 1700, 1600, 1500, 1400, 1300, 1200, 1101)

	proposal, err := s.service.ProposeTeams(players)
	s.Require().NoError(err)

	// Team 1: 2000+1700+1600+1300+1200 = 7800 -> 1560
	// Team 2: 1900+1800+1500+1400+1101 = 7701 -> 1540.2 -> 1540
	s.Equal(1560, proposal.Team1AvgRating)
	s.Equal(1540, proposal.Team2AvgRating)
}

func (s *ServiceSuite) TestAverageRating() {
	s.Equal(1445, AverageRating(playersWithRatings(1444, 1445)[:2]))
	s.Equal(1500, AverageRating(playersWithRatings(1000, 2000)))
}
