package factory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/soltomm/PinoGPT/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	app, err := NewTestApp()
	s.Require().NoError(err)
	s.app = app
	s.ctx = context.Background()
}

// addPlayers registers players p1..pN with votes 1..N
func (s *IntegrationSuite) addPlayers(n int) []string {
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = fmt.Sprintf("p%d", i+1)
		_, err := s.app.RosterService.Add(s.ctx, names[i], i+1)
		s.Require().NoError(err)
	}
	return names
}

// Test: the full lifecycle from an empty roster to a rated history entry
func (s *IntegrationSuite) TestFullLifecycle() {
	// Step 1: ten players with votes 1..10
	names := s.addPlayers(10)

	// Votes anchor the rating range
	p1, err := s.app.RosterService.Find(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(1000, p1.Rating)
	p10, err := s.app.RosterService.Find(s.ctx, "p10")
	s.Require().NoError(err)
	s.Equal(2000, p10.Rating)

	// Step 2: propose teams over all ten
	players, err := s.app.RosterService.ResolveMany(s.ctx, names)
	s.Require().NoError(err)
	proposal, err := s.app.BalancerService.ProposeTeams(players)
	s.Require().NoError(err)
	s.Len(proposal.Team1, 5)
	s.Len(proposal.Team2, 5)

	// Snake draft: the two strongest and the two weakest players are
	// split across different teams
	s.Contains(proposal.Team1, "p10")
	s.Contains(proposal.Team2, "p9")
	s.Contains(proposal.Team2, "p1")
	s.Contains(proposal.Team1, "p2")

	// Step 3: confirm the proposal into a pending game
	game, err := s.app.GameController.ConfirmTeams(s.ctx, proposal.Team1, proposal.Team2)
	s.Require().NoError(err)
	s.Equal(model.GameStatusPending, game.Status)
	s.Equal(proposal.Team1AvgRating, game.Team1AvgRating)

	pending, err := s.app.GameController.ListPending(s.ctx)
	s.Require().NoError(err)
	s.Len(pending, 1)

	// Step 4: record a decisive score
	result, err := s.app.GameController.RecordScore(s.ctx, game.ID, 5, 2)
	s.Require().NoError(err)
	s.Equal(model.WinnerTeam1, result.Winner)
	s.Len(result.RatingChanges, 10)

	// The game moved from pending to history
	pending, err = s.app.GameController.ListPending(s.ctx)
	s.Require().NoError(err)
	s.Empty(pending)
	history, err := s.app.GameController.ListHistory(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(history, 1)
	s.Equal(game.ID, history[0].ID)

	// Every player played exactly one game and moved by the team delta
	all, err := s.app.RosterService.All(s.ctx)
	s.Require().NoError(err)
	for _, p := range all {
		s.Equal(1, p.GamesPlayed, p.Name)
		s.Equal(1, p.Wins+p.Losses, p.Name)
	}
}

// Test: rating deltas from a game are zero-sum across the two teams
func (s *IntegrationSuite) TestRatingDeltasAreOpposite() {
	names := s.addPlayers(10)

	game, err := s.app.GameController.ConfirmTeams(s.ctx, names[:5], names[5:])
	s.Require().NoError(err)

	result, err := s.app.GameController.RecordScore(s.ctx, game.ID, 0, 1)
	s.Require().NoError(err)

	delta1 := result.RatingChanges[0].Delta
	delta2 := result.RatingChanges[5].Delta
	s.Negative(delta1)
	s.Positive(delta2)
}

// Test: pending games survive a storage snapshot round trip
func (s *IntegrationSuite) TestSnapshotRoundTrip() {
	names := s.addPlayers(10)

	game, err := s.app.GameController.ConfirmTeams(s.ctx, names[:5], names[5:])
	s.Require().NoError(err)

	snapshot, err := s.app.Storage.ExportSnapshot(s.ctx)
	s.Require().NoError(err)

	restored, err := NewTestApp()
	s.Require().NoError(err)
	s.Require().NoError(restored.Storage.ImportSnapshot(s.ctx, snapshot))

	// The restored app can complete the game
	result, err := restored.GameController.RecordScore(s.ctx, game.ID, 2, 0)
	s.Require().NoError(err)
	s.Equal(model.WinnerTeam1, result.Winner)
}

// Test: deleting a pending game is admin-guarded and leaves ratings alone
func (s *IntegrationSuite) TestDeletePendingGame() {
	names := s.addPlayers(10)

	game, err := s.app.GameController.ConfirmTeams(s.ctx, names[:5], names[5:])
	s.Require().NoError(err)

	err = s.app.GameController.DeletePending(s.ctx, game.ID, "wrong-secret")
	s.Error(err)

	s.Require().NoError(s.app.GameController.DeletePending(s.ctx, game.ID, TestAdminSecret))

	pending, err := s.app.GameController.ListPending(s.ctx)
	s.Require().NoError(err)
	s.Empty(pending)
}

// Test: distinct IDs for games created in different seconds
func (s *IntegrationSuite) TestGameIDsFollowClock() {
	names := s.addPlayers(10)

	g1, err := s.app.GameController.ConfirmTeams(s.ctx, names[:5], names[5:])
	s.Require().NoError(err)
	s.app.MockClock.Advance(time.Second)
	g2, err := s.app.GameController.ConfirmTeams(s.ctx, names[:5], names[5:])
	s.Require().NoError(err)

	s.Equal(model.GameID("20250301_183000"), g1.ID)
	s.Equal(model.GameID("20250301_183001"), g2.ID)
}
