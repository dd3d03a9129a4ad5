package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/soltomm/PinoGPT/internal/dependencies/clock"
	"github.com/soltomm/PinoGPT/internal/model"
	"github.com/soltomm/PinoGPT/internal/services/auth"
	"github.com/soltomm/PinoGPT/internal/services/balancer"
	"github.com/soltomm/PinoGPT/internal/services/rating"
	"github.com/soltomm/PinoGPT/internal/services/roster"
	"github.com/soltomm/PinoGPT/internal/storage"
)

// gameIDTimeFormat yields IDs like 20250301_183000 that sort
// chronologically as strings.
const gameIDTimeFormat = "20060102_150405"

// Controller drives the game lifecycle: confirm teams, record scores,
// cancel pending games, and backfill manual results. Every operation
// runs inside the shared engine mutex; rating application touches ten
// players and one game and must never interleave with another mutation.
//
// The controller reads players through storage directly rather than
// through the roster service so it can do so while holding the mutex.
type Controller struct {
	storage storage.Storage
	rating  rating.ServiceInterface
	auth    *auth.Service
	clock   clock.Clock
	mu      *sync.Mutex
	logger  *slog.Logger
}

// New creates a game controller. mu is the engine-wide mutex shared
// with the roster service.
func New(
	storage storage.Storage,
	ratingService rating.ServiceInterface,
	authService *auth.Service,
	clock clock.Clock,
	mu *sync.Mutex,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		rating:  ratingService,
		auth:    authService,
		clock:   clock,
		mu:      mu,
		logger:  logger,
	}
}

// ConfirmTeams creates a pending game from two explicit line-ups. Both
// teams must have exactly five known players with no player appearing
// twice across the ten slots. Team average ratings are frozen here
// and never recomputed from later roster changes.
func (c *Controller) ConfirmTeams(ctx context.Context, team1, team2 []string) (*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	p1, p2, err := c.resolveTeams(ctx, team1, team2)
	if err != nil {
		return nil, err
	}

	id, err := c.newGameID(ctx, false)
	if err != nil {
		return nil, err
	}

	game := &model.Game{
		ID:             id,
		Team1:          playerNames(p1),
		Team2:          playerNames(p2),
		Team1AvgRating: balancer.AverageRating(p1),
		Team2AvgRating: balancer.AverageRating(p2),
		Status:         model.GameStatusPending,
		CreatedAt:      c.clock.Now(),
	}

	if err := c.storage.SavePendingGame(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game confirmed",
		slog.String("gameId", string(game.ID)),
		slog.Int("team1AvgRating", game.Team1AvgRating),
		slog.Int("team2AvgRating", game.Team2AvgRating),
	)

	return game, nil
}

// RecordScore completes a pending game: it fixes the final score,
// computes one delta per team from the frozen averages, applies it
// uniformly to every member, and moves the game from pending to
// history. A game can be completed exactly once; scoring an already
// completed game returns ErrGameCompleted.
func (c *Controller) RecordScore(ctx context.Context, id model.GameID, score1, score2 int) (*model.MatchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if score1 < 0 || score2 < 0 {
		return nil, model.NewValidationError("scores must not be negative")
	}

	if _, err := c.storage.GetHistoryGame(ctx, id); err == nil {
		return nil, model.ErrGameCompleted
	}

	game, err := c.storage.GetPendingGame(ctx, id)
	if err != nil {
		return nil, err
	}

	result, players, err := c.applyResult(ctx, game, score1, score2)
	if err != nil {
		return nil, err
	}

	for _, p := range players {
		if err := c.storage.SavePlayer(ctx, p); err != nil {
			return nil, err
		}
	}
	if err := c.storage.DeletePendingGame(ctx, id); err != nil {
		return nil, err
	}
	if err := c.storage.AppendHistory(ctx, result.Game); err != nil {
		return nil, err
	}

	c.logger.Info("score recorded",
		slog.String("gameId", string(id)),
		slog.Int("score1", score1),
		slog.Int("score2", score2),
		slog.String("winner", string(result.Winner)),
	)

	return result, nil
}

// DeletePending cancels a pending game without touching any rating.
// It requires the admin credential.
func (c *Controller) DeletePending(ctx context.Context, id model.GameID, credential string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.auth.VerifyAdmin(credential); err != nil {
		return err
	}

	if _, err := c.storage.GetHistoryGame(ctx, id); err == nil {
		return model.ErrGameCompleted
	}

	if err := c.storage.DeletePendingGame(ctx, id); err != nil {
		return err
	}

	c.logger.Info("pending game deleted", slog.String("gameId", string(id)))
	return nil
}

// RecordManualGame registers an already-played match that never went
// through the pending stage. The game is created and completed in one
// step: averages are taken from current ratings, the score is applied,
// and the game lands directly in history with a "_manual" ID suffix.
func (c *Controller) RecordManualGame(ctx context.Context, team1, team2 []string, score1, score2 int) (*model.MatchResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if score1 < 0 || score2 < 0 {
		return nil, model.NewValidationError("scores must not be negative")
	}

	p1, p2, err := c.resolveTeams(ctx, team1, team2)
	if err != nil {
		return nil, err
	}

	id, err := c.newGameID(ctx, true)
	if err != nil {
		return nil, err
	}

	game := &model.Game{
		ID:             id,
		Team1:          playerNames(p1),
		Team2:          playerNames(p2),
		Team1AvgRating: balancer.AverageRating(p1),
		Team2AvgRating: balancer.AverageRating(p2),
		Status:         model.GameStatusPending,
		CreatedAt:      c.clock.Now(),
	}

	result, players, err := c.applyResult(ctx, game, score1, score2)
	if err != nil {
		return nil, err
	}

	for _, p := range players {
		if err := c.storage.SavePlayer(ctx, p); err != nil {
			return nil, err
		}
	}
	if err := c.storage.AppendHistory(ctx, result.Game); err != nil {
		return nil, err
	}

	c.logger.Info("manual game recorded",
		slog.String("gameId", string(id)),
		slog.Int("score1", score1),
		slog.Int("score2", score2),
		slog.String("winner", string(result.Winner)),
	)

	return result, nil
}

// ListPending returns every pending game in creation order
func (c *Controller) ListPending(ctx context.Context) ([]*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.storage.ListPendingGames(ctx)
}

// ListHistory returns every completed game in completion order
func (c *Controller) ListHistory(ctx context.Context) ([]*model.Game, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.storage.ListHistory(ctx)
}

// resolveTeams validates both line-ups in one pass. Resolving the
// twenty names together makes a player on both teams surface as a
// duplicate-name validation error.
func (c *Controller) resolveTeams(ctx context.Context, team1, team2 []string) ([]*model.Player, []*model.Player, error) {
	if len(team1) != model.TeamSize || len(team2) != model.TeamSize {
		return nil, nil, model.NewValidationError(
			fmt.Sprintf("each team must have exactly %d players", model.TeamSize))
	}

	allPlayers, err := c.storage.ListPlayers(ctx)
	if err != nil {
		return nil, nil, err
	}

	combined := make([]string, 0, 2*model.TeamSize)
	combined = append(combined, team1...)
	combined = append(combined, team2...)
	resolved, err := roster.ResolvePlayers(allPlayers, combined)
	if err != nil {
		return nil, nil, err
	}

	return resolved[:model.TeamSize], resolved[model.TeamSize:], nil
}

// applyResult computes the completed game and the updated players
// without writing anything. All validation happens before the caller
// performs the storage writes, so a failure leaves state untouched.
func (c *Controller) applyResult(ctx context.Context, game *model.Game, score1, score2 int) (*model.MatchResult, []*model.Player, error) {
	allPlayers, err := c.storage.ListPlayers(ctx)
	if err != nil {
		return nil, nil, err
	}

	// Members may have been removed from the roster since the game was
	// confirmed; completing the game requires all ten of them.
	combined := make([]string, 0, 2*model.TeamSize)
	combined = append(combined, game.Team1...)
	combined = append(combined, game.Team2...)
	resolved, err := roster.ResolvePlayers(allPlayers, combined)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			return nil, nil, model.NewValidationError(
				"game members are no longer on the roster", verr.Items...)
		}
		return nil, nil, err
	}
	p1 := resolved[:model.TeamSize]
	p2 := resolved[model.TeamSize:]

	var winner model.Winner
	var actual1, actual2 float64
	switch {
	case score1 > score2:
		winner, actual1, actual2 = model.WinnerTeam1, rating.ScoreWin, rating.ScoreLoss
	case score2 > score1:
		winner, actual1, actual2 = model.WinnerTeam2, rating.ScoreLoss, rating.ScoreWin
	default:
		winner, actual1, actual2 = model.WinnerDraw, rating.ScoreDraw, rating.ScoreDraw
	}

	goalDiff := score1 - score2
	if goalDiff < 0 {
		goalDiff = -goalDiff
	}

	avg1 := float64(game.Team1AvgRating)
	avg2 := float64(game.Team2AvgRating)
	delta1 := c.rating.Delta(avg1, avg2, goalDiff, actual1)
	delta2 := c.rating.Delta(avg2, avg1, goalDiff, actual2)

	changes := make([]model.RatingChange, 0, 2*model.TeamSize)
	updated := make([]*model.Player, 0, 2*model.TeamSize)
	updated = append(updated, applyTeamDelta(p1, delta1, teamOutcome(winner == model.WinnerTeam1, winner == model.WinnerDraw), &changes)...)
	updated = append(updated, applyTeamDelta(p2, delta2, teamOutcome(winner == model.WinnerTeam2, winner == model.WinnerDraw), &changes)...)

	completed := game.Clone()
	completed.Status = model.GameStatusCompleted
	completed.Team1Score = score1
	completed.Team2Score = score2
	completed.Winner = winner
	completed.CompletedAt = c.clock.Now()

	return &model.MatchResult{
		Game:          completed,
		Winner:        winner,
		RatingChanges: changes,
	}, updated, nil
}

type outcome int

const (
	outcomeLoss outcome = iota
	outcomeWin
	outcomeDraw
)

func teamOutcome(won, drew bool) outcome {
	switch {
	case drew:
		return outcomeDraw
	case won:
		return outcomeWin
	default:
		return outcomeLoss
	}
}

// applyTeamDelta returns updated copies of the players with the uniform
// team delta and per-game counters applied, appending one RatingChange
// per player.
func applyTeamDelta(players []*model.Player, delta int, result outcome, changes *[]model.RatingChange) []*model.Player {
	updated := make([]*model.Player, 0, len(players))
	for _, p := range players {
		next := p.Clone()
		next.Rating += delta
		next.GamesPlayed++
		switch result {
		case outcomeWin:
			next.Wins++
		case outcomeLoss:
			next.Losses++
		case outcomeDraw:
			next.Draws++
		}
		*changes = append(*changes, model.RatingChange{
			Name:      next.Name,
			OldRating: p.Rating,
			NewRating: next.Rating,
			Delta:     delta,
		})
		updated = append(updated, next)
	}
	return updated
}

// newGameID derives an ID from the current second. When two games are
// created within the same second the ID gets a numeric suffix (_2, _3)
// so it stays unique across both pending games and history.
func (c *Controller) newGameID(ctx context.Context, manual bool) (model.GameID, error) {
	base := c.clock.Now().Format(gameIDTimeFormat)
	if manual {
		base += "_manual"
	}

	candidate := model.GameID(base)
	for n := 2; ; n++ {
		taken, err := c.idTaken(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = model.GameID(fmt.Sprintf("%s_%d", base, n))
	}
}

func (c *Controller) idTaken(ctx context.Context, id model.GameID) (bool, error) {
	if _, err := c.storage.GetPendingGame(ctx, id); err == nil {
		return true, nil
	} else if !errors.Is(err, model.ErrGameNotFound) {
		return false, err
	}
	if _, err := c.storage.GetHistoryGame(ctx, id); err == nil {
		return true, nil
	} else if !errors.Is(err, model.ErrGameNotFound) {
		return false, err
	}
	return false, nil
}

func playerNames(players []*model.Player) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}

// Interface for dependency injection
type ControllerInterface interface {
	ConfirmTeams(ctx context.Context, team1, team2 []string) (*model.Game, error)
	RecordScore(ctx context.Context, id model.GameID, score1, score2 int) (*model.MatchResult, error)
	DeletePending(ctx context.Context, id model.GameID, credential string) error
	RecordManualGame(ctx context.Context, team1, team2 []string, score1, score2 int) (*model.MatchResult, error)
	ListPending(ctx context.Context) ([]*model.Game, error)
	ListHistory(ctx context.Context) ([]*model.Game, error)
}

var _ ControllerInterface = (*Controller)(nil)
