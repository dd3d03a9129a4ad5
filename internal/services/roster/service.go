package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/soltomm/PinoGPT/internal/dependencies/clock"
	"github.com/soltomm/PinoGPT/internal/model"
	"github.com/soltomm/PinoGPT/internal/services/auth"
	"github.com/soltomm/PinoGPT/internal/services/rating"
	"github.com/soltomm/PinoGPT/internal/storage"
)

// Service owns the set of players and their ratings. All operations run
// inside the shared engine mutex so no read can interleave with a
// half-applied mutation elsewhere in the engine.
type Service struct {
	storage storage.Storage
	rating  rating.ServiceInterface
	auth    *auth.Service
	clock   clock.Clock
	mu      *sync.Mutex
	logger  *slog.Logger
}

// New creates a roster service. mu is the engine-wide mutex shared with
// the game controller.
func New(
	storage storage.Storage,
	ratingService rating.ServiceInterface,
	authService *auth.Service,
	clock clock.Clock,
	mu *sync.Mutex,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage: storage,
		rating:  ratingService,
		auth:    authService,
		clock:   clock,
		mu:      mu,
		logger:  logger,
	}
}

// Add creates a player from a 1-10 skill vote, converting the vote to an
// initial rating. The name must not collide case-insensitively with an
// existing player.
func (s *Service) Add(ctx context.Context, name string, vote int) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.NewValidationError("player name must not be empty")
	}
	if vote < model.MinVote || vote > model.MaxVote {
		return nil, model.NewValidationError(
			fmt.Sprintf("vote must be between %d and %d, got %d", model.MinVote, model.MaxVote, vote))
	}

	if _, err := s.storage.GetPlayer(ctx, name); err == nil {
		return nil, model.ErrPlayerExists
	} else if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	player := &model.Player{
		Name:      name,
		Rating:    s.rating.InitialRating(vote),
		CreatedAt: s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("player added",
		slog.String("name", player.Name),
		slog.Int("vote", vote),
		slog.Int("rating", player.Rating),
	)

	return player, nil
}

// Remove deletes a player. It requires the admin credential and does not
// touch any game, pending or completed.
func (s *Service) Remove(ctx context.Context, name, credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.auth.VerifyAdmin(credential); err != nil {
		return err
	}

	player, err := s.storage.GetPlayer(ctx, name)
	if err != nil {
		return err
	}

	if err := s.storage.DeletePlayer(ctx, player.Name); err != nil {
		return err
	}

	s.logger.Info("player removed", slog.String("name", player.Name))
	return nil
}

// Find looks up a player by name, case-insensitively
func (s *Service) Find(ctx context.Context, name string) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.storage.GetPlayer(ctx, name)
}

// All returns every player in insertion order. Callers re-sort by rating
// for leaderboard display.
func (s *Service) All(ctx context.Context) ([]*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.storage.ListPlayers(ctx)
}

// ResolveMany resolves a sequence of names to players, reporting every
// unresolved name at once rather than just the first.
func (s *Service) ResolveMany(ctx context.Context, names []string) ([]*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	return ResolvePlayers(players, names)
}

// ResolvePlayers resolves names against an already-fetched roster
// snapshot. It rejects duplicate names (case-insensitive) and collects
// every unknown name into a single ValidationError. Pure function; the
// game controller uses it inside its own critical section.
func ResolvePlayers(players []*model.Player, names []string) ([]*model.Player, error) {
	byKey := make(map[string]*model.Player, len(players))
	for _, p := range players {
		byKey[strings.ToLower(p.Name)] = p
	}

	seen := make(map[string]bool, len(names))
	var duplicates []string
	var unknown []string
	resolved := make([]*model.Player, 0, len(names))

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			return nil, model.NewValidationError("player names must not be empty")
		}
		key := strings.ToLower(name)
		if seen[key] {
			duplicates = append(duplicates, name)
			continue
		}
		seen[key] = true

		player, ok := byKey[key]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		resolved = append(resolved, player)
	}

	if len(duplicates) > 0 {
		return nil, model.NewValidationError("duplicate player names", duplicates...)
	}
	if len(unknown) > 0 {
		return nil, model.NewValidationError("unknown players", unknown...)
	}
	return resolved, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Add(ctx context.Context, name string, vote int) (*model.Player, error)
	Remove(ctx context.Context, name, credential string) error
	Find(ctx context.Context, name string) (*model.Player, error)
	All(ctx context.Context) ([]*model.Player, error)
	ResolveMany(ctx context.Context, names []string) ([]*model.Player, error)
}

var _ ServiceInterface = (*Service)(nil)
