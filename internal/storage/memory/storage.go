package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/soltomm/PinoGPT/internal/model"
	"github.com/soltomm/PinoGPT/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Values are copied on both save and read so callers cannot mutate the
// store except through Save calls, matching the semantics of the
// serializing backends.
type Storage struct {
	mu sync.RWMutex

	players     map[string]*model.Player // keyed by lowercased name
	playerOrder []string                 // lowercased names, insertion order

	pending      map[model.GameID]*model.Game
	pendingOrder []model.GameID

	history      []*model.Game
	historyIndex map[model.GameID]int
}

// New creates a new in-memory storage instance
func New() *Storage {
	s := &Storage{}
	s.reset()
	return s
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) reset() {
	s.players = make(map[string]*model.Player)
	s.playerOrder = nil
	s.pending = make(map[model.GameID]*model.Game)
	s.pendingOrder = nil
	s.history = nil
	s.historyIndex = make(map[model.GameID]int)
}

func playerKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := playerKey(player.Name)
	if _, exists := s.players[key]; !exists {
		s.playerOrder = append(s.playerOrder, key)
	}
	s.players[key] = player.Clone()
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, name string) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	player, ok := s.players[playerKey(name)]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player.Clone(), nil
}

func (s *Storage) DeletePlayer(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := playerKey(name)
	if _, ok := s.players[key]; !ok {
		return model.ErrPlayerNotFound
	}
	delete(s.players, key)
	for i, k := range s.playerOrder {
		if k == key {
			s.playerOrder = append(s.playerOrder[:i], s.playerOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]*model.Player, 0, len(s.playerOrder))
	for _, key := range s.playerOrder {
		players = append(players, s.players[key].Clone())
	}
	return players, nil
}

// Pending game operations

func (s *Storage) SavePendingGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.pending[game.ID]; !exists {
		s.pendingOrder = append(s.pendingOrder, game.ID)
	}
	s.pending[game.ID] = game.Clone()
	return nil
}

func (s *Storage) GetPendingGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.pending[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *Storage) DeletePendingGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[id]; !ok {
		return model.ErrGameNotFound
	}
	delete(s.pending, id)
	for i, gid := range s.pendingOrder {
		if gid == id {
			s.pendingOrder = append(s.pendingOrder[:i], s.pendingOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Storage) ListPendingGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := make([]*model.Game, 0, len(s.pendingOrder))
	for _, id := range s.pendingOrder {
		games = append(games, s.pending[id].Clone())
	}
	return games, nil
}

// History operations

func (s *Storage) AppendHistory(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.historyIndex[game.ID] = len(s.history)
	s.history = append(s.history, game.Clone())
	return nil
}

func (s *Storage) GetHistoryGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.historyIndex[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return s.history[idx].Clone(), nil
}

func (s *Storage) ListHistory(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	games := make([]*model.Game, 0, len(s.history))
	for _, g := range s.history {
		games = append(games, g.Clone())
	}
	return games, nil
}

// Snapshot operations

func (s *Storage) ExportSnapshot(ctx context.Context) (*model.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := &model.Snapshot{
		Players:      make([]*model.Player, 0, len(s.playerOrder)),
		PendingGames: make([]*model.Game, 0, len(s.pendingOrder)),
		History:      make([]*model.Game, 0, len(s.history)),
	}
	for _, key := range s.playerOrder {
		snapshot.Players = append(snapshot.Players, s.players[key].Clone())
	}
	for _, id := range s.pendingOrder {
		snapshot.PendingGames = append(snapshot.PendingGames, s.pending[id].Clone())
	}
	for _, g := range s.history {
		snapshot.History = append(snapshot.History, g.Clone())
	}
	return snapshot, nil
}

func (s *Storage) ImportSnapshot(ctx context.Context, snapshot *model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	for _, p := range snapshot.Players {
		key := playerKey(p.Name)
		s.playerOrder = append(s.playerOrder, key)
		s.players[key] = p.Clone()
	}
	for _, g := range snapshot.PendingGames {
		s.pendingOrder = append(s.pendingOrder, g.ID)
		s.pending[g.ID] = g.Clone()
	}
	for _, g := range snapshot.History {
		s.historyIndex[g.ID] = len(s.history)
		s.history = append(s.history, g.Clone())
	}
	return nil
}
