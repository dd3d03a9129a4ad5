package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/soltomm/PinoGPT/internal/model"
	"github.com/soltomm/PinoGPT/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface.
// Entities are JSON values; LIST keys preserve the insertion order the
// interface promises for players, pending games, and history.
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.Name)
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}

	// Pipeline so the value and the order index update together
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	if exists == 0 {
		pipe.RPush(ctx, playerOrderKey(), key)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, name string) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, name string) error {
	key := playerKey(name)
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrPlayerNotFound
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.LRem(ctx, playerOrderKey(), 0, key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	keys, err := s.client.LRange(ctx, playerOrderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []*model.Player{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			// Value deleted out from under the index; skip it
			continue
		}
		var player model.Player
		if err := json.Unmarshal([]byte(str), &player); err != nil {
			return nil, err
		}
		players = append(players, &player)
	}
	return players, nil
}

// Pending game operations

func (s *Storage) SavePendingGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	key := pendingGameKey(game.ID)
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	if exists == 0 {
		pipe.RPush(ctx, pendingOrderKey(), string(game.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPendingGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return s.getGame(ctx, pendingGameKey(id))
}

func (s *Storage) DeletePendingGame(ctx context.Context, id model.GameID) error {
	key := pendingGameKey(id)
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrGameNotFound
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.LRem(ctx, pendingOrderKey(), 0, string(id))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) ListPendingGames(ctx context.Context) ([]*model.Game, error) {
	return s.listGames(ctx, pendingOrderKey(), func(id string) string {
		return pendingGameKey(model.GameID(id))
	})
}

// History operations

func (s *Storage) AppendHistory(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, historyGameKey(game.ID), data, 0)
	pipe.RPush(ctx, historyOrderKey(), string(game.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetHistoryGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return s.getGame(ctx, historyGameKey(id))
}

func (s *Storage) ListHistory(ctx context.Context) ([]*model.Game, error) {
	return s.listGames(ctx, historyOrderKey(), func(id string) string {
		return historyGameKey(model.GameID(id))
	})
}

func (s *Storage) getGame(ctx context.Context, key string) (*model.Game, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) listGames(ctx context.Context, orderKey string, keyFor func(id string) string) ([]*model.Game, error) {
	ids, err := s.client.LRange(ctx, orderKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Game{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = keyFor(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, 0, len(values))
	for _, v := range values {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var game model.Game
		if err := json.Unmarshal([]byte(str), &game); err != nil {
			return nil, err
		}
		games = append(games, &game)
	}
	return games, nil
}

// Snapshot operations

func (s *Storage) ExportSnapshot(ctx context.Context) (*model.Snapshot, error) {
	players, err := s.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.ListPendingGames(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	return &model.Snapshot{
		Players:      players,
		PendingGames: pending,
		History:      history,
	}, nil
}

func (s *Storage) ImportSnapshot(ctx context.Context, snapshot *model.Snapshot) error {
	if err := s.clear(ctx); err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	for _, p := range snapshot.Players {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		key := playerKey(p.Name)
		pipe.Set(ctx, key, data, 0)
		pipe.RPush(ctx, playerOrderKey(), key)
	}
	for _, g := range snapshot.PendingGames {
		data, err := json.Marshal(g)
		if err != nil {
			return err
		}
		pipe.Set(ctx, pendingGameKey(g.ID), data, 0)
		pipe.RPush(ctx, pendingOrderKey(), string(g.ID))
	}
	for _, g := range snapshot.History {
		data, err := json.Marshal(g)
		if err != nil {
			return err
		}
		pipe.Set(ctx, historyGameKey(g.ID), data, 0)
		pipe.RPush(ctx, historyOrderKey(), string(g.ID))
	}
	_, err := pipe.Exec(ctx)
	return err
}

// clear removes every key the snapshot covers: the three order lists
// and the entity values they reference.
func (s *Storage) clear(ctx context.Context) error {
	playerKeys, err := s.client.LRange(ctx, playerOrderKey(), 0, -1).Result()
	if err != nil {
		return err
	}
	pendingIDs, err := s.client.LRange(ctx, pendingOrderKey(), 0, -1).Result()
	if err != nil {
		return err
	}
	historyIDs, err := s.client.LRange(ctx, historyOrderKey(), 0, -1).Result()
	if err != nil {
		return err
	}

	keys := []string{playerOrderKey(), pendingOrderKey(), historyOrderKey()}
	keys = append(keys, playerKeys...)
	for _, id := range pendingIDs {
		keys = append(keys, pendingGameKey(model.GameID(id)))
	}
	for _, id := range historyIDs {
		keys = append(keys, historyGameKey(model.GameID(id)))
	}
	return s.client.Del(ctx, keys...).Err()
}
