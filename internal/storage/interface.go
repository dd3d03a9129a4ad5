package storage

import (
	"context"

	"github.com/soltomm/PinoGPT/internal/model"
)

// Storage defines the interface for data persistence. Player lookups
// are case-insensitive on name. ListPlayers returns players in
// insertion order; pending and history listings keep insertion order
// as well.
//
// Storage provides no cross-call atomicity: callers that mutate several
// entities in one logical operation (scoring a game touches ten players
// and one game) must serialize those operations themselves.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, name string) (*model.Player, error)
	DeletePlayer(ctx context.Context, name string) error
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Pending game operations
	SavePendingGame(ctx context.Context, game *model.Game) error
	GetPendingGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeletePendingGame(ctx context.Context, id model.GameID) error
	ListPendingGames(ctx context.Context) ([]*model.Game, error)

	// History operations (append-only)
	AppendHistory(ctx context.Context, game *model.Game) error
	GetHistoryGame(ctx context.Context, id model.GameID) (*model.Game, error)
	ListHistory(ctx context.Context) ([]*model.Game, error)

	// Snapshot operations: the full persisted document
	// {players, pendingGames, history}
	ExportSnapshot(ctx context.Context) (*model.Snapshot, error)
	ImportSnapshot(ctx context.Context, snapshot *model.Snapshot) error
}
