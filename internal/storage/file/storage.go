package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/soltomm/PinoGPT/internal/model"
	"github.com/soltomm/PinoGPT/internal/storage"
	"github.com/soltomm/PinoGPT/internal/storage/memory"
)

// Storage keeps all state in memory and flushes the full document
// {players, pendingGames, history} to a JSON file after every
// mutation. The engine serializes mutations, so a flush always sees a
// consistent document and the file is a valid snapshot at any point.
type Storage struct {
	mem  *memory.Storage
	path string
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// New creates a file-backed storage reading the document at path.
// A missing file starts empty; it is created on the first mutation.
func New(path string) (*Storage, error) {
	s := &Storage{
		mem:  memory.New(),
		path: path,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot file: %w", err)
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot file %s: %w", path, err)
	}
	if err := s.mem.ImportSnapshot(context.Background(), &snapshot); err != nil {
		return nil, err
	}
	return s, nil
}

// flush writes the current document to a temp file in the same
// directory and renames it into place, so readers never observe a
// partially written file.
func (s *Storage) flush(ctx context.Context) error {
	snapshot, err := s.mem.ExportSnapshot(ctx)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp snapshot file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing snapshot file: %w", err)
	}
	return nil
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	if err := s.mem.SavePlayer(ctx, player); err != nil {
		return err
	}
	return s.flush(ctx)
}

func (s *Storage) GetPlayer(ctx context.Context, name string) (*model.Player, error) {
	return s.mem.GetPlayer(ctx, name)
}

func (s *Storage) DeletePlayer(ctx context.Context, name string) error {
	if err := s.mem.DeletePlayer(ctx, name); err != nil {
		return err
	}
	return s.flush(ctx)
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	return s.mem.ListPlayers(ctx)
}

// Pending game operations

func (s *Storage) SavePendingGame(ctx context.Context, game *model.Game) error {
	if err := s.mem.SavePendingGame(ctx, game); err != nil {
		return err
	}
	return s.flush(ctx)
}

func (s *Storage) GetPendingGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return s.mem.GetPendingGame(ctx, id)
}

func (s *Storage) DeletePendingGame(ctx context.Context, id model.GameID) error {
	if err := s.mem.DeletePendingGame(ctx, id); err != nil {
		return err
	}
	return s.flush(ctx)
}

func (s *Storage) ListPendingGames(ctx context.Context) ([]*model.Game, error) {
	return s.mem.ListPendingGames(ctx)
}

// History operations

func (s *Storage) AppendHistory(ctx context.Context, game *model.Game) error {
	if err := s.mem.AppendHistory(ctx, game); err != nil {
		return err
	}
	return s.flush(ctx)
}

func (s *Storage) GetHistoryGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return s.mem.GetHistoryGame(ctx, id)
}

func (s *Storage) ListHistory(ctx context.Context) ([]*model.Game, error) {
	return s.mem.ListHistory(ctx)
}

// Snapshot operations

func (s *Storage) ExportSnapshot(ctx context.Context) (*model.Snapshot, error) {
	return s.mem.ExportSnapshot(ctx)
}

func (s *Storage) ImportSnapshot(ctx context.Context, snapshot *model.Snapshot) error {
	if err := s.mem.ImportSnapshot(ctx, snapshot); err != nil {
		return err
	}
	return s.flush(ctx)
}
