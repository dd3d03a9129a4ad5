package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/soltomm/PinoGPT/internal/model"
)

type StorageSuite struct {
	suite.Suite
	path    string
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "balancer.json")
	st, err := New(s.path)
	s.Require().NoError(err)
	s.storage = st
	s.ctx = context.Background()
}

func (s *StorageSuite) player(name string, rating int) *model.Player {
	return &model.Player{
		Name:      name,
		Rating:    rating,
		CreatedAt: time.Date(2025, 3, 1, 18, 0, 0, 0, time.UTC),
	}
}

func (s *StorageSuite) readDocument() *model.Snapshot {
	data, err := os.ReadFile(s.path)
	s.Require().NoError(err)
	var snapshot model.Snapshot
	s.Require().NoError(json.Unmarshal(data, &snapshot))
	return &snapshot
}

func (s *StorageSuite) TestMissingFileStartsEmpty() {
	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)

	_, err = os.Stat(s.path)
	s.True(os.IsNotExist(err), "no file until the first mutation")
}

func (s *StorageSuite) TestMutationFlushesDocument() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("Alice", 1500)))

	doc := s.readDocument()
	s.Require().Len(doc.Players, 1)
	s.Equal("Alice", doc.Players[0].Name)
	s.Equal(1500, doc.Players[0].Rating)
}

func (s *StorageSuite) TestDocumentShape() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("Alice", 1500)))

	data, err := os.ReadFile(s.path)
	s.Require().NoError(err)

	var raw map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal(data, &raw))
	s.Contains(raw, "players")
	s.Contains(raw, "pendingGames")
	s.Contains(raw, "history")
}

func (s *StorageSuite) TestReopenRestoresState() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("Alice", 1500)))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("Bob", 1400)))
	s.Require().NoError(s.storage.SavePendingGame(s.ctx, &model.Game{
		ID:     "20250301_190000",
		Team1:  []string{"a", "b", "c", "d", "e"},
		Team2:  []string{"f", "g", "h", "i", "j"},
		Status: model.GameStatusPending,
	}))
	s.Require().NoError(s.storage.AppendHistory(s.ctx, &model.Game{
		ID:     "20250228_190000",
		Status: model.GameStatusCompleted,
		Winner: model.WinnerTeam1,
	}))

	reopened, err := New(s.path)
	s.Require().NoError(err)

	players, err := reopened.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 2)
	s.Equal("Alice", players[0].Name, "insertion order survives the round trip")

	_, err = reopened.GetPendingGame(s.ctx, "20250301_190000")
	s.NoError(err)
	_, err = reopened.GetHistoryGame(s.ctx, "20250228_190000")
	s.NoError(err)
}

func (s *StorageSuite) TestDeleteFlushes() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("Alice", 1500)))
	s.Require().NoError(s.storage.DeletePlayer(s.ctx, "Alice"))

	doc := s.readDocument()
	s.Empty(doc.Players)
}

func (s *StorageSuite) TestCorruptFileIsRejected() {
	s.Require().NoError(os.WriteFile(s.path, []byte("{not json"), 0o644))

	_, err := New(s.path)
	s.Error(err)
}

func (s *StorageSuite) TestNoLeftoverTempFiles() {
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("Alice", 1500)))
	s.Require().NoError(s.storage.SavePlayer(s.ctx, s.player("Bob", 1400)))

	entries, err := os.ReadDir(filepath.Dir(s.path))
	s.Require().NoError(err)
	s.Len(entries, 1, "only the snapshot file remains after flushes")
}
