package model

// Snapshot is the persisted document shape: the full roster, the games
// awaiting a score, and the append-only completed-game history. Storage
// backends must be able to rebuild all state from this document and
// serialize back to it.
type Snapshot struct {
	Players      []*Player `json:"players"`
	PendingGames []*Game   `json:"pendingGames"`
	History      []*Game   `json:"history"`
}
