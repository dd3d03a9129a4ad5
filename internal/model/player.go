package model

import "time"

// Vote bounds for a player's initial skill estimate.
const (
	MinVote = 1
	MaxVote = 10
)

// Player represents a squad member with an Elo-style rating.
// Names are unique case-insensitively; the stored name keeps the
// spelling used when the player was added.
type Player struct {
	Name        string    `json:"name"`
	Rating      int       `json:"rating"`
	GamesPlayed int       `json:"gamesPlayed"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	Draws       int       `json:"draws"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WinRate returns the player's win percentage, or 0 before any games.
func (p *Player) WinRate() float64 {
	if p.GamesPlayed == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.GamesPlayed) * 100
}

// Clone returns a copy of the player.
func (p *Player) Clone() *Player {
	c := *p
	return &c
}
