package model

import "time"

// GameID uniquely identifies a game. IDs are derived from the creation
// timestamp (YYYYMMDD_HHMMSS) so they sort chronologically and are short
// enough to quote back in a chat message.
type GameID string

// TeamSize is the number of players on each side of a match.
const TeamSize = 5

// GameStatus represents the lifecycle phase of a game
type GameStatus string

const (
	GameStatusPending   GameStatus = "pending"   // Teams confirmed, awaiting a score
	GameStatusCompleted GameStatus = "completed" // Score recorded, ratings applied
)

// Winner identifies the outcome of a completed game
type Winner string

const (
	WinnerTeam1 Winner = "team1"
	WinnerTeam2 Winner = "team2"
	WinnerDraw  Winner = "draw"
)

// Game represents one 5v5 match. Team average ratings are frozen at
// creation time and never recomputed from later roster changes.
type Game struct {
	ID             GameID     `json:"id"`
	Team1          []string   `json:"team1"`
	Team2          []string   `json:"team2"`
	Team1AvgRating int        `json:"team1AvgRating"`
	Team2AvgRating int        `json:"team2AvgRating"`
	Status         GameStatus `json:"status"`
	Team1Score     int        `json:"team1Score"`
	Team2Score     int        `json:"team2Score"`
	Winner         Winner     `json:"winner,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	CompletedAt    time.Time  `json:"completedAt,omitzero"`
}

// Clone returns a deep copy of the game.
func (g *Game) Clone() *Game {
	c := *g
	c.Team1 = append([]string(nil), g.Team1...)
	c.Team2 = append([]string(nil), g.Team2...)
	return &c
}

// TeamProposal is a balanced split of ten players into two teams,
// produced by the balancer before a game exists.
type TeamProposal struct {
	Team1          []string `json:"team1"`
	Team2          []string `json:"team2"`
	Team1AvgRating int      `json:"team1AvgRating"`
	Team2AvgRating int      `json:"team2AvgRating"`
}

// RatingChange records one player's rating movement from a completed game.
// Every member of a team moves by the same delta.
type RatingChange struct {
	Name      string `json:"name"`
	OldRating int    `json:"oldRating"`
	NewRating int    `json:"newRating"`
	Delta     int    `json:"delta"`
}

// MatchResult is the outcome of recording a score: the completed game
// plus the rating changes applied to all ten players.
type MatchResult struct {
	Game          *Game          `json:"game"`
	Winner        Winner         `json:"winner"`
	RatingChanges []RatingChange `json:"ratingChanges"`
}
