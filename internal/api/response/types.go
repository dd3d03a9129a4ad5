package response

import (
	"time"

	"github.com/soltomm/PinoGPT/internal/model"
)

// Player represents a player in API responses
type Player struct {
	Name        string    `json:"name"`
	Rating      int       `json:"rating"`
	GamesPlayed int       `json:"gamesPlayed"`
	Wins        int       `json:"wins"`
	Losses      int       `json:"losses"`
	Draws       int       `json:"draws"`
	WinRate     float64   `json:"winRate"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		Name:        p.Name,
		Rating:      p.Rating,
		GamesPlayed: p.GamesPlayed,
		Wins:        p.Wins,
		Losses:      p.Losses,
		Draws:       p.Draws,
		WinRate:     p.WinRate(),
		CreatedAt:   p.CreatedAt,
	}
}

// PlayersFromModels converts a slice of model players
func PlayersFromModels(players []*model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// TeamProposal represents a proposed team split
type TeamProposal struct {
	Team1          []string `json:"team1"`
	Team2          []string `json:"team2"`
	Team1AvgRating int      `json:"team1AvgRating"`
	Team2AvgRating int      `json:"team2AvgRating"`
}

// TeamProposalFromModel converts a model.TeamProposal
func TeamProposalFromModel(p *model.TeamProposal) TeamProposal {
	return TeamProposal{
		Team1:          p.Team1,
		Team2:          p.Team2,
		Team1AvgRating: p.Team1AvgRating,
		Team2AvgRating: p.Team2AvgRating,
	}
}

// Game represents a game in API responses
type Game struct {
	ID             string    `json:"id"`
	Team1          []string  `json:"team1"`
	Team2          []string  `json:"team2"`
	Team1AvgRating int       `json:"team1AvgRating"`
	Team2AvgRating int       `json:"team2AvgRating"`
	Status         string    `json:"status"`
	Team1Score     int       `json:"team1Score"`
	Team2Score     int       `json:"team2Score"`
	Winner         string    `json:"winner,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	CompletedAt    time.Time `json:"completedAt,omitzero"`
}

// GameFromModel converts a model.Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:             string(g.ID),
		Team1:          g.Team1,
		Team2:          g.Team2,
		Team1AvgRating: g.Team1AvgRating,
		Team2AvgRating: g.Team2AvgRating,
		Status:         string(g.Status),
		Team1Score:     g.Team1Score,
		Team2Score:     g.Team2Score,
		Winner:         string(g.Winner),
		CreatedAt:      g.CreatedAt,
		CompletedAt:    g.CompletedAt,
	}
}

// GamesFromModels converts a slice of model games
func GamesFromModels(games []*model.Game) []Game {
	out := make([]Game, len(games))
	for i, g := range games {
		out[i] = GameFromModel(g)
	}
	return out
}

// RatingChange represents one player's rating movement
type RatingChange struct {
	Name      string `json:"name"`
	OldRating int    `json:"oldRating"`
	NewRating int    `json:"newRating"`
	Delta     int    `json:"delta"`
}

// MatchResult is the response for score submissions
type MatchResult struct {
	Game          Game           `json:"game"`
	Winner        string         `json:"winner"`
	RatingChanges []RatingChange `json:"ratingChanges"`
}

// MatchResultFromModel converts a model.MatchResult
func MatchResultFromModel(r *model.MatchResult) MatchResult {
	changes := make([]RatingChange, len(r.RatingChanges))
	for i, rc := range r.RatingChanges {
		changes[i] = RatingChange{
			Name:      rc.Name,
			OldRating: rc.OldRating,
			NewRating: rc.NewRating,
			Delta:     rc.Delta,
		}
	}
	return MatchResult{
		Game:          GameFromModel(r.Game),
		Winner:        string(r.Winner),
		RatingChanges: changes,
	}
}
