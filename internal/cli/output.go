package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		o.printLeaderboard(v)
	case TeamProposal:
		o.printProposal(v)
	case Game:
		o.printGame(v)
	case []Game:
		o.printGames(v)
	case MatchResult:
		o.printMatchResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
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

// TeamProposal response type
type TeamProposal struct {
	Team1          []string `json:"team1"`
	Team2          []string `json:"team2"`
	Team1AvgRating int      `json:"team1AvgRating"`
	Team2AvgRating int      `json:"team2AvgRating"`
}

// Game response type
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
}

// RatingChange response type
type RatingChange struct {
	Name      string `json:"name"`
	OldRating int    `json:"oldRating"`
	NewRating int    `json:"newRating"`
	Delta     int    `json:"delta"`
}

// MatchResult response type
type MatchResult struct {
	Game          Game           `json:"game"`
	Winner        string         `json:"winner"`
	RatingChanges []RatingChange `json:"ratingChanges"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s\n", p.Name)
	fmt.Printf("Rating: %d\n", p.Rating)
	fmt.Printf("Record: %dW-%dL-%dD over %d games\n", p.Wins, p.Losses, p.Draws, p.GamesPlayed)
}

func (o *Output) printLeaderboard(players []Player) {
	if len(players) == 0 {
		fmt.Println("No players")
		return
	}
	fmt.Printf("%-4s %-20s %7s %6s %6s %6s %6s\n", "#", "Name", "Rating", "Games", "W", "L", "D")
	for i, p := range players {
		fmt.Printf("%-4d %-20s %7d %6d %6d %6d %6d\n",
			i+1, p.Name, p.Rating, p.GamesPlayed, p.Wins, p.Losses, p.Draws)
	}
}

func (o *Output) printProposal(p TeamProposal) {
	fmt.Printf("Team 1 (avg %d): %s\n", p.Team1AvgRating, strings.Join(p.Team1, ", "))
	fmt.Printf("Team 2 (avg %d): %s\n", p.Team2AvgRating, strings.Join(p.Team2, ", "))
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Status: %s\n", g.Status)
	fmt.Printf("Team 1 (avg %d): %s\n", g.Team1AvgRating, strings.Join(g.Team1, ", "))
	fmt.Printf("Team 2 (avg %d): %s\n", g.Team2AvgRating, strings.Join(g.Team2, ", "))
	if g.Status == "completed" {
		fmt.Printf("Score: %d-%d (%s)\n", g.Team1Score, g.Team2Score, g.Winner)
	}
}

func (o *Output) printGames(games []Game) {
	if len(games) == 0 {
		fmt.Println("No games")
		return
	}
	for i, g := range games {
		if i > 0 {
			fmt.Println()
		}
		o.printGame(g)
	}
}

func (o *Output) printMatchResult(r MatchResult) {
	o.printGame(r.Game)
	fmt.Println("\nRating changes:")
	for _, rc := range r.RatingChanges {
		fmt.Printf("  %-20s %d -> %d (%+d)\n", rc.Name, rc.OldRating, rc.NewRating, rc.Delta)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
