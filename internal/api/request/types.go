package request

// AddPlayerRequest is the body for POST /api/v1/players
type AddPlayerRequest struct {
	Name string `json:"name"`
	Vote int    `json:"vote"`
}

// AdminRequest is the body for admin-guarded deletes
type AdminRequest struct {
	Credential string `json:"credential"`
}

// ProposeTeamsRequest is the body for POST /api/v1/teams/propose
type ProposeTeamsRequest struct {
	Players []string `json:"players"`
}

// ConfirmTeamsRequest is the body for POST /api/v1/games
type ConfirmTeamsRequest struct {
	Team1 []string `json:"team1"`
	Team2 []string `json:"team2"`
}

// RecordScoreRequest is the body for POST /api/v1/games/{id}/score
type RecordScoreRequest struct {
	Score1 int `json:"score1"`
	Score2 int `json:"score2"`
}

// ManualGameRequest is the body for POST /api/v1/games/manual
type ManualGameRequest struct {
	Team1  []string `json:"team1"`
	Team2  []string `json:"team2"`
	Score1 int      `json:"score1"`
	Score2 int      `json:"score2"`
}
