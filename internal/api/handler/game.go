package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/soltomm/PinoGPT/internal/api/apierr"
	"github.com/soltomm/PinoGPT/internal/api/request"
	"github.com/soltomm/PinoGPT/internal/api/response"
	"github.com/soltomm/PinoGPT/internal/model"
	"github.com/soltomm/PinoGPT/internal/services/game"
)

// GameHandler handles game lifecycle endpoints
type GameHandler struct {
	gameController game.ControllerInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface) *GameHandler {
	return &GameHandler{
		gameController: gameController,
	}
}

// Confirm handles POST /api/v1/games
func (h *GameHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req request.ConfirmTeamsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	created, err := h.gameController.ConfirmTeams(r.Context(), req.Team1, req.Team2)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(created))
}

// Score handles POST /api/v1/games/{id}/score
func (h *GameHandler) Score(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	var req request.RecordScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	result, err := h.gameController.RecordScore(r.Context(), id, req.Score1, req.Score2)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchResultFromModel(result))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	var req request.AdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.gameController.DeletePending(r.Context(), id, req.Credential); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Manual handles POST /api/v1/games/manual
func (h *GameHandler) Manual(w http.ResponseWriter, r *http.Request) {
	var req request.ManualGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	result, err := h.gameController.RecordManualGame(r.Context(), req.Team1, req.Team2, req.Score1, req.Score2)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MatchResultFromModel(result))
}

// Pending handles GET /api/v1/games/pending
func (h *GameHandler) Pending(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameController.ListPending(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModels(games))
}

// History handles GET /api/v1/games/history
func (h *GameHandler) History(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameController.ListHistory(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModels(games))
}
