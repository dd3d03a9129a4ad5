package handler

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	"github.com/soltomm/PinoGPT/internal/api/apierr"
	"github.com/soltomm/PinoGPT/internal/api/request"
	"github.com/soltomm/PinoGPT/internal/api/response"
	"github.com/soltomm/PinoGPT/internal/services/roster"
)

// PlayerHandler handles roster endpoints
type PlayerHandler struct {
	rosterService roster.ServiceInterface
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(rosterService roster.ServiceInterface) *PlayerHandler {
	return &PlayerHandler{
		rosterService: rosterService,
	}
}

// Add handles POST /api/v1/players
func (h *PlayerHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req request.AddPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Name == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("name is required"))
		return
	}

	player, err := h.rosterService.Add(r.Context(), req.Name, req.Vote)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// Remove handles DELETE /api/v1/players/{name}
func (h *PlayerHandler) Remove(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	var req request.AdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.rosterService.Remove(r.Context(), name, req.Credential); err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Leaderboard handles GET /api/v1/players: every player, highest
// rating first. Equal ratings keep roster insertion order.
func (h *PlayerHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	players, err := h.rosterService.All(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Rating > players[j].Rating
	})

	response.JSON(w, http.StatusOK, response.PlayersFromModels(players))
}
