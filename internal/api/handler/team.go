package handler

import (
	"encoding/json"
	"net/http"

	"github.com/soltomm/PinoGPT/internal/api/apierr"
	"github.com/soltomm/PinoGPT/internal/api/request"
	"github.com/soltomm/PinoGPT/internal/api/response"
	"github.com/soltomm/PinoGPT/internal/services/balancer"
	"github.com/soltomm/PinoGPT/internal/services/roster"
)

// TeamHandler handles team proposal endpoints
type TeamHandler struct {
	rosterService   roster.ServiceInterface
	balancerService balancer.ServiceInterface
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(rosterService roster.ServiceInterface, balancerService balancer.ServiceInterface) *TeamHandler {
	return &TeamHandler{
		rosterService:   rosterService,
		balancerService: balancerService,
	}
}

// Propose handles POST /api/v1/teams/propose. Proposing does not create
// a game; the split only becomes a game via POST /api/v1/games.
func (h *TeamHandler) Propose(w http.ResponseWriter, r *http.Request) {
	var req request.ProposeTeamsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	players, err := h.rosterService.ResolveMany(r.Context(), req.Players)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	proposal, err := h.balancerService.ProposeTeams(players)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TeamProposalFromModel(proposal))
}
