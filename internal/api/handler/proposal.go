// internal/api/handler/proposal.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/preilly17/VacationSync-sub009/internal/api/middleware"
	"github.com/preilly17/VacationSync-sub009/internal/api/types"
	"github.com/preilly17/VacationSync-sub009/internal/domain"
	"github.com/preilly17/VacationSync-sub009/internal/service"
	"github.com/preilly17/VacationSync-sub009/internal/util"
)

// ProposalHandler handles HTTP requests for hotel and restaurant proposals.
type ProposalHandler struct {
	proposals service.ProposalService
	trips     service.TripService
	logger    *slog.Logger
}

// NewProposalHandler creates a new ProposalHandler.
func NewProposalHandler(proposals service.ProposalService, trips service.TripService, logger *slog.Logger) *ProposalHandler {
	return &ProposalHandler{proposals: proposals, trips: trips, logger: logger}
}

// AddProposalRequest represents the request body for adding a proposal.
type AddProposalRequest struct {
	Kind       domain.ProposalKind `json:"kind"`
	Title      string              `json:"title"`
	Details    string              `json:"details"`
	URL        string              `json:"url"`
	PriceMinor int64               `json:"priceMinor"`
	Currency   string              `json:"currency"`
}

// Add handles the add proposal request.
// POST /trips/{tripID}/proposals
func (h *ProposalHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	tripID, err := strconv.ParseInt(chi.URLParam(r, "tripID"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if err := h.trips.RequireMember(r.Context(), tripID, userID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	var req AddProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	proposal := domain.NewProposal(tripID, req.Kind, req.Title, req.Details, req.URL, req.PriceMinor, req.Currency, userID)
	created, err := h.proposals.AddProposal(r.Context(), proposal)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusCreated, created)
}

// List handles the list proposals request.
// GET /trips/{tripID}/proposals?kind=hotel|restaurant
func (h *ProposalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	tripID, err := strconv.ParseInt(chi.URLParam(r, "tripID"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if err := h.trips.RequireMember(r.Context(), tripID, userID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	kind := domain.ProposalKind(r.URL.Query().Get("kind"))
	if kind != domain.ProposalKindHotel && kind != domain.ProposalKindRestaurant {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	proposals, err := h.proposals.ListTripProposals(r.Context(), tripID, kind)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, types.ListResponse[service.ProposalWithVotes]{
		Data:  proposals,
		Count: len(proposals),
	})
}

// VoteRequest represents the request body for ranking a proposal.
type VoteRequest struct {
	Rank int `json:"rank"`
}

// Vote handles the rank proposal request.
// POST /trips/{tripID}/proposals/{proposalID}/vote
func (h *ProposalHandler) Vote(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	tripID, err := strconv.ParseInt(chi.URLParam(r, "tripID"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if err := h.trips.RequireMember(r.Context(), tripID, userID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	proposalID, err := strconv.ParseInt(chi.URLParam(r, "proposalID"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	var req VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	vote, err := h.proposals.Vote(r.Context(), proposalID, userID, req.Rank)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, vote)
}
