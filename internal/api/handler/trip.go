// internal/api/handler/trip.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preilly17/VacationSync-sub009/internal/api/middleware"
	"github.com/preilly17/VacationSync-sub009/internal/api/types"
	"github.com/preilly17/VacationSync-sub009/internal/domain"
	"github.com/preilly17/VacationSync-sub009/internal/service"
	"github.com/preilly17/VacationSync-sub009/internal/util"
)

// TripHandler handles HTTP requests related to trips.
type TripHandler struct {
	trips  service.TripService
	logger *slog.Logger
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(trips service.TripService, logger *slog.Logger) *TripHandler {
	return &TripHandler{trips: trips, logger: logger}
}

// CreateTripRequest represents the request body for creating a trip.
type CreateTripRequest struct {
	Name        string    `json:"name"`
	Destination string    `json:"destination"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

// Create handles the create trip request.
// POST /trips
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req CreateTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	trip, err := h.trips.CreateTrip(r.Context(), req.Name, req.Destination, req.StartDate, req.EndDate, userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusCreated, trip)
}

// List handles the list my trips request.
// GET /trips
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	trips, err := h.trips.ListUserTrips(r.Context(), userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, types.ListResponse[domain.Trip]{Data: trips, Count: len(trips)})
}

// Get handles the get trip request.
// GET /trips/{tripID}
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	trip, err := h.trips.GetTrip(r.Context(), tripID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, trip)
}

// JoinTripRequest represents the request body for joining a trip.
type JoinTripRequest struct {
	ShareCode string `json:"shareCode"`
}

// Join handles the join trip request.
// POST /trips/join
func (h *TripHandler) Join(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserID(r.Context())

	var req JoinTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ShareCode == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	trip, err := h.trips.JoinTrip(r.Context(), req.ShareCode, userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, trip)
}

// Members handles the list trip members request.
// GET /trips/{tripID}/members
func (h *TripHandler) Members(w http.ResponseWriter, r *http.Request) {
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

	members, err := h.trips.ListMembers(r.Context(), tripID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, types.ListResponse[domain.TripMember]{Data: members, Count: len(members)})
}
