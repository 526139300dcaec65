// internal/api/handler/activity.go
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

// ActivityHandler handles HTTP requests related to trip activities.
type ActivityHandler struct {
	activities service.ActivityService
	trips      service.TripService
	logger     *slog.Logger
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activities service.ActivityService, trips service.TripService, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{activities: activities, trips: trips, logger: logger}
}

// ProposeActivityRequest represents the request body for proposing an activity.
type ProposeActivityRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartTime   time.Time `json:"startTime"`
}

// Propose handles the propose activity request.
// POST /trips/{tripID}/activities
func (h *ActivityHandler) Propose(w http.ResponseWriter, r *http.Request) {
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

	var req ProposeActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	activity, err := h.activities.ProposeActivity(r.Context(), tripID, req.Name, req.Description, req.Location, req.StartTime, userID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusCreated, activity)
}

// List handles the list trip activities request.
// GET /trips/{tripID}/activities
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
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

	activities, err := h.activities.ListTripActivities(r.Context(), tripID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, types.ListResponse[service.ActivityWithResponses]{
		Data:  activities,
		Count: len(activities),
	})
}

// RespondRequest represents the request body for answering an activity proposal.
type RespondRequest struct {
	Status domain.ActivityResponseStatus `json:"status"`
}

// Respond handles the accept/decline request.
// POST /trips/{tripID}/activities/{activityID}/respond
func (h *ActivityHandler) Respond(w http.ResponseWriter, r *http.Request) {
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

	activityID, err := strconv.ParseInt(chi.URLParam(r, "activityID"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	var req RespondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	response, err := h.activities.Respond(r.Context(), activityID, userID, req.Status)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, response)
}
