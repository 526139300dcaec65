// internal/api/handler/expense.go
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

// ExpenseHandler handles HTTP requests related to shared expenses.
type ExpenseHandler struct {
	expenses service.ExpenseService
	trips    service.TripService
	logger   *slog.Logger
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenses service.ExpenseService, trips service.TripService, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses, trips: trips, logger: logger}
}

// CreateExpenseRequest represents the request body for creating an expense.
// Field names follow the client contract; amounts are integer minor units.
type CreateExpenseRequest struct {
	Description        string    `json:"description"`
	Category           string    `json:"category"`
	AmountSrcMinor     int64     `json:"amountSrcMinor"`
	SrcCurrency        string    `json:"srcCurrency"`
	TgtCurrency        string    `json:"tgtCurrency"`
	FxRate             string    `json:"fxRate"`
	FxRateProvider     string    `json:"fxRateProvider"`
	FxRateTimestamp    time.Time `json:"fxRateTimestamp"`
	ParticipantUserIDs []string  `json:"participantUserIds"`
}

// Create handles the create expense request.
// POST /trips/{tripID}/expenses
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.SrcCurrency == "" || req.TgtCurrency == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	expense, err := h.expenses.CreateExpense(r.Context(), domain.NewSharedExpenseInput{
		TripID:             tripID,
		PayerUserID:        userID,
		Description:        req.Description,
		Category:           req.Category,
		AmountSrcMinor:     req.AmountSrcMinor,
		SrcCurrency:        req.SrcCurrency,
		TgtCurrency:        req.TgtCurrency,
		FxRate:             req.FxRate,
		FxRateProvider:     req.FxRateProvider,
		FxRateTimestamp:    req.FxRateTimestamp,
		ParticipantUserIDs: req.ParticipantUserIDs,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, expense)
}

// List handles the list trip expenses request.
// GET /trips/{tripID}/expenses
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
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

	expenses, err := h.expenses.ListTripExpenses(r.Context(), tripID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, types.ListResponse[*domain.SharedExpense]{
		Data:  expenses,
		Count: len(expenses),
	})
}

// MarkPaid handles the mark-participant-paid request.
// POST /trips/{tripID}/expenses/{expenseID}/participants/{userID}/paid
func (h *ExpenseHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	callerID, _ := middleware.UserID(r.Context())

	tripID, err := strconv.ParseInt(chi.URLParam(r, "tripID"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if err := h.trips.RequireMember(r.Context(), tripID, callerID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	expenseID, err := strconv.ParseInt(chi.URLParam(r, "expenseID"), 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	participantID := chi.URLParam(r, "userID")
	if participantID == "" {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	expense, err := h.expenses.MarkParticipantPaid(r.Context(), expenseID, participantID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, expense)
}
