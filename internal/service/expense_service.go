// internal/service/expense_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/preilly17/VacationSync-sub009/internal/domain"
	"github.com/preilly17/VacationSync-sub009/internal/notify"
	"github.com/preilly17/VacationSync-sub009/internal/repository"
)

// ExpenseService defines the interface for shared-expense business logic.
type ExpenseService interface {
	CreateExpense(ctx context.Context, in domain.NewSharedExpenseInput) (*domain.SharedExpense, error)
	ListExpenses(ctx context.Context) ([]*domain.SharedExpense, error)
	ListTripExpenses(ctx context.Context, tripID int64) ([]*domain.SharedExpense, error)
	MarkParticipantPaid(ctx context.Context, expenseID int64, userID string) (*domain.SharedExpense, error)
	Reset(ctx context.Context) error
}

// expenseService implements the ExpenseService interface. Validation and
// allocation live in the domain; the store owns atomicity; this layer adds
// event publication.
type expenseService struct {
	store     repository.ExpenseStore
	publisher notify.Publisher
}

// NewExpenseService creates a new instance of ExpenseService.
func NewExpenseService(store repository.ExpenseStore, publisher notify.Publisher) ExpenseService {
	return &expenseService{store: store, publisher: publisher}
}

// CreateExpense allocates and stores a new shared expense and announces it to
// the trip.
func (s *expenseService) CreateExpense(ctx context.Context, in domain.NewSharedExpenseInput) (*domain.SharedExpense, error) {
	expense, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(notify.Event{
		Type:      notify.EventExpenseAdded,
		TripID:    expense.TripID,
		Payload:   expense,
		Timestamp: time.Now().UTC(),
	})
	return expense, nil
}

// ListExpenses returns all expenses, most-recently-created first.
func (s *expenseService) ListExpenses(ctx context.Context) ([]*domain.SharedExpense, error) {
	expenses, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// ListTripExpenses returns one trip's expenses, most-recently-created first.
func (s *expenseService) ListTripExpenses(ctx context.Context, tripID int64) ([]*domain.SharedExpense, error) {
	expenses, err := s.store.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("list trip expenses: %w", err)
	}
	return expenses, nil
}

// MarkParticipantPaid advances one participant to paid and announces the
// payment, plus a settlement event when the last share lands.
func (s *expenseService) MarkParticipantPaid(ctx context.Context, expenseID int64, userID string) (*domain.SharedExpense, error) {
	expense, err := s.store.MarkParticipantPaid(ctx, expenseID, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	s.publisher.Publish(notify.Event{
		Type:      notify.EventParticipantPaid,
		TripID:    expense.TripID,
		Payload:   map[string]interface{}{"expenseId": expense.ID, "userId": userID},
		Timestamp: now,
	})
	if expense.Status == domain.ExpenseStatusSettled {
		s.publisher.Publish(notify.Event{
			Type:      notify.EventExpenseSettled,
			TripID:    expense.TripID,
			Payload:   map[string]interface{}{"expenseId": expense.ID},
			Timestamp: now,
		})
	}
	return expense, nil
}

// Reset clears all stored expenses. Test isolation only.
func (s *expenseService) Reset(ctx context.Context) error {
	return s.store.Reset(ctx)
}
