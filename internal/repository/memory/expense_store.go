// internal/repository/memory/expense_store.go
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/preilly17/VacationSync-sub009/internal/domain"
	"github.com/preilly17/VacationSync-sub009/internal/repository"
	"github.com/preilly17/VacationSync-sub009/internal/util"
)

// ExpenseStore is an in-memory repository.ExpenseStore. A single mutex
// serializes every read-modify-write sequence: no two MarkParticipantPaid
// calls can race on the same participant transition and no two creates can
// claim the same id.
type ExpenseStore struct {
	mu      sync.Mutex
	nextID  int64
	records []*domain.SharedExpense // insertion order; List walks it backwards
	clock   func() time.Time
}

// NewExpenseStore creates an empty store using the real clock.
func NewExpenseStore() *ExpenseStore {
	return NewExpenseStoreWithClock(func() time.Time { return time.Now().UTC() })
}

// NewExpenseStoreWithClock creates an empty store with an injected clock,
// letting tests pin CreatedAt/SettledAt.
func NewExpenseStoreWithClock(clock func() time.Time) *ExpenseStore {
	return &ExpenseStore{nextID: 1, clock: clock}
}

// Create allocates and stores a new shared expense. Allocation happens before
// any state is touched, so a validation failure stores nothing.
func (s *ExpenseStore) Create(ctx context.Context, in domain.NewSharedExpenseInput) (*domain.SharedExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expense, err := domain.NewSharedExpense(in, s.clock())
	if err != nil {
		return nil, err
	}
	expense.ID = s.nextID
	s.nextID++
	s.records = append(s.records, expense)
	return expense.Clone(), nil
}

// List returns copies of all records, most-recently-created first.
func (s *ExpenseStore) List(ctx context.Context) ([]*domain.SharedExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.SharedExpense, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		out = append(out, s.records[i].Clone())
	}
	return out, nil
}

// ListByTrip returns copies of one trip's records, most-recently-created first.
func (s *ExpenseStore) ListByTrip(ctx context.Context, tripID int64) ([]*domain.SharedExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.SharedExpense
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].TripID == tripID {
			out = append(out, s.records[i].Clone())
		}
	}
	return out, nil
}

// MarkParticipantPaid advances one participant to paid and returns a copy of
// the updated record. Re-marking a paid participant is a no-op that still
// returns current state.
func (s *ExpenseStore) MarkParticipantPaid(ctx context.Context, expenseID int64, userID string) (*domain.SharedExpense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.records {
		if record.ID != expenseID {
			continue
		}
		if err := record.MarkParticipantPaid(userID, s.clock()); err != nil {
			return nil, err
		}
		return record.Clone(), nil
	}
	return nil, util.ErrExpenseNotFound
}

// Reset clears all records and restarts id assignment. Test isolation only.
func (s *ExpenseStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.nextID = 1
	return nil
}

var _ repository.ExpenseStore = (*ExpenseStore)(nil)
