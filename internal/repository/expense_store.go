// internal/repository/expense_store.go
package repository

import (
	"context"

	"github.com/preilly17/VacationSync-sub009/internal/domain"
)

// ExpenseStore holds shared-expense records. Implementations own identity
// assignment (monotonic int64 ids, never reused) and must make every
// operation atomic: a create either stores the record with all its
// participant shares or stores nothing.
//
// All returned records are defensive copies; mutating them never affects
// stored state.
type ExpenseStore interface {
	// Create allocates shares via domain.NewSharedExpense, assigns a fresh id,
	// stamps CreatedAt and stores the record. Returns a copy of what was stored.
	Create(ctx context.Context, in domain.NewSharedExpenseInput) (*domain.SharedExpense, error)
	// List returns copies of all records, most-recently-created first.
	List(ctx context.Context) ([]*domain.SharedExpense, error)
	// ListByTrip returns copies of a trip's records, most-recently-created first.
	ListByTrip(ctx context.Context, tripID int64) ([]*domain.SharedExpense, error)
	// MarkParticipantPaid advances one participant to paid (idempotently),
	// recomputes the derived record status and returns a copy of the updated
	// record. Fails with util.ErrExpenseNotFound / util.ErrParticipantNotFound.
	MarkParticipantPaid(ctx context.Context, expenseID int64, userID string) (*domain.SharedExpense, error)
	// Reset clears all records and restarts id assignment. Test isolation only.
	Reset(ctx context.Context) error
}
