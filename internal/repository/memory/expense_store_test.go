// internal/repository/memory/expense_store_test.go
package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preilly17/VacationSync-sub009/internal/domain"
	"github.com/preilly17/VacationSync-sub009/internal/util"
)

func testInput(tripID int64, participants ...string) domain.NewSharedExpenseInput {
	if len(participants) == 0 {
		participants = []string{"u1", "u2", "u3"}
	}
	return domain.NewSharedExpenseInput{
		TripID:             tripID,
		PayerUserID:        "u1",
		Description:        "Taxi from the airport",
		AmountSrcMinor:     1000,
		SrcCurrency:        "EUR",
		TgtCurrency:        "USD",
		FxRate:             "1.0956",
		FxRateProvider:     "ecb",
		FxRateTimestamp:    time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC),
		ParticipantUserIDs: participants,
	}
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	store := NewExpenseStore()
	ctx := context.Background()

	first, err := store.Create(ctx, testInput(1))
	require.NoError(t, err)
	second, err := store.Create(ctx, testInput(1))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
}

func TestCreateUsesInjectedClock(t *testing.T) {
	frozen := time.Date(2025, 8, 20, 18, 0, 0, 0, time.UTC)
	store := NewExpenseStoreWithClock(func() time.Time { return frozen })

	expense, err := store.Create(context.Background(), testInput(1))
	require.NoError(t, err)
	assert.Equal(t, frozen, expense.CreatedAt)
}

func TestCreateValidationStoresNothing(t *testing.T) {
	store := NewExpenseStore()
	ctx := context.Background()

	in := testInput(1)
	in.AmountSrcMinor = -500
	_, err := store.Create(ctx, in)
	assert.ErrorIs(t, err, util.ErrInvalidAmount)

	in = testInput(1)
	in.ParticipantUserIDs = []string{}
	_, err = store.Create(ctx, in)
	assert.ErrorIs(t, err, util.ErrInvalidParticipants)

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	// A failed create never burns an id.
	created, err := store.Create(ctx, testInput(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestListMostRecentFirst(t *testing.T) {
	store := NewExpenseStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := store.Create(ctx, testInput(1))
		require.NoError(t, err)
	}

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, int64(3), records[0].ID)
	assert.Equal(t, int64(2), records[1].ID)
	assert.Equal(t, int64(1), records[2].ID)
}

func TestListByTrip(t *testing.T) {
	store := NewExpenseStore()
	ctx := context.Background()

	_, err := store.Create(ctx, testInput(1))
	require.NoError(t, err)
	_, err = store.Create(ctx, testInput(2))
	require.NoError(t, err)
	_, err = store.Create(ctx, testInput(1))
	require.NoError(t, err)

	records, err := store.ListByTrip(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, int64(3), records[0].ID)
	assert.Equal(t, int64(1), records[1].ID)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	store := NewExpenseStore()
	ctx := context.Background()

	created, err := store.Create(ctx, testInput(1))
	require.NoError(t, err)

	// Mutating what Create and List hand back must not reach the store.
	created.Participants[0].ShareSrcMinor = -999
	created.Status = domain.ExpenseStatusSettled

	listed, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, int64(334), listed[0].Participants[0].ShareSrcMinor)
	assert.Equal(t, domain.ExpenseStatusPending, listed[0].Status)

	listed[0].Participants[1].Status = domain.ParticipantStatusPaid
	again, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ParticipantStatusPending, again[0].Participants[1].Status)
}

func TestMarkParticipantPaidLifecycle(t *testing.T) {
	store := NewExpenseStore()
	ctx := context.Background()

	created, err := store.Create(ctx, testInput(1, "u1", "u2"))
	require.NoError(t, err)

	updated, err := store.MarkParticipantPaid(ctx, created.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.ParticipantStatusPaid, updated.Participants[0].Status)
	assert.Equal(t, domain.ExpenseStatusPending, updated.Status)

	// Idempotent re-mark returns current state, not an error.
	again, err := store.MarkParticipantPaid(ctx, created.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, updated.Participants[0].SettledAt, again.Participants[0].SettledAt)
	assert.Equal(t, domain.ExpenseStatusPending, again.Status)

	settled, err := store.MarkParticipantPaid(ctx, created.ID, "u2")
	require.NoError(t, err)
	assert.Equal(t, domain.ExpenseStatusSettled, settled.Status)
}

func TestMarkParticipantPaidNotFound(t *testing.T) {
	store := NewExpenseStore()
	ctx := context.Background()

	_, err := store.MarkParticipantPaid(ctx, 42, "u1")
	assert.ErrorIs(t, err, util.ErrExpenseNotFound)

	created, err := store.Create(ctx, testInput(1))
	require.NoError(t, err)

	_, err = store.MarkParticipantPaid(ctx, created.ID, "unknown-user")
	assert.ErrorIs(t, err, util.ErrParticipantNotFound)
}

func TestReset(t *testing.T) {
	store := NewExpenseStore()
	ctx := context.Background()

	_, err := store.Create(ctx, testInput(1))
	require.NoError(t, err)
	require.NoError(t, store.Reset(ctx))

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	created, err := store.Create(ctx, testInput(1))
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
}

func TestConcurrentCreatesGetUniqueIDs(t *testing.T) {
	store := NewExpenseStore()
	ctx := context.Background()

	const workers = 32
	var wg sync.WaitGroup
	ids := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := store.Create(ctx, testInput(1))
			assert.NoError(t, err)
			ids <- created.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}
