// internal/domain/expense_test.go
package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preilly17/VacationSync-sub009/internal/util"
)

func validInput() NewSharedExpenseInput {
	return NewSharedExpenseInput{
		TripID:             1,
		PayerUserID:        "u1",
		Description:        "Dinner in Lisbon",
		AmountSrcMinor:     1000,
		SrcCurrency:        "EUR",
		TgtCurrency:        "USD",
		FxRate:             "1.0956",
		FxRateProvider:     "ecb",
		FxRateTimestamp:    time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC),
		ParticipantUserIDs: []string{"u1", "u2", "u3"},
	}
}

func TestNewSharedExpenseScenario(t *testing.T) {
	now := time.Date(2025, 8, 20, 18, 30, 0, 0, time.UTC)
	expense, err := NewSharedExpense(validInput(), now)
	require.NoError(t, err)

	assert.Equal(t, int64(1096), expense.TotalTgtMinor)
	assert.Equal(t, ExpenseStatusPending, expense.Status)
	assert.Equal(t, now, expense.CreatedAt)
	assert.Equal(t, "1.0956", expense.FxRate)
	assert.Equal(t, "ecb", expense.FxRateProvider)

	require.Len(t, expense.Participants, 3)
	srcShares := []int64{334, 333, 333}
	tgtShares := []int64{366, 365, 365}
	userIDs := []string{"u1", "u2", "u3"}
	for i, p := range expense.Participants {
		assert.Equal(t, userIDs[i], p.UserID)
		assert.Equal(t, srcShares[i], p.ShareSrcMinor)
		assert.Equal(t, tgtShares[i], p.ShareTgtMinor)
		assert.Equal(t, ParticipantStatusPending, p.Status)
		assert.Nil(t, p.SettledAt)
	}
}

func TestNewSharedExpenseExactSums(t *testing.T) {
	cases := []struct {
		amount       int64
		rate         string
		participants []string
	}{
		{100, "1", []string{"a", "b", "c"}},
		{1, "0.5", []string{"a"}},
		{999, "1.3333", []string{"a", "b"}},
		{75321, "0.00731", []string{"a", "b", "c", "d", "e", "f", "g"}},
		{500, "142.17", []string{"a", "b", "c"}},
	}
	for _, tc := range cases {
		in := validInput()
		in.AmountSrcMinor = tc.amount
		in.FxRate = tc.rate
		in.ParticipantUserIDs = tc.participants

		expense, err := NewSharedExpense(in, time.Now().UTC())
		require.NoError(t, err)

		var srcSum, tgtSum int64
		for _, p := range expense.Participants {
			srcSum += p.ShareSrcMinor
			tgtSum += p.ShareTgtMinor
		}
		assert.Equal(t, expense.AmountSrcMinor, srcSum, "amount=%d rate=%s n=%d", tc.amount, tc.rate, len(tc.participants))
		assert.Equal(t, expense.TotalTgtMinor, tgtSum, "amount=%d rate=%s n=%d", tc.amount, tc.rate, len(tc.participants))
	}
}

func TestNewSharedExpenseIdentityConversion(t *testing.T) {
	in := validInput()
	in.SrcCurrency = "USD"
	in.TgtCurrency = "USD"
	in.FxRate = "1"

	expense, err := NewSharedExpense(in, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, expense.AmountSrcMinor, expense.TotalTgtMinor)
	for _, p := range expense.Participants {
		assert.Equal(t, p.ShareSrcMinor, p.ShareTgtMinor)
	}
}

func TestNewSharedExpenseDeterminism(t *testing.T) {
	now := time.Now().UTC()
	first, err := NewSharedExpense(validInput(), now)
	require.NoError(t, err)
	second, err := NewSharedExpense(validInput(), now)
	require.NoError(t, err)

	assert.Equal(t, first.TotalTgtMinor, second.TotalTgtMinor)
	assert.Equal(t, first.Participants, second.Participants)
}

func TestNewSharedExpenseValidation(t *testing.T) {
	in := validInput()
	in.AmountSrcMinor = -500
	_, err := NewSharedExpense(in, time.Now().UTC())
	assert.ErrorIs(t, err, util.ErrInvalidAmount)

	in = validInput()
	in.AmountSrcMinor = 0
	_, err = NewSharedExpense(in, time.Now().UTC())
	assert.ErrorIs(t, err, util.ErrInvalidAmount)

	in = validInput()
	in.ParticipantUserIDs = nil
	_, err = NewSharedExpense(in, time.Now().UTC())
	assert.ErrorIs(t, err, util.ErrInvalidParticipants)

	// Duplicate ids would double-share a user; rejected outright.
	in = validInput()
	in.ParticipantUserIDs = []string{"u1", "u2", "u1"}
	_, err = NewSharedExpense(in, time.Now().UTC())
	assert.ErrorIs(t, err, util.ErrInvalidParticipants)

	in = validInput()
	in.FxRate = "0"
	_, err = NewSharedExpense(in, time.Now().UTC())
	assert.ErrorIs(t, err, util.ErrInvalidRate)

	in = validInput()
	in.FxRate = "garbage"
	_, err = NewSharedExpense(in, time.Now().UTC())
	assert.ErrorIs(t, err, util.ErrInvalidRate)
}

func TestMarkParticipantPaid(t *testing.T) {
	now := time.Date(2025, 8, 21, 9, 0, 0, 0, time.UTC)
	in := validInput()
	in.ParticipantUserIDs = []string{"u1", "u2"}
	expense, err := NewSharedExpense(in, now)
	require.NoError(t, err)

	payTime := now.Add(time.Hour)
	require.NoError(t, expense.MarkParticipantPaid("u1", payTime))
	assert.Equal(t, ParticipantStatusPaid, expense.Participants[0].Status)
	require.NotNil(t, expense.Participants[0].SettledAt)
	assert.Equal(t, payTime, *expense.Participants[0].SettledAt)
	// One participant still pending: record stays pending.
	assert.Equal(t, ExpenseStatusPending, expense.Status)

	// Re-marking is idempotent: shares and the original SettledAt survive.
	later := payTime.Add(time.Hour)
	require.NoError(t, expense.MarkParticipantPaid("u1", later))
	assert.Equal(t, payTime, *expense.Participants[0].SettledAt)
	assert.Equal(t, ParticipantStatusPaid, expense.Participants[0].Status)
	assert.Equal(t, ExpenseStatusPending, expense.Status)

	// Last payer flips the record to settled, exactly then.
	require.NoError(t, expense.MarkParticipantPaid("u2", later))
	assert.Equal(t, ExpenseStatusSettled, expense.Status)

	err = expense.MarkParticipantPaid("stranger", later)
	assert.ErrorIs(t, err, util.ErrParticipantNotFound)
}

func TestCloneIsolation(t *testing.T) {
	expense, err := NewSharedExpense(validInput(), time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, expense.MarkParticipantPaid("u1", time.Now().UTC()))

	clone := expense.Clone()
	clone.AmountSrcMinor = 0
	clone.Participants[0].ShareSrcMinor = -1
	clone.Participants[0].Status = ParticipantStatusPending
	*clone.Participants[0].SettledAt = time.Time{}

	assert.Equal(t, int64(1000), expense.AmountSrcMinor)
	assert.Equal(t, int64(334), expense.Participants[0].ShareSrcMinor)
	assert.Equal(t, ParticipantStatusPaid, expense.Participants[0].Status)
	assert.False(t, expense.Participants[0].SettledAt.IsZero())
}
