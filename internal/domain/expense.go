// internal/domain/expense.go
package domain

import (
	"time"

	"github.com/preilly17/VacationSync-sub009/internal/util"
)

// ParticipantStatus is the payment state of a single participant's share.
type ParticipantStatus string

const (
	ParticipantStatusPending ParticipantStatus = "pending"
	ParticipantStatusPaid    ParticipantStatus = "paid"
)

// ExpenseStatus is the settlement state of a whole shared expense. It is
// derived from participant state and never set directly.
type ExpenseStatus string

const (
	ExpenseStatusPending ExpenseStatus = "pending"
	ExpenseStatusSettled ExpenseStatus = "settled"
)

// ExpenseShare is one participant's portion of a shared expense, carried in
// both the source and target currency minor units.
type ExpenseShare struct {
	UserID        string            `db:"user_id" json:"userId"`
	ShareSrcMinor int64             `db:"share_src_minor" json:"shareSrcMinor"`
	ShareTgtMinor int64             `db:"share_tgt_minor" json:"shareTgtMinor"`
	Status        ParticipantStatus `db:"status" json:"status"`
	SettledAt     *time.Time        `db:"settled_at" json:"settledAt,omitempty"`
}

// SharedExpense is an expense fronted by one trip member and split across a
// group. Money fields, the currency pair and the rate provenance are immutable
// after creation; only participant payment state (and the derived Status)
// mutates, and only pending -> paid.
type SharedExpense struct {
	ID              int64          `db:"id" json:"id"`
	TripID          int64          `db:"trip_id" json:"tripId"`
	PayerUserID     string         `db:"payer_user_id" json:"payerUserId"`
	Description     string         `db:"description" json:"description"`
	Category        string         `db:"category" json:"category,omitempty"`
	AmountSrcMinor  int64          `db:"amount_src_minor" json:"amountSrcMinor"`
	TotalTgtMinor   int64          `db:"total_tgt_minor" json:"totalTgtMinor"`
	SrcCurrency     string         `db:"src_currency" json:"srcCurrency"`
	TgtCurrency     string         `db:"tgt_currency" json:"tgtCurrency"`
	FxRate          string         `db:"fx_rate" json:"fxRate"`
	FxRateProvider  string         `db:"fx_rate_provider" json:"fxRateProvider"`
	FxRateTimestamp time.Time      `db:"fx_rate_timestamp" json:"fxRateTimestamp"`
	Participants    []ExpenseShare `db:"-" json:"participants"`
	Status          ExpenseStatus  `db:"status" json:"status"`
	CreatedAt       time.Time      `db:"created_at" json:"createdAt"`
}

// NewSharedExpenseInput carries everything needed to allocate a new expense.
// The rate and its provenance come already resolved from an upstream FX
// lookup; participant ids come already validated as known users.
type NewSharedExpenseInput struct {
	TripID             int64
	PayerUserID        string
	Description        string
	Category           string
	AmountSrcMinor     int64
	SrcCurrency        string
	TgtCurrency        string
	FxRate             string
	FxRateProvider     string
	FxRateTimestamp    time.Time
	ParticipantUserIDs []string
}

// NewSharedExpense allocates a shared expense: it converts the source total
// into the target currency and splits both totals across the participants in
// the order supplied. It is a pure function of its inputs; the returned record
// has no ID (the store assigns one) and CreatedAt set to now.
//
// The defining invariant: the participant shares sum exactly to
// AmountSrcMinor and TotalTgtMinor respectively, with no minor unit lost to
// division.
func NewSharedExpense(in NewSharedExpenseInput, now time.Time) (*SharedExpense, error) {
	if in.AmountSrcMinor <= 0 {
		return nil, util.ErrInvalidAmount
	}
	if len(in.ParticipantUserIDs) == 0 {
		return nil, util.ErrInvalidParticipants
	}
	// Duplicate ids would hand the same user two shares; reject instead.
	seen := make(map[string]struct{}, len(in.ParticipantUserIDs))
	for _, id := range in.ParticipantUserIDs {
		if _, dup := seen[id]; dup {
			return nil, util.ErrInvalidParticipants
		}
		seen[id] = struct{}{}
	}

	rate, err := ParseRate(in.FxRate)
	if err != nil {
		return nil, err
	}
	totalTgt := ConvertMinor(in.AmountSrcMinor, rate)

	srcShares := SplitMinor(in.AmountSrcMinor, len(in.ParticipantUserIDs))
	tgtShares := SplitMinor(totalTgt, len(in.ParticipantUserIDs))

	participants := make([]ExpenseShare, len(in.ParticipantUserIDs))
	for i, userID := range in.ParticipantUserIDs {
		participants[i] = ExpenseShare{
			UserID:        userID,
			ShareSrcMinor: srcShares[i],
			ShareTgtMinor: tgtShares[i],
			Status:        ParticipantStatusPending,
		}
	}

	return &SharedExpense{
		TripID:          in.TripID,
		PayerUserID:     in.PayerUserID,
		Description:     in.Description,
		Category:        in.Category,
		AmountSrcMinor:  in.AmountSrcMinor,
		TotalTgtMinor:   totalTgt,
		SrcCurrency:     in.SrcCurrency,
		TgtCurrency:     in.TgtCurrency,
		FxRate:          in.FxRate,
		FxRateProvider:  in.FxRateProvider,
		FxRateTimestamp: in.FxRateTimestamp,
		Participants:    participants,
		Status:          ExpenseStatusPending,
		CreatedAt:       now,
	}, nil
}

// MarkParticipantPaid advances the given participant to paid, stamping
// SettledAt once and recomputing the derived record status. Marking an
// already-paid participant is an idempotent no-op, not an error.
func (e *SharedExpense) MarkParticipantPaid(userID string, now time.Time) error {
	for i := range e.Participants {
		if e.Participants[i].UserID != userID {
			continue
		}
		if e.Participants[i].Status != ParticipantStatusPaid {
			settled := now
			e.Participants[i].Status = ParticipantStatusPaid
			e.Participants[i].SettledAt = &settled
		}
		e.recomputeStatus()
		return nil
	}
	return util.ErrParticipantNotFound
}

// recomputeStatus derives the record status: settled iff every participant
// has paid.
func (e *SharedExpense) recomputeStatus() {
	for i := range e.Participants {
		if e.Participants[i].Status != ParticipantStatusPaid {
			e.Status = ExpenseStatusPending
			return
		}
	}
	e.Status = ExpenseStatusSettled
}

// Clone returns a deep copy. Stores hand out clones so callers can never
// mutate internal state through a returned record.
func (e *SharedExpense) Clone() *SharedExpense {
	clone := *e
	clone.Participants = make([]ExpenseShare, len(e.Participants))
	for i, p := range e.Participants {
		clone.Participants[i] = p
		if p.SettledAt != nil {
			settled := *p.SettledAt
			clone.Participants[i].SettledAt = &settled
		}
	}
	return &clone
}
