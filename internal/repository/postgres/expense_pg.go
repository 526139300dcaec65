// internal/repository/postgres/expense_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/preilly17/VacationSync-sub009/internal/domain"
	"github.com/preilly17/VacationSync-sub009/internal/repository"
	"github.com/preilly17/VacationSync-sub009/internal/util"
	"github.com/preilly17/VacationSync-sub009/pkg/db"
)

// ExpenseStore implements repository.ExpenseStore for PostgreSQL. Every
// mutation runs inside a transaction: a create commits the expense row and
// all its participant rows or none of them.
type ExpenseStore struct {
	db         *sqlx.DB
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
	clock      func() time.Time
}

// NewExpenseStore creates a new PostgreSQL-backed ExpenseStore.
func NewExpenseStore(dbConn *sqlx.DB, beginTx db.BeginTxFunc, commitTx db.CommitTxFunc, rollbackTx db.RollbackTxFunc) *ExpenseStore {
	return &ExpenseStore{
		db:         dbConn,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

// Create allocates shares and commits the expense with all participant rows
// in one transaction.
func (s *ExpenseStore) Create(ctx context.Context, in domain.NewSharedExpenseInput) (*domain.SharedExpense, error) {
	expense, err := domain.NewSharedExpense(in, s.clock())
	if err != nil {
		return nil, err
	}

	txController, err := s.beginTx(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("create expense: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create expense: transaction controller does not implement DBExecutor")
	}

	insertExpense := `INSERT INTO shared_expenses
		(trip_id, payer_user_id, description, category, amount_src_minor, total_tgt_minor,
		 src_currency, tgt_currency, fx_rate, fx_rate_provider, fx_rate_timestamp, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	err = txExecutor.QueryRowContext(ctx, insertExpense,
		expense.TripID, expense.PayerUserID, expense.Description, expense.Category,
		expense.AmountSrcMinor, expense.TotalTgtMinor, expense.SrcCurrency, expense.TgtCurrency,
		expense.FxRate, expense.FxRateProvider, expense.FxRateTimestamp, expense.Status, expense.CreatedAt,
	).Scan(&expense.ID)
	if err != nil {
		return nil, fmt.Errorf("create expense: failed to insert expense: %w", err)
	}

	insertShare := `INSERT INTO expense_participants
		(expense_id, user_id, share_src_minor, share_tgt_minor, status, settled_at, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i, p := range expense.Participants {
		if _, err := txExecutor.ExecContext(ctx, insertShare,
			expense.ID, p.UserID, p.ShareSrcMinor, p.ShareTgtMinor, p.Status, p.SettledAt, i,
		); err != nil {
			return nil, fmt.Errorf("create expense: failed to insert participant %s: %w", p.UserID, err)
		}
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create expense: failed to commit transaction: %w", err)
	}

	return expense, nil
}

// List returns all expenses, most-recently-created first.
func (s *ExpenseStore) List(ctx context.Context) ([]*domain.SharedExpense, error) {
	return s.list(ctx, `SELECT id, trip_id, payer_user_id, description, category, amount_src_minor,
		total_tgt_minor, src_currency, tgt_currency, fx_rate, fx_rate_provider, fx_rate_timestamp,
		status, created_at FROM shared_expenses ORDER BY id DESC`)
}

// ListByTrip returns one trip's expenses, most-recently-created first.
func (s *ExpenseStore) ListByTrip(ctx context.Context, tripID int64) ([]*domain.SharedExpense, error) {
	return s.list(ctx, `SELECT id, trip_id, payer_user_id, description, category, amount_src_minor,
		total_tgt_minor, src_currency, tgt_currency, fx_rate, fx_rate_provider, fx_rate_timestamp,
		status, created_at FROM shared_expenses WHERE trip_id = $1 ORDER BY id DESC`, tripID)
}

func (s *ExpenseStore) list(ctx context.Context, query string, args ...interface{}) ([]*domain.SharedExpense, error) {
	var rows []domain.SharedExpense
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	out := make([]*domain.SharedExpense, 0, len(rows))
	for i := range rows {
		expense := rows[i]
		if err := s.loadParticipants(ctx, s.db, &expense); err != nil {
			return nil, err
		}
		out = append(out, &expense)
	}
	return out, nil
}

func (s *ExpenseStore) loadParticipants(ctx context.Context, q repository.DBExecutor, expense *domain.SharedExpense) error {
	query := `SELECT user_id, share_src_minor, share_tgt_minor, status, settled_at
		FROM expense_participants WHERE expense_id = $1 ORDER BY position`
	if err := q.SelectContext(ctx, &expense.Participants, query, expense.ID); err != nil {
		return fmt.Errorf("load participants for expense %d: %w", expense.ID, err)
	}
	return nil
}

// MarkParticipantPaid advances one participant to paid and recomputes the
// derived record status inside a single transaction.
func (s *ExpenseStore) MarkParticipantPaid(ctx context.Context, expenseID int64, userID string) (*domain.SharedExpense, error) {
	txController, err := s.beginTx(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("mark paid: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("mark paid: transaction controller does not implement DBExecutor")
	}

	var expense domain.SharedExpense
	getExpense := `SELECT id, trip_id, payer_user_id, description, category, amount_src_minor,
		total_tgt_minor, src_currency, tgt_currency, fx_rate, fx_rate_provider, fx_rate_timestamp,
		status, created_at FROM shared_expenses WHERE id = $1 FOR UPDATE`
	if err := txExecutor.GetContext(ctx, &expense, getExpense, expenseID); err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("mark paid: failed to get expense %d: %w", expenseID, err)
	}
	if err := s.loadParticipants(ctx, txExecutor, &expense); err != nil {
		return nil, err
	}

	if err := expense.MarkParticipantPaid(userID, s.clock()); err != nil {
		return nil, err
	}

	for _, p := range expense.Participants {
		if p.UserID != userID {
			continue
		}
		updateShare := `UPDATE expense_participants SET status = $1, settled_at = $2
			WHERE expense_id = $3 AND user_id = $4`
		if _, err := txExecutor.ExecContext(ctx, updateShare, p.Status, p.SettledAt, expenseID, userID); err != nil {
			return nil, fmt.Errorf("mark paid: failed to update participant %s: %w", userID, err)
		}
	}

	updateExpense := `UPDATE shared_expenses SET status = $1 WHERE id = $2`
	if _, err := txExecutor.ExecContext(ctx, updateExpense, expense.Status, expenseID); err != nil {
		return nil, fmt.Errorf("mark paid: failed to update expense %d: %w", expenseID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("mark paid: failed to commit transaction: %w", err)
	}

	return &expense, nil
}

// Reset truncates the expense tables and restarts ids. Test isolation only.
func (s *ExpenseStore) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `TRUNCATE TABLE expense_participants, shared_expenses RESTART IDENTITY CASCADE`)
	if err != nil {
		return fmt.Errorf("reset expenses: %w", err)
	}
	return nil
}

var _ repository.ExpenseStore = (*ExpenseStore)(nil)
