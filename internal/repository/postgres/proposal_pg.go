// internal/repository/postgres/proposal_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/preilly17/VacationSync-sub009/internal/domain"
	"github.com/preilly17/VacationSync-sub009/internal/repository"
	"github.com/preilly17/VacationSync-sub009/internal/util"
)

// ProposalRepository implements repository.ProposalRepository for PostgreSQL.
type ProposalRepository struct{}

// NewProposalRepository creates a new ProposalRepository.
func NewProposalRepository(db *sqlx.DB) repository.ProposalRepository {
	return &ProposalRepository{}
}

// CreateProposal inserts a new proposal using the provided DBExecutor.
func (r *ProposalRepository) CreateProposal(ctx context.Context, q repository.DBExecutor, proposal *domain.Proposal) error {
	query := `INSERT INTO proposals (trip_id, kind, title, details, url, price_minor, currency, proposed_by, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := q.QueryRowContext(ctx, query, proposal.TripID, proposal.Kind, proposal.Title, proposal.Details,
		proposal.URL, proposal.PriceMinor, proposal.Currency, proposal.ProposedBy, proposal.CreatedAt).Scan(&proposal.ID)
	if err != nil {
		return fmt.Errorf("failed to create proposal: %w", err)
	}
	return nil
}

// GetProposalByID retrieves a proposal by its ID using the provided DBExecutor.
func (r *ProposalRepository) GetProposalByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Proposal, error) {
	var proposal domain.Proposal
	query := `SELECT id, trip_id, kind, title, details, url, price_minor, currency, proposed_by, created_at
              FROM proposals WHERE id = $1`
	err := q.GetContext(ctx, &proposal, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get proposal by ID %d: %w", id, err)
	}
	return &proposal, nil
}

// ListProposalsByTrip retrieves a trip's proposals of the given kind.
func (r *ProposalRepository) ListProposalsByTrip(ctx context.Context, q repository.DBExecutor, tripID int64, kind domain.ProposalKind) ([]domain.Proposal, error) {
	var proposals []domain.Proposal
	query := `SELECT id, trip_id, kind, title, details, url, price_minor, currency, proposed_by, created_at
              FROM proposals WHERE trip_id = $1 AND kind = $2 ORDER BY created_at DESC`
	if err := q.SelectContext(ctx, &proposals, query, tripID, kind); err != nil {
		return nil, fmt.Errorf("failed to list proposals for trip %d: %w", tripID, err)
	}
	return proposals, nil
}

// UpsertVote records or replaces a member's rank for a proposal.
func (r *ProposalRepository) UpsertVote(ctx context.Context, q repository.DBExecutor, vote *domain.ProposalVote) error {
	query := `INSERT INTO proposal_votes (proposal_id, user_id, rank, voted_at)
              VALUES ($1, $2, $3, $4)
              ON CONFLICT (proposal_id, user_id) DO UPDATE SET rank = $3, voted_at = $4`
	if _, err := q.ExecContext(ctx, query, vote.ProposalID, vote.UserID, vote.Rank, vote.VotedAt); err != nil {
		return fmt.Errorf("failed to upsert vote for proposal %d: %w", vote.ProposalID, err)
	}
	return nil
}

// ListVotes retrieves all votes for a proposal.
func (r *ProposalRepository) ListVotes(ctx context.Context, q repository.DBExecutor, proposalID int64) ([]domain.ProposalVote, error) {
	var votes []domain.ProposalVote
	query := `SELECT proposal_id, user_id, rank, voted_at FROM proposal_votes
              WHERE proposal_id = $1 ORDER BY rank`
	if err := q.SelectContext(ctx, &votes, query, proposalID); err != nil {
		return nil, fmt.Errorf("failed to list votes for proposal %d: %w", proposalID, err)
	}
	return votes, nil
}
