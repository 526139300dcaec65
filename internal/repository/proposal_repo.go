// internal/repository/proposal_repo.go
package repository

import (
	"context"

	"github.com/preilly17/VacationSync-sub009/internal/domain"
)

// ProposalRepository defines the interface for hotel/restaurant proposal data operations.
type ProposalRepository interface {
	// CreateProposal adds a new proposal using the provided DBExecutor.
	CreateProposal(ctx context.Context, q DBExecutor, proposal *domain.Proposal) error
	// GetProposalByID retrieves a proposal by its ID.
	GetProposalByID(ctx context.Context, q DBExecutor, id int64) (*domain.Proposal, error)
	// ListProposalsByTrip retrieves a trip's proposals of the given kind.
	ListProposalsByTrip(ctx context.Context, q DBExecutor, tripID int64, kind domain.ProposalKind) ([]domain.Proposal, error)
	// UpsertVote records or replaces a member's rank for a proposal.
	UpsertVote(ctx context.Context, q DBExecutor, vote *domain.ProposalVote) error
	// ListVotes retrieves all votes for a proposal.
	ListVotes(ctx context.Context, q DBExecutor, proposalID int64) ([]domain.ProposalVote, error)
}
