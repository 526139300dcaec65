// internal/service/proposal_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/preilly17/VacationSync-sub009/internal/domain"
	"github.com/preilly17/VacationSync-sub009/internal/notify"
	"github.com/preilly17/VacationSync-sub009/internal/repository"
	"github.com/preilly17/VacationSync-sub009/internal/util"
)

// ProposalWithVotes pairs a proposal with its ranked votes.
type ProposalWithVotes struct {
	Proposal domain.Proposal       `json:"proposal"`
	Votes    []domain.ProposalVote `json:"votes"`
}

// ProposalService defines the interface for hotel/restaurant proposal logic.
type ProposalService interface {
	AddProposal(ctx context.Context, proposal *domain.Proposal) (*domain.Proposal, error)
	ListTripProposals(ctx context.Context, tripID int64, kind domain.ProposalKind) ([]ProposalWithVotes, error)
	Vote(ctx context.Context, proposalID int64, userID string, rank int) (*domain.ProposalVote, error)
}

type proposalService struct {
	dbExecutor   repository.DBExecutor
	proposalRepo repository.ProposalRepository
	publisher    notify.Publisher
}

// NewProposalService creates a new instance of ProposalService.
func NewProposalService(dbExecutor repository.DBExecutor, proposalRepo repository.ProposalRepository, publisher notify.Publisher) ProposalService {
	return &proposalService{dbExecutor: dbExecutor, proposalRepo: proposalRepo, publisher: publisher}
}

// AddProposal stores a hotel or restaurant suggestion and announces it.
func (s *proposalService) AddProposal(ctx context.Context, proposal *domain.Proposal) (*domain.Proposal, error) {
	if proposal.Title == "" {
		return nil, util.ErrInvalidInput
	}
	if proposal.Kind != domain.ProposalKindHotel && proposal.Kind != domain.ProposalKindRestaurant {
		return nil, util.ErrInvalidInput
	}

	if err := s.proposalRepo.CreateProposal(ctx, s.dbExecutor, proposal); err != nil {
		return nil, fmt.Errorf("add proposal: %w", err)
	}

	s.publisher.Publish(notify.Event{
		Type:      notify.EventProposalAdded,
		TripID:    proposal.TripID,
		Payload:   proposal,
		Timestamp: time.Now().UTC(),
	})
	return proposal, nil
}

// ListTripProposals returns a trip's proposals of one kind with their votes.
func (s *proposalService) ListTripProposals(ctx context.Context, tripID int64, kind domain.ProposalKind) ([]ProposalWithVotes, error) {
	proposals, err := s.proposalRepo.ListProposalsByTrip(ctx, s.dbExecutor, tripID, kind)
	if err != nil {
		return nil, fmt.Errorf("list proposals for trip %d: %w", tripID, err)
	}

	out := make([]ProposalWithVotes, 0, len(proposals))
	for _, proposal := range proposals {
		votes, err := s.proposalRepo.ListVotes(ctx, s.dbExecutor, proposal.ID)
		if err != nil {
			return nil, fmt.Errorf("list votes for proposal %d: %w", proposal.ID, err)
		}
		out = append(out, ProposalWithVotes{Proposal: proposal, Votes: votes})
	}
	return out, nil
}

// Vote records or replaces a member's rank for a proposal and announces it.
func (s *proposalService) Vote(ctx context.Context, proposalID int64, userID string, rank int) (*domain.ProposalVote, error) {
	if rank < 1 {
		return nil, util.ErrInvalidInput
	}

	proposal, err := s.proposalRepo.GetProposalByID(ctx, s.dbExecutor, proposalID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("vote: failed to get proposal %d: %w", proposalID, err)
	}

	vote := &domain.ProposalVote{
		ProposalID: proposalID,
		UserID:     userID,
		Rank:       rank,
		VotedAt:    time.Now().UTC(),
	}
	if err := s.proposalRepo.UpsertVote(ctx, s.dbExecutor, vote); err != nil {
		return nil, fmt.Errorf("vote on proposal %d: %w", proposalID, err)
	}

	s.publisher.Publish(notify.Event{
		Type:      notify.EventProposalVoted,
		TripID:    proposal.TripID,
		Payload:   vote,
		Timestamp: vote.VotedAt,
	})
	return vote, nil
}
