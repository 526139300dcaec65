// internal/domain/proposal.go
package domain

import "time"

// ProposalKind discriminates hotel and restaurant proposals, which share one
// shape and one ranked-voting mechanic.
type ProposalKind string

const (
	ProposalKindHotel      ProposalKind = "hotel"
	ProposalKindRestaurant ProposalKind = "restaurant"
)

// Proposal is a hotel or restaurant suggestion members rank against the
// alternatives for the same trip.
type Proposal struct {
	ID         int64        `db:"id" json:"id"`
	TripID     int64        `db:"trip_id" json:"tripId"`
	Kind       ProposalKind `db:"kind" json:"kind"`
	Title      string       `db:"title" json:"title"`
	Details    string       `db:"details" json:"details,omitempty"`
	URL        string       `db:"url" json:"url,omitempty"`
	PriceMinor int64        `db:"price_minor" json:"priceMinor,omitempty"`
	Currency   string       `db:"currency" json:"currency,omitempty"`
	ProposedBy string       `db:"proposed_by" json:"proposedBy"`
	CreatedAt  time.Time    `db:"created_at" json:"createdAt"`
}

// ProposalVote is one member's ranking of a proposal. Rank 1 is the member's
// top choice among the trip's proposals of that kind; voting again replaces
// the previous rank.
type ProposalVote struct {
	ProposalID int64     `db:"proposal_id" json:"proposalId"`
	UserID     string    `db:"user_id" json:"userId"`
	Rank       int       `db:"rank" json:"rank"`
	VotedAt    time.Time `db:"voted_at" json:"votedAt"`
}

// NewProposal creates a new Proposal instance.
func NewProposal(tripID int64, kind ProposalKind, title, details, url string, priceMinor int64, currency, proposedBy string) *Proposal {
	return &Proposal{
		TripID:     tripID,
		Kind:       kind,
		Title:      title,
		Details:    details,
		URL:        url,
		PriceMinor: priceMinor,
		Currency:   currency,
		ProposedBy: proposedBy,
		CreatedAt:  time.Now().UTC(),
	}
}
