// internal/repository/trip_repo.go
package repository

import (
	"context"

	"github.com/preilly17/VacationSync-sub009/internal/domain"
)

// TripRepository defines the interface for trip data operations.
type TripRepository interface {
	// CreateTrip adds a new trip and its creator's membership using the provided DBExecutor.
	CreateTrip(ctx context.Context, q DBExecutor, trip *domain.Trip) error
	// GetTripByID retrieves a trip by its ID using the provided DBExecutor.
	GetTripByID(ctx context.Context, q DBExecutor, id int64) (*domain.Trip, error)
	// GetTripByShareCode retrieves a trip by its invite code using the provided DBExecutor.
	GetTripByShareCode(ctx context.Context, q DBExecutor, shareCode string) (*domain.Trip, error)
	// ListTripsByUser retrieves all trips the user is a member of.
	ListTripsByUser(ctx context.Context, q DBExecutor, userID string) ([]domain.Trip, error)
	// AddMember records a user joining a trip.
	AddMember(ctx context.Context, q DBExecutor, member *domain.TripMember) error
	// ListMembers retrieves a trip's members.
	ListMembers(ctx context.Context, q DBExecutor, tripID int64) ([]domain.TripMember, error)
	// IsMember reports whether the user belongs to the trip.
	IsMember(ctx context.Context, q DBExecutor, tripID int64, userID string) (bool, error)
}
