// internal/repository/postgres/trip_pg.go
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

// TripRepository implements repository.TripRepository for PostgreSQL.
type TripRepository struct{}

// NewTripRepository creates a new TripRepository.
func NewTripRepository(db *sqlx.DB) repository.TripRepository {
	return &TripRepository{}
}

// CreateTrip inserts a new trip using the provided DBExecutor.
func (r *TripRepository) CreateTrip(ctx context.Context, q repository.DBExecutor, trip *domain.Trip) error {
	query := `INSERT INTO trips (name, destination, start_date, end_date, share_code, created_by, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	err := q.QueryRowContext(ctx, query, trip.Name, trip.Destination, trip.StartDate, trip.EndDate,
		trip.ShareCode, trip.CreatedBy, trip.CreatedAt, trip.UpdatedAt).Scan(&trip.ID)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

// GetTripByID retrieves a trip by its ID using the provided DBExecutor.
func (r *TripRepository) GetTripByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Trip, error) {
	var trip domain.Trip
	query := `SELECT id, name, destination, start_date, end_date, share_code, created_by, created_at, updated_at
              FROM trips WHERE id = $1`
	err := q.GetContext(ctx, &trip, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trip by ID %d: %w", id, err)
	}
	return &trip, nil
}

// GetTripByShareCode retrieves a trip by its invite code using the provided DBExecutor.
func (r *TripRepository) GetTripByShareCode(ctx context.Context, q repository.DBExecutor, shareCode string) (*domain.Trip, error) {
	var trip domain.Trip
	query := `SELECT id, name, destination, start_date, end_date, share_code, created_by, created_at, updated_at
              FROM trips WHERE share_code = $1`
	err := q.GetContext(ctx, &trip, query, shareCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get trip by share code: %w", err)
	}
	return &trip, nil
}

// ListTripsByUser retrieves all trips the user is a member of.
func (r *TripRepository) ListTripsByUser(ctx context.Context, q repository.DBExecutor, userID string) ([]domain.Trip, error) {
	var trips []domain.Trip
	query := `SELECT t.id, t.name, t.destination, t.start_date, t.end_date, t.share_code, t.created_by, t.created_at, t.updated_at
              FROM trips t JOIN trip_members m ON m.trip_id = t.id
              WHERE m.user_id = $1 ORDER BY t.start_date`
	if err := q.SelectContext(ctx, &trips, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list trips for user %s: %w", userID, err)
	}
	return trips, nil
}

// AddMember records a user joining a trip.
func (r *TripRepository) AddMember(ctx context.Context, q repository.DBExecutor, member *domain.TripMember) error {
	query := `INSERT INTO trip_members (trip_id, user_id, joined_at) VALUES ($1, $2, $3)
              ON CONFLICT (trip_id, user_id) DO NOTHING`
	if _, err := q.ExecContext(ctx, query, member.TripID, member.UserID, member.JoinedAt); err != nil {
		return fmt.Errorf("failed to add member to trip %d: %w", member.TripID, err)
	}
	return nil
}

// ListMembers retrieves a trip's members.
func (r *TripRepository) ListMembers(ctx context.Context, q repository.DBExecutor, tripID int64) ([]domain.TripMember, error) {
	var members []domain.TripMember
	query := `SELECT trip_id, user_id, joined_at FROM trip_members WHERE trip_id = $1 ORDER BY joined_at`
	if err := q.SelectContext(ctx, &members, query, tripID); err != nil {
		return nil, fmt.Errorf("failed to list members for trip %d: %w", tripID, err)
	}
	return members, nil
}

// IsMember reports whether the user belongs to the trip.
func (r *TripRepository) IsMember(ctx context.Context, q repository.DBExecutor, tripID int64, userID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM trip_members WHERE trip_id = $1 AND user_id = $2)`
	if err := q.GetContext(ctx, &exists, query, tripID, userID); err != nil {
		return false, fmt.Errorf("failed to check membership for trip %d: %w", tripID, err)
	}
	return exists, nil
}
