// internal/repository/postgres/activity_pg.go
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

// ActivityRepository implements repository.ActivityRepository for PostgreSQL.
type ActivityRepository struct{}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *sqlx.DB) repository.ActivityRepository {
	return &ActivityRepository{}
}

// CreateActivity inserts a new activity using the provided DBExecutor.
func (r *ActivityRepository) CreateActivity(ctx context.Context, q repository.DBExecutor, activity *domain.Activity) error {
	query := `INSERT INTO activities (trip_id, name, description, location, start_time, proposed_by, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := q.QueryRowContext(ctx, query, activity.TripID, activity.Name, activity.Description,
		activity.Location, activity.StartTime, activity.ProposedBy, activity.CreatedAt).Scan(&activity.ID)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

// GetActivityByID retrieves an activity by its ID using the provided DBExecutor.
func (r *ActivityRepository) GetActivityByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Activity, error) {
	var activity domain.Activity
	query := `SELECT id, trip_id, name, description, location, start_time, proposed_by, created_at
              FROM activities WHERE id = $1`
	err := q.GetContext(ctx, &activity, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get activity by ID %d: %w", id, err)
	}
	return &activity, nil
}

// ListActivitiesByTrip retrieves a trip's activities ordered by start time.
func (r *ActivityRepository) ListActivitiesByTrip(ctx context.Context, q repository.DBExecutor, tripID int64) ([]domain.Activity, error) {
	var activities []domain.Activity
	query := `SELECT id, trip_id, name, description, location, start_time, proposed_by, created_at
              FROM activities WHERE trip_id = $1 ORDER BY start_time`
	if err := q.SelectContext(ctx, &activities, query, tripID); err != nil {
		return nil, fmt.Errorf("failed to list activities for trip %d: %w", tripID, err)
	}
	return activities, nil
}

// UpsertResponse records or replaces a member's accept/decline for an activity.
func (r *ActivityRepository) UpsertResponse(ctx context.Context, q repository.DBExecutor, response *domain.ActivityResponse) error {
	query := `INSERT INTO activity_responses (activity_id, user_id, status, responded_at)
              VALUES ($1, $2, $3, $4)
              ON CONFLICT (activity_id, user_id) DO UPDATE SET status = $3, responded_at = $4`
	if _, err := q.ExecContext(ctx, query, response.ActivityID, response.UserID, response.Status, response.RespondedAt); err != nil {
		return fmt.Errorf("failed to upsert response for activity %d: %w", response.ActivityID, err)
	}
	return nil
}

// ListResponses retrieves all responses for an activity.
func (r *ActivityRepository) ListResponses(ctx context.Context, q repository.DBExecutor, activityID int64) ([]domain.ActivityResponse, error) {
	var responses []domain.ActivityResponse
	query := `SELECT activity_id, user_id, status, responded_at FROM activity_responses
              WHERE activity_id = $1 ORDER BY responded_at`
	if err := q.SelectContext(ctx, &responses, query, activityID); err != nil {
		return nil, fmt.Errorf("failed to list responses for activity %d: %w", activityID, err)
	}
	return responses, nil
}
