// internal/repository/activity_repo.go
package repository

import (
	"context"

	"github.com/preilly17/VacationSync-sub009/internal/domain"
)

// ActivityRepository defines the interface for activity data operations.
type ActivityRepository interface {
	// CreateActivity adds a new activity using the provided DBExecutor.
	CreateActivity(ctx context.Context, q DBExecutor, activity *domain.Activity) error
	// GetActivityByID retrieves an activity by its ID.
	GetActivityByID(ctx context.Context, q DBExecutor, id int64) (*domain.Activity, error)
	// ListActivitiesByTrip retrieves a trip's activities ordered by start time.
	ListActivitiesByTrip(ctx context.Context, q DBExecutor, tripID int64) ([]domain.Activity, error)
	// UpsertResponse records or replaces a member's accept/decline for an activity.
	UpsertResponse(ctx context.Context, q DBExecutor, response *domain.ActivityResponse) error
	// ListResponses retrieves all responses for an activity.
	ListResponses(ctx context.Context, q DBExecutor, activityID int64) ([]domain.ActivityResponse, error)
}
