// internal/service/activity_service.go
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

// ActivityWithResponses pairs an activity with its member responses.
type ActivityWithResponses struct {
	Activity  domain.Activity           `json:"activity"`
	Responses []domain.ActivityResponse `json:"responses"`
}

// ActivityService defines the interface for activity-proposal business logic.
type ActivityService interface {
	ProposeActivity(ctx context.Context, tripID int64, name, description, location string, startTime time.Time, proposedBy string) (*domain.Activity, error)
	ListTripActivities(ctx context.Context, tripID int64) ([]ActivityWithResponses, error)
	Respond(ctx context.Context, activityID int64, userID string, status domain.ActivityResponseStatus) (*domain.ActivityResponse, error)
}

type activityService struct {
	dbExecutor   repository.DBExecutor
	activityRepo repository.ActivityRepository
	publisher    notify.Publisher
}

// NewActivityService creates a new instance of ActivityService.
func NewActivityService(dbExecutor repository.DBExecutor, activityRepo repository.ActivityRepository, publisher notify.Publisher) ActivityService {
	return &activityService{dbExecutor: dbExecutor, activityRepo: activityRepo, publisher: publisher}
}

// ProposeActivity adds an activity to the trip calendar and announces it.
func (s *activityService) ProposeActivity(ctx context.Context, tripID int64, name, description, location string, startTime time.Time, proposedBy string) (*domain.Activity, error) {
	if name == "" || startTime.IsZero() {
		return nil, util.ErrInvalidInput
	}

	activity := domain.NewActivity(tripID, name, description, location, startTime, proposedBy)
	if err := s.activityRepo.CreateActivity(ctx, s.dbExecutor, activity); err != nil {
		return nil, fmt.Errorf("propose activity: %w", err)
	}

	s.publisher.Publish(notify.Event{
		Type:      notify.EventActivityProposed,
		TripID:    tripID,
		Payload:   activity,
		Timestamp: time.Now().UTC(),
	})
	return activity, nil
}

// ListTripActivities returns the trip's activities with their responses.
func (s *activityService) ListTripActivities(ctx context.Context, tripID int64) ([]ActivityWithResponses, error) {
	activities, err := s.activityRepo.ListActivitiesByTrip(ctx, s.dbExecutor, tripID)
	if err != nil {
		return nil, fmt.Errorf("list activities for trip %d: %w", tripID, err)
	}

	out := make([]ActivityWithResponses, 0, len(activities))
	for _, activity := range activities {
		responses, err := s.activityRepo.ListResponses(ctx, s.dbExecutor, activity.ID)
		if err != nil {
			return nil, fmt.Errorf("list responses for activity %d: %w", activity.ID, err)
		}
		out = append(out, ActivityWithResponses{Activity: activity, Responses: responses})
	}
	return out, nil
}

// Respond records or replaces a member's accept/decline and announces it.
func (s *activityService) Respond(ctx context.Context, activityID int64, userID string, status domain.ActivityResponseStatus) (*domain.ActivityResponse, error) {
	if status != domain.ActivityResponseAccepted && status != domain.ActivityResponseDeclined {
		return nil, util.ErrInvalidInput
	}

	activity, err := s.activityRepo.GetActivityByID(ctx, s.dbExecutor, activityID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("respond: failed to get activity %d: %w", activityID, err)
	}

	response := &domain.ActivityResponse{
		ActivityID:  activityID,
		UserID:      userID,
		Status:      status,
		RespondedAt: time.Now().UTC(),
	}
	if err := s.activityRepo.UpsertResponse(ctx, s.dbExecutor, response); err != nil {
		return nil, fmt.Errorf("respond to activity %d: %w", activityID, err)
	}

	s.publisher.Publish(notify.Event{
		Type:      notify.EventActivityResponded,
		TripID:    activity.TripID,
		Payload:   response,
		Timestamp: response.RespondedAt,
	})
	return response, nil
}
