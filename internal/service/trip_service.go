// internal/service/trip_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/preilly17/VacationSync-sub009/internal/domain"
	"github.com/preilly17/VacationSync-sub009/internal/repository"
	"github.com/preilly17/VacationSync-sub009/internal/util"
	"github.com/preilly17/VacationSync-sub009/pkg/db"
)

// TripService defines the interface for trip-related business logic.
type TripService interface {
	CreateTrip(ctx context.Context, name, destination string, startDate, endDate time.Time, createdBy string) (*domain.Trip, error)
	GetTrip(ctx context.Context, tripID int64) (*domain.Trip, error)
	ListUserTrips(ctx context.Context, userID string) ([]domain.Trip, error)
	JoinTrip(ctx context.Context, shareCode, userID string) (*domain.Trip, error)
	ListMembers(ctx context.Context, tripID int64) ([]domain.TripMember, error)
	RequireMember(ctx context.Context, tripID int64, userID string) error
}

type tripService struct {
	dbBeginner db.DBTxBeginner
	dbExecutor repository.DBExecutor
	tripRepo   repository.TripRepository
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
}

// NewTripService creates a new instance of TripService.
func NewTripService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	tripRepo repository.TripRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) TripService {
	return &tripService{
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		tripRepo:   tripRepo,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
	}
}

// CreateTrip creates a trip and enrolls its creator as the first member in
// one transaction.
func (s *tripService) CreateTrip(ctx context.Context, name, destination string, startDate, endDate time.Time, createdBy string) (*domain.Trip, error) {
	if name == "" || destination == "" {
		return nil, util.ErrInvalidInput
	}
	if endDate.Before(startDate) {
		return nil, util.ErrInvalidInput
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("create trip: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("create trip: transaction controller does not implement DBExecutor")
	}

	trip := domain.NewTrip(name, destination, startDate, endDate, createdBy)
	if err := s.tripRepo.CreateTrip(ctx, txExecutor, trip); err != nil {
		return nil, fmt.Errorf("create trip: %w", err)
	}

	member := &domain.TripMember{TripID: trip.ID, UserID: createdBy, JoinedAt: trip.CreatedAt}
	if err := s.tripRepo.AddMember(ctx, txExecutor, member); err != nil {
		return nil, fmt.Errorf("create trip: failed to add creator as member: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("create trip: failed to commit transaction: %w", err)
	}
	return trip, nil
}

// GetTrip retrieves a trip by id.
func (s *tripService) GetTrip(ctx context.Context, tripID int64) (*domain.Trip, error) {
	trip, err := s.tripRepo.GetTripByID(ctx, s.dbExecutor, tripID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrTripNotFound
		}
		return nil, fmt.Errorf("get trip %d: %w", tripID, err)
	}
	return trip, nil
}

// ListUserTrips returns every trip the user belongs to.
func (s *tripService) ListUserTrips(ctx context.Context, userID string) ([]domain.Trip, error) {
	trips, err := s.tripRepo.ListTripsByUser(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list trips for user %s: %w", userID, err)
	}
	return trips, nil
}

// JoinTrip adds the user to the trip identified by the share code.
func (s *tripService) JoinTrip(ctx context.Context, shareCode, userID string) (*domain.Trip, error) {
	trip, err := s.tripRepo.GetTripByShareCode(ctx, s.dbExecutor, shareCode)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrTripNotFound
		}
		return nil, fmt.Errorf("join trip: %w", err)
	}

	member := &domain.TripMember{TripID: trip.ID, UserID: userID, JoinedAt: time.Now().UTC()}
	if err := s.tripRepo.AddMember(ctx, s.dbExecutor, member); err != nil {
		return nil, fmt.Errorf("join trip %d: %w", trip.ID, err)
	}
	return trip, nil
}

// ListMembers returns a trip's members.
func (s *tripService) ListMembers(ctx context.Context, tripID int64) ([]domain.TripMember, error) {
	members, err := s.tripRepo.ListMembers(ctx, s.dbExecutor, tripID)
	if err != nil {
		return nil, fmt.Errorf("list members for trip %d: %w", tripID, err)
	}
	return members, nil
}

// RequireMember fails with ErrNotTripMember unless the user belongs to the trip.
func (s *tripService) RequireMember(ctx context.Context, tripID int64, userID string) error {
	ok, err := s.tripRepo.IsMember(ctx, s.dbExecutor, tripID, userID)
	if err != nil {
		return fmt.Errorf("check membership for trip %d: %w", tripID, err)
	}
	if !ok {
		return util.ErrNotTripMember
	}
	return nil
}
