// internal/domain/trip.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is a shared trip calendar that members plan against.
type Trip struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Destination string    `db:"destination" json:"destination"`
	StartDate   time.Time `db:"start_date" json:"startDate"`
	EndDate     time.Time `db:"end_date" json:"endDate"`
	ShareCode   string    `db:"share_code" json:"shareCode"` // opaque invite code, never guessable
	CreatedBy   string    `db:"created_by" json:"createdBy"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// TripMember links a user to a trip.
type TripMember struct {
	TripID   int64     `db:"trip_id" json:"tripId"`
	UserID   string    `db:"user_id" json:"userId"`
	JoinedAt time.Time `db:"joined_at" json:"joinedAt"`
}

// NewTrip creates a new Trip instance with a fresh share code.
func NewTrip(name, destination string, startDate, endDate time.Time, createdBy string) *Trip {
	now := time.Now().UTC()
	return &Trip{
		Name:        name,
		Destination: destination,
		StartDate:   startDate,
		EndDate:     endDate,
		ShareCode:   uuid.NewString(),
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
