// internal/domain/activity.go
package domain

import "time"

// ActivityResponseStatus is a member's answer to a proposed activity.
type ActivityResponseStatus string

const (
	ActivityResponseAccepted ActivityResponseStatus = "accepted"
	ActivityResponseDeclined ActivityResponseStatus = "declined"
)

// Activity is a proposed entry on a trip's calendar.
type Activity struct {
	ID          int64     `db:"id" json:"id"`
	TripID      int64     `db:"trip_id" json:"tripId"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	Location    string    `db:"location" json:"location,omitempty"`
	StartTime   time.Time `db:"start_time" json:"startTime"`
	ProposedBy  string    `db:"proposed_by" json:"proposedBy"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// ActivityResponse records one member's accept/decline for an activity. A
// member has at most one response per activity; answering again replaces it.
type ActivityResponse struct {
	ActivityID  int64                  `db:"activity_id" json:"activityId"`
	UserID      string                 `db:"user_id" json:"userId"`
	Status      ActivityResponseStatus `db:"status" json:"status"`
	RespondedAt time.Time              `db:"responded_at" json:"respondedAt"`
}

// NewActivity creates a new Activity instance.
func NewActivity(tripID int64, name, description, location string, startTime time.Time, proposedBy string) *Activity {
	return &Activity{
		TripID:      tripID,
		Name:        name,
		Description: description,
		Location:    location,
		StartTime:   startTime,
		ProposedBy:  proposedBy,
		CreatedAt:   time.Now().UTC(),
	}
}
