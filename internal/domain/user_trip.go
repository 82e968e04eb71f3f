// internal/domain/user_trip.go
package domain

import (
	"math"
	"time"
)

// UserTrip is a trip a user saved for a destination and budget tier.
// ShareToken is generated once at creation and never changes; anyone holding it can
// read the trip.
type UserTrip struct {
	ID                  string          `bson:"_id" json:"id"`
	Destination         string          `bson:"destination" json:"destination"` // Free text, not a reference
	StartDate           time.Time       `bson:"start_date" json:"start_date"`
	EndDate             time.Time       `bson:"end_date" json:"end_date"`
	Travelers           int             `bson:"travelers" json:"travelers"`
	SelectedBudget      string          `bson:"selected_budget" json:"selected_budget"`
	CompletedActivities map[string]bool `bson:"completed_activities" json:"completed_activities"` // Client supplied keys, e.g. "day1_activity2"
	UserEmail           *string         `bson:"user_email,omitempty" json:"user_email,omitempty"`
	ShareToken          string          `bson:"share_token" json:"share_token"`
	CreatedAt           time.Time       `bson:"created_at" json:"created_at"`
}

// ProgressPercentage is the share of completed activities for this trip.
func (t *UserTrip) ProgressPercentage() float64 {
	return CalculateProgressPercentage(t.CompletedActivities)
}

// CalculateProgressPercentage returns the percentage of true values in completed,
// rounded to one decimal. An empty mapping yields 0.
func CalculateProgressPercentage(completed map[string]bool) float64 {
	if len(completed) == 0 {
		return 0.0
	}
	done := 0
	for _, ok := range completed {
		if ok {
			done++
		}
	}
	pct := float64(done) / float64(len(completed)) * 100
	return math.Round(pct*10) / 10
}
