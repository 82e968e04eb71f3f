// internal/domain/travel_plan.go
package domain

import "time"

// BudgetTier names one of the three budget levels a plan is authored for.
type BudgetTier string

const (
	TierBackpacker       BudgetTier = "backpacker"
	TierTravelEnthusiast BudgetTier = "travel_enthusiast"
	TierLuxury           BudgetTier = "luxury"
)

// Activity categories. Advisory only, nothing enforces them.
const (
	ActivityAccommodation = "accommodation"
	ActivityTransport     = "transport"
	ActivitySightseeing   = "sightseeing"
	ActivityDining        = "dining"
	ActivityGeneral       = "activity"
)

// Activity is a single timed entry in a day of an itinerary.
type Activity struct {
	Time string `bson:"time" json:"time" yaml:"time"` // e.g. "14:30"
	Task string `bson:"task" json:"task" yaml:"task"`
	Type string `bson:"type" json:"type" yaml:"type"`
}

// DayItinerary is the ordered list of activities for one day.
type DayItinerary struct {
	Day        int        `bson:"day" json:"day" yaml:"day"`
	Title      string     `bson:"title" json:"title" yaml:"title"`
	Activities []Activity `bson:"activities" json:"activities" yaml:"activities"`
}

// BudgetPlan is the itinerary for one budget tier.
type BudgetPlan struct {
	TotalBudget   string         `bson:"total_budget" json:"total_budget" yaml:"total_budget"` // Free text, e.g. "$800-1200"
	Duration      string         `bson:"duration" json:"duration" yaml:"duration"`
	Accommodation string         `bson:"accommodation" json:"accommodation" yaml:"accommodation"`
	Transport     string         `bson:"transport" json:"transport" yaml:"transport"`
	Highlights    []string       `bson:"highlights" json:"highlights" yaml:"highlights"`
	Itinerary     []DayItinerary `bson:"itinerary" json:"itinerary" yaml:"itinerary"`
}

// TravelPlan holds the pre-authored itineraries for a destination, one per tier.
// DestinationName is denormalized and is what lookups match against.
type TravelPlan struct {
	ID               string     `bson:"_id" json:"id" yaml:"-"`
	DestinationID    string     `bson:"destination_id" json:"destination_id" yaml:"destination_id,omitempty"`
	DestinationName  string     `bson:"destination_name" json:"destination_name" yaml:"destination_name"`
	Backpacker       BudgetPlan `bson:"backpacker" json:"backpacker" yaml:"backpacker"`
	TravelEnthusiast BudgetPlan `bson:"travel_enthusiast" json:"travel_enthusiast" yaml:"travel_enthusiast"`
	Luxury           BudgetPlan `bson:"luxury" json:"luxury" yaml:"luxury"`
	CreatedAt        time.Time  `bson:"created_at" json:"created_at" yaml:"-"`
}

// PlanFor returns the budget plan for the given tier.
func (p *TravelPlan) PlanFor(tier BudgetTier) (BudgetPlan, bool) {
	switch tier {
	case TierBackpacker:
		return p.Backpacker, true
	case TierTravelEnthusiast:
		return p.TravelEnthusiast, true
	case TierLuxury:
		return p.Luxury, true
	}
	return BudgetPlan{}, false
}
