package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateProgressPercentage(t *testing.T) {
	tests := []struct {
		name      string
		completed map[string]bool
		expected  float64
	}{
		{name: "nil mapping", completed: nil, expected: 0.0},
		{name: "empty mapping", completed: map[string]bool{}, expected: 0.0},
		{name: "single completed", completed: map[string]bool{"day1_activity1": true}, expected: 100.0},
		{name: "none completed", completed: map[string]bool{"a": false, "b": false}, expected: 0.0},
		{name: "half", completed: map[string]bool{"day1_activity1": true, "day1_activity2": false}, expected: 50.0},
		{name: "one third", completed: map[string]bool{"a": true, "b": false, "c": false}, expected: 33.3},
		{name: "two thirds", completed: map[string]bool{"a": true, "b": true, "c": false}, expected: 66.7},
		{name: "one seventh", completed: map[string]bool{"a": true, "b": false, "c": false, "d": false, "e": false, "f": false, "g": false}, expected: 14.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateProgressPercentage(tt.completed))
		})
	}
}

func TestCalculateProgressPercentageBounds(t *testing.T) {
	completed := map[string]bool{}
	for i := 0; i < 50; i++ {
		completed[string(rune('a'+i%26))+string(rune('A'+i/26))] = i%3 == 0
		pct := CalculateProgressPercentage(completed)
		assert.GreaterOrEqual(t, pct, 0.0)
		assert.LessOrEqual(t, pct, 100.0)
	}
}

func TestUserTripProgressPercentage(t *testing.T) {
	trip := &UserTrip{CompletedActivities: map[string]bool{"x": true, "y": true, "z": true, "w": false}}
	assert.Equal(t, 75.0, trip.ProgressPercentage())
}

func TestTravelPlanPlanFor(t *testing.T) {
	plan := &TravelPlan{
		Backpacker:       BudgetPlan{TotalBudget: "$600-900"},
		TravelEnthusiast: BudgetPlan{TotalBudget: "$2200-3000"},
		Luxury:           BudgetPlan{TotalBudget: "$5000-7500"},
	}

	bp, ok := plan.PlanFor(TierLuxury)
	assert.True(t, ok)
	assert.Equal(t, "$5000-7500", bp.TotalBudget)

	bp, ok = plan.PlanFor(TierTravelEnthusiast)
	assert.True(t, ok)
	assert.Equal(t, "$2200-3000", bp.TotalBudget)

	_, ok = plan.PlanFor("first_class")
	assert.False(t, ok)
}
