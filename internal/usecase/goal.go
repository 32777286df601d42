package usecase

import "github.com/o1iviachen/my-protein-buddy/internal/domain"

// Activity is the self-reported activity level used by the goal calculator.
type Activity string

const (
	ActivityLess     Activity = "less"
	ActivityModerate Activity = "moderate"
	ActivityVery     Activity = "very"
)

// lbPerKg converts body weight to pounds for the grams-per-pound heuristics.
const lbPerKg = 2.2

// ProteinGoalFor derives a daily protein goal in grams from height (meters),
// weight (kilograms) and activity level. Below the overweight BMI threshold
// the goal scales with body weight in pounds (0.8/1.0/1.2 g per lb by
// activity); at or above it, the sedentary goal falls back to height-based
// scaling so an elevated weight does not inflate the target.
func ProteinGoalFor(heightM, weightKg float64, activity Activity) (int, error) {
	// Plausibility bounds to reject garbage input
	if heightM < 0.5 || heightM > 2.5 || weightKg < 10 || weightKg > 400 {
		return 0, domain.ErrInvalidRequest
	}

	bmi := weightKg / (heightM * heightM)

	var goal float64
	if bmi < 24.9 {
		switch activity {
		case ActivityLess:
			goal = weightKg * lbPerKg * 0.8
		case ActivityModerate:
			goal = weightKg * lbPerKg * 1.0
		case ActivityVery:
			goal = weightKg * lbPerKg * 1.2
		default:
			return 0, domain.ErrInvalidRequest
		}
	} else {
		switch activity {
		case ActivityLess:
			goal = heightM * 100
		case ActivityModerate:
			goal = weightKg * lbPerKg * 1.0
		case ActivityVery:
			goal = weightKg * lbPerKg * 1.2
		default:
			return 0, domain.ErrInvalidRequest
		}
	}

	return int(goal), nil
}
