package domain

// Measure pairs a human-readable quantity expression with its gram mass.
// Values are immutable; two measures are equal iff both fields are equal.
type Measure struct {
	Expression string  `json:"measureExpression" firestore:"measureExpression"`
	MassGrams  float64 `json:"measureMass" firestore:"measureMass"`
}

// Food is the canonical food model produced by nutrition-API parsing and
// stored in the ledger. SelectedMeasure must be one of Measures (enforced by
// convention). ConsumptionTime is nil until the food is logged; once set it
// doubles as a disambiguating key, since the document store's array-union and
// array-remove treat entries by full-value equality.
type Food struct {
	Name            string    `json:"food" firestore:"food"`
	ProteinPerGram  float64   `json:"proteinPerGram" firestore:"proteinPerGram"`
	BrandName       string    `json:"brandName" firestore:"brandName"`
	Measures        []Measure `json:"measures" firestore:"measures"`
	SelectedMeasure Measure   `json:"selectedMeasure" firestore:"selectedMeasure"`
	Multiplier      float64   `json:"multiplier" firestore:"multiplier"`
	ConsumptionTime *string   `json:"consumptionTime,omitempty" firestore:"consumptionTime,omitempty"`
}

// ProteinGrams returns the protein contributed by this food entry:
// protein density times the selected measure's mass times the serving count.
func (f Food) ProteinGrams() float64 {
	return f.ProteinPerGram * f.SelectedMeasure.MassGrams * f.Multiplier
}

// RefKind distinguishes the two categories of search results.
type RefKind string

const (
	// RefCommon identifies a generic food keyed by its name
	// (resolved via a natural-language nutrients lookup).
	RefCommon RefKind = "common"

	// RefBranded identifies a branded food keyed by a provider item id.
	RefBranded RefKind = "branded"
)

// FoodRef is a lightweight search result identifier. Refs carry the
// provider's relevance position so multi-ref resolution can restore the
// original ordering at the join point.
type FoodRef struct {
	Kind RefKind `json:"kind"`
	// ID is the provider item id for branded refs; empty for common refs.
	ID string `json:"id,omitempty"`
	// Name is the food name; it is the lookup key for common refs.
	Name string `json:"name"`
}

// Meal is one of the four fixed buckets a daily ledger entry is split into.
type Meal string

const (
	MealBreakfast Meal = "breakfast"
	MealLunch     Meal = "lunch"
	MealDinner    Meal = "dinner"
	MealSnacks    Meal = "snacks"
)

// Meals lists the buckets in display order.
var Meals = []Meal{MealBreakfast, MealLunch, MealDinner, MealSnacks}

// ParseMeal validates a meal name from the API surface.
func ParseMeal(s string) (Meal, error) {
	for _, m := range Meals {
		if string(m) == s {
			return m, nil
		}
	}
	return "", ErrInvalidMeal
}

// DayLog is one date's worth of ledger data: the four meal buckets plus the
// running protein-intake total. A bucket with no logged foods is empty, not
// an error.
type DayLog struct {
	Breakfast     []Food  `json:"breakfast"`
	Lunch         []Food  `json:"lunch"`
	Dinner        []Food  `json:"dinner"`
	Snacks        []Food  `json:"snacks"`
	ProteinIntake float64 `json:"proteinIntake"`
}

// Bucket returns the slice for a meal.
func (d *DayLog) Bucket(meal Meal) []Food {
	switch meal {
	case MealBreakfast:
		return d.Breakfast
	case MealLunch:
		return d.Lunch
	case MealDinner:
		return d.Dinner
	default:
		return d.Snacks
	}
}
