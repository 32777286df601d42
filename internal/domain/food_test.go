package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProteinGrams(t *testing.T) {
	tests := []struct {
		name string
		food Food
		want float64
	}{
		{
			name: "density times mass times multiplier",
			food: Food{
				ProteinPerGram:  0.2,
				SelectedMeasure: Measure{Expression: "1 cup", MassGrams: 150},
				Multiplier:      2,
			},
			want: 60.0,
		},
		{
			name: "single serving",
			food: Food{
				ProteinPerGram:  0.25,
				SelectedMeasure: Measure{Expression: "1 breast", MassGrams: 120},
				Multiplier:      1,
			},
			want: 30.0,
		},
		{
			name: "fractional multiplier",
			food: Food{
				ProteinPerGram:  0.1,
				SelectedMeasure: Measure{Expression: "1 slice", MassGrams: 30},
				Multiplier:      0.5,
			},
			want: 1.5,
		},
		{
			name: "zero density",
			food: Food{
				ProteinPerGram:  0,
				SelectedMeasure: Measure{Expression: "1 cup", MassGrams: 240},
				Multiplier:      3,
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.food.ProteinGrams(), 1e-9)
		})
	}
}

func TestParseMeal(t *testing.T) {
	for _, meal := range Meals {
		parsed, err := ParseMeal(string(meal))
		assert.NoError(t, err)
		assert.Equal(t, meal, parsed)
	}

	_, err := ParseMeal("brunch")
	assert.ErrorIs(t, err, ErrInvalidMeal)

	_, err = ParseMeal("")
	assert.ErrorIs(t, err, ErrInvalidMeal)
}

func TestDayLogBucket(t *testing.T) {
	day := &DayLog{
		Breakfast: []Food{{Name: "eggs"}},
		Lunch:     []Food{{Name: "chicken salad"}},
		Dinner:    []Food{{Name: "salmon"}},
		Snacks:    []Food{{Name: "yogurt"}},
	}

	assert.Equal(t, "eggs", day.Bucket(MealBreakfast)[0].Name)
	assert.Equal(t, "chicken salad", day.Bucket(MealLunch)[0].Name)
	assert.Equal(t, "salmon", day.Bucket(MealDinner)[0].Name)
	assert.Equal(t, "yogurt", day.Bucket(MealSnacks)[0].Name)
}
