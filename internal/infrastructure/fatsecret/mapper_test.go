package fatsecret

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/o1iviachen/my-protein-buddy/internal/domain"
)

func TestServingsUnmarshal_Array(t *testing.T) {
	data := []byte(`{"serving":[
		{"serving_description":"1 cup","metric_serving_amount":"240.0","number_of_units":"1.000","measurement_description":"cup","protein":"8.00"},
		{"serving_description":"100 g","metric_serving_amount":"100.0","number_of_units":"100.000","measurement_description":"g","protein":"3.30"}
	]}`)

	var s servings
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Len(t, s.Serving, 2)
	assert.Equal(t, "cup", s.Serving[0].MeasurementDescription)
}

func TestServingsUnmarshal_SingleObject(t *testing.T) {
	data := []byte(`{"serving":{"serving_description":"1 breast","metric_serving_amount":"120.0","number_of_units":"1.000","measurement_description":"breast","protein":"30.00"}}`)

	var s servings
	require.NoError(t, json.Unmarshal(data, &s))
	require.Len(t, s.Serving, 1)
	assert.Equal(t, "breast", s.Serving[0].MeasurementDescription)
}

func TestServingsUnmarshal_Missing(t *testing.T) {
	var s servings
	require.NoError(t, json.Unmarshal([]byte(`{}`), &s))
	assert.Empty(t, s.Serving)
}

func TestMapFood(t *testing.T) {
	detail := foodDetail{
		FoodID:    "33691",
		FoodName:  "Chicken Breast",
		BrandName: "Tyson",
		Servings: servings{Serving: []serving{
			{NumberOfUnits: "1.000", MeasurementDescription: "Breast", MetricServingAmount: "120.000", Protein: "30.00"},
			{NumberOfUnits: "100.000", MeasurementDescription: "G", MetricServingAmount: "100.000", Protein: "25.00"},
		}},
	}

	food, err := mapFood(detail)
	require.NoError(t, err)

	assert.Equal(t, "chicken breast", food.Name)
	assert.Equal(t, "tyson", food.BrandName)
	require.Len(t, food.Measures, 2)
	assert.Equal(t, domain.Measure{Expression: "1.000 breast", MassGrams: 120}, food.Measures[0])
	assert.Equal(t, domain.Measure{Expression: "100.000 g", MassGrams: 100}, food.Measures[1])
	assert.Equal(t, food.Measures[0], food.SelectedMeasure)
	assert.InDelta(t, 0.25, food.ProteinPerGram, 1e-9)
	assert.Equal(t, 1.0, food.Multiplier)
	assert.Nil(t, food.ConsumptionTime)
}

func TestMapFood_BrandDefaultsToUnbranded(t *testing.T) {
	detail := foodDetail{
		FoodName: "Oatmeal",
		Servings: servings{Serving: []serving{
			{NumberOfUnits: "1.000", MeasurementDescription: "cup", MetricServingAmount: "81.000", Protein: "10.70"},
		}},
	}

	food, err := mapFood(detail)
	require.NoError(t, err)
	assert.Equal(t, "unbranded", food.BrandName)
}

func TestMapFood_SkipsServingsWithoutMetricGrams(t *testing.T) {
	detail := foodDetail{
		FoodName: "Coffee",
		Servings: servings{Serving: []serving{
			{NumberOfUnits: "1.000", MeasurementDescription: "cup", Protein: "0.30"},
			{NumberOfUnits: "1.000", MeasurementDescription: "mug", MetricServingAmount: "240.000", Protein: "0.30"},
		}},
	}

	food, err := mapFood(detail)
	require.NoError(t, err)

	// Selected measure is the first serving with positive metric grams, and
	// the protein density comes from that same serving.
	require.Len(t, food.Measures, 1)
	assert.Equal(t, "1.000 mug", food.SelectedMeasure.Expression)
	assert.InDelta(t, 0.3/240.0, food.ProteinPerGram, 1e-9)
}

func TestMapFood_NoUsableServing(t *testing.T) {
	tests := []struct {
		name     string
		servings []serving
	}{
		{"no servings", nil},
		{"missing metric amount", []serving{{NumberOfUnits: "1.000", MeasurementDescription: "cup", Protein: "1.00"}}},
		{"zero metric amount", []serving{{NumberOfUnits: "1.000", MeasurementDescription: "cup", MetricServingAmount: "0", Protein: "1.00"}}},
		{"negative metric amount", []serving{{NumberOfUnits: "1.000", MeasurementDescription: "cup", MetricServingAmount: "-5", Protein: "1.00"}}},
		{"malformed metric amount", []serving{{NumberOfUnits: "1.000", MeasurementDescription: "cup", MetricServingAmount: "n/a", Protein: "1.00"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail := foodDetail{FoodName: "Broth", Servings: servings{Serving: tt.servings}}
			food, err := mapFood(detail)
			assert.Nil(t, food)
			assert.ErrorIs(t, err, domain.ErrFoodNotFound)
		})
	}
}
