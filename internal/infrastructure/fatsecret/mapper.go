package fatsecret

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/o1iviachen/my-protein-buddy/internal/domain"
)

// searchResponse models the foods/search endpoint body
type searchResponse struct {
	Foods struct {
		Food []searchItem `json:"food"`
	} `json:"foods"`
}

// searchItem is one food in the search results
type searchItem struct {
	FoodID    string `json:"food_id"`
	FoodName  string `json:"food_name"`
	BrandName string `json:"brand_name"`
	FoodType  string `json:"food_type"`
}

// detailResponse models the food detail / barcode endpoint body
type detailResponse struct {
	Food foodDetail `json:"food"`
}

type foodDetail struct {
	FoodID    string   `json:"food_id"`
	FoodName  string   `json:"food_name"`
	BrandName string   `json:"brand_name"`
	Servings  servings `json:"servings"`
}

// servings wraps the serving list. FatSecret returns "serving" as a single
// object when a food has one serving and as an array otherwise, so both
// shapes are normalized to a list here.
type servings struct {
	Serving []serving
}

func (s *servings) UnmarshalJSON(data []byte) error {
	var multi struct {
		Serving []serving `json:"serving"`
	}
	if err := json.Unmarshal(data, &multi); err == nil && multi.Serving != nil {
		s.Serving = multi.Serving
		return nil
	}

	var single struct {
		Serving serving `json:"serving"`
	}
	if err := json.Unmarshal(data, &single); err == nil {
		s.Serving = []serving{single.Serving}
		return nil
	}

	s.Serving = nil
	return nil
}

// serving is one serving option. FatSecret encodes all numbers as strings.
type serving struct {
	ServingDescription     string `json:"serving_description"`
	MetricServingAmount    string `json:"metric_serving_amount"`
	MetricServingUnit      string `json:"metric_serving_unit"`
	NumberOfUnits          string `json:"number_of_units"`
	MeasurementDescription string `json:"measurement_description"`
	Protein                string `json:"protein"`
}

// metricGrams parses the metric serving amount; zero for absent or malformed.
func (s serving) metricGrams() float64 {
	grams, err := strconv.ParseFloat(s.MetricServingAmount, 64)
	if err != nil {
		return 0
	}
	return grams
}

// mapFood converts a parsed detail response into a canonical Food.
// Returns ErrFoodNotFound when no serving carries a positive metric gram
// amount: a food without a usable measure cannot be logged.
func mapFood(detail foodDetail) (*domain.Food, error) {
	var measures []domain.Measure
	var density float64

	for _, sv := range detail.Servings.Serving {
		grams := sv.metricGrams()
		if grams <= 0 {
			continue
		}

		expression := strings.ToLower(sv.NumberOfUnits + " " + sv.MeasurementDescription)
		measures = append(measures, domain.Measure{Expression: expression, MassGrams: grams})

		// Protein density comes from the first usable serving, dividing its
		// protein figure by its own gram amount.
		if len(measures) == 1 {
			if protein, err := strconv.ParseFloat(sv.Protein, 64); err == nil {
				density = protein / grams
			}
		}
	}

	if len(measures) == 0 {
		return nil, domain.ErrFoodNotFound
	}

	brand := detail.BrandName
	if brand == "" {
		brand = "unbranded"
	}

	return &domain.Food{
		Name:            strings.ToLower(detail.FoodName),
		ProteinPerGram:  density,
		BrandName:       strings.ToLower(brand),
		Measures:        measures,
		SelectedMeasure: measures[0],
		Multiplier:      1.0,
	}, nil
}
