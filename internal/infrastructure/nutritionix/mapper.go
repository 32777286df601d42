package nutritionix

import (
	"fmt"
	"strings"

	"github.com/o1iviachen/my-protein-buddy/internal/domain"
)

// instantResponse models the search/instant endpoint body
type instantResponse struct {
	Common  []commonItem  `json:"common"`
	Branded []brandedItem `json:"branded"`
}

type commonItem struct {
	FoodName string `json:"food_name"`
}

type brandedItem struct {
	NixItemID string `json:"nix_item_id"`
	FoodName  string `json:"food_name"`
	BrandName string `json:"brand_name"`
}

// nutrientsResponse models both the natural/nutrients and search/item bodies
type nutrientsResponse struct {
	Foods []nutrientFood `json:"foods"`
}

type nutrientFood struct {
	FoodName           string       `json:"food_name"`
	BrandName          string       `json:"brand_name"`
	NFProtein          float64      `json:"nf_protein"`
	ServingQty         float64      `json:"serving_qty"`
	ServingUnit        string       `json:"serving_unit"`
	ServingWeightGrams float64      `json:"serving_weight_grams"`
	AltMeasures        []altMeasure `json:"alt_measures"`
}

type altMeasure struct {
	ServingWeight float64 `json:"serving_weight"`
	Qty           float64 `json:"qty"`
	Measure       string  `json:"measure"`
}

// formatQty renders a serving count without a trailing ".0" for whole numbers.
func formatQty(qty float64) string {
	if qty == float64(int64(qty)) {
		return fmt.Sprintf("%d", int64(qty))
	}
	return fmt.Sprintf("%g", qty)
}

// mapFood converts one nutrient record into a canonical Food. The protein
// figure corresponds to the primary serving, so the primary serving must
// carry a positive gram weight for the density to be computable; otherwise
// the record is unusable.
func mapFood(nf nutrientFood) (*domain.Food, error) {
	if nf.ServingWeightGrams <= 0 {
		return nil, domain.ErrFoodNotFound
	}

	primary := domain.Measure{
		Expression: strings.ToLower(formatQty(nf.ServingQty) + " " + nf.ServingUnit),
		MassGrams:  nf.ServingWeightGrams,
	}

	measures := []domain.Measure{primary}
	for _, alt := range nf.AltMeasures {
		if alt.ServingWeight <= 0 {
			continue
		}
		measure := domain.Measure{
			Expression: strings.ToLower(formatQty(alt.Qty) + " " + alt.Measure),
			MassGrams:  alt.ServingWeight,
		}
		if measure == primary {
			continue
		}
		measures = append(measures, measure)
	}

	brand := nf.BrandName
	if brand == "" {
		brand = "unbranded"
	}

	return &domain.Food{
		Name:            strings.ToLower(nf.FoodName),
		ProteinPerGram:  nf.NFProtein / nf.ServingWeightGrams,
		BrandName:       strings.ToLower(brand),
		Measures:        measures,
		SelectedMeasure: primary,
		Multiplier:      1.0,
	}, nil
}
