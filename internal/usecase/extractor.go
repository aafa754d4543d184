package usecase

import (
	"context"
	"strings"

	"github.com/mealwise/backend/internal/domain"
)

// DetailFetcher retrieves the richer detail record for a food by FDC ID.
type DetailFetcher func(ctx context.Context, fdcID int64) (*domain.FoodRecord, error)

// ExtractCalories pulls a caloric value out of a food record through an
// ordered fallback chain:
//
//  1. scan foodNutrients for an entry named energy/calories
//  2. check the labelNutrients calories/energy block
//  3. fetch the detail record by FDC ID and re-run the nutrient scan
//
// A failed detail fetch is swallowed; the chain simply ends. Returns false
// when no value could be determined.
//
// The extracted value is usually reported per 100g; it is treated as calories
// per one reference serving without unit conversion.
func ExtractCalories(ctx context.Context, record *domain.FoodRecord, fetchDetail DetailFetcher) (float64, bool) {
	if record == nil {
		return 0, false
	}

	if cal, ok := scanNutrients(record.FoodNutrients); ok {
		return cal, true
	}

	if cal, ok := scanLabelNutrients(record.LabelNutrients); ok {
		return cal, true
	}

	if record.FdcID != 0 && fetchDetail != nil {
		detail, err := fetchDetail(ctx, record.FdcID)
		if err == nil && detail != nil {
			if cal, ok := scanNutrients(detail.FoodNutrients); ok {
				return cal, true
			}
		}
	}

	return 0, false
}

// scanNutrients returns the first nutrient whose name mentions energy or
// calories and that carries a quantity.
func scanNutrients(nutrients []domain.FoodNutrient) (float64, bool) {
	for _, n := range nutrients {
		name := strings.ToLower(n.DisplayName())
		if !strings.Contains(name, "energy") && !strings.Contains(name, "calories") {
			continue
		}
		if v, ok := n.Quantity(); ok {
			return v, true
		}
	}
	return 0, false
}

func scanLabelNutrients(label map[string]domain.LabelNutrient) (float64, bool) {
	for _, key := range []string{"calories", "energy"} {
		if n, ok := label[key]; ok && n.Value != nil {
			return *n.Value, true
		}
	}
	return 0, false
}
