package domain

// FoodRecord represents a food item from the USDA FoodData Central API. The
// same shape is returned by both the search and the detail endpoints; detail
// records usually carry a richer nutrient list.
type FoodRecord struct {
	FdcID          int64                    `json:"fdcId"`
	Description    string                   `json:"description"`
	DataType       string                   `json:"dataType,omitempty"`
	FoodNutrients  []FoodNutrient           `json:"foodNutrients"`
	LabelNutrients map[string]LabelNutrient `json:"labelNutrients,omitempty"`
}

// FoodNutrient is a single nutrient entry. Search results name the nutrient
// via nutrientName and carry the quantity in value; detail records sometimes
// use name and amount instead.
type FoodNutrient struct {
	NutrientName string   `json:"nutrientName,omitempty"`
	Name         string   `json:"name,omitempty"`
	UnitName     string   `json:"unitName,omitempty"`
	Value        *float64 `json:"value,omitempty"`
	Amount       *float64 `json:"amount,omitempty"`
}

// DisplayName returns whichever of the two name fields is populated.
func (n FoodNutrient) DisplayName() string {
	if n.NutrientName != "" {
		return n.NutrientName
	}
	return n.Name
}

// Quantity returns the nutrient amount, preferring value over amount.
func (n FoodNutrient) Quantity() (float64, bool) {
	if n.Value != nil {
		return *n.Value, true
	}
	if n.Amount != nil {
		return *n.Amount, true
	}
	return 0, false
}

// LabelNutrient is one entry of the labelNutrients block present on some
// branded foods.
type LabelNutrient struct {
	Value *float64 `json:"value,omitempty"`
}

// SearchResponse is the envelope returned by the USDA search endpoint.
type SearchResponse struct {
	Foods       []FoodRecord `json:"foods"`
	TotalHits   int          `json:"totalHits"`
	CurrentPage int          `json:"currentPage"`
	TotalPages  int          `json:"totalPages"`
}
