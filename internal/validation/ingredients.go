package validation

// IngredientValidationResult contains the outcome of validation
type IngredientValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Reason  string   `json:"reason"`
	Missing []string `json:"missing"`
}

// ValidateIngredients checks the ingredient list parsed from form input.
// Any non-empty list is accepted; there is no cap on count or length.
func ValidateIngredients(ingredients []string) IngredientValidationResult {
	if len(ingredients) == 0 {
		return IngredientValidationResult{
			IsValid: false,
			Reason:  "No ingredients provided",
			Missing: []string{"ingredients"},
		}
	}

	return IngredientValidationResult{
		IsValid: true,
		Reason:  "Ingredients passed validation",
		Missing: []string{},
	}
}
