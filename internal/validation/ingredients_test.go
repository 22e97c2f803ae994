package validation

import (
	"strings"
	"testing"
)

func TestValidateIngredients(t *testing.T) {
	many := strings.Split(strings.TrimSuffix(strings.Repeat("egg,", 200), ","), ",")
	long := []string{strings.Repeat("a", 5000)}

	tests := []struct {
		name        string
		ingredients []string
		wantIsValid bool
		wantMissing int
	}{
		{
			name:        "Valid list",
			ingredients: []string{"rice", "eggs"},
			wantIsValid: true,
		},
		{
			name:        "Empty list",
			ingredients: []string{},
			wantIsValid: false,
			wantMissing: 1,
		},
		{
			name:        "Nil list",
			ingredients: nil,
			wantIsValid: false,
			wantMissing: 1,
		},
		{
			name:        "Many ingredients",
			ingredients: many,
			wantIsValid: true,
		},
		{
			name:        "Long ingredient",
			ingredients: long,
			wantIsValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateIngredients(tt.ingredients)
			if result.IsValid != tt.wantIsValid {
				t.Errorf("ValidateIngredients() IsValid = %v, want %v (reason: %s)", result.IsValid, tt.wantIsValid, result.Reason)
			}
			if len(result.Missing) != tt.wantMissing {
				t.Errorf("ValidateIngredients() Missing = %v, want %d entries", result.Missing, tt.wantMissing)
			}
			if result.Reason == "" {
				t.Error("ValidateIngredients() returned empty reason")
			}
		})
	}
}
