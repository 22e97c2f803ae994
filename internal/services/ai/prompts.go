package ai

import (
	"fmt"
	"strings"
)

// Preference is a dietary preference label from a closed set.
type Preference string

const (
	PreferenceNone        Preference = "None"
	PreferenceVegetarian  Preference = "Vegetarian"
	PreferenceLowCalorie  Preference = "Low-Calorie"
	PreferenceKidFriendly Preference = "Kid-Friendly"
)

var preferences = []Preference{
	PreferenceNone,
	PreferenceVegetarian,
	PreferenceLowCalorie,
	PreferenceKidFriendly,
}

// Preferences returns the selectable preferences in display order.
func Preferences() []Preference {
	out := make([]Preference, len(preferences))
	copy(out, preferences)
	return out
}

// ParsePreference validates a preference label. An empty label means PreferenceNone.
func ParsePreference(label string) (Preference, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return PreferenceNone, nil
	}
	for _, p := range preferences {
		if string(p) == label {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown dietary preference %q", label)
}

// ParseIngredients splits comma-separated input into trimmed, non-empty tokens in input order.
func ParseIngredients(raw string) []string {
	parts := strings.Split(raw, ",")
	ingredients := make([]string, 0, len(parts))
	for _, part := range parts {
		if token := strings.TrimSpace(part); token != "" {
			ingredients = append(ingredients, token)
		}
	}
	return ingredients
}

const personaSection = `You are an eco-friendly chef focused on zero waste.`

const requirementsSection = `Requirements:
- Each recipe limited to 5 steps, suitable for low-income families (using common tools, no special equipment required).
- Include nutritional tips (e.g., calories, protein).
- Add zero-waste tips (e.g., how to use scraps).
- Output should be culturally neutral and safe (add disclaimer: consult a doctor).
- **only use the provided ingredients; do not add new ones.**`

const formatSection = "Format: **Recipe Name** \n Ingredients \n Steps \n Nutrition \n Tip"

// BuildLeftoverPrompt renders the leftover recipe instruction. An empty ingredient list
// still renders, with an empty ingredient clause.
func BuildLeftoverPrompt(ingredients []string, pref Preference) string {
	if pref == "" {
		pref = PreferenceNone
	}

	var sb strings.Builder
	sb.WriteString(personaSection)
	sb.WriteString(" Based on leftover ingredients: ")
	sb.WriteString(strings.Join(ingredients, ", "))
	sb.WriteString("\nand preference: ")
	sb.WriteString(string(pref))
	sb.WriteString(", generate 1-2 simple recipes.\n")
	sb.WriteString(requirementsSection)
	sb.WriteString("\n")
	sb.WriteString(formatSection)
	sb.WriteString("\n")

	return sb.String()
}
