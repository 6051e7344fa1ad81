package models

import "strings"

// Ingredients is the ordered, non-empty-entry ingredient list of a Recipe.
type Ingredients []string

// ParseIngredients splits s on commas, trims every segment and drops the empty
// ones. Adjacent, leading and trailing commas collapse, so the mapping is not
// invertible.
func ParseIngredients(s string) Ingredients {
	parts := strings.Split(s, ",")
	out := make(Ingredients, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Normalize trims every entry and drops empty ones.
func (in Ingredients) Normalize() Ingredients {
	out := make(Ingredients, 0, len(in))
	for _, p := range in {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Join concatenates the entries with sep.
func (in Ingredients) Join(sep string) string {
	return strings.Join(in, sep)
}

// Clone returns a copy that shares no backing array with in.
func (in Ingredients) Clone() Ingredients {
	if in == nil {
		return nil
	}
	out := make(Ingredients, len(in))
	copy(out, in)
	return out
}
