package pantry

import "strings"

// Covers reports whether a requirement name is satisfied by the owned
// ingredients: some ingredient's name must contain the requirement as a
// case-sensitive substring. Users write short requirement words ("onion")
// while owned names may carry qualifiers ("spring onion, 3 stalks"), so
// containment is deliberately looser than equality. No case folding or
// trimming is applied.
func Covers(items []Ingredient, requirement string) bool {
	for _, it := range items {
		if strings.Contains(it.Name, requirement) {
			return true
		}
	}
	return false
}

// Missing returns the requirements not covered by the owned ingredients,
// preserving requirement order.
func Missing(items []Ingredient, requirements []string) []string {
	missing := []string{}
	for _, r := range requirements {
		if !Covers(items, r) {
			missing = append(missing, r)
		}
	}
	return missing
}
