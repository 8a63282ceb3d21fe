package venue

import (
	"fmt"
	"math"
	"strings"
)

// FilterType selects which venue types a filter passes.
type FilterType string

const (
	FilterAll        FilterType = "all"
	FilterCoffee     FilterType = "coffee"
	FilterRestaurant FilterType = "restaurant"
	FilterBar        FilterType = "bar"
)

// NormalizeType maps a free-text category from the upstream sheet onto a
// venue type. Unknown categories default to coffee.
func NormalizeType(raw string) Type {
	t := strings.ToLower(raw)
	switch {
	case strings.Contains(t, "coffee"), strings.Contains(t, "café"), strings.Contains(t, "cafe"):
		return TypeCoffee
	case strings.Contains(t, "restaurant"), strings.Contains(t, "food"):
		return TypeRestaurant
	case strings.Contains(t, "bar"), strings.Contains(t, "pub"), strings.Contains(t, "lounge"):
		return TypeBar
	}
	return TypeCoffee
}

// ParseType strictly parses a concrete venue type. "bakery" is accepted and
// stored as coffee.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeCoffee, TypeBakery:
		return TypeCoffee, nil
	case TypeRestaurant:
		return TypeRestaurant, nil
	case TypeBar:
		return TypeBar, nil
	}
	return "", fmt.Errorf("%w: unknown venue type %q (coffee, restaurant, bar)", ErrInvalidInput, s)
}

// ParseFilterType parses a filter type. The empty string means all.
func ParseFilterType(s string) (FilterType, error) {
	switch FilterType(strings.ToLower(strings.TrimSpace(s))) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterCoffee:
		return FilterCoffee, nil
	case FilterRestaurant:
		return FilterRestaurant, nil
	case FilterBar:
		return FilterBar, nil
	}
	return "", fmt.Errorf("%w: unknown filter type %q (all, coffee, restaurant, bar)", ErrInvalidInput, s)
}

// ParseTags splits a comma-separated tag field. An empty field yields nil
// so "no tag data" stays distinct from an explicit tag list.
func ParseTags(raw string) []string {
	var tags []string
	for _, piece := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(piece); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// validate checks the invariants every stored venue must satisfy.
func validate(v *Venue) error {
	var problems []string

	if strings.TrimSpace(v.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(v.Description) == "" {
		problems = append(problems, "description is required")
	}
	if strings.TrimSpace(v.Address) == "" {
		problems = append(problems, "address is required")
	}
	if t, err := ParseType(string(v.Type)); err != nil {
		problems = append(problems, fmt.Sprintf("type %q is not one of coffee, restaurant, bar", v.Type))
	} else {
		v.Type = t
	}
	if !v.Point().InRange() {
		problems = append(problems, fmt.Sprintf("coordinates %g,%g out of range", v.Latitude, v.Longitude))
	}
	if v.Rating != nil && (math.IsNaN(*v.Rating) || *v.Rating < 0 || *v.Rating > 5) {
		problems = append(problems, "rating must be 0-5")
	}
	if v.ReviewCount != nil && *v.ReviewCount < 0 {
		problems = append(problems, "reviewCount must be non-negative")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

// errorf returns an ErrInvalidInput wrapping a formatted message.
func errorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}
