package venue

import (
	"sort"
	"strings"

	"github.com/evcraddock/venue-finder/internal/geo"
)

// Filters is the type/search state applied to the map view.
type Filters struct {
	Type   FilterType `json:"type"`
	Search string     `json:"search"`
}

// Apply annotates each venue with its distance from loc, keeps venues that
// pass both the type filter and the search filter, and sorts the result by
// ascending distance. Ties keep their input order. When loc is nil every
// distance is zero. venues is not modified.
func Apply(venues []Venue, f Filters, loc *geo.UserLocation) []Venue {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Venue, 0, len(venues))
	for i := range venues {
		v := venues[i].Clone()
		v.Distance = 0
		if loc != nil {
			v.Distance = loc.DistanceTo(v.Point())
		}

		if !matchesType(v.Type, f.Type) {
			continue
		}
		if search != "" && !containsFold(v.Name, search) && !containsFold(v.Description, search) {
			continue
		}
		out = append(out, v)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}

// matchesType reports whether a venue of type t passes filter ft.
// The coffee filter also passes bakeries.
func matchesType(t Type, ft FilterType) bool {
	switch ft {
	case "", FilterAll:
		return true
	case FilterCoffee:
		return t == TypeCoffee || t == TypeBakery
	}
	return string(t) == string(ft)
}
