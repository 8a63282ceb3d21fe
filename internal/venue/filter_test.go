package venue

import (
	"testing"

	"github.com/evcraddock/venue-finder/internal/geo"
)

func filterFixture() []Venue {
	return []Venue{
		{ID: 1, Name: "Urban Bean", Type: TypeCoffee, Description: "Artisanal brews", Latitude: 40.7128, Longitude: -74.0060},
		{ID: 2, Name: "The Hungry Fork", Type: TypeRestaurant, Description: "Farm-to-table", Latitude: 40.7193, Longitude: -73.9986},
		{ID: 3, Name: "Nightcap Lounge", Type: TypeBar, Description: "Cocktail bar with jazz", Latitude: 40.7234, Longitude: -73.9961},
		{ID: 4, Name: "Flour Power", Type: TypeBakery, Description: "Croissants and coffee", Latitude: 40.7142, Longitude: -74.0121},
	}
}

func ids(venues []Venue) []int64 {
	out := make([]int64, len(venues))
	for i, v := range venues {
		out[i] = v.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyTypeFilter(t *testing.T) {
	tests := []struct {
		name    string
		filter  FilterType
		wantIDs []int64
	}{
		{"all", FilterAll, []int64{1, 2, 3, 4}},
		{"empty means all", "", []int64{1, 2, 3, 4}},
		{"coffee includes bakery", FilterCoffee, []int64{1, 4}},
		{"restaurant", FilterRestaurant, []int64{2}},
		{"bar", FilterBar, []int64{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Apply(filterFixture(), Filters{Type: tt.filter}, nil)
			if !equalIDs(ids(got), tt.wantIDs) {
				t.Errorf("ids = %v, want %v", ids(got), tt.wantIDs)
			}
			for _, v := range got {
				if v.Distance != 0 {
					t.Errorf("venue %d distance = %v, want 0 without a location", v.ID, v.Distance)
				}
			}
		})
	}
}

func TestApplySearchMatchesNameAndDescriptionOnly(t *testing.T) {
	venues := filterFixture()
	venues[1].Address = "456 Jazz Street"
	venues[1].Tags = []string{"jazz"}

	got := Apply(venues, Filters{Type: FilterAll, Search: "JAZZ"}, nil)
	if !equalIDs(ids(got), []int64{3}) {
		t.Errorf("ids = %v, want [3]", ids(got))
	}
}

func TestApplyTypeAndSearchAreConjunctive(t *testing.T) {
	got := Apply(filterFixture(), Filters{Type: FilterBar, Search: "coffee"}, nil)
	if len(got) != 0 {
		t.Errorf("ids = %v, want none", ids(got))
	}

	got = Apply(filterFixture(), Filters{Type: FilterCoffee, Search: "croissant"}, nil)
	if !equalIDs(ids(got), []int64{4}) {
		t.Errorf("ids = %v, want [4]", ids(got))
	}
}

func TestApplySortsByDistance(t *testing.T) {
	user := &geo.UserLocation{Latitude: 40.7234, Longitude: -73.9961}

	got := Apply(filterFixture(), Filters{Type: FilterAll}, user)
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	if got[0].ID != 3 || got[0].Distance != 0 {
		t.Errorf("first = %d at %v, want venue 3 at 0", got[0].ID, got[0].Distance)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Distance < got[i-1].Distance {
			t.Errorf("not sorted: %v before %v", got[i-1].Distance, got[i].Distance)
		}
	}
}

func TestApplyOrdersKnownDistances(t *testing.T) {
	user := &geo.UserLocation{Latitude: 0, Longitude: 0}
	// Points due north of the user at roughly 2.3, 0.5 and 1.1 miles.
	venues := []Venue{
		{ID: 1, Name: "far", Type: TypeCoffee, Description: "d", Latitude: 2.3 / 69.0942, Longitude: 0},
		{ID: 2, Name: "near", Type: TypeBar, Description: "d", Latitude: 0.5 / 69.0942, Longitude: 0},
		{ID: 3, Name: "mid", Type: TypeRestaurant, Description: "d", Latitude: 1.1 / 69.0942, Longitude: 0},
	}

	got := Apply(venues, Filters{Type: FilterAll}, user)
	want := []float64{0.5, 1.1, 2.3}
	for i, v := range got {
		if v.Distance != want[i] {
			t.Errorf("got[%d].Distance = %v, want %v", i, v.Distance, want[i])
		}
	}
	if !equalIDs(ids(got), []int64{2, 3, 1}) {
		t.Errorf("ids = %v, want [2 3 1]", ids(got))
	}
}

func TestApplyStableForTies(t *testing.T) {
	user := &geo.UserLocation{Latitude: 40.7128, Longitude: -74.0060}
	venues := []Venue{
		{ID: 5, Name: "a", Type: TypeCoffee, Description: "d", Latitude: 40.7128, Longitude: -74.0060},
		{ID: 2, Name: "b", Type: TypeBar, Description: "d", Latitude: 40.7128, Longitude: -74.0060},
		{ID: 9, Name: "c", Type: TypeBar, Description: "d", Latitude: 40.7128, Longitude: -74.0060},
	}

	got := Apply(venues, Filters{}, user)
	if !equalIDs(ids(got), []int64{5, 2, 9}) {
		t.Errorf("ids = %v, want input order [5 2 9]", ids(got))
	}
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	venues := filterFixture()
	user := &geo.UserLocation{Latitude: 47.6686, Longitude: -122.3842}

	Apply(venues, Filters{Type: FilterBar}, user)

	for _, v := range venues {
		if v.Distance != 0 {
			t.Errorf("input venue %d distance = %v, want untouched", v.ID, v.Distance)
		}
	}
}
