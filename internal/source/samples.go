package source

import "github.com/evcraddock/venue-finder/internal/venue"

func str(s string) *string   { return &s }
func f64(f float64) *float64 { return &f }
func i64(n int64) *int64     { return &n }

// Samples returns the built-in venues used when upstream data is unavailable.
// Each call returns fresh copies.
func Samples() []venue.Venue {
	return []venue.Venue{
		{
			ID:           1,
			Name:         "Urban Bean Coffeehouse",
			Type:         venue.TypeCoffee,
			Description:  "Cozy coffeehouse with artisanal brews and fresh pastries",
			Address:      "123 Main St, New York, NY",
			Latitude:     40.7128,
			Longitude:    -74.006,
			Rating:       f64(4.5),
			ReviewCount:  i64(128),
			PriceLevel:   str("$$"),
			OpeningHours: str("7AM - 7PM"),
			PhoneNumber:  str("212-555-0123"),
			Website:      str("https://urbanbean.example.com"),
			ImageURL:     str("https://images.unsplash.com/photo-1501339847302-ac426a4a7cbb"),
			Tags:         []string{"coffee", "pastries", "wifi"},
		},
		{
			ID:           2,
			Name:         "The Hungry Fork",
			Type:         venue.TypeRestaurant,
			Description:  "Farm-to-table restaurant with seasonal ingredients",
			Address:      "456 Broadway, New York, NY",
			Latitude:     40.7193,
			Longitude:    -73.9986,
			Rating:       f64(4.7),
			ReviewCount:  i64(256),
			PriceLevel:   str("$$$"),
			OpeningHours: str("11AM - 10PM"),
			PhoneNumber:  str("212-555-0456"),
			Website:      str("https://hungryfork.example.com"),
			ImageURL:     str("https://images.unsplash.com/photo-1555396273-367ea4eb4db5"),
			Tags:         []string{"dinner", "lunch", "organic"},
		},
		{
			ID:           3,
			Name:         "Nightcap Lounge",
			Type:         venue.TypeBar,
			Description:  "Stylish cocktail bar with live jazz music",
			Address:      "789 5th Ave, New York, NY",
			Latitude:     40.7234,
			Longitude:    -73.9961,
			Rating:       f64(4.3),
			ReviewCount:  i64(178),
			PriceLevel:   str("$$$"),
			OpeningHours: str("5PM - 2AM"),
			PhoneNumber:  str("212-555-0789"),
			Website:      str("https://nightcap.example.com"),
			ImageURL:     str("https://images.unsplash.com/photo-1572116469696-31de0f17cc34"),
			Tags:         []string{"cocktails", "jazz", "nightlife"},
		},
		{
			ID:           4,
			Name:         "Morning Brew Coffee",
			Type:         venue.TypeCoffee,
			Description:  "Specialty coffee shop with single-origin beans",
			Address:      "234 Park Ave, New York, NY",
			Latitude:     40.7142,
			Longitude:    -74.0121,
			Rating:       f64(4.8),
			ReviewCount:  i64(213),
			PriceLevel:   str("$$"),
			OpeningHours: str("6AM - 6PM"),
			PhoneNumber:  str("212-555-0234"),
			Website:      str("https://morningbrew.example.com"),
			ImageURL:     str("https://images.unsplash.com/photo-1541167760496-1628856ab772"),
			Tags:         []string{"coffee", "vegan", "breakfast"},
		},
	}
}
