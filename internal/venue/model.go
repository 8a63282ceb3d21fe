// Package venue provides the venue domain model, normalization, the in-memory
// venue store, and the filter engine that produces distance-sorted views.
package venue

import (
	"errors"

	"github.com/evcraddock/venue-finder/internal/geo"
)

var (
	// ErrNotFound is returned when a venue id does not exist in the current snapshot.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for malformed ids, types, filters, or venue fields.
	ErrInvalidInput = errors.New("invalid input")
)

// Type is the category of a venue.
type Type string

const (
	TypeCoffee     Type = "coffee"
	TypeRestaurant Type = "restaurant"
	TypeBar        Type = "bar"

	// TypeBakery is accepted as an input variant and treated as coffee.
	TypeBakery Type = "bakery"
)

// Label returns the display label for a venue type.
func (t Type) Label() string {
	switch t {
	case TypeCoffee, TypeBakery:
		return "Coffee Shop"
	case TypeRestaurant:
		return "Restaurant"
	case TypeBar:
		return "Bar"
	}
	return string(t)
}

// Venue is a coffee shop, restaurant, or bar shown on the map.
// Optional fields are nil when unset and encode as JSON null.
type Venue struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Type            Type     `json:"type"`
	Description     string   `json:"description"`
	Address         string   `json:"address"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	Neighborhood    *string  `json:"neighborhood"`
	Recommender     *string  `json:"recommender"`
	ExperienceLevel *string  `json:"experienceLevel"`
	Rating          *float64 `json:"rating"`
	ReviewCount     *int64   `json:"reviewCount"`
	PriceLevel      *string  `json:"priceLevel"`
	OpeningHours    *string  `json:"openingHours"`
	PhoneNumber     *string  `json:"phoneNumber"`
	Website         *string  `json:"website"`
	ImageURL        *string  `json:"imageUrl"`
	Tags            []string `json:"tags"`
	Distance        float64  `json:"distance"`
}

// Point returns the venue's coordinates.
func (v *Venue) Point() geo.Point {
	return geo.Point{Lat: v.Latitude, Lng: v.Longitude}
}

// Clone returns a deep copy of v.
func (v *Venue) Clone() Venue {
	c := *v
	c.Neighborhood = cloneStr(v.Neighborhood)
	c.Recommender = cloneStr(v.Recommender)
	c.ExperienceLevel = cloneStr(v.ExperienceLevel)
	c.PriceLevel = cloneStr(v.PriceLevel)
	c.OpeningHours = cloneStr(v.OpeningHours)
	c.PhoneNumber = cloneStr(v.PhoneNumber)
	c.Website = cloneStr(v.Website)
	c.ImageURL = cloneStr(v.ImageURL)
	if v.Rating != nil {
		r := *v.Rating
		c.Rating = &r
	}
	if v.ReviewCount != nil {
		n := *v.ReviewCount
		c.ReviewCount = &n
	}
	if v.Tags != nil {
		c.Tags = append([]string(nil), v.Tags...)
	}
	return c
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

// Input holds the fields for creating a venue.
type Input struct {
	Name            string   `json:"name"`
	Type            Type     `json:"type"`
	Description     string   `json:"description"`
	Address         string   `json:"address"`
	Latitude        float64  `json:"latitude"`
	Longitude       float64  `json:"longitude"`
	Neighborhood    *string  `json:"neighborhood,omitempty"`
	Recommender     *string  `json:"recommender,omitempty"`
	ExperienceLevel *string  `json:"experienceLevel,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	ReviewCount     *int64   `json:"reviewCount,omitempty"`
	PriceLevel      *string  `json:"priceLevel,omitempty"`
	OpeningHours    *string  `json:"openingHours,omitempty"`
	PhoneNumber     *string  `json:"phoneNumber,omitempty"`
	Website         *string  `json:"website,omitempty"`
	ImageURL        *string  `json:"imageUrl,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

// venue converts in into a Venue with empty optional values normalized to nil.
func (in Input) venue() Venue {
	return Venue{
		Name:            in.Name,
		Type:            in.Type,
		Description:     in.Description,
		Address:         in.Address,
		Latitude:        in.Latitude,
		Longitude:       in.Longitude,
		Neighborhood:    optional(in.Neighborhood),
		Recommender:     optional(in.Recommender),
		ExperienceLevel: optional(in.ExperienceLevel),
		Rating:          copyFloat(in.Rating),
		ReviewCount:     copyInt(in.ReviewCount),
		PriceLevel:      optional(in.PriceLevel),
		OpeningHours:    optional(in.OpeningHours),
		PhoneNumber:     optional(in.PhoneNumber),
		Website:         optional(in.Website),
		ImageURL:        optional(in.ImageURL),
		Tags:            optionalTags(in.Tags),
	}
}

// optional copies s, mapping the empty string to nil.
func optional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return cloneStr(s)
}

func optionalTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	return append([]string(nil), tags...)
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

func copyInt(n *int64) *int64 {
	if n == nil {
		return nil
	}
	c := *n
	return &c
}

// Batch is the result of one upstream fetch.
type Batch struct {
	Venues []Venue
	// Fallback is true when Venues is the built-in sample set.
	Fallback bool
	// Reason describes why the fallback was used.
	Reason string
}
