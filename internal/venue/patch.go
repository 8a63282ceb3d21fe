package venue

import (
	"bytes"
	"encoding/json"
)

// FieldState says what an update does to one field.
type FieldState int

const (
	Unchanged FieldState = iota
	Set
	Cleared
)

// Field is one field of a Patch. The zero Field leaves the value unchanged.
// In JSON an absent key is Unchanged, null is Cleared, and any other value is Set.
type Field[T any] struct {
	state FieldState
	value T
}

// SetTo returns a Field that sets the value to v.
func SetTo[T any](v T) Field[T] {
	return Field[T]{state: Set, value: v}
}

// Clear returns a Field that clears the value.
func Clear[T any]() Field[T] {
	return Field[T]{state: Cleared}
}

// State returns the field's state.
func (f Field[T]) State() FieldState {
	return f.state
}

// Value returns the value and whether the field is Set.
func (f Field[T]) Value() (T, bool) {
	return f.value, f.state == Set
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Clear[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = SetTo(v)
	return nil
}

// MarshalJSON implements json.Marshaler. Unchanged fields should be omitted by
// the caller with omitzero.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.state != Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

// IsZero reports whether the field is Unchanged.
func (f Field[T]) IsZero() bool {
	return f.state == Unchanged
}

// Patch is a partial update to a venue.
type Patch struct {
	Name            Field[string]   `json:"name,omitzero"`
	Type            Field[Type]     `json:"type,omitzero"`
	Description     Field[string]   `json:"description,omitzero"`
	Address         Field[string]   `json:"address,omitzero"`
	Latitude        Field[float64]  `json:"latitude,omitzero"`
	Longitude       Field[float64]  `json:"longitude,omitzero"`
	Neighborhood    Field[string]   `json:"neighborhood,omitzero"`
	Recommender     Field[string]   `json:"recommender,omitzero"`
	ExperienceLevel Field[string]   `json:"experienceLevel,omitzero"`
	Rating          Field[float64]  `json:"rating,omitzero"`
	ReviewCount     Field[int64]    `json:"reviewCount,omitzero"`
	PriceLevel      Field[string]   `json:"priceLevel,omitzero"`
	OpeningHours    Field[string]   `json:"openingHours,omitzero"`
	PhoneNumber     Field[string]   `json:"phoneNumber,omitzero"`
	Website         Field[string]   `json:"website,omitzero"`
	ImageURL        Field[string]   `json:"imageUrl,omitzero"`
	Tags            Field[[]string] `json:"tags,omitzero"`
}

// apply applies p to v. Clearing a required field is an error; clearing
// either coordinate resets the venue to the unresolved (0,0) location.
func (p Patch) apply(v *Venue) error {
	if err := applyRequired(p.Name, &v.Name, "name"); err != nil {
		return err
	}
	if err := applyRequired(p.Type, &v.Type, "type"); err != nil {
		return err
	}
	if err := applyRequired(p.Description, &v.Description, "description"); err != nil {
		return err
	}
	if err := applyRequired(p.Address, &v.Address, "address"); err != nil {
		return err
	}

	if p.Latitude.State() == Cleared || p.Longitude.State() == Cleared {
		v.Latitude, v.Longitude = 0, 0
	}
	if lat, ok := p.Latitude.Value(); ok {
		v.Latitude = lat
	}
	if lng, ok := p.Longitude.Value(); ok {
		v.Longitude = lng
	}

	applyOptional(p.Neighborhood, &v.Neighborhood)
	applyOptional(p.Recommender, &v.Recommender)
	applyOptional(p.ExperienceLevel, &v.ExperienceLevel)
	applyOptional(p.PriceLevel, &v.PriceLevel)
	applyOptional(p.OpeningHours, &v.OpeningHours)
	applyOptional(p.PhoneNumber, &v.PhoneNumber)
	applyOptional(p.Website, &v.Website)
	applyOptional(p.ImageURL, &v.ImageURL)
	applyPointer(p.Rating, &v.Rating)
	applyPointer(p.ReviewCount, &v.ReviewCount)

	switch p.Tags.State() {
	case Set:
		tags, _ := p.Tags.Value()
		v.Tags = optionalTags(tags)
	case Cleared:
		v.Tags = nil
	}

	return nil
}

func applyRequired[T any](f Field[T], dst *T, name string) error {
	switch f.State() {
	case Set:
		*dst, _ = f.Value()
	case Cleared:
		return errorf("%s cannot be cleared", name)
	}
	return nil
}

// applyOptional sets or clears a text field; setting the empty string clears it.
func applyOptional(f Field[string], dst **string) {
	switch f.State() {
	case Set:
		s, _ := f.Value()
		*dst = optional(&s)
	case Cleared:
		*dst = nil
	}
}

func applyPointer[T any](f Field[T], dst **T) {
	switch f.State() {
	case Set:
		v, _ := f.Value()
		*dst = &v
	case Cleared:
		*dst = nil
	}
}
