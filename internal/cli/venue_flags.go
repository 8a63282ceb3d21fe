package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evcraddock/venue-finder/internal/venue"
)

// venueFlags are the field flags shared by add and update.
type venueFlags struct {
	name, venueType, description, address     string
	lat, lng, rating                          float64
	reviews                                   int64
	price, hours, phone, website, image, tags string
	neighborhood, recommender, experience     string
	clear                                     []string
}

// clearable lists the fields update --clear accepts.
var clearable = []string{
	"location", "rating", "reviews", "price", "hours", "phone", "website",
	"image", "tags", "neighborhood", "recommender", "experience",
}

func (f *venueFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.name, "name", "", "venue name")
	fl.StringVar(&f.venueType, "type", "", "venue type (coffee|restaurant|bar)")
	fl.StringVar(&f.description, "description", "", "short description")
	fl.StringVar(&f.address, "address", "", "street address")
	fl.Float64Var(&f.lat, "lat", 0, "latitude")
	fl.Float64Var(&f.lng, "lng", 0, "longitude")
	fl.Float64Var(&f.rating, "rating", 0, "rating (0-5)")
	fl.Int64Var(&f.reviews, "reviews", 0, "number of reviews")
	fl.StringVar(&f.price, "price", "", "price level, e.g. $$")
	fl.StringVar(&f.hours, "hours", "", "opening hours, e.g. \"7AM - 7PM\"")
	fl.StringVar(&f.phone, "phone", "", "phone number")
	fl.StringVar(&f.website, "website", "", "website URL")
	fl.StringVar(&f.image, "image", "", "image URL")
	fl.StringVar(&f.tags, "tags", "", "comma-separated tags")
	fl.StringVar(&f.neighborhood, "neighborhood", "", "neighborhood")
	fl.StringVar(&f.recommender, "recommender", "", "who recommended it")
	fl.StringVar(&f.experience, "experience", "", "experience level")
}

func changedString(cmd *cobra.Command, flag, v string) *string {
	if !cmd.Flags().Changed(flag) {
		return nil
	}
	return &v
}

// input builds a create request from the flags that were set.
func (f *venueFlags) input(cmd *cobra.Command) venue.Input {
	in := venue.Input{
		Name:            f.name,
		Type:            venue.Type(f.venueType),
		Description:     f.description,
		Address:         f.address,
		Latitude:        f.lat,
		Longitude:       f.lng,
		Neighborhood:    changedString(cmd, "neighborhood", f.neighborhood),
		Recommender:     changedString(cmd, "recommender", f.recommender),
		ExperienceLevel: changedString(cmd, "experience", f.experience),
		PriceLevel:      changedString(cmd, "price", f.price),
		OpeningHours:    changedString(cmd, "hours", f.hours),
		PhoneNumber:     changedString(cmd, "phone", f.phone),
		Website:         changedString(cmd, "website", f.website),
		ImageURL:        changedString(cmd, "image", f.image),
		Tags:            venue.ParseTags(f.tags),
	}
	if cmd.Flags().Changed("rating") {
		r := f.rating
		in.Rating = &r
	}
	if cmd.Flags().Changed("reviews") {
		n := f.reviews
		in.ReviewCount = &n
	}
	return in
}

// patch builds a partial update from the flags that were set and the fields
// named by --clear.
func (f *venueFlags) patch(cmd *cobra.Command) (venue.Patch, error) {
	var p venue.Patch
	changed := cmd.Flags().Changed

	setString := func(flag, v string, dst *venue.Field[string]) {
		if changed(flag) {
			*dst = venue.SetTo(v)
		}
	}
	setString("name", f.name, &p.Name)
	setString("description", f.description, &p.Description)
	setString("address", f.address, &p.Address)
	setString("price", f.price, &p.PriceLevel)
	setString("hours", f.hours, &p.OpeningHours)
	setString("phone", f.phone, &p.PhoneNumber)
	setString("website", f.website, &p.Website)
	setString("image", f.image, &p.ImageURL)
	setString("neighborhood", f.neighborhood, &p.Neighborhood)
	setString("recommender", f.recommender, &p.Recommender)
	setString("experience", f.experience, &p.ExperienceLevel)

	if changed("type") {
		p.Type = venue.SetTo(venue.Type(f.venueType))
	}
	if changed("lat") {
		p.Latitude = venue.SetTo(f.lat)
	}
	if changed("lng") {
		p.Longitude = venue.SetTo(f.lng)
	}
	if changed("rating") {
		p.Rating = venue.SetTo(f.rating)
	}
	if changed("reviews") {
		p.ReviewCount = venue.SetTo(f.reviews)
	}
	if changed("tags") {
		p.Tags = venue.SetTo(venue.ParseTags(f.tags))
	}

	for _, field := range f.clear {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "location":
			p.Latitude, p.Longitude = venue.Clear[float64](), venue.Clear[float64]()
		case "rating":
			p.Rating = venue.Clear[float64]()
		case "reviews":
			p.ReviewCount = venue.Clear[int64]()
		case "price":
			p.PriceLevel = venue.Clear[string]()
		case "hours":
			p.OpeningHours = venue.Clear[string]()
		case "phone":
			p.PhoneNumber = venue.Clear[string]()
		case "website":
			p.Website = venue.Clear[string]()
		case "image":
			p.ImageURL = venue.Clear[string]()
		case "tags":
			p.Tags = venue.Clear[[]string]()
		case "neighborhood":
			p.Neighborhood = venue.Clear[string]()
		case "recommender":
			p.Recommender = venue.Clear[string]()
		case "experience":
			p.ExperienceLevel = venue.Clear[string]()
		default:
			return venue.Patch{}, fmt.Errorf("cannot clear %q (one of: %s)", field, strings.Join(clearable, ", "))
		}
	}

	return p, nil
}
