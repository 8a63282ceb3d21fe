package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/evcraddock/venue-finder/internal/geo"
)

// locationFlags are the --lat/--lng/--accuracy flags shared by read commands.
type locationFlags struct {
	lat, lng, accuracy float64
}

func (f *locationFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "your latitude, to sort by distance")
	cmd.Flags().Float64Var(&f.lng, "lng", 0, "your longitude, to sort by distance")
	cmd.Flags().Float64Var(&f.accuracy, "accuracy", 0, "location accuracy in meters")
}

// location returns the caller's location, or nil when --lat and --lng were not given.
func (f *locationFlags) location(cmd *cobra.Command) (*geo.UserLocation, error) {
	latSet, lngSet := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lng")
	if !latSet && !lngSet {
		return nil, nil
	}
	if latSet != lngSet {
		return nil, errors.New("--lat and --lng must be given together")
	}

	loc := &geo.UserLocation{Latitude: f.lat, Longitude: f.lng}
	if cmd.Flags().Changed("accuracy") {
		acc := f.accuracy
		loc.Accuracy = &acc
	}
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	return loc, nil
}
