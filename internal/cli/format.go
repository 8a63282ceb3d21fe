package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/evcraddock/venue-finder/internal/venue"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printVenueSummary prints a single venue in text format.
func printVenueSummary(w io.Writer, v *venue.Venue, withDistance bool, now time.Time) {
	fmt.Fprintf(w, "Venue #%d: %s\n", v.ID, v.Name)
	fmt.Fprintf(w, "  Type:     %s\n", v.Type.Label())
	fmt.Fprintf(w, "  About:    %s\n", v.Description)
	fmt.Fprintf(w, "  Address:  %s\n", v.Address)
	if p := v.Point(); p.IsZero() {
		fmt.Fprintln(w, "  Location: unknown")
	} else {
		fmt.Fprintf(w, "  Location: %.4f, %.4f\n", p.Lat, p.Lng)
	}
	if withDistance {
		fmt.Fprintf(w, "  Distance: %s\n", formatDistance(v.Distance))
	}
	if v.Rating != nil {
		fmt.Fprintf(w, "  Rating:   %s\n", formatRating(v.Rating, v.ReviewCount))
	}
	if v.PriceLevel != nil {
		fmt.Fprintf(w, "  Price:    %s\n", *v.PriceLevel)
	}
	if v.OpeningHours != nil {
		fmt.Fprintf(w, "  Hours:    %s (%s)\n", *v.OpeningHours, openStatus(v.OpeningHours, now))
	}
	if v.PhoneNumber != nil {
		fmt.Fprintf(w, "  Phone:    %s\n", *v.PhoneNumber)
	}
	if v.Website != nil {
		fmt.Fprintf(w, "  Website:  %s\n", *v.Website)
	}
	if v.Neighborhood != nil {
		fmt.Fprintf(w, "  Area:     %s\n", *v.Neighborhood)
	}
	if v.Recommender != nil {
		fmt.Fprintf(w, "  From:     %s\n", *v.Recommender)
	}
	if v.ExperienceLevel != nil {
		fmt.Fprintf(w, "  Level:    %s\n", *v.ExperienceLevel)
	}
	if len(v.Tags) > 0 {
		fmt.Fprintf(w, "  Tags:     %s\n", strings.Join(v.Tags, ", "))
	}
}

// printVenueTable prints a list of venues as a formatted table. The distance
// column is shown only when the list was computed from a location.
func printVenueTable(out io.Writer, venues []venue.Venue, withDistance bool, now time.Time) error {
	if len(venues) == 0 {
		fmt.Fprintln(out, "No venues found.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header, sep := "ID\tNAME\tTYPE\tRATING\tPRICE\tOPEN", "--\t----\t----\t------\t-----\t----"
	if withDistance {
		header += "\tDISTANCE"
		sep += "\t--------"
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, sep); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for i := range venues {
		v := &venues[i]
		price := "-"
		if v.PriceLevel != nil {
			price = *v.PriceLevel
		}
		row := fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s",
			v.ID, truncate(v.Name, 32), v.Type.Label(), formatRating(v.Rating, v.ReviewCount), price, openStatus(v.OpeningHours, now))
		if withDistance {
			row += "\t" + formatDistance(v.Distance)
		}
		if _, err := fmt.Fprintln(w, row); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nTotal: %d venues\n", len(venues))
	return nil
}

// formatDistance renders a distance in miles for display.
func formatDistance(miles float64) string {
	if miles < 0.1 {
		return "Very close"
	}
	return fmt.Sprintf("%.1f miles away", miles)
}

// formatRating renders a rating with its review count, e.g. "4.5 (128)".
func formatRating(rating *float64, reviews *int64) string {
	if rating == nil {
		return "-"
	}
	if reviews == nil {
		return fmt.Sprintf("%.1f", *rating)
	}
	return fmt.Sprintf("%.1f (%d)", *rating, *reviews)
}

// openStatus reports whether a venue is open at now, or "-" when its hours
// are missing or not in a recognized format.
func openStatus(hours *string, now time.Time) string {
	if hours == nil {
		return "-"
	}
	open, ok := venue.IsOpen(*hours, now)
	switch {
	case !ok:
		return "-"
	case open:
		return "open"
	default:
		return "closed"
	}
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
