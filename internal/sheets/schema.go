package sheets

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/evcraddock/venue-finder/internal/venue"
)

// Column names understood by the schema.
const (
	ColName            = "name"
	ColType            = "type"
	ColDescription     = "description"
	ColAddress         = "address"
	ColLatitude        = "latitude"
	ColLongitude       = "longitude"
	ColRating          = "rating"
	ColReviewCount     = "review_count"
	ColPriceLevel      = "price_level"
	ColOpeningHours    = "opening_hours"
	ColPhone           = "phone"
	ColWebsite         = "website"
	ColImageURL        = "image_url"
	ColTags            = "tags"
	ColNeighborhood    = "neighborhood"
	ColRecommender     = "recommender"
	ColExperienceLevel = "experience_level"
)

// requiredColumns must be present in the header row.
var requiredColumns = []string{ColName, ColType, ColAddress}

// aliases maps alternative header spellings onto column names.
var aliases = map[string]string{
	"venue":        ColName,
	"venue_name":   ColName,
	"category":     ColType,
	"venue_type":   ColType,
	"lat":          ColLatitude,
	"lng":          ColLongitude,
	"lon":          ColLongitude,
	"long":         ColLongitude,
	"reviews":      ColReviewCount,
	"price":        ColPriceLevel,
	"hours":        ColOpeningHours,
	"phone_number": ColPhone,
	"url":          ColWebsite,
	"image":        ColImageURL,
	"photo":        ColImageURL,
	"experience":   ColExperienceLevel,
}

// Schema maps column names to their positions in a sheet.
type Schema struct {
	index map[string]int
}

// normalizeHeader lowercases a header cell and joins words with underscores.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer(" ", "_", "-", "_", ".", "").Replace(h)
	if canonical, ok := aliases[h]; ok {
		return canonical
	}
	return h
}

// Bind builds a schema from a header row. It fails with every missing
// required column named, rather than silently misassigning fields.
func Bind(header []string) (*Schema, error) {
	s := &Schema{index: make(map[string]int, len(header))}
	for i, h := range header {
		name := normalizeHeader(h)
		if name == "" {
			continue
		}
		if _, dup := s.index[name]; dup {
			continue
		}
		s.index[name] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := s.index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("sheet header is missing required columns: %s", strings.Join(missing, ", "))
	}

	return s, nil
}

// Has reports whether the schema has the named column.
func (s *Schema) Has(col string) bool {
	_, ok := s.index[col]
	return ok
}

// cell returns the trimmed value of col in row, or "" when absent.
func (s *Schema) cell(row []string, col string) string {
	i, ok := s.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (s *Schema) optional(row []string, col string) *string {
	v := s.cell(row, col)
	if v == "" {
		return nil
	}
	return &v
}

// Parse maps a data row onto a venue candidate with id index+1. Coordinates
// that fail to parse become 0; rating and review count become nil.
func (s *Schema) Parse(row []string, index int) venue.Venue {
	t := venue.NormalizeType(s.cell(row, ColType))

	description := s.cell(row, ColDescription)
	if description == "" {
		description = t.Label()
	}

	v := venue.Venue{
		ID:              int64(index + 1),
		Name:            s.cell(row, ColName),
		Type:            t,
		Description:     description,
		Address:         s.cell(row, ColAddress),
		Latitude:        parseFloat(s.cell(row, ColLatitude)),
		Longitude:       parseFloat(s.cell(row, ColLongitude)),
		Neighborhood:    s.optional(row, ColNeighborhood),
		Recommender:     s.optional(row, ColRecommender),
		ExperienceLevel: s.optional(row, ColExperienceLevel),
		PriceLevel:      s.optional(row, ColPriceLevel),
		OpeningHours:    s.optional(row, ColOpeningHours),
		PhoneNumber:     s.optional(row, ColPhone),
		Website:         s.optional(row, ColWebsite),
		ImageURL:        s.optional(row, ColImageURL),
		Tags:            venue.ParseTags(s.cell(row, ColTags)),
	}

	if r, err := strconv.ParseFloat(s.cell(row, ColRating), 64); err == nil && !math.IsNaN(r) && r >= 0 && r <= 5 {
		v.Rating = &r
	}
	if n, err := strconv.ParseInt(s.cell(row, ColReviewCount), 10, 64); err == nil && n >= 0 {
		v.ReviewCount = &n
	}
	if !v.Point().InRange() {
		v.Latitude, v.Longitude = 0, 0
	}

	return v
}

// parseFloat returns 0 for anything that is not a finite number.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// IsBlank reports whether every cell in row is empty.
func IsBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
