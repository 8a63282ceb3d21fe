package venue

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalizeType(t *testing.T) {
	tests := []struct {
		raw  string
		want Type
	}{
		{"Coffee Shop", TypeCoffee},
		{"Café Bistro", TypeCoffee},
		{"CAFE", TypeCoffee},
		{"Restaurant", TypeRestaurant},
		{"Street Food", TypeRestaurant},
		{"Cocktail Lounge", TypeBar},
		{"Irish Pub", TypeBar},
		{"Wine Bar", TypeBar},
		{"Bakery", TypeCoffee},
		{"", TypeCoffee},
		{"something else", TypeCoffee},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeType(tt.raw); got != tt.want {
				t.Errorf("NormalizeType(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"coffee", TypeCoffee, false},
		{" Restaurant ", TypeRestaurant, false},
		{"BAR", TypeBar, false},
		{"bakery", TypeCoffee, false},
		{"", "", true},
		{"pub", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("err = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFilterType(t *testing.T) {
	tests := []struct {
		in      string
		want    FilterType
		wantErr bool
	}{
		{"", FilterAll, false},
		{"all", FilterAll, false},
		{"coffee", FilterCoffee, false},
		{"Bar", FilterBar, false},
		{"restaurant", FilterRestaurant, false},
		{"bakery", "", true},
		{"nightclub", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFilterType(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("err = %v, want ErrInvalidInput", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFilterType(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"trims pieces", "wifi, pastries ,coffee", []string{"wifi", "pastries", "coffee"}},
		{"single", "jazz", []string{"jazz"}},
		{"empty", "", nil},
		{"only separators", " , ,", nil},
		{"drops empty pieces", "a,,b", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTags(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTags(%q) = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTypeLabel(t *testing.T) {
	if got := TypeCoffee.Label(); got != "Coffee Shop" {
		t.Errorf("coffee label = %q", got)
	}
	if got := TypeBar.Label(); got != "Bar" {
		t.Errorf("bar label = %q", got)
	}
	if got := Type("zoo").Label(); got != "zoo" {
		t.Errorf("unknown label = %q", got)
	}
}
