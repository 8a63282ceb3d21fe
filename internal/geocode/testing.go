package geocode

// SetTestURL overrides the API base URL on a Mapbox geocoder for testing.
// This should only be used in tests.
func SetTestURL(m *Mapbox, baseURL string) {
	if baseURL != "" {
		m.baseURL = baseURL
	}
}
