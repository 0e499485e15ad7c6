package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCityList(t *testing.T) {
	assert.Equal(t, []string{"Pune", "Mumbai", "Delhi"}, ParseCityList("Pune, Mumbai ,,Delhi"))
	assert.Equal(t, []string{"Pune"}, ParseCityList("Pune"))

	// Never nil, so the result can feed an $in filter directly.
	assert.NotNil(t, ParseCityList(""))
	assert.Empty(t, ParseCityList(""))
	assert.NotNil(t, ParseCityList(" , ,"))
	assert.Empty(t, ParseCityList(" , ,"))
}

func TestParseNearbyQuery(t *testing.T) {
	q, err := ParseNearbyQuery("18.52", "73.85", "2.5")
	require.NoError(t, err)
	assert.Equal(t, 18.52, q.Lat)
	assert.Equal(t, 73.85, q.Lng)
	assert.Equal(t, 2.5, q.RadiusKm)
	assert.Equal(t, 2500.0, q.RadiusMeters())
}

func TestParseNearbyQuery_DefaultRadius(t *testing.T) {
	q, err := ParseNearbyQuery("0", "0", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultRadiusKm, q.RadiusKm)
	assert.Equal(t, 5000.0, q.RadiusMeters())
}

func TestParseNearbyQuery_Invalid(t *testing.T) {
	cases := []struct {
		name             string
		lat, lng, radius string
	}{
		{"missing lat", "", "73.85", ""},
		{"missing lng", "18.52", "", ""},
		{"bad lat", "north", "73.85", ""},
		{"bad lng", "18.52", "east", ""},
		{"bad radius", "18.52", "73.85", "close"},
		{"negative radius", "18.52", "73.85", "-1"},
		{"zero radius", "18.52", "73.85", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseNearbyQuery(tc.lat, tc.lng, tc.radius)
			assert.Error(t, err)
		})
	}
}
