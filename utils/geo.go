package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultRadiusKm is the search radius used when a nearby query does not
// supply one.
const DefaultRadiusKm = 5.0

// ParseCityList splits a comma-separated city list into trimmed tokens,
// dropping empty entries. "Pune, Mumbai ,,Delhi" -> ["Pune" "Mumbai" "Delhi"].
// The result is never nil so it can be handed straight to an $in filter.
func ParseCityList(cities string) []string {
	out := []string{}
	for _, c := range strings.Split(cities, ",") {
		c = strings.TrimSpace(c)
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// NearbyQuery holds the parsed parameters of a proximity search.
type NearbyQuery struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
}

// RadiusMeters converts the query radius to the meters Mongo's $maxDistance
// expects.
func (q NearbyQuery) RadiusMeters() float64 {
	return q.RadiusKm * 1000
}

// ParseNearbyQuery validates the lat/lng/radius query parameters of a
// nearby request. Latitude and longitude are required and must parse as
// floats; radius is optional and defaults to DefaultRadiusKm.
func ParseNearbyQuery(lat, lng, radius string) (NearbyQuery, error) {
	if lat == "" || lng == "" {
		return NearbyQuery{}, fmt.Errorf("lat and lng are required")
	}
	latF, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return NearbyQuery{}, fmt.Errorf("invalid lat: %q", lat)
	}
	lngF, err := strconv.ParseFloat(lng, 64)
	if err != nil {
		return NearbyQuery{}, fmt.Errorf("invalid lng: %q", lng)
	}
	radiusKm := DefaultRadiusKm
	if radius != "" {
		radiusKm, err = strconv.ParseFloat(radius, 64)
		if err != nil || radiusKm <= 0 {
			return NearbyQuery{}, fmt.Errorf("invalid radius: %q", radius)
		}
	}
	return NearbyQuery{Lat: latF, Lng: lngF, RadiusKm: radiusKm}, nil
}
