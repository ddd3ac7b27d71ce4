// Package geo holds the static city-coordinate table used for route maps.
// The table is a closed reference list; lookups are case and whitespace
// insensitive exact matches on the city name.
package geo

import "strings"

type City struct {
	City      string  `json:"city"`
	State     string  `json:"state"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

var cities = []City{
	{"New York", "NY", 40.7128, -74.0060},
	{"Los Angeles", "CA", 34.0522, -118.2437},
	{"Chicago", "IL", 41.8781, -87.6298},
	{"Houston", "TX", 29.7604, -95.3698},
	{"Phoenix", "AZ", 33.4484, -112.0740},
	{"Philadelphia", "PA", 39.9526, -75.1652},
	{"San Antonio", "TX", 29.4241, -98.4936},
	{"San Diego", "CA", 32.7157, -117.1611},
	{"Dallas", "TX", 32.7767, -96.7970},
	{"San Jose", "CA", 37.3382, -121.8863},
	{"Austin", "TX", 30.2672, -97.7431},
	{"Jacksonville", "FL", 30.3322, -81.6557},
	{"Fort Worth", "TX", 32.7555, -97.3307},
	{"Columbus", "OH", 39.9612, -82.9988},
	{"Charlotte", "NC", 35.2271, -80.8431},
	{"Indianapolis", "IN", 39.7684, -86.1581},
	{"San Francisco", "CA", 37.7749, -122.4194},
	{"Seattle", "WA", 47.6062, -122.3321},
	{"Denver", "CO", 39.7392, -104.9903},
	{"Washington", "DC", 38.9072, -77.0369},
	{"Birmingham", "AL", 33.5207, -86.8025},
	{"Montgomery", "AL", 32.3792, -86.3077},
	{"Huntsville", "AL", 34.7304, -86.5861},
	{"Mobile", "AL", 30.6954, -88.0399},
	{"Tuscaloosa", "AL", 33.2096, -87.5692},
	{"Dothan", "AL", 31.2238, -85.3905},
	{"Hoover", "AL", 33.3857, -86.8092},
	{"Auburn", "AL", 32.6099, -85.4808},
	{"Decatur", "AL", 34.6067, -86.9833},
	{"Florence", "AL", 34.7998, -87.6775},
	{"Nashville", "TN", 36.1627, -86.7816},
	{"Memphis", "TN", 35.1495, -90.0490},
	{"Knoxville", "TN", 35.9606, -83.9207},
	{"Chattanooga", "TN", 35.0457, -85.3097},
	{"Clarksville", "TN", 36.5298, -87.3595},
	{"Murfreesboro", "TN", 35.8450, -86.3904},
	{"Franklin", "TN", 35.9259, -86.8681},
	{"Jackson", "TN", 35.6145, -88.8136},
	{"Johnson City", "TN", 36.3134, -82.3530},
	{"Kingsport", "TN", 36.5498, -82.5613},
}

var byName = func() map[string]City {
	m := make(map[string]City, len(cities))
	for _, c := range cities {
		m[normalize(c.City)] = c
	}
	return m
}()

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CoordsOf returns the latitude and longitude of a known city. The boolean is
// false when the city is not in the table.
func CoordsOf(cityName string) (lat, lon float64, ok bool) {
	c, ok := byName[normalize(cityName)]
	if !ok {
		return 0, 0, false
	}
	return c.Latitude, c.Longitude, true
}

// Lookup returns the full city record.
func Lookup(cityName string) (City, bool) {
	c, ok := byName[normalize(cityName)]
	return c, ok
}
