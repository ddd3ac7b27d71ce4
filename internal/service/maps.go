package service

import (
	"context"

	"github.com/CreativeDT/McLeod-BE/internal/geo"
	"github.com/CreativeDT/McLeod-BE/internal/maps"
)

// LaneMap is the map payload for one lane: the directions URL the frontend
// can call itself, plus the resolved geometry when the caller asked for it.
type LaneMap struct {
	MapboxURL string            `json:"mapbox_url"`
	Route     []maps.RoutePoint `json:"route,omitempty"`
}

// LaneMap builds the Mapbox directions URL for a lane's city pair. With
// includeRoute set, the route geometry is fetched server-side as well.
func (s *Service) LaneMap(ctx context.Context, laneID string, includeRoute bool) (LaneMap, error) {
	lane, err := s.repo.GetLaneByID(ctx, laneID)
	if err != nil {
		return LaneMap{}, err
	}

	originLat, originLon, ok := geo.CoordsOf(lane.Origin)
	if !ok {
		return LaneMap{}, ErrCoordsNotFound
	}
	destLat, destLon, ok := geo.CoordsOf(lane.Destination)
	if !ok {
		return LaneMap{}, ErrCoordsNotFound
	}

	lm := LaneMap{MapboxURL: s.mapbox.DirectionsURL(originLat, originLon, destLat, destLon)}
	if includeRoute {
		route, err := s.mapbox.FetchRoute(ctx, originLat, originLon, destLat, destLon)
		if err != nil {
			return LaneMap{}, err
		}
		lm.Route = route
	}
	return lm, nil
}

// CityPoint is a city with its map coordinates.
type CityPoint struct {
	City      string  `json:"city"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// OriginMap is one origin plus every destination reachable from it, with
// coordinates for map rendering. Destinations without a known coordinate are
// skipped.
type OriginMap struct {
	Origin       CityPoint   `json:"origin"`
	Destinations []CityPoint `json:"destinations"`
}

// OriginMap resolves an origin's coordinates and those of all its lane
// destinations.
func (s *Service) OriginMap(ctx context.Context, origin string) (OriginMap, error) {
	origin = titleCase(origin)

	city, ok := geo.Lookup(origin)
	if !ok {
		return OriginMap{}, ErrCoordsNotFound
	}

	dests, err := s.repo.ListDestinationsByOrigin(ctx, origin)
	if err != nil {
		return OriginMap{}, err
	}

	om := OriginMap{
		Origin:       CityPoint{City: city.City, Latitude: city.Latitude, Longitude: city.Longitude},
		Destinations: make([]CityPoint, 0, len(dests)),
	}
	for _, d := range dests {
		lat, lon, ok := geo.CoordsOf(d)
		if !ok {
			continue
		}
		om.Destinations = append(om.Destinations, CityPoint{City: d, Latitude: lat, Longitude: lon})
	}
	return om, nil
}
