// Package maps builds Mapbox Directions API requests for lane route maps.
// Route geometry is computed by Mapbox, never locally.
package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

const directionsBase = "https://api.mapbox.com/directions/v5/mapbox/driving"

// Client calls the Mapbox Directions API with a fixed access token.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the directions endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    directionsBase,
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DirectionsURL builds the driving-directions request for a coordinate pair.
// Mapbox expects lon,lat ordering.
func (c *Client) DirectionsURL(originLat, originLon, destLat, destLon float64) string {
	return fmt.Sprintf("%s/%s,%s;%s,%s?geometries=geojson&access_token=%s",
		c.baseURL,
		coord(originLon), coord(originLat),
		coord(destLon), coord(destLat),
		c.token,
	)
}

func coord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RoutePoint is one vertex of a route geometry, in lat/lon order for clients.
type RoutePoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type directionsResponse struct {
	Routes []struct {
		Geometry struct {
			Coordinates [][2]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// FetchRoute requests the driving route between two coordinate pairs and
// returns its geometry.
func (c *Client) FetchRoute(ctx context.Context, originLat, originLon, destLat, destLon float64) ([]RoutePoint, error) {
	url := c.DirectionsURL(originLat, originLon, destLat, destLon)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mapbox request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("mapbox status %d: %s", resp.StatusCode, body)
	}

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("mapbox decode: %w", err)
	}
	if len(dr.Routes) == 0 {
		return nil, fmt.Errorf("mapbox returned no routes")
	}

	coords := dr.Routes[0].Geometry.Coordinates
	route := make([]RoutePoint, 0, len(coords))
	for _, c := range coords {
		// GeoJSON coordinates are lon,lat
		route = append(route, RoutePoint{Lat: c[1], Lon: c[0]})
	}
	return route, nil
}
