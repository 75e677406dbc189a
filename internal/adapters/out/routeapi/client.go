// Package routeapi implements the distance resolver against the Google
// Routes API computeRoutes endpoint.
package routeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrRouteRequest indicates the routing provider rejected or failed the
// distance request. Callers treat it as a provider outage, not a client bug.
var ErrRouteRequest = errors.New("route request failed")

// Client resolves road distances between two coordinates over HTTP.
// Implements ports.DistanceResolver.
type Client struct {
	httpClient *http.Client
	host       string
	apiKey     string
}

// NewClient creates a Routes API client. host is the full computeRoutes URL;
// apiKey is sent in the X-Goog-Api-Key header of every request.
func NewClient(httpClient *http.Client, host string, apiKey string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		host:       host,
		apiKey:     apiKey,
	}
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type location struct {
	LatLng latLng `json:"latLng"`
}

type waypoint struct {
	Location location `json:"location"`
}

type routeModifiers struct {
	AvoidTolls    bool `json:"avoidTolls"`
	AvoidHighways bool `json:"avoidHighways"`
	AvoidFerries  bool `json:"avoidFerries"`
}

type computeRoutesRequest struct {
	Origin                   waypoint       `json:"origin"`
	Destination              waypoint       `json:"destination"`
	TravelMode               string         `json:"travelMode"`
	RoutingPreference        string         `json:"routingPreference"`
	ComputeAlternativeRoutes bool           `json:"computeAlternativeRoutes"`
	RouteModifiers           routeModifiers `json:"routeModifiers"`
	LanguageCode             string         `json:"languageCode"`
	Units                    string         `json:"units"`
}

type computeRoutesResponse struct {
	Routes []struct {
		DistanceMeters float64 `json:"distanceMeters"`
	} `json:"routes"`
}

// ResolveDistance requests the driving distance in meters between origin and
// destination. Returns ErrRouteRequest (wrapped) on transport failures,
// non-2xx responses, and responses carrying no route.
func (c *Client) ResolveDistance(
	ctx context.Context, origin kernel.GeoPoint, destination kernel.GeoPoint,
) (float64, error) {
	reqBody := computeRoutesRequest{
		Origin:                   toWaypoint(origin),
		Destination:              toWaypoint(destination),
		TravelMode:               "DRIVE",
		RoutingPreference:        "TRAFFIC_AWARE",
		ComputeAlternativeRoutes: false,
		RouteModifiers:           routeModifiers{},
		LanguageCode:             "en-US",
		Units:                    "IMPERIAL",
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRouteRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRouteRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRouteRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return 0, fmt.Errorf("%w: unexpected status %d", ErrRouteRequest, resp.StatusCode)
	}

	var result computeRoutesResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("%w: response decode: %w", ErrRouteRequest, err)
	}
	if len(result.Routes) == 0 {
		return 0, fmt.Errorf("%w: no route between points", ErrRouteRequest)
	}

	return result.Routes[0].DistanceMeters, nil
}

func toWaypoint(p kernel.GeoPoint) waypoint {
	lat, _ := p.Latitude().Float64()
	lng, _ := p.Longitude().Float64()
	return waypoint{Location: location{LatLng: latLng{Latitude: lat, Longitude: lng}}}
}
