// Package geoloc acquires the observer's location. Acquisition is a one-shot
// asynchronous operation; on failure the clock falls back to a fixed default
// and keeps running with an advisory rather than erroring out.
package geoloc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Point is an immutable geographic coordinate in degrees.
type Point struct {
	Latitude  float64
	Longitude float64
}

// Greenwich is the documented fallback location used when acquisition fails:
// the Royal Observatory, origin of the prime meridian.
var Greenwich = Point{Latitude: 51.4769, Longitude: -0.0005}

// Locator resolves the observer's location once.
type Locator interface {
	Locate(ctx context.Context) (Point, error)
}

const (
	defaultEndpoint = "http://ip-api.com/json/?fields=status,lat,lon"
	requestTimeout  = 10 * time.Second
)

// IPLocator estimates the location from the machine's public IP address.
// City-level accuracy, which is plenty for rise/set times.
type IPLocator struct {
	client   *http.Client
	endpoint string
}

// NewIPLocator creates a locator against the default geolocation endpoint.
func NewIPLocator() *IPLocator {
	return &IPLocator{
		client:   &http.Client{Timeout: requestTimeout},
		endpoint: defaultEndpoint,
	}
}

type ipResponse struct {
	Status string  `json:"status"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// Locate performs the lookup.
func (l *IPLocator) Locate(ctx context.Context) (Point, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.endpoint, nil)
	if err != nil {
		return Point{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return Point{}, fmt.Errorf("geolocation request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Point{}, fmt.Errorf("geolocation request: status %d", resp.StatusCode)
	}

	var body ipResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Point{}, fmt.Errorf("decoding geolocation response: %w", err)
	}
	if body.Status != "success" {
		return Point{}, fmt.Errorf("geolocation lookup failed: status %q", body.Status)
	}

	return Point{Latitude: body.Lat, Longitude: body.Lon}, nil
}

// Result is the outcome of location acquisition, after fallback handling.
type Result struct {
	Point    Point
	Fallback bool   // true when the default location was substituted
	Advisory string // non-fatal user-facing note, empty on success
}

// Resolve runs the locator and applies the fallback policy: a failure
// substitutes Greenwich and surfaces an advisory, never an error.
func Resolve(ctx context.Context, l Locator) Result {
	p, err := l.Locate(ctx)
	if err != nil {
		return Result{
			Point:    Greenwich,
			Fallback: true,
			Advisory: fmt.Sprintf("location unavailable (%v); using Greenwich", err),
		}
	}
	return Result{Point: p}
}
