// Package geocode talks to the external mapping provider: forward geocoding
// for address autocomplete, reverse geocoding for naming coordinates, and
// driving route geometry. Requests are keyed by a client-side access token.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wheelsapp/wheels-cli/internal/client/models"
	"github.com/wheelsapp/wheels-cli/internal/common"
)

// ErrNoResult means the provider found nothing usable for the query, or the
// best match lies outside the configured service region.
var ErrNoResult = errors.New("no geocoding result")

// Client performs lookups against the provider's HTTP API.
type Client struct {
	// Endpoint is the provider base URL, without a trailing slash.
	Endpoint string
	// Token is the client-side access token appended to every request.
	Token string
	// BBox optionally bounds forward results, "minLon,minLat,maxLon,maxLat".
	BBox string
	// Region optionally restricts reverse results to one administrative
	// region; matches outside it are rejected.
	Region string

	HTTP *http.Client
}

func NewClient(endpoint, token string) *Client {
	return &Client{
		Endpoint: strings.TrimRight(endpoint, "/"),
		Token:    token,
		HTTP:     &http.Client{Timeout: 5 * time.Second},
	}
}

type feature struct {
	Text      string    `json:"text"`
	PlaceName string    `json:"place_name"`
	PlaceType []string  `json:"place_type"`
	Center    []float64 `json:"center"`
	Context   []struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"context"`
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("access_token", c.Token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Endpoint+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocoder status %d", resp.StatusCode)
	}
	return json.Unmarshal(data, out)
}

// Forward resolves a typed address fragment into up to five place
// suggestions, bounded by BBox when set.
func (c *Client) Forward(ctx context.Context, query string) ([]models.Place, error) {
	params := url.Values{}
	params.Set("autocomplete", "true")
	params.Set("limit", "5")
	if c.BBox != "" {
		params.Set("bbox", c.BBox)
	}

	var out struct {
		Features []feature `json:"features"`
	}
	if err := c.get(ctx, "/geocoding/v5/mapbox.places/"+url.PathEscape(query)+".json", params, &out); err != nil {
		return nil, err
	}

	places := make([]models.Place, 0, len(out.Features))
	for _, f := range out.Features {
		if len(f.Center) < 2 {
			continue
		}
		places = append(places, models.Place{
			Name:   f.PlaceName,
			Center: models.Coord{Lon: f.Center[0], Lat: f.Center[1]},
		})
	}
	return places, nil
}

// Reverse names a coordinate pair. When Region is set, matches outside it
// return ErrNoResult. Preference order for the name: neighborhood, locality,
// street address, city, then the raw feature text.
func (c *Client) Reverse(ctx context.Context, coord models.Coord) (string, error) {
	params := url.Values{}
	params.Set("types", "address,neighborhood,locality,place,region")

	path := fmt.Sprintf("/geocoding/v5/mapbox.places/%f,%f.json", coord.Lon, coord.Lat)
	var out struct {
		Features []feature `json:"features"`
	}
	if err := c.get(ctx, path, params, &out); err != nil {
		return "", err
	}
	if len(out.Features) == 0 {
		return "", ErrNoResult
	}

	f := out.Features[0]

	findCtx := func(kind string) string {
		for _, entry := range f.Context {
			if strings.Contains(entry.ID, kind) {
				return entry.Text
			}
		}
		return ""
	}

	if c.Region != "" && findCtx("region") != c.Region {
		return "", ErrNoResult
	}
	if n := findCtx("neighborhood"); n != "" {
		return n, nil
	}
	if l := findCtx("locality"); l != "" {
		return l, nil
	}
	for _, t := range f.PlaceType {
		if t == "address" {
			return f.Text, nil
		}
	}
	if city := findCtx("place"); city != "" {
		return city, nil
	}
	return f.Text, nil
}

// Route returns the driving route geometry between two points.
func (c *Client) Route(ctx context.Context, from, to models.Coord) ([]models.Coord, error) {
	params := url.Values{}
	params.Set("geometries", "geojson")

	path := fmt.Sprintf("/directions/v5/mapbox/driving/%f,%f;%f,%f", from.Lon, from.Lat, to.Lon, to.Lat)
	var out struct {
		Routes []struct {
			Geometry struct {
				Coordinates [][]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"routes"`
	}
	if err := c.get(ctx, path, params, &out); err != nil {
		return nil, err
	}
	if len(out.Routes) == 0 {
		return nil, ErrNoResult
	}

	coords := make([]models.Coord, 0, len(out.Routes[0].Geometry.Coordinates))
	for _, p := range out.Routes[0].Geometry.Coordinates {
		if len(p) < 2 {
			continue
		}
		coords = append(coords, models.Coord{Lon: p[0], Lat: p[1]})
	}
	return coords, nil
}
