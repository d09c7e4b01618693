package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelsapp/wheels-cli/internal/client/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "test-token")
	return c
}

func TestForward_ParsesFeatures(t *testing.T) {
	var gotQuery string
	var gotParams map[string][]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Path
		gotParams = r.URL.Query()
		_, _ = w.Write([]byte(`{"features":[
			{"place_name":"Calle 100, Bogota","center":[-74.05,4.68]},
			{"place_name":"broken, no center","center":[]}
		]}`))
	})
	c.BBox = "-75.0,3.7,-73.2,5.5"

	places, err := c.Forward(context.Background(), "calle 100")
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "/geocoding/v5/mapbox.places/")
	assert.Equal(t, []string{"test-token"}, gotParams["access_token"])
	assert.Equal(t, []string{"true"}, gotParams["autocomplete"])
	assert.Equal(t, []string{"5"}, gotParams["limit"])
	assert.Equal(t, []string{"-75.0,3.7,-73.2,5.5"}, gotParams["bbox"])

	// the feature without a usable center is skipped
	require.Len(t, places, 1)
	assert.Equal(t, "Calle 100, Bogota", places[0].Name)
	assert.Equal(t, models.Coord{Lon: -74.05, Lat: 4.68}, places[0].Center)
}

func TestForward_ProviderError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Forward(context.Background(), "calle 100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "geocoder status 401")
}

func reverseHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}
}

func TestReverse_PrefersNeighborhood(t *testing.T) {
	c := newTestClient(t, reverseHandler(`{"features":[{
		"text":"Carrera 7",
		"place_type":["address"],
		"context":[
			{"id":"neighborhood.1","text":"Chapinero Alto"},
			{"id":"place.1","text":"Bogota"},
			{"id":"region.1","text":"Cundinamarca"}
		]
	}]}`))
	c.Region = "Cundinamarca"

	name, err := c.Reverse(context.Background(), models.Coord{Lon: -74.05, Lat: 4.68})
	require.NoError(t, err)
	assert.Equal(t, "Chapinero Alto", name)
}

func TestReverse_FallsBackToAddressText(t *testing.T) {
	c := newTestClient(t, reverseHandler(`{"features":[{
		"text":"Carrera 7 # 45-10",
		"place_type":["address"],
		"context":[{"id":"region.1","text":"Cundinamarca"}]
	}]}`))

	name, err := c.Reverse(context.Background(), models.Coord{})
	require.NoError(t, err)
	assert.Equal(t, "Carrera 7 # 45-10", name)
}

func TestReverse_OutsideRegion_NoResult(t *testing.T) {
	c := newTestClient(t, reverseHandler(`{"features":[{
		"text":"Somewhere",
		"context":[{"id":"region.1","text":"Antioquia"}]
	}]}`))
	c.Region = "Cundinamarca"

	_, err := c.Reverse(context.Background(), models.Coord{})
	require.ErrorIs(t, err, ErrNoResult)
}

func TestReverse_NoFeatures_NoResult(t *testing.T) {
	c := newTestClient(t, reverseHandler(`{"features":[]}`))

	_, err := c.Reverse(context.Background(), models.Coord{})
	require.ErrorIs(t, err, ErrNoResult)
}

func TestRoute_ReturnsGeometry(t *testing.T) {
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"routes":[{"geometry":{"coordinates":[[-74.05,4.68],[-74.04,4.70]]}}]}`))
	})

	coords, err := c.Route(context.Background(),
		models.Coord{Lon: -74.05, Lat: 4.68}, models.Coord{Lon: -74.04, Lat: 4.70})
	require.NoError(t, err)

	assert.Contains(t, gotPath, "/directions/v5/mapbox/driving/")
	require.Len(t, coords, 2)
	assert.Equal(t, models.Coord{Lon: -74.04, Lat: 4.70}, coords[1])
}

func TestRoute_NoRoutes_NoResult(t *testing.T) {
	c := newTestClient(t, reverseHandler(`{"routes":[]}`))

	_, err := c.Route(context.Background(), models.Coord{}, models.Coord{})
	require.ErrorIs(t, err, ErrNoResult)
}
