package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"utsavdarshan/pkg/location"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearbyPlaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/place/nearbysearch/json"), r.URL.Path)
		assert.Equal(t, "2000", r.URL.Query().Get("radius"))
		switch r.URL.Query().Get("type") {
		case "hospital":
			_, _ = w.Write([]byte(`{"status":"OK","results":[
				{"place_id":"h1","name":"KEM","rating":4.1,"vicinity":"Parel","geometry":{"location":{"lat":19.0,"lng":72.84}},"opening_hours":{"open_now":true}},
				{"place_id":"h2","name":"Wadia","geometry":{"location":{"lat":19.0,"lng":72.84}}},
				{"place_id":"h3","name":"Tata","geometry":{"location":{"lat":19.0,"lng":72.84}}},
				{"place_id":"h4","name":"Extra","geometry":{"location":{"lat":19.0,"lng":72.84}}}]}`))
		case "police":
			_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL + "/maps/api/geocode/json"}, srv.Client())
	places, err := c.NearbyPlaces(context.Background(), location.Point{Lat: 19.0, Lon: 72.84}, 2000, []string{"hospital", "police", "pharmacy"})
	require.NoError(t, err)
	require.Len(t, places, 3)
	assert.Equal(t, "KEM", places[0].Name)
	assert.Equal(t, "hospital", places[0].Type)
	require.NotNil(t, places[0].OpenNow)
	assert.True(t, *places[0].OpenNow)
	assert.Nil(t, places[1].Rating)

	_, err = c.NearbyPlaces(context.Background(), location.Point{Lat: 19.0, Lon: 72.84}, 2000, []string{"pharmacy"})
	assert.Error(t, err)
}
