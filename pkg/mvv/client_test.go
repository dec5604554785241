package mvv

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const departuresFixture = `{
	"departures": [
		{
			"departurePlanned": "12:10",
			"departureLive": "12:12",
			"line": {"name": "U-Bahn", "number": "U3"},
			"direction": "Moosach"
		},
		{
			"departurePlanned": "12:15",
			"line": {"name": "Bus", "number": "54"},
			"direction": "Lorettoplatz"
		}
	]
}`

func TestDepartures(t *testing.T) {
	requestedAt := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.Equal(t, "get_departures", query.Get("action"))
		assert.Equal(t, "de:09162:6", query.Get("stop_id"))
		assert.Equal(t, "1715774400", query.Get("requested_timestamp"))

		w.Write([]byte(departuresFixture))
	}))
	defer server.Close()

	client := NewClient()
	client.DeparturesEndpoint = server.URL

	departures, err := client.Departures(context.Background(), "de:09162:6", requestedAt)
	require.NoError(t, err)

	require.Len(t, departures, 2)
	assert.Equal(t, "12:12", departures[0].DepartureLive)
	assert.Equal(t, "U-Bahn", departures[0].Line.Name)
	assert.Equal(t, "U3", departures[0].Line.Number)
	assert.Equal(t, "Moosach", departures[0].Direction)

	// live estimate missing entirely
	assert.Empty(t, departures[1].DepartureLive)
}

func TestDeparturesNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient()
	client.DeparturesEndpoint = server.URL

	_, err := client.Departures(context.Background(), "de:09162:6", time.Now())
	assert.Error(t, err)
}

func TestDeparturesMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := NewClient()
	client.DeparturesEndpoint = server.URL

	_, err := client.Departures(context.Background(), "de:09162:6", time.Now())
	assert.Error(t, err)
}

func TestTrips(t *testing.T) {
	departAt := time.Date(2024, 5, 15, 12, 30, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		assert.Equal(t, "de:09162:6", query.Get("name_origin"))
		assert.Equal(t, "de:09184:460", query.Get("name_destination"))
		assert.Equal(t, "20240515", query.Get("itdDate"))
		assert.Equal(t, "1230", query.Get("itdTime"))
		assert.Equal(t, "dep", query.Get("itdTripDateTimeDepArr"))

		w.Write([]byte(`{"trips": [{"legs": [{"mode": {"number": "U6"}, "points": [{"dateTime": {"time": "12:35"}}, {"dateTime": {"time": "12:52"}}]}]}]}`))
	}))
	defer server.Close()

	client := NewClient()
	client.TripsEndpoint = server.URL

	trips, err := client.Trips(context.Background(), "de:09162:6", "de:09184:460", departAt)
	require.NoError(t, err)

	require.Len(t, trips, 1)
	require.Len(t, trips[0].Legs, 1)

	leg := trips[0].Legs[0]
	assert.Equal(t, "U6", leg.Mode.Number)
	require.Len(t, leg.Points, 2)
	assert.Equal(t, "12:35", leg.Points[0].DateTime.Time)
	assert.Equal(t, "12:52", leg.Points[1].DateTime.Time)
}
