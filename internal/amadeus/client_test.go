// internal/amadeus/client_test.go
package amadeus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestServer returns a server that serves tokens and one search endpoint,
// counting token requests so tests can assert on caching.
func newTestServer(t *testing.T, tokenCount *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "client_credentials", r.FormValue("grant_type"))
		require.Equal(t, "test-id", r.FormValue("client_id"))
		n := atomic.AddInt32(tokenCount, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"tok-%d","expires_in":1800}`, n)
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.LoadInt32(tokenCount)
		require.Equal(t, fmt.Sprintf("Bearer tok-%d", n), r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":[{"id":"1"}],"meta":{"count":1}}`)
	})
	mux.HandleFunc("/v3/shopping/hotel-offers", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":[]}`)
	})
	mux.HandleFunc("/v1/shopping/activities", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20", r.URL.Query().Get("radius"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"data":[]}`)
	})
	return httptest.NewServer(mux)
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(Config{
		ClientID:     "test-id",
		ClientSecret: "test-secret",
		BaseURL:      srv.URL,
	}, testLogger())
}

func validFlightQuery() FlightQuery {
	return FlightQuery{
		Origin:        "jfk",
		Destination:   "LHR",
		DepartureDate: "2026-09-15",
		Adults:        2,
	}
}

func TestSearchFlights(t *testing.T) {
	var tokens int32
	srv := newTestServer(t, &tokens)
	defer srv.Close()
	client := newTestClient(srv)

	result, err := client.SearchFlights(context.Background(), validFlightQuery())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"1"}]`, string(result.Data))
	assert.JSONEq(t, `{"count":1}`, string(result.Meta))
}

func TestTokenIsCachedAcrossCalls(t *testing.T) {
	var tokens int32
	srv := newTestServer(t, &tokens)
	defer srv.Close()
	client := newTestClient(srv)

	for i := 0; i < 3; i++ {
		_, err := client.SearchFlights(context.Background(), validFlightQuery())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokens))
}

func TestTokenRefreshedAfterExpiry(t *testing.T) {
	var tokens int32
	srv := newTestServer(t, &tokens)
	defer srv.Close()
	client := newTestClient(srv)

	_, err := client.SearchFlights(context.Background(), validFlightQuery())
	require.NoError(t, err)

	// Expire the cached token by hand and confirm a fresh one is fetched.
	client.mu.Lock()
	client.tokenExpiresAt = time.Now().Add(-time.Minute)
	client.mu.Unlock()

	_, err = client.SearchFlights(context.Background(), validFlightQuery())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&tokens))
}

func TestSearchFlightsValidation(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://unused"}, testLogger())

	tests := []struct {
		name  string
		query FlightQuery
		field string
	}{
		{
			name:  "bad origin",
			query: FlightQuery{Origin: "NEWYORK", Destination: "LHR", DepartureDate: "2026-09-15", Adults: 1},
			field: "cityCode",
		},
		{
			name:  "bad date",
			query: FlightQuery{Origin: "JFK", Destination: "LHR", DepartureDate: "15/09/2026", Adults: 1},
			field: "departureDate",
		},
		{
			name:  "adults out of range",
			query: FlightQuery{Origin: "JFK", Destination: "LHR", DepartureDate: "2026-09-15", Adults: 31},
			field: "adults",
		},
		{
			name: "bad return date",
			query: FlightQuery{
				Origin: "JFK", Destination: "LHR", DepartureDate: "2026-09-15",
				ReturnDate: "tomorrow", Adults: 1,
			},
			field: "returnDate",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.SearchFlights(context.Background(), tt.query)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestSearchHotels(t *testing.T) {
	var tokens int32
	srv := newTestServer(t, &tokens)
	defer srv.Close()
	client := newTestClient(srv)

	_, err := client.SearchHotels(context.Background(), HotelQuery{
		CityCode:     "par",
		CheckInDate:  "2026-10-01",
		CheckOutDate: "2026-10-05",
		Adults:       2,
		RoomQuantity: 1,
	})
	require.NoError(t, err)

	_, err = client.SearchHotels(context.Background(), HotelQuery{
		CityCode: "PAR", CheckInDate: "2026-10-01", CheckOutDate: "2026-10-05",
		Adults: 2, RoomQuantity: 11,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "roomQuantity", verr.Field)
}

func TestSearchActivities(t *testing.T) {
	var tokens int32
	srv := newTestServer(t, &tokens)
	defer srv.Close()
	client := newTestClient(srv)

	// RadiusKM zero falls back to the 20km default, asserted server-side.
	_, err := client.SearchActivities(context.Background(), ActivityQuery{
		Latitude:  48.8566,
		Longitude: 2.3522,
	})
	require.NoError(t, err)

	_, err = client.SearchActivities(context.Background(), ActivityQuery{Latitude: 91})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "latitude", verr.Field)
}

func TestTokenEndpointFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()
	client := newTestClient(srv)

	_, err := client.SearchFlights(context.Background(), validFlightQuery())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 401")
}
