// internal/api/handler/search.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/preilly17/VacationSync-sub009/internal/amadeus"
	"github.com/preilly17/VacationSync-sub009/internal/util"
)

// SearchHandler proxies flight, hotel and activity searches to Amadeus.
type SearchHandler struct {
	client *amadeus.Client
	logger *slog.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(client *amadeus.Client, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{client: client, logger: logger}
}

// Flights handles the flight search request.
// GET /search/flights?origin=JFK&destination=LAX&departureDate=2025-08-20
func (h *SearchHandler) Flights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	adults := 1
	if raw := q.Get("adults"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, h.logger, util.ErrInvalidInput)
			return
		}
		adults = parsed
	}

	result, err := h.client.SearchFlights(r.Context(), amadeus.FlightQuery{
		Origin:        q.Get("origin"),
		Destination:   q.Get("destination"),
		DepartureDate: q.Get("departureDate"),
		ReturnDate:    q.Get("returnDate"),
		Adults:        adults,
		TravelClass:   q.Get("travelClass"),
		Airline:       q.Get("airline"),
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, result)
}

// Hotels handles the hotel search request.
// GET /search/hotels?cityCode=LAX&checkInDate=2025-08-20&checkOutDate=2025-08-22
func (h *SearchHandler) Hotels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	adults, rooms := 1, 1
	var err error
	if raw := q.Get("adults"); raw != "" {
		if adults, err = strconv.Atoi(raw); err != nil {
			respondWithError(w, h.logger, util.ErrInvalidInput)
			return
		}
	}
	if raw := q.Get("roomQuantity"); raw != "" {
		if rooms, err = strconv.Atoi(raw); err != nil {
			respondWithError(w, h.logger, util.ErrInvalidInput)
			return
		}
	}

	result, err := h.client.SearchHotels(r.Context(), amadeus.HotelQuery{
		CityCode:     q.Get("cityCode"),
		CheckInDate:  q.Get("checkInDate"),
		CheckOutDate: q.Get("checkOutDate"),
		Adults:       adults,
		RoomQuantity: rooms,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, result)
}

// Activities handles the activity search request.
// GET /search/activities?latitude=40.7128&longitude=-74.0060&radius=20
func (h *SearchHandler) Activities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := strconv.ParseFloat(q.Get("latitude"), 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	lng, err := strconv.ParseFloat(q.Get("longitude"), 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	radius := 0
	if raw := q.Get("radius"); raw != "" {
		if radius, err = strconv.Atoi(raw); err != nil {
			respondWithError(w, h.logger, util.ErrInvalidInput)
			return
		}
	}

	result, err := h.client.SearchActivities(r.Context(), amadeus.ActivityQuery{
		Latitude:  lat,
		Longitude: lng,
		RadiusKM:  radius,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, result)
}
