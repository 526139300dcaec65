// internal/amadeus/client.go
package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Config holds Amadeus API configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string // e.g. https://api.amadeus.com or the test host
}

// SearchResult is the payload Amadeus returns for every search endpoint: a
// data array plus optional meta, passed through to the caller untouched.
type SearchResult struct {
	Data json.RawMessage `json:"data"`
	Meta json.RawMessage `json:"meta,omitempty"`
}

// Client is an Amadeus API client with a cached OAuth token. The token is
// refreshed lazily when within 5 minutes of expiry, keeping at least a
// 60-second validity window.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger

	mu             sync.Mutex
	accessToken    string
	tokenExpiresAt time.Time
}

// NewClient creates a new Amadeus client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 20 * time.Second},
		logger:     logger,
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// token returns a valid access token, requesting a new one when the cached
// token is missing or near expiry.
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiresAt) {
		return c.accessToken, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.cfg.BaseURL+"/v1/security/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("amadeus token: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("amadeus token: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("amadeus token: unexpected status %d: %s", resp.StatusCode, body)
	}

	var token tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("amadeus token: failed to decode response: %w", err)
	}
	if token.ExpiresIn <= 0 {
		token.ExpiresIn = 1800
	}

	// Refresh 5 minutes early, but never hold a token for less than 60s.
	validFor := time.Duration(token.ExpiresIn)*time.Second - 5*time.Minute
	if validFor < 60*time.Second {
		validFor = 60 * time.Second
	}
	c.accessToken = token.AccessToken
	c.tokenExpiresAt = time.Now().Add(validFor)
	c.logger.Info("amadeus token refreshed", "expires_at", c.tokenExpiresAt)
	return c.accessToken, nil
}

// get performs an authenticated GET against the given Amadeus endpoint.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) (*SearchResult, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.cfg.BaseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("amadeus: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("amadeus: request to %s failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("amadeus: %s returned status %d: %s", endpoint, resp.StatusCode, body)
	}

	var result SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("amadeus: failed to decode %s response: %w", endpoint, err)
	}
	return &result, nil
}

// FlightQuery holds parameters for a flight-offer search.
type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	TravelClass   string
	Airline       string
}

// SearchFlights searches flight offers (Flight Offers v2).
func (c *Client) SearchFlights(ctx context.Context, q FlightQuery) (*SearchResult, error) {
	origin, err := ValidateCityCode(q.Origin)
	if err != nil {
		return nil, err
	}
	destination, err := ValidateCityCode(q.Destination)
	if err != nil {
		return nil, err
	}
	departure, err := ValidateDate(q.DepartureDate, "departureDate")
	if err != nil {
		return nil, err
	}
	adults, err := ValidateRange(q.Adults, "adults", 1, 30)
	if err != nil {
		return nil, err
	}
	travelClass := q.TravelClass
	if travelClass == "" {
		travelClass = "ECONOMY"
	}

	params := url.Values{
		"originLocationCode":      {origin},
		"destinationLocationCode": {destination},
		"departureDate":           {departure},
		"adults":                  {fmt.Sprint(adults)},
		"travelClass":             {strings.ToUpper(travelClass)},
		"currencyCode":            {"USD"},
		"max":                     {"50"},
	}
	if q.ReturnDate != "" {
		returnDate, err := ValidateDate(q.ReturnDate, "returnDate")
		if err != nil {
			return nil, err
		}
		params.Set("returnDate", returnDate)
	}
	if q.Airline != "" {
		params.Set("includedAirlineCodes", strings.ToUpper(q.Airline))
	}

	return c.get(ctx, "/v2/shopping/flight-offers", params)
}

// HotelQuery holds parameters for a hotel-offer search.
type HotelQuery struct {
	CityCode     string
	CheckInDate  string
	CheckOutDate string
	Adults       int
	RoomQuantity int
}

// SearchHotels searches hotel offers (Hotel Offers v3).
func (c *Client) SearchHotels(ctx context.Context, q HotelQuery) (*SearchResult, error) {
	cityCode, err := ValidateCityCode(q.CityCode)
	if err != nil {
		return nil, err
	}
	checkIn, err := ValidateDate(q.CheckInDate, "checkInDate")
	if err != nil {
		return nil, err
	}
	checkOut, err := ValidateDate(q.CheckOutDate, "checkOutDate")
	if err != nil {
		return nil, err
	}
	adults, err := ValidateRange(q.Adults, "adults", 1, 30)
	if err != nil {
		return nil, err
	}
	rooms, err := ValidateRange(q.RoomQuantity, "roomQuantity", 1, 10)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"cityCode":     {cityCode},
		"checkInDate":  {checkIn},
		"checkOutDate": {checkOut},
		"adults":       {fmt.Sprint(adults)},
		"roomQuantity": {fmt.Sprint(rooms)},
	}
	return c.get(ctx, "/v3/shopping/hotel-offers", params)
}

// ActivityQuery holds parameters for a points-of-interest search.
type ActivityQuery struct {
	Latitude  float64
	Longitude float64
	RadiusKM  int
}

// SearchActivities searches tours and activities around a point (v1).
func (c *Client) SearchActivities(ctx context.Context, q ActivityQuery) (*SearchResult, error) {
	if q.Latitude < -90 || q.Latitude > 90 {
		return nil, &ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"}
	}
	if q.Longitude < -180 || q.Longitude > 180 {
		return nil, &ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"}
	}
	radius := q.RadiusKM
	if radius == 0 {
		radius = 20
	}
	if radius < 1 || radius > 100 {
		return nil, &ValidationError{Field: "radius", Message: "radius must be between 1 and 100 km"}
	}

	params := url.Values{
		"latitude":  {fmt.Sprint(q.Latitude)},
		"longitude": {fmt.Sprint(q.Longitude)},
		"radius":    {fmt.Sprint(radius)},
	}
	return c.get(ctx, "/v1/shopping/activities", params)
}
