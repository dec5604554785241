package mvv

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultDeparturesEndpoint = "https://www.mvv-muenchen.de/"
	defaultTripsEndpoint      = "https://efa.mvv-muenchen.de/ng/XSLT_TRIP_REQUEST2"

	userAgent = "mvgboard/1.0"
)

// Client talks to the two MVV upstreams: the departures finder and the EFA
// trip planner. The zero endpoints default to the public instances.
type Client struct {
	DeparturesEndpoint string
	TripsEndpoint      string

	HTTPClient *http.Client
}

func NewClient() *Client {
	return &Client{
		DeparturesEndpoint: defaultDeparturesEndpoint,
		TripsEndpoint:      defaultTripsEndpoint,

		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Departures fetches the raw live departures for a stop. A non-2xx status is
// a fetch failure.
func (c *Client) Departures(ctx context.Context, stopID string, requestedAt time.Time) ([]Departure, error) {
	requestURL := fmt.Sprintf(
		"%s?eID=departuresFinder&action=get_departures&stop_id=%s&requested_timestamp=%d&lines=all",
		c.DeparturesEndpoint,
		url.QueryEscape(stopID),
		requestedAt.Unix(),
	)

	jsonBytes, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var departuresResponse DeparturesResponse
	if err := json.Unmarshal(jsonBytes, &departuresResponse); err != nil {
		return nil, fmt.Errorf("failed to decode departures response: %w", err)
	}

	return departuresResponse.Departures, nil
}

// Trips fetches trip itineraries between two stops departing at or after
// departAt.
func (c *Client) Trips(ctx context.Context, originStopID string, destinationStopID string, departAt time.Time) ([]Trip, error) {
	requestURL := fmt.Sprintf(
		"%s?outputFormat=JSON&language=en&type_origin=stopID&name_origin=%s&type_destination=stopID&name_destination=%s&itdDate=%s&itdTime=%s&itdTripDateTimeDepArr=dep",
		c.TripsEndpoint,
		url.QueryEscape(originStopID),
		url.QueryEscape(destinationStopID),
		departAt.Format("20060102"),
		departAt.Format("1504"),
	)

	jsonBytes, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var tripsResponse TripsResponse
	if err := json.Unmarshal(jsonBytes, &tripsResponse); err != nil {
		return nil, fmt.Errorf("failed to decode trips response: %w", err)
	}

	return tripsResponse.Trips, nil
}

func (c *Client) get(ctx context.Context, requestURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upstream returned HTTP %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
