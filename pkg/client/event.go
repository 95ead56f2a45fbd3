package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"groupcal/pkg/model"
)

// EventClient queries the event service for the busy intervals of a set of
// participants over an inclusive date range.
type EventClient struct {
	httpClient *HttpClient
}

func NewEventClient(baseURL, serviceToken string, timeout time.Duration) *EventClient {
	return &EventClient{
		httpClient: NewHttpClient(baseURL, serviceToken, timeout),
	}
}

func (c *EventClient) FetchBusyIntervals(ctx context.Context, participantIDs []string, period model.Period) ([]model.BusyInterval, error) {
	q := url.Values{}
	q.Set("participantIds", strings.Join(participantIDs, ","))
	q.Set("start", period.Start)
	q.Set("end", period.End)

	resp, err := c.httpClient.GET(ctx, "/api/v1/busy-intervals?"+q.Encode())
	if err != nil {
		return nil, fmt.Errorf("event service call failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("event service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var intervals []model.BusyInterval
	if err := resp.DecodeJSON(&intervals); err != nil {
		return nil, fmt.Errorf("could not decode busy intervals: %w", err)
	}
	return intervals, nil
}
