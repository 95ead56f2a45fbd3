package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"groupcal/pkg/model"
)

// UserClient resolves participant identities against the user service.
type UserClient struct {
	httpClient *HttpClient
}

func NewUserClient(baseURL, serviceToken string, timeout time.Duration) *UserClient {
	return &UserClient{
		httpClient: NewHttpClient(baseURL, serviceToken, timeout),
	}
}

func (c *UserClient) ResolveParticipant(ctx context.Context, id string) (*model.Participant, error) {
	path := "/api/v1/participants/" + url.PathEscape(id)

	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("user service call failed: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("participant %s: %w", id, ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("user service returned %d: %s", resp.StatusCode, GetErrorMessage(resp))
	}

	var participant model.Participant
	if err := resp.DecodeJSON(&participant); err != nil {
		return nil, fmt.Errorf("could not decode participant: %w", err)
	}
	return &participant, nil
}
