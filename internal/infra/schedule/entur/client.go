// Package entur fetches ferry departures from the Entur JourneyPlanner API.
package entur

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"fergetid/config"
	"fergetid/internal/domain/entity"
	"fergetid/internal/domain/service"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
)

const (
	defaultEndpoint   = "https://api.entur.io/journey-planner/v3/graphql"
	defaultClientName = "fergetid-dev"

	requestTimeout = 8 * time.Second
	retryInterval  = 500 * time.Millisecond
	maxRetries     = 2
)

// departuresQuery asks for the aimed departure times of waterborne calls
// from one quay.
const departuresQuery = `query($id: String!, $start: DateTime!, $n: Int!) {
  quay(id: $id) {
    estimatedCalls(startTime: $start, numberOfDepartures: $n, whiteListedModes: [water]) {
      aimedDepartureTime
    }
  }
}`

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type departuresResponse struct {
	Data struct {
		Quay *struct {
			EstimatedCalls []entity.Departure `json:"estimatedCalls"`
		} `json:"quay"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Client implements the departure schedule source against JourneyPlanner v3.
type Client struct {
	cfg        *config.EnturConfig
	httpClient *http.Client
}

func NewClient(cfg *config.EnturConfig) service.ScheduleSource {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

// Departures returns up to limit aimed departures from the quay. Transient
// upstream failures are retried a couple of times with a constant pause;
// malformed responses and client errors are not.
func (c *Client) Departures(ctx context.Context, quayID string, start time.Time, limit int) (entity.Schedule, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	payload, err := json.Marshal(graphqlRequest{
		Query: departuresQuery,
		Variables: map[string]any{
			"id":    quayID,
			"start": start.Format(time.RFC3339),
			"n":     limit,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal departures query")
	}

	var schedule entity.Schedule
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(errors.Wrap(err, "build departures request"))
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("ET-Client-Name", c.clientName())

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return errors.Wrap(err, "call journey planner")
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			io.Copy(io.Discard, resp.Body)
			statusErr := &service.StatusError{Code: resp.StatusCode}
			if resp.StatusCode >= 500 {
				return statusErr
			}

			return backoff.Permanent(statusErr)
		}

		var decoded departuresResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return backoff.Permanent(errors.Wrap(err, "decode departures response"))
		}
		if len(decoded.Errors) > 0 {
			return backoff.Permanent(errors.Errorf("journey planner error: %s", decoded.Errors[0].Message))
		}
		if decoded.Data.Quay == nil {
			return backoff.Permanent(errors.Errorf("unknown quay: %s", quayID))
		}

		schedule = decoded.Data.Quay.EstimatedCalls

		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(retryInterval), maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return schedule, nil
}

func (c *Client) endpoint() string {
	if c.cfg != nil && c.cfg.Endpoint != "" {
		return c.cfg.Endpoint
	}

	return defaultEndpoint
}

func (c *Client) clientName() string {
	if c.cfg != nil && c.cfg.ClientName != "" {
		return c.cfg.ClientName
	}

	return defaultClientName
}
