// Package nhl is the client for the public NHL web API: standings by date,
// current standings and the franchise roster listing.
package nhl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/pucklab/puckcast/pkg/apperrors"
	"github.com/pucklab/puckcast/pkg/config"
)

// backoffCap bounds a single 429 wait regardless of the Retry-After hint.
const backoffCap = 60 * time.Second

// Client issues rate-limited, retrying requests against the NHL web API.
// It paces itself with a fixed delay before every request; the upstream
// throttles aggressively when hit without pauses or without a recognizable
// User-Agent.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	statsBaseURL string
	userAgent    string
	requestDelay time.Duration
	maxRetries   int
	logger       *zap.Logger
}

// NewClient creates a standings API client from configuration.
func NewClient(cfg *config.NHLConfig, logger *zap.Logger) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout()},
		baseURL:      cfg.BaseURL,
		statsBaseURL: cfg.StatsBaseURL,
		userAgent:    cfg.UserAgent,
		requestDelay: cfg.RequestDelay(),
		maxRetries:   cfg.MaxRetries,
		logger:       logger.Named("nhl"),
	}
}

// Standings fetches the league standings as observed on the given date.
// Returns apperrors.ErrRateLimited once 429 retries exhaust; the caller skips
// the date and picks it up on a later run. Any other failure is returned
// wrapped and is likewise skippable per date.
func (c *Client) Standings(ctx context.Context, date time.Time) ([]TeamStanding, error) {
	url := fmt.Sprintf("%s/standings/%s", c.baseURL, date.Format("2006-01-02"))

	var resp standingsResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	return resp.Standings, nil
}

// StandingsNow fetches the current standings, used to seed team metadata
// (conference, division, logo).
func (c *Client) StandingsNow(ctx context.Context) ([]TeamStanding, error) {
	var resp standingsResponse
	if err := c.getJSON(ctx, c.baseURL+"/standings/now", &resp); err != nil {
		return nil, err
	}
	return resp.Standings, nil
}

// Teams fetches the franchise listing with stable league ids.
func (c *Client) Teams(ctx context.Context) ([]RosterTeam, error) {
	var resp rosterResponse
	if err := c.getJSON(ctx, c.statsBaseURL+"/en/team", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// getJSON performs one logical GET with proactive pacing and bounded 429
// retries, decoding the body into v on 200.
func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	delay := 2 * time.Second

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		// Self-imposed pacing applies to every request, retries included.
		if err := c.wait(ctx, c.requestDelay); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("standings API request failed: %w", err)
		}

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(v)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("failed to decode standings API response: %w", err)
			}
			return nil

		case http.StatusTooManyRequests:
			wait := retryAfter(resp, delay)
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()

			c.logger.Warn("Rate limited by standings API",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait))

			if err := c.wait(ctx, wait); err != nil {
				return err
			}
			delay *= 2
			if delay > backoffCap {
				delay = backoffCap
			}

		default:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return fmt.Errorf("standings API returned status %d for %s", resp.StatusCode, url)
		}
	}

	return fmt.Errorf("%w: gave up on %s after %d attempts", apperrors.ErrRateLimited, url, c.maxRetries)
}

// retryAfter picks the wait for a 429: the server's Retry-After hint when
// parseable, otherwise the current exponential delay, always capped.
func retryAfter(resp *http.Response, fallback time.Duration) time.Duration {
	wait := fallback
	if hint := resp.Header.Get("Retry-After"); hint != "" {
		if secs, err := strconv.Atoi(hint); err == nil && secs > 0 {
			wait = time.Duration(secs) * time.Second
		}
	}
	if wait > backoffCap {
		wait = backoffCap
	}
	return wait
}

// wait sleeps for d or returns early if the context is cancelled.
func (c *Client) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
