// Package spotify provides a client for the Spotify Web API endpoints
// the pipeline uses: profile, library, top artists and playlists.
package spotify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/alessandroseni/spotisync/internal/logger"
)

// Client errors.
var (
	ErrUnexpectedStatusCode = errors.New("unexpected status code")
	ErrEmptyPlaylistID      = errors.New("playlist id is empty")
)

const (
	// apiBaseURL is the Web API root all request paths are joined to.
	apiBaseURL = "https://api.spotify.com/v1"

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 10 * 1024 * 1024

	// maxArtistsPerLookup is the id cap of the batch artist endpoint.
	maxArtistsPerLookup = 50
)

// Time range identifiers accepted by the top-artists endpoint.
const (
	TimeRangeShort  = "short_term"
	TimeRangeMedium = "medium_term"
	TimeRangeLong   = "long_term"
)

// TimeRanges lists the ranges the collectors iterate, nearest first.
var TimeRanges = []string{TimeRangeShort, TimeRangeMedium, TimeRangeLong}

// Client performs authenticated requests against the Web API.
// The HTTP client is expected to inject authorization, normally the
// one returned by Authenticator.Client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logger.Logger
}

// NewClient creates a Web API client backed by the given HTTP client.
func NewClient(httpClient *http.Client, log *logger.Logger) *Client {
	return NewClientWithBaseURL(httpClient, apiBaseURL, log)
}

// NewClientWithBaseURL creates a client against a custom API root
// (useful for testing).
func NewClientWithBaseURL(httpClient *http.Client, baseURL string, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		logger:     log,
	}
}

// get performs a GET request and decodes the JSON response into target.
func (c *Client) get(path string, query url.Values, target interface{}) error {
	return c.send(http.MethodGet, path, query, nil, target)
}

// send performs a request with an optional JSON body and decodes the
// response into target when target is non-nil.
func (c *Client) send(method, path string, query url.Values, body, target interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	if c.logger != nil {
		c.logger.Debug(fmt.Sprintf("Spotify API request: %s %s", method, path))
	}

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		message := apiErrorMessage(respBody)
		if c.logger != nil {
			c.logger.Error(fmt.Sprintf("Spotify API request %s %s failed with status %d: %s", method, path, resp.StatusCode, message))
		}

		return fmt.Errorf("%w: %d: %s", ErrUnexpectedStatusCode, resp.StatusCode, message)
	}

	if target == nil {
		return nil
	}

	if err := json.Unmarshal(respBody, target); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}

// apiErrorMessage extracts the error message from a Web API error body,
// falling back to the raw body when it is not the documented shape.
func apiErrorMessage(body []byte) string {
	var apiErr struct {
		Error struct {
			Status  int    `json:"status"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return apiErr.Error.Message
	}

	return string(body)
}
