package graph

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the Graph API root used for every call.
const DefaultBaseURL = "https://graph.facebook.com/v18.0"

// HTTPClient is an interface for making HTTP requests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a minimal Graph API client covering token exchange, account
// discovery and credential verification. It performs no retries: a failed
// call surfaces immediately to the caller.
type Client struct {
	BaseURL    string
	httpClient HTTPClient
	logger     zerolog.Logger
}

// New creates a Graph API client with the default HTTP client
func New(logger zerolog.Logger) *Client {
	return NewWithHTTPClient(logger, &http.Client{Timeout: 30 * time.Second})
}

// NewWithHTTPClient creates a Graph API client with a custom HTTP client,
// used by tests to point at a fake upstream.
func NewWithHTTPClient(logger zerolog.Logger, hc HTTPClient) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		httpClient: hc,
		logger:     logger,
	}
}

// upstreamErrorBody is the Graph API error envelope
type upstreamErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
		Subcode int    `json:"error_subcode"`
	} `json:"error"`
}

// get issues a single GET against path with the given query parameters and
// decodes the 2xx body into out. Non-2xx responses become *UpstreamError,
// transport failures *NetworkError.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := c.BaseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &NetworkError{Op: "build request " + path, Err: err}
	}

	c.logger.Debug().Str("path", path).Msg("graph api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: "read response " + path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeUpstreamError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    "malformed JSON response",
			Raw:        strings.TrimSpace(string(body)),
		}
	}

	return nil
}

func decodeUpstreamError(status int, body []byte) *UpstreamError {
	ue := &UpstreamError{
		StatusCode: status,
		Raw:        strings.TrimSpace(string(body)),
	}
	var envelope upstreamErrorBody
	if err := json.Unmarshal(body, &envelope); err == nil {
		ue.Code = envelope.Error.Code
		ue.Subcode = envelope.Error.Subcode
		ue.Type = envelope.Error.Type
		ue.Message = envelope.Error.Message
	}
	return ue
}
