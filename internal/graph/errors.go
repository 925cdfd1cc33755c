package graph

import (
	"errors"
	"fmt"
)

// Well-known Graph API error codes, used to map upstream failures to
// actionable diagnostics.
const (
	CodeInvalidToken     = 190
	CodeUnknownObject    = 100
	CodePermissionDenied = 10
)

var (
	// ErrNoPages means the token's identity manages no Facebook Pages.
	ErrNoPages = errors.New("no facebook pages found for this token")
	// ErrNoInstagramAccount means pages exist but none has a linked
	// Instagram Business Account.
	ErrNoInstagramAccount = errors.New("no instagram business account linked to any page")
	// ErrShortLivedToken is returned when a short-lived token is passed to a
	// call that requires an exchanged long-lived token.
	ErrShortLivedToken = errors.New("short-lived token must be exchanged before use")
)

// NetworkError is a transport-level failure: the request never produced an
// HTTP response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("graph: %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UpstreamError is a non-2xx or malformed response from the Graph API. Raw
// preserves the body verbatim for diagnostics.
type UpstreamError struct {
	StatusCode int
	Code       int
	Subcode    int
	Type       string
	Message    string
	Raw        string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("graph api error %d (code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("graph api error %d: %s", e.StatusCode, e.Raw)
}

// TokenExchangeError means the exchange call failed or returned no token.
type TokenExchangeError struct {
	Raw string
	Err error
}

func (e *TokenExchangeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token exchange failed: %v", e.Err)
	}
	return fmt.Sprintf("token exchange failed: %s", e.Raw)
}

func (e *TokenExchangeError) Unwrap() error { return e.Err }
