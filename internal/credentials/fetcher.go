package credentials

import (
	"fmt"
	"strings"
)

// Environment variables recognized across all entry points.
const (
	EnvAccessToken = "INSTAGRAM_ACCESS_TOKEN"
	EnvAccountID   = "INSTAGRAM_ACCOUNT_ID"
	EnvAppID       = "FACEBOOK_APP_ID"
	EnvAppSecret   = "FACEBOOK_APP_SECRET"
)

// Fetcher defines the interface for retrieving stored credentials
type Fetcher interface {
	// Credentials returns the long-lived access token and, when known, the
	// Instagram Business Account ID. Missing required values yield a
	// *MissingInputError before any network activity.
	Credentials() (accessToken, accountID string, err error)
}

// MissingInputError is a configuration error: required inputs were absent
// before any network call was attempted.
type MissingInputError struct {
	Vars []string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", strings.Join(e.Vars, ", "))
}
