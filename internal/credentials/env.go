package credentials

import "os"

// EnvFetcher retrieves credentials from environment variables
type EnvFetcher struct {
	// RequireAccountID makes a missing INSTAGRAM_ACCOUNT_ID an error.
	// Discovery only needs the token; verification needs both.
	RequireAccountID bool
}

// NewEnvFetcher creates a new environment-based credentials fetcher
func NewEnvFetcher(requireAccountID bool) *EnvFetcher {
	return &EnvFetcher{RequireAccountID: requireAccountID}
}

// Credentials retrieves the token and account id from the environment
func (e *EnvFetcher) Credentials() (string, string, error) {
	token := os.Getenv(EnvAccessToken)
	accountID := os.Getenv(EnvAccountID)

	var missing []string
	if token == "" {
		missing = append(missing, EnvAccessToken)
	}
	if accountID == "" && e.RequireAccountID {
		missing = append(missing, EnvAccountID)
	}
	if len(missing) > 0 {
		return "", "", &MissingInputError{Vars: missing}
	}

	return token, accountID, nil
}

// AppCredentialFromEnv reads the Meta app id and secret, for renewal flows
// that run without prompts.
func AppCredentialFromEnv() (appID, appSecret string, err error) {
	appID = os.Getenv(EnvAppID)
	appSecret = os.Getenv(EnvAppSecret)

	var missing []string
	if appID == "" {
		missing = append(missing, EnvAppID)
	}
	if appSecret == "" {
		missing = append(missing, EnvAppSecret)
	}
	if len(missing) > 0 {
		return "", "", &MissingInputError{Vars: missing}
	}

	return appID, appSecret, nil
}
