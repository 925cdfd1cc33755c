package credentials

// StaticFetcher wraps values supplied directly, e.g. a positional
// command-line argument.
type StaticFetcher struct {
	AccessToken string
	AccountID   string
}

// Credentials returns the wrapped values
func (s *StaticFetcher) Credentials() (string, string, error) {
	if s.AccessToken == "" {
		return "", "", &MissingInputError{Vars: []string{EnvAccessToken}}
	}
	return s.AccessToken, s.AccountID, nil
}
