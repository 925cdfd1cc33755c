package secrets

// Names of the repository secrets this tool manages.
const (
	NameAccessToken = "INSTAGRAM_ACCESS_TOKEN"
	NameAccountID   = "INSTAGRAM_ACCOUNT_ID"
	NameAppID       = "FACEBOOK_APP_ID"
	NameAppSecret   = "FACEBOOK_APP_SECRET"
)

// Store pushes named secrets into an external secret store.
type Store interface {
	// Available reports whether the store's backing tool can be used at all.
	// An unavailable store is a normal skip for the caller, not an error.
	Available() bool
	// Set stores one name/value pair. The value must never appear in logs
	// or process listings.
	Set(name, value string) error
}
