package graph

import "time"

// TokenKind classifies an access token by its lifetime class.
type TokenKind int

const (
	// KindShortLived is a token from the Graph API Explorer or a login dialog,
	// valid for about an hour. It must be exchanged before use.
	KindShortLived TokenKind = iota
	// KindLongLived is an exchanged token, valid for about 60 days.
	KindLongLived
)

func (k TokenKind) String() string {
	switch k {
	case KindShortLived:
		return "short_lived"
	case KindLongLived:
		return "long_lived"
	default:
		return "unknown"
	}
}

// Token is an opaque bearer credential tagged with its lifetime class.
// Exchange produces a new Token; values are never mutated in place.
type Token struct {
	Value     string
	Kind      TokenKind
	ExpiresIn time.Duration
}

// ShortLived wraps a raw token string as a short-lived token.
func ShortLived(value string) Token {
	return Token{Value: value, Kind: KindShortLived}
}

// LongLived wraps a raw token string as a long-lived token. Used when the
// caller already holds an exchanged token, e.g. from the environment.
func LongLived(value string) Token {
	return Token{Value: value, Kind: KindLongLived}
}

// TokenInfo is the debug_token view of a token.
type TokenInfo struct {
	AppID     string
	UserID    string
	IsValid   bool
	ExpiresAt time.Time
	Scopes    []string
}

// DaysRemaining returns whole days until the token expires. Zero ExpiresAt
// (a token that never expires) reports -1.
func (i TokenInfo) DaysRemaining() int {
	if i.ExpiresAt.IsZero() {
		return -1
	}
	return int(time.Until(i.ExpiresAt).Hours() / 24)
}

// InstagramAccount is a discovered Instagram Business Account and the
// Facebook Page it is linked through.
type InstagramAccount struct {
	ID       string
	PageID   string
	PageName string
}

// Page is one entry from the pages-list endpoint.
type Page struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AccountInfo is the small field set read during verification.
type AccountInfo struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	MediaCount int    `json:"media_count"`
}

// VerificationResult reports whether a (token, account id) pair is usable.
type VerificationResult struct {
	OK            bool
	Account       *AccountInfo
	MissingScopes []string
	Diagnostic    string
}
