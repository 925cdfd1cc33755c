package graph

import (
	"context"
	"net/url"
	"time"
)

// tokenExchangeResponse is the OAuth token exchange API response
type tokenExchangeResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// debugTokenResponse is the debug_token API response envelope
type debugTokenResponse struct {
	Data struct {
		AppID     string   `json:"app_id"`
		UserID    string   `json:"user_id"`
		IsValid   bool     `json:"is_valid"`
		ExpiresAt int64    `json:"expires_at"`
		Scopes    []string `json:"scopes"`
	} `json:"data"`
}

// ExchangeToken exchanges a token for a fresh long-lived one using the
// fb_exchange_token grant. The input is usually short-lived, but an aging
// long-lived token can be re-exchanged the same way during renewal. A single
// request, no retries; any failure is wrapped in *TokenExchangeError with
// the raw response preserved.
func (c *Client) ExchangeToken(ctx context.Context, appID, appSecret string, from Token) (Token, error) {
	params := url.Values{}
	params.Set("grant_type", "fb_exchange_token")
	params.Set("client_id", appID)
	params.Set("client_secret", appSecret)
	params.Set("fb_exchange_token", from.Value)

	var resp tokenExchangeResponse
	if err := c.get(ctx, "/oauth/access_token", params, &resp); err != nil {
		if ue, ok := err.(*UpstreamError); ok {
			return Token{}, &TokenExchangeError{Raw: ue.Raw, Err: ue}
		}
		return Token{}, &TokenExchangeError{Err: err}
	}

	if resp.AccessToken == "" {
		return Token{}, &TokenExchangeError{Raw: "response contained no access_token"}
	}

	tok := Token{
		Value:     resp.AccessToken,
		Kind:      KindLongLived,
		ExpiresIn: time.Duration(resp.ExpiresIn) * time.Second,
	}

	c.logger.Info().
		Dur("expires_in", tok.ExpiresIn).
		Msg("✅ exchanged short-lived token for long-lived token")

	return tok, nil
}

// DebugToken inspects a token via the debug_token endpoint. The token is
// used both as the subject and as the authorizing credential, matching how
// a user token can introspect itself.
func (c *Client) DebugToken(ctx context.Context, tok Token) (*TokenInfo, error) {
	params := url.Values{}
	params.Set("input_token", tok.Value)
	params.Set("access_token", tok.Value)

	var resp debugTokenResponse
	if err := c.get(ctx, "/debug_token", params, &resp); err != nil {
		return nil, err
	}

	info := &TokenInfo{
		AppID:   resp.Data.AppID,
		UserID:  resp.Data.UserID,
		IsValid: resp.Data.IsValid,
		Scopes:  resp.Data.Scopes,
	}
	if resp.Data.ExpiresAt > 0 {
		info.ExpiresAt = time.Unix(resp.Data.ExpiresAt, 0)
	}

	return info, nil
}
