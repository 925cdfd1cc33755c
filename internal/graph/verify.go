package graph

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// RequiredScopes are the permission grants a token needs for programmatic
// posting through a page-linked Instagram Business Account.
var RequiredScopes = []string{
	"pages_show_list",
	"instagram_basic",
	"instagram_content_publish",
}

// MissingScopes returns the required scopes absent from granted.
func MissingScopes(granted []string) []string {
	have := make(map[string]bool, len(granted))
	for _, s := range granted {
		have[s] = true
	}
	var missing []string
	for _, s := range RequiredScopes {
		if !have[s] {
			missing = append(missing, s)
		}
	}
	return missing
}

// AccountInfo reads the verification field set for an account.
func (c *Client) AccountInfo(ctx context.Context, tok Token, accountID string) (*AccountInfo, error) {
	if tok.Kind != KindLongLived {
		return nil, ErrShortLivedToken
	}

	params := url.Values{}
	params.Set("fields", "id,username,media_count")
	params.Set("access_token", tok.Value)

	var info AccountInfo
	if err := c.get(ctx, "/"+accountID, params, &info); err != nil {
		return nil, err
	}

	return &info, nil
}

// Verify checks that the (token, account id) pair can read the account.
// Every outcome is folded into the result: upstream OAuth errors surface
// their message verbatim, anything else gets a generic diagnostic. A single
// request, never retried.
func (c *Client) Verify(ctx context.Context, tok Token, accountID string) *VerificationResult {
	info, err := c.AccountInfo(ctx, tok, accountID)
	if err == nil {
		return &VerificationResult{
			OK:         true,
			Account:    info,
			Diagnostic: fmt.Sprintf("connected to @%s (%d posts)", info.Username, info.MediaCount),
		}
	}

	var ue *UpstreamError
	if errors.As(err, &ue) {
		result := &VerificationResult{Diagnostic: ue.Message}
		if result.Diagnostic == "" {
			result.Diagnostic = ue.Raw
		}
		switch ue.Code {
		case CodeInvalidToken:
			result.Diagnostic = "invalid or expired access token: " + result.Diagnostic
		case CodeUnknownObject:
			result.Diagnostic = "account id not reachable (is it the Instagram Business Account ID, not the Page ID?): " + result.Diagnostic
		case CodePermissionDenied:
			// the account read cannot tell which grant was missing; report
			// the full required set and let debug_token narrow it down
			result.MissingScopes = RequiredScopes
			result.Diagnostic = "permission denied: " + result.Diagnostic
		}
		return result
	}

	return &VerificationResult{
		Diagnostic: fmt.Sprintf("verification request failed: %v", err),
	}
}
