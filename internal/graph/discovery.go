package graph

import (
	"context"
	"net/url"
)

// pagesResponse is the me/accounts list envelope
type pagesResponse struct {
	Data []Page `json:"data"`
}

// pageDetailResponse carries the linked Instagram account field of a page
type pageDetailResponse struct {
	InstagramBusinessAccount *struct {
		ID string `json:"id"`
	} `json:"instagram_business_account"`
}

// ListPages returns the Facebook Pages the token's identity manages, in the
// order the API returns them.
func (c *Client) ListPages(ctx context.Context, tok Token) ([]Page, error) {
	if tok.Kind != KindLongLived {
		return nil, ErrShortLivedToken
	}

	params := url.Values{}
	params.Set("access_token", tok.Value)

	var resp pagesResponse
	if err := c.get(ctx, "/me/accounts", params, &resp); err != nil {
		return nil, err
	}

	return resp.Data, nil
}

// DiscoverAccount finds the Instagram Business Account linked to the token's
// identity: list the managed pages, then read each page's linked account
// field. Pages are checked in upstream order and the first match wins; with
// multiple linked accounts the rest are ignored (known limitation).
func (c *Client) DiscoverAccount(ctx context.Context, tok Token) (*InstagramAccount, error) {
	pages, err := c.ListPages(ctx, tok)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	c.logger.Info().Int("pages", len(pages)).Msg("🔍 checking pages for a linked instagram account")

	for _, page := range pages {
		params := url.Values{}
		params.Set("fields", "instagram_business_account")
		params.Set("access_token", tok.Value)

		var detail pageDetailResponse
		if err := c.get(ctx, "/"+page.ID, params, &detail); err != nil {
			return nil, err
		}

		if detail.InstagramBusinessAccount != nil && detail.InstagramBusinessAccount.ID != "" {
			account := &InstagramAccount{
				ID:       detail.InstagramBusinessAccount.ID,
				PageID:   page.ID,
				PageName: page.Name,
			}
			c.logger.Info().
				Str("account_id", account.ID).
				Str("page_id", account.PageID).
				Msg("✅ found instagram business account")
			return account, nil
		}

		c.logger.Debug().Str("page_id", page.ID).Msg("page has no linked instagram account")
	}

	return nil, ErrNoInstagramAccount
}
