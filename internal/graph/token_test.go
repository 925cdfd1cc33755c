package graph

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewWithHTTPClient(zerolog.Nop(), srv.Client())
	c.BaseURL = srv.URL
	return c, srv
}

func TestExchangeToken(t *testing.T) {
	t.Run("returns long-lived token on success", func(t *testing.T) {
		c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/oauth/access_token", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "fb_exchange_token", q.Get("grant_type"))
			assert.Equal(t, "123", q.Get("client_id"))
			assert.Equal(t, "secret", q.Get("client_secret"))
			assert.Equal(t, "tok1", q.Get("fb_exchange_token"))
			w.Write([]byte(`{"access_token":"tok2","token_type":"bearer","expires_in":5184000}`))
		}))

		tok, err := c.ExchangeToken(context.Background(), "123", "secret", ShortLived("tok1"))
		require.NoError(t, err)
		assert.Equal(t, "tok2", tok.Value)
		assert.Equal(t, KindLongLived, tok.Kind)
		assert.Equal(t, 5184000*time.Second, tok.ExpiresIn)
	})

	t.Run("fails when access_token is missing", func(t *testing.T) {
		c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"token_type":"bearer"}`))
		}))

		tok, err := c.ExchangeToken(context.Background(), "123", "secret", ShortLived("tok1"))
		require.Error(t, err)
		var exchErr *TokenExchangeError
		require.ErrorAs(t, err, &exchErr)
		assert.Empty(t, tok.Value)
	})

	t.Run("carries raw body on upstream error", func(t *testing.T) {
		c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"Invalid OAuth access token.","type":"OAuthException","code":190}}`))
		}))

		_, err := c.ExchangeToken(context.Background(), "123", "secret", ShortLived("expired"))
		var exchErr *TokenExchangeError
		require.ErrorAs(t, err, &exchErr)
		assert.Contains(t, exchErr.Raw, "Invalid OAuth access token.")

		var ue *UpstreamError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, CodeInvalidToken, ue.Code)
	})

	t.Run("wraps transport failures", func(t *testing.T) {
		c, srv := testClient(t, http.NotFoundHandler())
		srv.Close()

		_, err := c.ExchangeToken(context.Background(), "123", "secret", ShortLived("tok1"))
		var exchErr *TokenExchangeError
		require.ErrorAs(t, err, &exchErr)
		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
	})
}

func TestDebugToken(t *testing.T) {
	t.Run("parses token info", func(t *testing.T) {
		expiresAt := time.Now().Add(30 * 24 * time.Hour).Unix()
		c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/debug_token", r.URL.Path)
			assert.Equal(t, "tok2", r.URL.Query().Get("input_token"))
			assert.Equal(t, "tok2", r.URL.Query().Get("access_token"))
			w.Write([]byte(`{"data":{"app_id":"123","user_id":"u1","is_valid":true,"expires_at":` +
				strconv.FormatInt(expiresAt, 10) + `,"scopes":["pages_show_list","instagram_basic"]}}`))
		}))

		info, err := c.DebugToken(context.Background(), LongLived("tok2"))
		require.NoError(t, err)
		assert.Equal(t, "123", info.AppID)
		assert.True(t, info.IsValid)
		assert.Equal(t, 29, info.DaysRemaining())
		assert.Equal(t, []string{"pages_show_list", "instagram_basic"}, info.Scopes)
	})

	t.Run("never-expiring token has no expiry", func(t *testing.T) {
		c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data":{"app_id":"123","is_valid":true,"expires_at":0}}`))
		}))

		info, err := c.DebugToken(context.Background(), LongLived("tok2"))
		require.NoError(t, err)
		assert.True(t, info.ExpiresAt.IsZero())
		assert.Equal(t, -1, info.DaysRemaining())
	})
}
