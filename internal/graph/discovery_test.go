package graph

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverAccount(t *testing.T) {
	t.Run("rejects short-lived token without any request", func(t *testing.T) {
		var requests int32
		c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requests, 1)
		}))

		_, err := c.DiscoverAccount(context.Background(), ShortLived("tok1"))
		require.ErrorIs(t, err, ErrShortLivedToken)
		assert.Zero(t, atomic.LoadInt32(&requests))
	})

	t.Run("empty page list stops immediately", func(t *testing.T) {
		var requests int32
		c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&requests, 1)
			require.Equal(t, "/me/accounts", r.URL.Path)
			w.Write([]byte(`{"data":[]}`))
		}))

		_, err := c.DiscoverAccount(context.Background(), LongLived("tok2"))
		require.ErrorIs(t, err, ErrNoPages)
		assert.Equal(t, int32(1), atomic.LoadInt32(&requests), "no page-detail requests after an empty list")
	})

	t.Run("checks every page before giving up", func(t *testing.T) {
		var pageReads int32
		c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/me/accounts" {
				w.Write([]byte(`{"data":[{"id":"p1","name":"One"},{"id":"p2","name":"Two"}]}`))
				return
			}
			atomic.AddInt32(&pageReads, 1)
			w.Write([]byte(`{"id":"` + r.URL.Path[1:] + `"}`))
		}))

		_, err := c.DiscoverAccount(context.Background(), LongLived("tok2"))
		require.ErrorIs(t, err, ErrNoInstagramAccount)
		assert.Equal(t, int32(2), atomic.LoadInt32(&pageReads))
	})

	t.Run("first matching page wins in upstream order", func(t *testing.T) {
		c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/me/accounts":
				w.Write([]byte(`{"data":[{"id":"p1","name":"One"},{"id":"p2","name":"Two"},{"id":"p3","name":"Three"}]}`))
			case "/p1":
				assert.Equal(t, "instagram_business_account", r.URL.Query().Get("fields"))
				w.Write([]byte(`{"id":"p1"}`))
			case "/p2":
				w.Write([]byte(`{"id":"p2","instagram_business_account":{"id":"ig42"}}`))
			case "/p3":
				t.Error("discovery should stop at the first match")
			}
		}))

		account, err := c.DiscoverAccount(context.Background(), LongLived("tok2"))
		require.NoError(t, err)
		assert.Equal(t, "ig42", account.ID)
		assert.Equal(t, "p2", account.PageID)
		assert.Equal(t, "Two", account.PageName)
	})

	t.Run("page-detail failure propagates", func(t *testing.T) {
		c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/me/accounts" {
				w.Write([]byte(`{"data":[{"id":"p1","name":"One"}]}`))
				return
			}
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"Unsupported get request.","type":"GraphMethodException","code":100}}`))
		}))

		_, err := c.DiscoverAccount(context.Background(), LongLived("tok2"))
		var ue *UpstreamError
		require.ErrorAs(t, err, &ue)
		assert.Equal(t, CodeUnknownObject, ue.Code)
	})
}

func TestListPages(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok2", r.URL.Query().Get("access_token"))
		w.Write([]byte(`{"data":[{"id":"p1","name":"One"}]}`))
	}))

	pages, err := c.ListPages(context.Background(), LongLived("tok2"))
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "p1", pages[0].ID)
}
