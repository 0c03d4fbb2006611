/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const keyDocument = `{
  "@context": "https://w3id.org/security/v1",
  "id": "https://example.com/i/alice/keys/1",
  "type": "CryptographicKey",
  "owner": "https://example.com/i/alice"
}`

type testServer struct {
	*httptest.Server
	hits int32
}

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request, hit int32)) *testServer {
	t.Helper()

	s := &testServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler(w, r, atomic.AddInt32(&s.hits, 1))
	}))

	t.Cleanup(s.Close)

	return s
}

func (s *testServer) Hits() int32 {
	return atomic.LoadInt32(&s.hits)
}

func serveDocument(cacheControl string) func(w http.ResponseWriter, r *http.Request, hit int32) {
	return func(w http.ResponseWriter, r *http.Request, hit int32) {
		if cacheControl != "" {
			w.Header().Set("Cache-Control", cacheControl)
		}

		w.Header().Set("Content-Type", "application/ld+json")
		fmt.Fprint(w, keyDocument)
	}
}

func fastRetries() Opt {
	return WithRetryInterval(time.Millisecond)
}

func TestLoader_FetchDocument(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var accept atomic.Value

		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request, hit int32) {
			accept.Store(r.Header.Get("Accept"))
			serveDocument("")(w, r, hit)
		})

		doc, err := New(fastRetries()).FetchDocument(context.Background(), srv.URL+"/keys/1")
		require.NoError(t, err)
		require.Equal(t, "CryptographicKey", doc["type"])
		require.Equal(t, acceptHeader, accept.Load())
	})

	t.Run("not an object", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request, hit int32) {
			fmt.Fprint(w, `["a", "b"]`)
		})

		_, err := New(fastRetries()).FetchDocument(context.Background(), srv.URL)
		require.Error(t, err)
		require.Contains(t, err.Error(), "is not a JSON object")
	})

	t.Run("invalid JSON is not retried", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request, hit int32) {
			fmt.Fprint(w, `{`)
		})

		_, err := New(fastRetries()).FetchDocument(context.Background(), srv.URL)
		require.Error(t, err)
		require.EqualValues(t, 1, srv.Hits())
	})

	t.Run("unsupported scheme", func(t *testing.T) {
		_, err := New().FetchDocument(context.Background(), "ecdsa-koblitz-pubkey:1LGpGhGK8whX23ZNdxrgtjKrek9rP4xWER")
		require.Error(t, err)
		require.Contains(t, err.Error(), "unsupported URL scheme")
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := New().FetchDocument(context.Background(), "http://[::1")
		require.Error(t, err)
		require.Contains(t, err.Error(), "parse document URL")
	})
}

func TestLoader_Retries(t *testing.T) {
	t.Run("server error is retried", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request, hit int32) {
			if hit < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)

				return
			}

			serveDocument("")(w, r, hit)
		})

		doc, err := New(fastRetries()).FetchDocument(context.Background(), srv.URL)
		require.NoError(t, err)
		require.NotEmpty(t, doc)
		require.EqualValues(t, 3, srv.Hits())
	})

	t.Run("retries are limited", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request, hit int32) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := New(fastRetries(), WithMaxRetries(2)).FetchDocument(context.Background(), srv.URL)
		require.ErrorIs(t, err, ErrUnexpectedStatus)
		require.EqualValues(t, 3, srv.Hits())
	})

	t.Run("not found is not retried", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request, hit int32) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := New(fastRetries()).FetchDocument(context.Background(), srv.URL)
		require.ErrorIs(t, err, ErrUnexpectedStatus)
		require.Contains(t, err.Error(), "404")
		require.EqualValues(t, 1, srv.Hits())
	})

	t.Run("cancelled", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request, hit int32) {
			<-r.Context().Done()
		})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := New(fastRetries()).FetchDocument(ctx, srv.URL)
		require.Error(t, err)
		require.EqualValues(t, 1, srv.Hits())
	})
}

func TestLoader_Cache(t *testing.T) {
	t.Run("cacheable response", func(t *testing.T) {
		srv := newTestServer(t, serveDocument("public, max-age=300"))

		l := New(fastRetries())

		for i := 0; i < 3; i++ {
			_, err := l.FetchDocument(context.Background(), srv.URL)
			require.NoError(t, err)
		}

		require.EqualValues(t, 1, srv.Hits())
	})

	t.Run("no-store response", func(t *testing.T) {
		srv := newTestServer(t, serveDocument("no-store"))

		l := New(fastRetries())

		for i := 0; i < 3; i++ {
			_, err := l.FetchDocument(context.Background(), srv.URL)
			require.NoError(t, err)
		}

		require.EqualValues(t, 3, srv.Hits())
	})

	t.Run("cache disabled", func(t *testing.T) {
		srv := newTestServer(t, serveDocument("public, max-age=300"))

		l := New(fastRetries(), WithCacheSize(0))

		for i := 0; i < 2; i++ {
			_, err := l.FetchDocument(context.Background(), srv.URL)
			require.NoError(t, err)
		}

		require.EqualValues(t, 2, srv.Hits())
	})
}

func TestLoader_LoadDocument(t *testing.T) {
	t.Run("context link header", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request, hit int32) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Link", `<https://w3id.org/security/v1>; rel="http://www.w3.org/ns/json-ld#context"`)
			fmt.Fprint(w, `{"id": "https://example.com/i/alice"}`)
		})

		doc, err := New(WithHTTPClient(srv.Client())).LoadDocument(srv.URL)
		require.NoError(t, err)
		require.Equal(t, srv.URL, doc.DocumentURL)
		require.Equal(t, "https://w3id.org/security/v1", doc.ContextURL)
	})

	t.Run("error", func(t *testing.T) {
		srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request, hit int32) {
			w.WriteHeader(http.StatusForbidden)
		})

		_, err := New().LoadDocument(srv.URL)
		require.Error(t, err)
		require.Contains(t, err.Error(), "loading document failed")
	})
}
