/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package remote loads JSON-LD contexts, key documents and owner documents over HTTP.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/bluele/gcache"
	"github.com/cenkalti/backoff/v4"
	"github.com/piprate/json-gold/ld"
	"github.com/pkg/errors"
	"github.com/pquerna/cachecontrol"

	"github.com/hyperledger/aries-framework-go/component/log"
)

var logger = log.New("aries-framework/jsigs/remote")

const (
	// prefer application/ld+json, but fall back to application/json or whatever is available.
	acceptHeader  = "application/ld+json, application/json;q=0.9, */*;q=0.1"
	linkHeaderRel = "http://www.w3.org/ns/json-ld#context"

	defaultTimeout       = 10 * time.Second
	defaultMaxRetries    = 3
	defaultRetryInterval = 500 * time.Millisecond
	defaultCacheSize     = 100
)

// ErrUnexpectedStatus is returned when the server does not answer with 200 OK.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// Loader fetches documents over HTTP(S). Failed requests are retried, and responses are cached for as long
// as their Cache-Control headers allow.
type Loader struct {
	httpClient    *http.Client
	maxRetries    uint64
	retryInterval time.Duration
	cache         gcache.Cache
}

// Opt configures Loader.
type Opt func(l *Loader)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(client *http.Client) Opt {
	return func(l *Loader) {
		l.httpClient = client
	}
}

// WithMaxRetries sets how many times a failed request is retried.
func WithMaxRetries(n uint64) Opt {
	return func(l *Loader) {
		l.maxRetries = n
	}
}

// WithRetryInterval sets the pause between retries.
func WithRetryInterval(interval time.Duration) Opt {
	return func(l *Loader) {
		l.retryInterval = interval
	}
}

// WithCacheSize sets how many responses are cached. Zero disables caching.
func WithCacheSize(size int) Opt {
	return func(l *Loader) {
		l.cache = nil

		if size > 0 {
			l.cache = gcache.New(size).LRU().Build()
		}
	}
}

// New returns a new Loader.
func New(opts ...Opt) *Loader {
	l := &Loader{
		httpClient:    &http.Client{Timeout: defaultTimeout},
		maxRetries:    defaultMaxRetries,
		retryInterval: defaultRetryInterval,
		cache:         gcache.New(defaultCacheSize).LRU().Build(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// LoadDocument implements ld.DocumentLoader.
func (l *Loader) LoadDocument(u string) (*ld.RemoteDocument, error) {
	doc, err := l.load(context.Background(), u)
	if err != nil {
		return nil, ld.NewJsonLdError(ld.LoadingDocumentFailed, err)
	}

	return doc, nil
}

// FetchDocument loads the JSON object published at u.
func (l *Loader) FetchDocument(ctx context.Context, u string) (map[string]interface{}, error) {
	doc, err := l.load(ctx, u)
	if err != nil {
		return nil, err
	}

	obj, ok := doc.Document.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("document %s is not a JSON object", u)
	}

	return obj, nil
}

func (l *Loader) load(ctx context.Context, u string) (*ld.RemoteDocument, error) {
	if l.cache != nil {
		if cached, err := l.cache.Get(u); err == nil {
			if doc, ok := cached.(*ld.RemoteDocument); ok {
				return doc, nil
			}
		}
	}

	parsed, err := url.Parse(u)
	if err != nil {
		return nil, errors.Wrapf(err, "parse document URL %s", u)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.Errorf("unsupported URL scheme %q of %s", parsed.Scheme, u)
	}

	var (
		doc     *ld.RemoteDocument
		expires time.Time
	)

	err = backoff.RetryNotify(
		func() error {
			var fetchErr error
			doc, expires, fetchErr = l.fetch(ctx, u)

			return fetchErr
		},
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(l.retryInterval), l.maxRetries), ctx),
		func(retryErr error, t time.Duration) {
			logger.Warnf("failed to load %s, will sleep for %s before trying again : %s", u, t, retryErr)
		},
	)
	if err != nil {
		return nil, errors.Wrapf(err, "load document %s", u)
	}

	if ttl := time.Until(expires); l.cache != nil && ttl > 0 {
		if err := l.cache.SetWithExpire(u, doc, ttl); err != nil {
			logger.Warnf("failed to cache document %s: %s", u, err)
		}
	}

	return doc, nil
}

// fetch performs a single request. Errors that a retry cannot fix are returned as permanent.
func (l *Loader) fetch(ctx context.Context, u string) (*ld.RemoteDocument, time.Time, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, time.Time{}, backoff.Permanent(err)
	}

	req.Header.Add("Accept", acceptHeader)

	res, err := l.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, time.Time{}, backoff.Permanent(err)
		}

		return nil, time.Time{}, err
	}

	defer func() {
		if errClose := res.Body.Close(); errClose != nil {
			logger.Errorf("failed to close response body: %s", errClose)
		}
	}()

	if res.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("%w: %d", ErrUnexpectedStatus, res.StatusCode)

		if res.StatusCode >= http.StatusInternalServerError || res.StatusCode == http.StatusTooManyRequests {
			return nil, time.Time{}, statusErr
		}

		return nil, time.Time{}, backoff.Permanent(statusErr)
	}

	doc := &ld.RemoteDocument{DocumentURL: res.Request.URL.String()}

	contentType := res.Header.Get("Content-Type")

	if linkHeader := res.Header.Get("Link"); linkHeader != "" && contentType != ld.ApplicationJSONLDType {
		contextLink := ld.ParseLinkHeader(linkHeader)[linkHeaderRel]

		if len(contextLink) > 1 {
			return nil, time.Time{}, backoff.Permanent(ld.NewJsonLdError(ld.MultipleContextLinkHeaders, nil))
		}

		if len(contextLink) == 1 {
			doc.ContextURL = contextLink[0]["target"]
		}
	}

	doc.Document, err = ld.DocumentFromReader(res.Body)
	if err != nil {
		return nil, time.Time{}, backoff.Permanent(err)
	}

	var expires time.Time

	reasons, resExpireTime, err := cachecontrol.CachableResponse(req, res, cachecontrol.Options{})
	if err == nil && len(reasons) == 0 {
		expires = resExpireTime
	}

	return doc, expires, nil
}
