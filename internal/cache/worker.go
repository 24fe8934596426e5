package cache

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
)

// Worker intercepts outgoing requests and applies one of two
// strategies: network-first for API paths, cache-first for everything
// else. It plugs in as the Transport of the backend http.Client so the
// interception is orthogonal to whoever issues the request.
type Worker struct {
	store      *Store
	generation string
	apiPrefix  string
	base       http.RoundTripper

	// OnInstall, when set, is called after each asset fetched by
	// Install.
	OnInstall func(done, total int, path string)
}

// NewWorker wraps base (nil means http.DefaultTransport) with the cache
// strategies. generation is the single active cache tag; bumping it in
// config and re-activating is the only invalidation mechanism.
func NewWorker(store *Store, generation, apiPrefix string, base http.RoundTripper) *Worker {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Worker{store: store, generation: generation, apiPrefix: apiPrefix, base: base}
}

// Generation returns the active cache generation tag.
func (w *Worker) Generation() string { return w.generation }

// Install pre-populates the cache with the static asset manifest,
// fetching every path relative to baseURL. Population is all or
// nothing: one failed fetch aborts the install and nothing is written.
func (w *Worker) Install(ctx context.Context, baseURL string, manifest []string) error {
	fetched := make([]Entry, 0, len(manifest))
	urls := make([]string, 0, len(manifest))
	for _, path := range manifest {
		u := strings.TrimRight(baseURL, "/") + path
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return fmt.Errorf("building install request for %s: %w", path, err)
		}
		resp, err := w.base.RoundTrip(req)
		if err != nil {
			return fmt.Errorf("installing %s: %w", path, err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("installing %s: HTTP %d", path, resp.StatusCode)
		}
		fetched = append(fetched, Entry{Status: resp.StatusCode, Header: resp.Header.Clone(), Body: body})
		urls = append(urls, u)
		if w.OnInstall != nil {
			w.OnInstall(len(fetched), len(manifest), path)
		}
	}

	for i, e := range fetched {
		if err := w.store.Put(ctx, w.generation, http.MethodGet, urls[i], e); err != nil {
			return err
		}
	}
	log.Printf("cache: installed %d static assets (generation %s)", len(fetched), w.generation)
	return nil
}

// Activate deletes every cache generation except the active one.
func (w *Worker) Activate(ctx context.Context) error {
	n, err := w.store.DeleteOtherGenerations(ctx, w.generation)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("cache: activated generation %s, dropped %d stale entries", w.generation, n)
	}
	return nil
}

// RoundTrip implements http.RoundTripper.
func (w *Worker) RoundTrip(req *http.Request) (*http.Response, error) {
	if strings.HasPrefix(req.URL.Path, w.apiPrefix) {
		return w.networkFirst(req)
	}
	return w.cacheFirst(req)
}

// networkFirst tries the live network, mirroring successful responses
// into the cache, and falls back to the cached copy when the network
// fails. With no cached copy it synthesizes an offline JSON error.
func (w *Worker) networkFirst(req *http.Request) (*http.Response, error) {
	resp, err := w.base.RoundTrip(req)
	if err == nil {
		return w.mirror(req, resp), nil
	}

	if req.Method == http.MethodGet {
		cached, cerr := w.store.Get(req.Context(), w.generation, req.Method, req.URL.String())
		if cerr != nil {
			log.Printf("cache: lookup %s: %v", req.URL, cerr)
		}
		if cached != nil {
			return cached.response(req), nil
		}
	}
	return offlineResponse(req, `{"error":"offline"}`, "application/json"), nil
}

// cacheFirst serves the cached copy when present and only then consults
// the network, opportunistically caching a successful response.
func (w *Worker) cacheFirst(req *http.Request) (*http.Response, error) {
	if req.Method == http.MethodGet {
		cached, err := w.store.Get(req.Context(), w.generation, req.Method, req.URL.String())
		if err != nil {
			log.Printf("cache: lookup %s: %v", req.URL, err)
		}
		if cached != nil {
			return cached.response(req), nil
		}
	}

	resp, err := w.base.RoundTrip(req)
	if err != nil {
		return offlineResponse(req, "offline", "text/plain; charset=utf-8"), nil
	}
	return w.mirror(req, resp), nil
}

// mirror writes a 2xx GET response into the cache and returns a
// response whose body is still readable. Non-GET responses pass through
// untouched: a replayed POST would re-announce a side effect that never
// happened.
func (w *Worker) mirror(req *http.Request, resp *http.Response) *http.Response {
	if req.Method != http.MethodGet || resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		resp.Body = io.NopCloser(bytes.NewReader(nil))
		return resp
	}
	entry := Entry{Status: resp.StatusCode, Header: resp.Header.Clone(), Body: body}
	if err := w.store.Put(req.Context(), w.generation, req.Method, req.URL.String(), entry); err != nil {
		log.Printf("cache: store %s: %v", req.URL, err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))
	return resp
}

func (e *Entry) response(req *http.Request) *http.Response {
	return &http.Response{
		StatusCode:    e.Status,
		Status:        http.StatusText(e.Status),
		Header:        e.Header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(e.Body)),
		ContentLength: int64(len(e.Body)),
		Request:       req,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
	}
}

func offlineResponse(req *http.Request, body, contentType string) *http.Response {
	h := http.Header{}
	h.Set("Content-Type", contentType)
	return &http.Response{
		StatusCode:    http.StatusServiceUnavailable,
		Status:        http.StatusText(http.StatusServiceUnavailable),
		Header:        h,
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
	}
}
