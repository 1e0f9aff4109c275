// Package backendtest provides a fake Afrikabal gateway for service tests.
// Stubs are registered per method and path on a mux router; every request
// that reaches the server is recorded so tests can assert on headers and
// ordering.
package backendtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gorilla/mux"
)

// Request is one recorded call to the fake gateway.
type Request struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Body          []byte
}

// Gateway is a stub HTTP backend with canned responses.
type Gateway struct {
	router *mux.Router
	srv    *httptest.Server

	mu       sync.Mutex
	requests []Request
}

func New() *Gateway {
	g := &Gateway{
		router: mux.NewRouter(),
	}
	g.srv = httptest.NewServer(g.router)
	return g
}

// Stub registers a canned JSON response for a method and path. The body may
// be a raw string, raw bytes, or any JSON-marshalable value.
func (g *Gateway) Stub(method, path string, status int, body any) {
	g.router.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		g.record(r)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		switch b := body.(type) {
		case nil:
		case string:
			w.Write([]byte(b))
		case []byte:
			w.Write(b)
		default:
			json.NewEncoder(w).Encode(b)
		}
	}).Methods(method)
}

// StubFunc registers a custom handler for a method and path.
func (g *Gateway) StubFunc(method, path string, handler http.HandlerFunc) {
	g.router.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
		g.record(r)
		handler(w, r)
	}).Methods(method)
}

func (g *Gateway) record(r *http.Request) {
	var body []byte
	if r.Body != nil {
		body, _ = io.ReadAll(r.Body)
		r.Body.Close()
		// Restore the body so custom handlers can still parse it.
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests = append(g.requests, Request{
		Method:        r.Method,
		Path:          r.URL.Path,
		Authorization: r.Header.Get("Authorization"),
		ContentType:   r.Header.Get("Content-Type"),
		Body:          body,
	})
}

// URL returns the fake gateway's base URL.
func (g *Gateway) URL() string {
	return g.srv.URL
}

// Requests returns a copy of every recorded request, in arrival order.
func (g *Gateway) Requests() []Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Request, len(g.requests))
	copy(out, g.requests)
	return out
}

// Close shuts the fake gateway down.
func (g *Gateway) Close() {
	g.srv.Close()
}
