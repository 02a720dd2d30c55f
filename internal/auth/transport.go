package auth

import (
	"net/http"
)

// Transport is an http.RoundTripper that attaches a valid bearer token to
// every outgoing request. Each request consumes exactly one access-token
// check on the store, which may trigger a single refresh.
type Transport struct {
	// Store supplies valid access tokens.
	Store *Store

	// Base is the underlying round tripper. http.DefaultTransport when nil.
	Base http.RoundTripper
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	token, err := t.Store.AccessToken(req.Context())
	if err != nil {
		return nil, err
	}

	// Per RoundTripper contract the request must not be mutated.
	authed := req.Clone(req.Context())
	authed.Header.Set("Authorization", "Bearer "+token)

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(authed)
}

// Client returns an *http.Client that authenticates through the store.
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}
