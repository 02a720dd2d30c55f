// Package auth holds the OAuth2 token lifecycle for the Google Tasks API.
//
// The Store keeps the current bearer token and its expiry, exchanges
// authorization codes, refreshes the access token ahead of expiry, and
// persists token state through a TokenSink after every lifecycle
// transition. Concurrent callers asking for a valid access token share a
// single refresh; the second caller re-checks the expiry under the lock
// and finds the token already fresh.
package auth
