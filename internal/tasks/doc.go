// Package tasks wraps the Google Tasks API as a CRUD surface over one
// remote task collection per list.
//
// Every call attaches a valid bearer token through the auth transport and
// maps remote failures onto a small error taxonomy: structured API errors
// become RemoteAPIError, network-level failures become TransportError,
// and list resolution misses become ListNotFoundError.
package tasks
