// Package client talks to the Online Project Manager authentication API.
//
// # Overview
//
// Client is the transport-agnostic contract used by the login form; HTTPClient
// is the JSON-over-HTTP implementation. A login is a single
//
//	POST <base URL>/api/login
//	{"email": "...", "password": "..."}
//
// A 200 reply is a success whatever its body. Any other status becomes an
// *APIError whose Message carries the body's "error" string, or "" when the
// body has no such field. Transport failures wrap ErrUnavailable.
//
// # Request ids
//
// Callers may attach an id to the context with WithRequestID; it is sent in
// the X-Request-ID header so client and server logs can be correlated.
package client
