// Package common contains shared constants and sentinel errors used across
// the SDK and the CLI.
package common

const (
	// AuthorizationHeaderName carries the bearer token on outbound requests.
	AuthorizationHeaderName = "Authorization"

	// ContentTypeHeaderName is set on every outbound request.
	ContentTypeHeaderName = "Content-Type"

	// RequestIDHeaderName carries a per-request correlation id.
	RequestIDHeaderName = "X-Request-ID"

	// JSONContentType is the only body encoding the API speaks.
	JSONContentType = "application/json"

	// BearerPrefix precedes the token in the Authorization header.
	BearerPrefix = "Bearer "
)
