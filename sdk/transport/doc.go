// Package transport performs the SDK's HTTP calls.
//
// # Overview
//
// Transport is the one-method contract the facade depends on. HTTPTransport
// is its net/http adapter: it joins the base URL and the resource path,
// encodes params (JSON body for POST/PUT, indexed query string otherwise),
// attaches the bearer token from the session store and normalises the
// response:
//
//   - 200..202: the decoded body.
//   - any other status below 400: an empty object.
//   - 401: the token is refreshed through the configured Refresher and the
//     request is sent again, at most MaxAuthRetries times; the retried
//     response is returned. Concurrent refreshes are coalesced.
//   - other statuses from 400 up: *StatusError.
//   - network failures: an error wrapping common.ErrUnavailable.
//
// Exchanger implements Refresher by trading the API code for a fresh token.
package transport
