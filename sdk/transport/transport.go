package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/dmitrijs2005/apisdk/internal/common"
)

// Params are the caller-supplied request parameters.
type Params map[string]any

// Transport sends one request and returns its normalised result.
type Transport interface {
	Send(ctx context.Context, method, path string, params Params) (Result, error)
}

// Refresher obtains and persists a fresh token.
type Refresher interface {
	Refresh(ctx context.Context) (string, error)
}

var ErrMalformedResponse = errors.New("malformed response body")

var emptyObject = json.RawMessage("{}")

// Result is a normalised response: the HTTP status and a JSON document,
// "{}" when the response carried no usable body.
type Result struct {
	Status int
	Raw    json.RawMessage
}

func emptyResult(status int) Result {
	return Result{Status: status, Raw: emptyObject}
}

// Empty is the result of a call that produced no data.
func Empty() Result {
	return emptyResult(0)
}

// IsEmpty reports whether the result is the empty object.
func (r Result) IsEmpty() bool {
	return len(r.Raw) == 0 || string(r.Raw) == string(emptyObject)
}

// Decode unmarshals the body into v.
func (r Result) Decode(v any) error {
	raw := r.Raw
	if len(raw) == 0 {
		raw = emptyObject
	}
	return json.Unmarshal(raw, v)
}

// Map decodes the body as a JSON object.
func (r Result) Map() (map[string]any, error) {
	var m map[string]any
	if err := r.Decode(&m); err != nil {
		return nil, err
	}
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// Get reads a single field using gjson path syntax, e.g. "user.id".
func (r Result) Get(path string) gjson.Result {
	return gjson.GetBytes(r.Raw, path)
}

// StatusError is returned for responses with status 400 and above.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Unwrap lets callers match auth and availability failures with errors.Is.
func (e *StatusError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return common.ErrUnauthorized
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return common.ErrUnavailable
	default:
		return nil
	}
}

func newStatusError(status int, body []byte) *StatusError {
	msg := gjson.GetBytes(body, "message").String()
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &StatusError{Status: status, Message: msg}
}

type tokenKey struct{}

// WithToken makes requests sent with ctx carry token instead of the stored
// one. Such requests are never refreshed.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func explicitToken(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenKey{}).(string)
	return tok, ok
}
