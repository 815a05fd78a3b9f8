package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrijs2005/apisdk/internal/common"
	"github.com/dmitrijs2005/apisdk/internal/logging"
	"github.com/dmitrijs2005/apisdk/sdk/session"
)

// DefaultMaxAuthRetries bounds how many refresh-and-resend rounds one call
// may go through after a 401.
const DefaultMaxAuthRetries = 1

// HTTPTransport is the net/http Transport.
type HTTPTransport struct {
	baseURL        string
	client         *http.Client
	store          session.Store
	refresher      Refresher
	maxAuthRetries int
	log            logging.Logger

	refreshGroup singleflight.Group
}

type Option func(*HTTPTransport)

func WithHTTPClient(c *http.Client) Option {
	return func(t *HTTPTransport) {
		if c != nil {
			t.client = c
		}
	}
}

// WithRefresher enables refresh-and-resend on 401.
func WithRefresher(r Refresher) Option {
	return func(t *HTTPTransport) { t.refresher = r }
}

// WithMaxAuthRetries overrides DefaultMaxAuthRetries. Negative values are
// treated as zero.
func WithMaxAuthRetries(n int) Option {
	return func(t *HTTPTransport) {
		if n < 0 {
			n = 0
		}
		t.maxAuthRetries = n
	}
}

func WithLogger(l logging.Logger) Option {
	return func(t *HTTPTransport) {
		if l != nil {
			t.log = l
		}
	}
}

// New builds a transport sending requests to baseURL+path.
func New(baseURL string, store session.Store, opts ...Option) *HTTPTransport {
	t := &HTTPTransport{
		baseURL:        baseURL,
		client:         &http.Client{},
		store:          store,
		maxAuthRetries: DefaultMaxAuthRetries,
		log:            logging.NewSlogLogger(nil),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Send issues method against baseURL+path. See the package documentation
// for how statuses are mapped.
func (t *HTTPTransport) Send(ctx context.Context, method, path string, params Params) (Result, error) {
	method = strings.ToUpper(method)

	var (
		body  []byte
		query string
	)
	if method == http.MethodPost || method == http.MethodPut {
		if params == nil {
			params = Params{}
		}
		b, err := json.Marshal(params)
		if err != nil {
			return Result{}, fmt.Errorf("encode request body: %w", err)
		}
		body = b
	} else if len(params) > 0 {
		query = EncodeQuery(params)
	}
	target := joinURL(t.baseURL, path, query)

	_, explicit := explicitToken(ctx)

	for attempt := 0; ; attempt++ {
		status, payload, sentToken, err := t.do(ctx, method, target, body)
		if err != nil {
			return Result{}, err
		}

		if status == http.StatusUnauthorized && t.refresher != nil && !explicit && attempt < t.maxAuthRetries {
			if err := t.refreshAfter(ctx, sentToken); err != nil {
				return Result{}, fmt.Errorf("refresh token: %w", err)
			}
			continue
		}

		return normalize(status, payload)
	}
}

func normalize(status int, payload []byte) (Result, error) {
	switch {
	case status >= http.StatusOK && status <= http.StatusAccepted:
		if len(bytes.TrimSpace(payload)) == 0 {
			return emptyResult(status), nil
		}
		if !json.Valid(payload) {
			return Result{}, fmt.Errorf("status %d: %w", status, ErrMalformedResponse)
		}
		return Result{Status: status, Raw: json.RawMessage(payload)}, nil
	case status >= http.StatusBadRequest:
		return Result{}, newStatusError(status, payload)
	default:
		return emptyResult(status), nil
	}
}

// refreshAfter refreshes the token unless another caller already replaced
// the one this request was rejected with.
func (t *HTTPTransport) refreshAfter(ctx context.Context, rejected string) error {
	current, err := t.store.Get(ctx, session.KeyAPIToken)
	if err != nil {
		return err
	}
	if current != "" && current != rejected {
		return nil
	}

	t.log.Warn(ctx, "access token rejected, refreshing")

	// The refresh is shared by every caller that joins it, so it must not
	// end with the first caller's context. The HTTP client timeout bounds it.
	ch := t.refreshGroup.DoChan("refresh", func() (any, error) {
		return t.refresher.Refresh(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		if res.Shared {
			t.log.Debug(ctx, "joined in-flight token refresh")
		}
		return res.Err
	}
}

func (t *HTTPTransport) token(ctx context.Context) (string, error) {
	if tok, ok := explicitToken(ctx); ok {
		return tok, nil
	}
	return t.store.Get(ctx, session.KeyAPIToken)
}

func (t *HTTPTransport) do(ctx context.Context, method, target string, body []byte) (int, []byte, string, error) {
	token, err := t.token(ctx)
	if err != nil {
		return 0, nil, "", fmt.Errorf("read token: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, "", fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(common.ContentTypeHeaderName, common.JSONContentType)
	req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	req.Header.Set(common.RequestIDHeaderName, requestID)

	log := t.log.With("method", method, "path", req.URL.Path, "request_id", requestID)

	resp, err := t.client.Do(req)
	if err != nil {
		log.Error(ctx, "request failed", "error", err)
		return 0, nil, token, fmt.Errorf("%s %s: %w: %w", method, req.URL.Path, common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error(ctx, "read response failed", "status", resp.StatusCode, "error", err)
		return 0, nil, token, fmt.Errorf("%s %s: read body: %w: %w", method, req.URL.Path, common.ErrUnavailable, err)
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode)
	return resp.StatusCode, payload, token, nil
}
