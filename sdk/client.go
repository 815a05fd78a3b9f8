package sdk

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/apisdk/internal/logging"
	"github.com/dmitrijs2005/apisdk/sdk/page"
	"github.com/dmitrijs2005/apisdk/sdk/session"
	"github.com/dmitrijs2005/apisdk/sdk/transport"
)

const DefaultTimeout = 30 * time.Second

// Options configure a Client. Only BaseURL is required.
type Options struct {
	// BaseURL is the absolute URL resource paths are appended to.
	BaseURL string
	// APICode is exchanged for a token at AuthURL.
	APICode string
	// AuthURL hosts auth/token and auth/identity. Defaults to BaseURL.
	AuthURL string

	// Store persists the session. Defaults to a MemoryStore.
	Store session.Store
	// Page is the current location. Defaults to a StaticPage at BaseURL.
	Page page.Page

	// HTTPClient is used as is when set; otherwise a client with Timeout.
	HTTPClient *http.Client
	// Timeout bounds each HTTP call. Defaults to DefaultTimeout.
	Timeout time.Duration
	// MaxAuthRetries bounds refresh-and-resend rounds after a 401.
	// Zero means transport.DefaultMaxAuthRetries, negative disables refresh.
	MaxAuthRetries int
	// Logger receives SDK logs. Defaults to discarding them.
	Logger *slog.Logger
}

// Client is the SDK facade. It is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	authURL string

	store     session.Store
	page      page.Page
	api       transport.Transport
	auth      *transport.HTTPTransport
	exchanger *transport.Exchanger
	log       logging.Logger
}

// New validates opts and builds a Client. It fails with ErrInvalidBaseURL
// when BaseURL is not an absolute http(s) URL.
func New(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	authURL := opts.AuthURL
	if authURL == "" {
		authURL = opts.BaseURL
	}

	store := opts.Store
	if store == nil {
		store = session.NewMemoryStore()
	}

	pg := opts.Page
	if pg == nil {
		sp, err := page.NewStaticPage(opts.BaseURL)
		if err != nil {
			return nil, err
		}
		pg = sp
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	retries := opts.MaxAuthRetries
	if retries == 0 {
		retries = transport.DefaultMaxAuthRetries
	}

	log := logging.NewSlogLogger(opts.Logger).With("component", "apisdk")

	auth := transport.New(authURL, store,
		transport.WithHTTPClient(httpClient),
		transport.WithLogger(log.With("transport", "auth")),
	)
	exchanger := transport.NewExchanger(auth, opts.APICode)

	api := transport.New(opts.BaseURL, store,
		transport.WithHTTPClient(httpClient),
		transport.WithLogger(log.With("transport", "api")),
		transport.WithRefresher(exchanger),
		transport.WithMaxAuthRetries(retries),
	)

	return &Client{
		baseURL:   base,
		authURL:   authURL,
		store:     store,
		page:      pg,
		api:       api,
		auth:      auth,
		exchanger: exchanger,
		log:       log,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, raw)
	}
	return u, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// AuthURL returns the URL hosting the auth endpoints.
func (c *Client) AuthURL() string {
	return c.authURL
}

// Get sends GET resource with params in the query string.
func (c *Client) Get(ctx context.Context, resource string, params transport.Params) (transport.Result, error) {
	return c.send(ctx, http.MethodGet, "get resource", resource, params)
}

// Post sends POST resource with params as the JSON body.
func (c *Client) Post(ctx context.Context, resource string, params transport.Params) (transport.Result, error) {
	return c.send(ctx, http.MethodPost, "post resource", resource, params)
}

// Put sends PUT resource with params as the JSON body.
func (c *Client) Put(ctx context.Context, resource string, params transport.Params) (transport.Result, error) {
	return c.send(ctx, http.MethodPut, "put resource", resource, params)
}

// Delete sends DELETE resource with params in the query string.
func (c *Client) Delete(ctx context.Context, resource string, params transport.Params) (transport.Result, error) {
	return c.send(ctx, http.MethodDelete, "delete resource", resource, params)
}

func (c *Client) send(ctx context.Context, method, module, resource string, params transport.Params) (transport.Result, error) {
	if resource == "" {
		return transport.Result{}, &ValidationError{Module: module, Param: "params"}
	}
	return c.api.Send(ctx, method, resource, params)
}

// Session returns a snapshot of the persisted session.
func (c *Client) Session(ctx context.Context) (session.Info, error) {
	return session.Snapshot(ctx, c.store)
}

// User returns the persisted user record, nil when there is none.
func (c *Client) User(ctx context.Context) (map[string]any, error) {
	return session.LoadUser(ctx, c.store)
}
