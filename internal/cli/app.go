package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/apisdk/internal/config"
	"github.com/dmitrijs2005/apisdk/internal/filex"
	"github.com/dmitrijs2005/apisdk/internal/logging"
	"github.com/dmitrijs2005/apisdk/sdk"
	"github.com/dmitrijs2005/apisdk/sdk/page"
	"github.com/dmitrijs2005/apisdk/sdk/session"
	"github.com/dmitrijs2005/apisdk/sdk/transport"
)

// apiClient is the part of sdk.Client the commands use.
type apiClient interface {
	UserLogin(ctx context.Context, params sdk.LoginParams) (transport.Result, error)
	GetToken(ctx context.Context) (string, error)
	Get(ctx context.Context, resource string, params transport.Params) (transport.Result, error)
	Post(ctx context.Context, resource string, params transport.Params) (transport.Result, error)
	Put(ctx context.Context, resource string, params transport.Params) (transport.Result, error)
	Delete(ctx context.Context, resource string, params transport.Params) (transport.Result, error)
	Session(ctx context.Context) (session.Info, error)
	SSOLoginURL() string
}

// sessionStore is a session.Store that can be wiped on logout.
type sessionStore interface {
	session.Store
	Clear(ctx context.Context) error
}

type App struct {
	config  *config.Config
	client  apiClient
	store   sessionStore
	closeFn func() error
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the session store selected by c and builds the SDK client.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, c.LogLevel)

	store, closeFn, err := openStore(ctx, c)
	if err != nil {
		log.Error(ctx, "error opening session store", "error", err)
		return nil, err
	}

	pg, err := page.NewBrowserPage(c.EffectivePageURL())
	if err != nil {
		_ = closeFn()
		return nil, err
	}

	client, err := sdk.New(sdk.Options{
		BaseURL: c.BaseURL,
		AuthURL: c.EffectiveAuthURL(),
		APICode: c.APICode,
		Store:   store,
		Page:    pg,
		Timeout: c.Timeout,
		Logger:  log.Slog(),
	})
	if err != nil {
		_ = closeFn()
		return nil, err
	}

	return &App{
		config:  c,
		client:  client,
		store:   store,
		closeFn: closeFn,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// openStore returns a RedisStore when RedisAddr is set, otherwise an
// SQLiteStore at SessionDSN.
func openStore(ctx context.Context, c *config.Config) (sessionStore, func() error, error) {
	if c.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", c.RedisAddr, err)
		}
		return session.NewRedisStore(rdb), rdb.Close, nil
	}

	if filex.IsPlainPath(c.SessionDSN) {
		if _, err := filex.EnsureParentDir(c.SessionDSN); err != nil {
			return nil, nil, err
		}
	}

	st, err := session.OpenSQLite(ctx, c.SessionDSN)
	if err != nil {
		return nil, nil, err
	}
	return st, st.Close, nil
}

// Run starts the REPL and releases the session store when it returns.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.log.Info(ctx, "apicli started", "base_url", a.config.BaseURL)
	printlnFn("Welcome to apicli (type 'help' for commands)")

	runREPL(ctx, a, func() string { return a.status(ctx) }, a.reader)
}

func (a *App) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	info, err := a.client.Session(ctx)
	return err == nil && info.HasToken()
}

// status is the prompt decoration: the user name or id when known, and
// whether a token is held.
func (a *App) status(ctx context.Context) string {
	info, err := a.client.Session(ctx)
	if err != nil || !info.HasToken() {
		return "(anonymous)"
	}
	if name := userLabel(info.User); name != "" {
		return fmt.Sprintf("(%s)", name)
	}
	return "(token)"
}

func userLabel(user map[string]any) string {
	for _, key := range []string{"name", "username", "email", "id"} {
		if v, ok := user[key]; ok && v != nil {
			if s := fmt.Sprint(v); s != "" {
				return s
			}
		}
	}
	return ""
}
