package cli

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/apisdk/internal/config"
	"github.com/dmitrijs2005/apisdk/sdk"
	"github.com/dmitrijs2005/apisdk/sdk/session"
)

func TestOpenStore_SQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{SessionDSN: filepath.Join(t.TempDir(), "state", "session.db")}

	store, closeFn, err := openStore(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	assert.IsType(t, &session.SQLiteStore{}, store)
	require.NoError(t, store.Set(ctx, session.KeyAPIToken, "t1"))
	require.NoError(t, store.Clear(ctx))

	v, err := store.Get(ctx, session.KeyAPIToken)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestOpenStore_Redis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	cfg := &config.Config{RedisAddr: mr.Addr(), SessionDSN: "unused.db"}

	store, closeFn, err := openStore(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	assert.IsType(t, &session.RedisStore{}, store)
	require.NoError(t, store.Set(ctx, session.KeyUser, `{"id":"u1"}`))
	assert.True(t, mr.Exists(session.DefaultRedisPrefix+session.KeyUser))
}

func TestOpenStore_RedisUnreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, _, err = openStore(ctx, &config.Config{RedisAddr: addr})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect redis")
}

func TestNewApp(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SessionDSN = filepath.Join(t.TempDir(), "session.db")
	cfg.LogLevel = "error"

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	assert.Equal(t, "(anonymous)", app.status(context.Background()))
}

func TestNewApp_AuthURLFallsBackToBaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SessionDSN = filepath.Join(t.TempDir(), "session.db")
	cfg.LogLevel = "error"

	app, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	client, ok := app.client.(*sdk.Client)
	require.True(t, ok)
	assert.Equal(t, cfg.BaseURL, client.AuthURL())

	cfg2 := *cfg
	cfg2.AuthURL = "https://auth.example.com/"
	cfg2.SessionDSN = filepath.Join(t.TempDir(), "session.db")
	app2, err := NewApp(context.Background(), &cfg2)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app2.Close() })

	client2, ok := app2.client.(*sdk.Client)
	require.True(t, ok)
	assert.Equal(t, "https://auth.example.com/", client2.AuthURL())
}

func TestNewApp_InvalidBaseURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BaseURL = "not-a-url"
	cfg.SessionDSN = filepath.Join(t.TempDir(), "session.db")

	_, err := NewApp(context.Background(), cfg)
	require.Error(t, err)
}

func TestApp_CloseWithoutStore(t *testing.T) {
	assert.NoError(t, (&App{}).Close())
}
