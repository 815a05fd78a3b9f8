package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/apisdk/internal/common"
	"github.com/dmitrijs2005/apisdk/sdk/session"
)

// Exchanger trades the API code for a token at {authURL}auth/token.
type Exchanger struct {
	auth    *HTTPTransport
	apiCode string
}

// NewExchanger uses auth, a transport rooted at the auth URL, for the
// exchange call. auth must not have a refresher of its own.
func NewExchanger(auth *HTTPTransport, apiCode string) *Exchanger {
	return &Exchanger{auth: auth, apiCode: apiCode}
}

// Exchange requests a token and persists it under session.KeyAPIToken when
// non-empty. An empty token is returned as "" without error.
func (e *Exchanger) Exchange(ctx context.Context) (string, error) {
	res, err := e.auth.Send(ctx, http.MethodGet, "auth/token?code="+url.QueryEscape(e.apiCode), nil)
	if err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}

	token := res.Get("token").String()
	if token == "" {
		return "", nil
	}

	if err := e.auth.store.Set(ctx, session.KeyAPIToken, token); err != nil {
		return "", fmt.Errorf("persist token: %w", err)
	}
	return token, nil
}

// Refresh is Exchange, failing when the server hands out no token.
func (e *Exchanger) Refresh(ctx context.Context) (string, error) {
	token, err := e.Exchange(ctx)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", fmt.Errorf("token exchange: %w", common.ErrEmptyToken)
	}
	return token, nil
}
