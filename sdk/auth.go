package sdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/apisdk/sdk/session"
	"github.com/dmitrijs2005/apisdk/sdk/transport"
)

// LoginParams are the credentials for UserLogin.
type LoginParams struct {
	// SSO skips the API and navigates the page to the SSO login form.
	SSO bool

	Username string
	Password string

	// Extra fields are sent in the login body next to the credentials.
	Extra map[string]any
}

// UserLogin authenticates the user.
//
// With SSO set no request is made: the stored tokens are dropped and the page
// is sent to <origin of BaseURL>/login?redirect_url=<current location>.
//
// Otherwise Username and Password are required and are posted to
// auth/login. When the response carries a non-empty "id" it is persisted as
// the user record.
func (c *Client) UserLogin(ctx context.Context, params LoginParams) (transport.Result, error) {
	if params.SSO {
		return transport.Empty(), c.redirectToSSO(ctx)
	}

	if params.Username == "" || params.Password == "" {
		return transport.Result{}, &ValidationError{Module: "authentication", Param: "username, password"}
	}

	body := transport.Params{}
	for k, v := range params.Extra {
		body[k] = v
	}
	body["username"] = params.Username
	body["password"] = params.Password

	res, err := c.api.Send(ctx, http.MethodPost, "auth/login", body)
	if err != nil {
		return transport.Result{}, err
	}

	if res.Get("id").String() != "" {
		if err := session.SaveUser(ctx, c.store, res.Raw); err != nil {
			return transport.Result{}, fmt.Errorf("persist user: %w", err)
		}
		c.log.Info(ctx, "user logged in", "user_id", res.Get("id").String())
	}

	return res, nil
}

// SSOLoginURL is the page UserLogin navigates to for SSO.
func (c *Client) SSOLoginURL() string {
	origin := c.baseURL.Scheme + "://" + c.baseURL.Host
	return origin + "/login?" + url.Values{"redirect_url": {c.page.Href()}}.Encode()
}

func (c *Client) redirectToSSO(ctx context.Context) error {
	for _, key := range []string{session.KeyToken, session.KeyAPIToken} {
		if err := c.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("clear token: %w", err)
		}
	}

	target := c.SSOLoginURL()
	c.log.Info(ctx, "redirecting to sso login", "target", target)

	if err := c.page.Assign(ctx, target); err != nil {
		return fmt.Errorf("sso redirect: %w", err)
	}
	return nil
}

// GetToken makes sure a token is persisted and returns it.
//
// When the page URL carries a "token" query parameter that token is stored
// (as both the page token and the active bearer token), the query string is
// removed from the page, and the user record is fetched from auth/identity
// with that token.
//
// Otherwise the API code is exchanged for a token at auth/token. An empty
// token from the server is not persisted and is returned as "".
func (c *Client) GetToken(ctx context.Context) (string, error) {
	pageToken := c.page.Query().Get("token")
	if pageToken == "" {
		token, err := c.exchanger.Exchange(ctx)
		if err != nil {
			return "", err
		}
		if token != "" {
			c.log.Info(ctx, "token acquired by exchange")
		}
		return token, nil
	}

	if err := session.SetAll(ctx, c.store, map[string]string{
		session.KeyToken:    pageToken,
		session.KeyAPIToken: pageToken,
	}); err != nil {
		return "", fmt.Errorf("persist page token: %w", err)
	}
	c.page.ReplaceState(c.page.Path())

	res, err := c.auth.Send(transport.WithToken(ctx, pageToken), http.MethodGet, "auth/identity", nil)
	if err != nil {
		return "", fmt.Errorf("fetch identity: %w", err)
	}
	if !res.IsEmpty() {
		if err := session.SaveUser(ctx, c.store, res.Raw); err != nil {
			return "", fmt.Errorf("persist user: %w", err)
		}
	}

	c.log.Info(ctx, "token taken from page url")
	return pageToken, nil
}
