package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/apisdk/internal/common"
	"github.com/dmitrijs2005/apisdk/sdk"
	"github.com/dmitrijs2005/apisdk/sdk/transport"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

var errBadArgument = errors.New("bad argument")

// Login prompts for a username and password and logs in through the API.
// The byte slice read from the terminal is wiped before returning; the string
// copy handed to the SDK is not and stays in memory until collected.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	res, err := a.client.UserLogin(ctx, sdk.LoginParams{Username: username, Password: string(password)})
	if err != nil {
		a.log.Warn(ctx, "login unsuccessful", "username", username, "error", err)
		return err
	}

	user, err := res.Map()
	if err != nil {
		a.log.Debug(ctx, "login response is not an object", "error", err)
	}
	if label := userLabel(user); label != "" {
		fmt.Fprintf(a.out, "Logged in as %s\n", label)
	} else {
		fmt.Fprintln(a.out, "Login accepted")
	}
	return nil
}

// SSO drops the stored token and opens the SSO login page.
func (a *App) SSO(ctx context.Context) error {
	target := a.client.SSOLoginURL()
	if _, err := a.client.UserLogin(ctx, sdk.LoginParams{SSO: true}); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Continue in the browser: %s\n", target)
	fmt.Fprintln(a.out, "Run apicli with a page URL carrying ?token= to finish.")
	return nil
}

// Token obtains a token and prints a masked form of it.
func (a *App) Token(ctx context.Context) error {
	token, err := a.client.GetToken(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		fmt.Fprintln(a.out, "The server returned no token")
		return nil
	}
	fmt.Fprintf(a.out, "Token acquired: %s\n", maskToken(token))
	return nil
}

// Request sends method to args[0]. For GET and DELETE the remaining args are
// k=v query pairs; for POST and PUT they form a JSON object, prompted for
// when absent.
func (a *App) Request(ctx context.Context, method string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: resource path required", errBadArgument)
	}
	path, rest := args[0], args[1:]

	var (
		params transport.Params
		err    error
	)
	if methodHasBody(method) {
		body := strings.Join(rest, " ")
		if body == "" {
			body, err = getMultiline(a.reader, "Enter JSON body", a.out)
			if err != nil {
				return err
			}
		}
		params, err = parseJSONParams(body)
	} else {
		params, err = parseQueryParams(rest)
	}
	if err != nil {
		return err
	}

	var res transport.Result
	switch method {
	case http.MethodGet:
		res, err = a.client.Get(ctx, path, params)
	case http.MethodPost:
		res, err = a.client.Post(ctx, path, params)
	case http.MethodPut:
		res, err = a.client.Put(ctx, path, params)
	case http.MethodDelete:
		res, err = a.client.Delete(ctx, path, params)
	default:
		return fmt.Errorf("%w: method %s", errBadArgument, method)
	}
	if err != nil {
		return err
	}

	return a.printResult(res)
}

func (a *App) printResult(res transport.Result) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, res.Raw, "", "  "); err != nil {
		return err
	}
	fmt.Fprintln(a.out, buf.String())
	return nil
}

// Status prints what the session store holds.
func (a *App) Status(ctx context.Context) error {
	info, err := a.client.Session(ctx)
	if err != nil {
		return err
	}

	if !info.HasToken() {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	fmt.Fprintf(a.out, "Token: %s\n", maskToken(info.Token))
	if info.IsJWT {
		if info.Subject != "" {
			fmt.Fprintf(a.out, "Subject: %s\n", info.Subject)
		}
		if !info.ExpiresAt.IsZero() {
			state := "valid"
			if info.Expired(time.Now()) {
				state = "expired"
			}
			fmt.Fprintf(a.out, "Expires: %s (%s)\n", info.ExpiresAt.UTC().Format(time.RFC3339), state)
		}
	}
	if label := userLabel(info.User); label != "" {
		fmt.Fprintf(a.out, "User: %s\n", label)
	}
	return nil
}

// Logout forgets the persisted session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// maskToken keeps the first few characters of token.
func maskToken(token string) string {
	const visible = 6
	if len(token) <= visible {
		return strings.Repeat("*", len(token))
	}
	return token[:visible] + "..."
}

// parseQueryParams turns k=v pairs into params. A repeated key becomes a
// list, sent as key[0]=..&key[1]=..
func parseQueryParams(args []string) (transport.Params, error) {
	if len(args) == 0 {
		return nil, nil
	}

	params := transport.Params{}
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: %q is not k=v", errBadArgument, arg)
		}
		switch prev := params[k].(type) {
		case nil:
			params[k] = v
		case string:
			params[k] = []string{prev, v}
		case []string:
			params[k] = append(prev, v)
		}
	}
	return params, nil
}

func parseJSONParams(body string) (transport.Params, error) {
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}
	var params transport.Params
	if err := json.Unmarshal([]byte(body), &params); err != nil {
		return nil, fmt.Errorf("%w: body must be a JSON object: %v", errBadArgument, err)
	}
	return params, nil
}
