// Package sdk is the client facade for the remote API.
//
// A Client validates caller input, delegates requests to a transport that
// attaches the bearer token, and keeps the session (token and user record)
// in an injected session.Store:
//
//	c, err := sdk.New(sdk.Options{
//	    BaseURL: "https://api.example.com/v1/",
//	    APICode: "app-code",
//	})
//	if err != nil {
//	    return err
//	}
//	if _, err := c.GetToken(ctx); err != nil {
//	    return err
//	}
//	widgets, err := c.Get(ctx, "widgets", transport.Params{"ids": []int{1, 2}})
//
// Paths are appended to BaseURL verbatim, so BaseURL normally ends in "/".
// A 401 response triggers one token exchange and a resend whose response is
// returned to the caller; other failures come back as errors (see
// transport.StatusError and the sentinels in this package).
package sdk
