// Package cli provides the interactive apicli command-line client.
//
// It wires configuration, a session store (SQLite file or Redis), the
// sdk.Client and a small REPL. Typical flow: obtain a token (token, login or
// sso), then issue requests against API resources:
//
//	api> token
//	api> get widgets ids=1 ids=2
//	api> post widgets {"name":"w"}
//	api> status
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// stdin is closed. See runREPL for the command list.
package cli
