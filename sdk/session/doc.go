// Package session persists the SDK's credential and user record.
//
// # Overview
//
// A Store is a small string key/value capability (Get, Set, Delete) that the
// SDK reads before every request and writes on login, token exchange and
// refresh. Three implementations are provided:
//
//   - MemoryStore: process-local, the default.
//   - SQLiteStore: a file-backed store for CLIs and desktop tools, schema
//     managed with embedded goose migrations.
//   - RedisStore: a shared store for several processes acting as one client.
//
// All stores are safe for concurrent use. Get returns ("", nil) for a missing
// key.
//
// # Keys
//
//   - KeyAPIToken ("api-token"): the bearer token sent on every request.
//   - KeyUser ("user"): the last user record, as JSON.
//   - KeyToken ("token"): a token received on the page URL.
package session
