// Package log provides credential-safe logging on top of the standard
// slog package.
//
// forumscan holds forum login credentials and an authenticated session
// cookie for the whole run, and both routinely appear near the code that
// logs request outcomes. The SanitizingHandler masks attribute values
// whose keys look credential-like (password, cookie, token, ...) before
// they reach the underlying handler, so verbose logs can be shared
// without leaking the account.
package log
