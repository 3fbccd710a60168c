// Package auth performs the SSO login handshake against the forum's
// identity provider and owns the resulting session.
//
// The handshake is a forward-only state machine: load the login page,
// locate the provider's login form, resubmit its hidden fields together
// with the credentials, then verify against a known-protected resource.
// Failure at any stage degrades to an anonymous session rather than
// aborting the run; protected topics then classify as error pages
// downstream.
package auth
