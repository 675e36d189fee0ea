// Package middleware carries the cross-cutting HTTP concerns: request ids,
// request-scoped logging, metrics, and body/time limits.
package middleware

// contextKey is a private type for request context keys so values set here
// cannot collide with keys from other packages.
type contextKey string
