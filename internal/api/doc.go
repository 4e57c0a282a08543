// Package api serves the deck management and study endpoints over HTTP.
// Handlers decode and validate JSON requests, call the deck and study
// services, and map service errors to status codes with sanitized messages.
package api
