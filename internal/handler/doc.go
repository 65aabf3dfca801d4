// Package handler implements HTTP request handlers for the countdown API.
//
// # Handlers
//
// TimerHandler serves the quote, timer creation, timer status, timer listing
// and health endpoints. It binds and validates path values before calling
// the service, so malformed input never reaches the registry.
//
// Middleware provides panic recovery, CORS headers and structured access
// logging.
//
// # Response Format
//
// Success responses are JSON by default. Clients may ask for YAML or CBOR
// through the Accept header. Malformed input is answered with 400 and an
// {error, details} object. An unknown timer ID is answered with 404 and the
// bare string "Timer does not exist", which is never a valid success body.
//
// # Server-Sent Events
//
// NewRouter mounts an optional event stream at /events that announces each
// newly created timer.
package handler
