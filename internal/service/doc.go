// Package service implements business logic for the countdown service.
//
// This package sits between the HTTP handlers and the timer registry. It owns
// timestamp arithmetic, ID generation and event publishing, and reports
// domain failures as sentinel errors that handlers map to HTTP statuses.
//
// # Services
//
// TimerService creates timers, reports the remaining time on a timer and lists
// the registry. Time is read through an injectable domain.Clock.
//
// # Event System
//
// TimerService publishes events via EventBus so that connected clients can
// follow timer creation over Server-Sent Events.
package service
