// Package domain defines the core types of the countdown service.
//
// # Core Types
//
// Timer is an immutable countdown record: a random identifier plus the
// UTC instants at which it started and will end.
//
// Status is the remaining time on a timer at a given instant, expressed
// independently in seconds, minutes and hours. Each field is the full
// signed delta truncated toward zero in its own unit, so an elapsed timer
// reports negative values rather than zero.
//
// Quote is the payload of the motivational quote endpoint.
//
// # Time
//
// Clock abstracts the current time so that status arithmetic can be
// tested without sleeping. SystemClock is the production clock.
//
// # Design Principles
//
// - Immutable value objects
// - No storage, transport or logging dependencies
package domain
