// Package service implements the application use cases on top of the domain
// rules and the stores: logging sets, creating quota-gated workouts,
// computing overload hints and session energy estimates, and quota-gated
// AI coaching.
package service
