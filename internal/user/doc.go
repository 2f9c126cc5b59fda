// Package user wires the user vertical together: the domain model and
// repository port, the store backends and their decorators, the CQRS
// command/query handlers, and the HTTP delivery. wire.go carries the
// google/wire provider sets used to assemble them.
package user
