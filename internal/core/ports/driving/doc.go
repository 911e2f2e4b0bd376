// Package driving defines the interfaces through which the outside world
// (CLI, watch mode) drives the core services.
package driving
