// Package telemetry holds telemetry adapters that need no recording backend.
package telemetry

import (
	"context"

	"go.trai.ch/nourish/internal/core/domain"
	"go.trai.ch/nourish/internal/core/ports"
)

// NoOp is a ports.Telemetry that records nothing.
type NoOp struct{}

// NewNoOp creates a NoOp telemetry.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Record returns ctx carrying a vertex that discards everything.
func (*NoOp) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	v := NoOpVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (*NoOp) Close() error { return nil }

// NoOpVertex discards logs and state changes.
type NoOpVertex struct{}

// Log does nothing.
func (NoOpVertex) Log(domain.LogLevel, string) {}

// Cached does nothing.
func (NoOpVertex) Cached() {}

// Complete does nothing.
func (NoOpVertex) Complete(error) {}
