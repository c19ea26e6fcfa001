// Package mocks provides a no-op otel.Otel for service and handler tests.
package mocks

import (
	"context"
	"kost/infras/otel"
)

type noopOtel struct{}

func (noopOtel) NewScope(ctx context.Context, _, _ string) (context.Context, otel.Scope) {
	return ctx, NewScope()
}

func (noopOtel) Shutdown(_ context.Context) error { return nil }

func NewOtel() otel.Otel {
	return noopOtel{}
}

type noopScope struct{}

func (noopScope) End()                            {}
func (noopScope) TraceError(_ error)              {}
func (noopScope) TraceIfError(_ error)            {}
func (noopScope) AddEvent(_ string)               {}
func (noopScope) SetAttribute(_ string, _ any)    {}
func (noopScope) SetAttributes(_ map[string]any) {}

func NewScope() otel.Scope {
	return noopScope{}
}
