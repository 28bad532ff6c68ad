package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type ctxKey int

const (
	valuesKey ctxKey = iota + 1
	tracerKey
	writerKey
)

// Values represent state for each request.
type Values struct {
	TraceID    string
	Now        time.Time
	StatusCode int
}

func setValues(ctx context.Context, v *Values) context.Context {
	return context.WithValue(ctx, valuesKey, v)
}

// GetValues returns the values from the context.
func GetValues(ctx context.Context) *Values {
	v, ok := ctx.Value(valuesKey).(*Values)
	if !ok {
		return &Values{
			TraceID: "00000000-0000-0000-0000-000000000000",
			Now:     time.Now(),
		}
	}

	return v
}

// GetTime returns the time from the context.
func GetTime(ctx context.Context) time.Time {
	v, ok := ctx.Value(valuesKey).(*Values)
	if !ok {
		return time.Now()
	}

	return v.Now
}

func setStatusCode(ctx context.Context, statusCode int) {
	v, ok := ctx.Value(valuesKey).(*Values)
	if !ok {
		return
	}

	v.StatusCode = statusCode
}

func setTracer(ctx context.Context, tracer trace.Tracer) context.Context {
	return context.WithValue(ctx, tracerKey, tracer)
}

// GetTracer pulls the otel tracer from the context.
func GetTracer(ctx context.Context) trace.Tracer {
	v, ok := ctx.Value(tracerKey).(trace.Tracer)
	if !ok {
		return nil
	}

	return v
}

func setWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, writerKey, w)
}

// GetWriter returns the underlying writer for the request.
func GetWriter(ctx context.Context) (http.ResponseWriter, error) {
	v, ok := ctx.Value(writerKey).(http.ResponseWriter)
	if !ok {
		return nil, errors.New("writer not found in context")
	}

	return v, nil
}
