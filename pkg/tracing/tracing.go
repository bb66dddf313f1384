package tracing

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

// DefaultTracerName is the instrumentation name used when none is set.
const DefaultTracerName = "github.com/dmitrymomot/sessionkit"

// Attribute keys written by this package.
const (
	AttrBackend = attribute.Key("session.backend")
	AttrEvent   = attribute.Key("session.event")
)

type config struct {
	provider trace.TracerProvider
	name     string
}

// Option configures the tracer used by Middleware.
type Option func(*config)

// WithTracerProvider overrides the global OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		if tp != nil {
			c.provider = tp
		}
	}
}

// WithTracerName sets the instrumentation name.
func WithTracerName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

// Middleware starts a server span per request. The span is named after the
// chi route pattern once routing has resolved it, and responses with a 5xx
// status mark the span as failed.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	cfg := config{name: DefaultTracerName}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.provider == nil {
		cfg.provider = otel.GetTracerProvider()
	}
	tracer := cfg.provider.Tracer(cfg.name)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(r.Context(), "HTTP "+r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", r.Method),
					attribute.String("url.path", r.URL.Path),
				),
			)
			defer span.End()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					span.SetName(r.Method + " " + pattern)
					span.SetAttributes(attribute.String("http.route", pattern))
				}
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			span.SetAttributes(attribute.Int("http.response.status_code", status))
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}
		})
	}
}

// Observer records session lifecycle events on the span active in the
// observed context. Contexts without a recording span are ignored.
type Observer struct{}

// NewObserver returns a session.Observer backed by the active span.
func NewObserver() Observer { return Observer{} }

func (Observer) Observe(ctx context.Context, backend session.Kind, event session.Event) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent("session."+string(event), trace.WithAttributes(
		AttrBackend.String(string(backend)),
		AttrEvent.String(string(event)),
	))
	span.SetAttributes(AttrBackend.String(string(backend)))
}

var _ session.Observer = Observer{}
