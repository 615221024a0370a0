package tracing

import (
	"net/http"

	"github.com/riandyrn/otelchi"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Middleware returns an OpenTelemetry middleware for chi routers. Every
// request produces a span on the installed tracer provider; the caller's
// identity claim, when present, is recorded on it.
func Middleware(serviceName string, opts ...otelchi.Option) func(http.Handler) http.Handler {
	base := otelchi.Middleware(serviceName, opts...)

	return func(next http.Handler) http.Handler {
		return base(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			span := trace.SpanFromContext(r.Context())
			if span.IsRecording() {
				if identity := r.Header.Get("X-Identity"); identity != "" {
					span.SetAttributes(attribute.String("meetgate.identity", identity))
				}
			}
			next.ServeHTTP(w, r)
		}))
	}
}
