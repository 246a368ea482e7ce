// Package tracing provides OpenTelemetry tracing integration.
//
// Features:
//   - Automatic HTTP request tracing via Middleware
//   - W3C trace context propagation across services
//   - Trace ID exposure in response headers for client correlation
//
// Example usage:
//
//	import "globenews/internal/observability/tracing"
//
//	func main() {
//	    shutdown, err := tracing.Init("globenews")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer shutdown(context.Background())
//	}
package tracing
