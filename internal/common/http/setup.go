package http

import (
	"net/http"

	"github.com/aturganbekov/prime-sieve/backend/internal/common/constants"
	"github.com/aturganbekov/prime-sieve/backend/internal/common/httpmetrics"
	"github.com/aturganbekov/prime-sieve/backend/internal/common/logger"
)

// BuildBaseHandler wraps handler in the shared middleware onion:
// security headers, panic recovery, trace IDs, body-size limit and
// prometheus request metrics.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware

	return securityHeaders(recovery(traceID(maxRequestSize(metrics.Wrap(handler)))))
}
