// Package logging builds the structured logger used across the service.
//
// The logger is a plain *slog.Logger with JSON output, configured from
// LOG_LEVEL and LOG_FORMAT. WithRequestID derives per-request loggers so
// handler logs correlate with the access log:
//
//	logger := logging.NewLogger()
//	logger.Info("server starting", slog.String("addr", addr))
//
//	func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    logger := logging.WithRequestID(r.Context(), h.Logger)
//	    logger.Info("processing request")
//	}
package logging
