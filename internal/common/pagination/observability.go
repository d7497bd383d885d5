package pagination

import (
	"log/slog"
	"time"
)

// LogRequest logs a listing request with structured fields.
func LogRequest(logger *slog.Logger, requestID string, params Params) {
	logger.Info("Listing request",
		"request_id", requestID,
		"page", params.Page,
		"category", params.Category)
}

// LogResponse logs a listing response with duration and status.
func LogResponse(logger *slog.Logger, requestID string, params Params, returnedCount int, duration time.Duration, statusCode int) {
	logger.Info("Listing response",
		"request_id", requestID,
		"page", params.Page,
		"category", params.Category,
		"returned_count", returnedCount,
		"duration_ms", duration.Milliseconds(),
		"status", statusCode)
}

// LogError logs a listing error with structured fields.
func LogError(logger *slog.Logger, requestID string, params Params, err error, errorType string) {
	logger.Error("Listing error",
		"request_id", requestID,
		"page", params.Page,
		"category", params.Category,
		"error", err.Error(),
		"error_type", errorType)
}
