package blog

import (
	"log/slog"
	"net/http"
	"time"

	"savvy-blog/internal/common/pagination"
	"savvy-blog/internal/handler/http/requestid"
	"savvy-blog/internal/handler/http/respond"
	"savvy-blog/internal/observability/logging"
	"savvy-blog/internal/observability/metrics"
	blogUC "savvy-blog/internal/usecase/blog"
)

// ListHandler serves the paginated post listing, optionally filtered by
// category slug.
type ListHandler struct {
	Svc           *blogUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("Invalid listing parameters",
			"error", err.Error(),
			"request_id", reqID)
		pagination.RecordError("validation")
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	pagination.LogRequest(logger, reqID, params)

	page, err := h.Svc.ListPosts(ctx, params)
	if err != nil {
		pagination.LogError(logger, reqID, params, err, "database")
		pagination.RecordError("database")
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}

	dtos := make([]PostSummaryDTO, 0, len(page.Posts))
	for _, post := range page.Posts {
		dtos = append(dtos, toSummaryDTO(post))
	}

	response := pagination.NewResponse(dtos, params, h.Svc.PageSize)

	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, params.Page)
	pagination.RecordDuration("handler", duration.Seconds())
	metrics.RecordPostServed("list")

	pagination.LogResponse(logger, reqID, params, len(dtos), duration, http.StatusOK)

	respond.JSON(w, http.StatusOK, response)
}
