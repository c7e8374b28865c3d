package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/geocoder89/eventmanager/internal/apperr"
	"github.com/geocoder89/eventmanager/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

const requestTimeout = 2 * time.Second

// RespondError writes {"error": title, "details": [...], "requestId": id}.
func RespondError(ctx *gin.Context, status int, title string, details ...string) {
	middlewares.AbortWithError(ctx, status, title, details...)
}

func RespondBadRequest(ctx *gin.Context, details ...string) {
	RespondError(ctx, http.StatusBadRequest, titleBadRequest, details...)
}

// RespondDomainError maps err onto its HTTP status, title and message.
// The cause of an internal error is logged, never written.
func RespondDomainError(ctx *gin.Context, log *slog.Logger, op string, err error) {
	appErr := apperr.From(err)
	status, title := statusFor(appErr.Kind)

	if status >= http.StatusInternalServerError {
		log.ErrorContext(ctx.Request.Context(), "request failed",
			"op", op,
			"entity", string(appErr.Entity),
			"kind", appErr.Kind.String(),
			"err", err,
		)
	} else {
		log.DebugContext(ctx.Request.Context(), "request rejected",
			"op", op,
			"entity", string(appErr.Entity),
			"kind", appErr.Kind.String(),
		)
	}

	_ = ctx.Error(err)
	RespondError(ctx, status, title, messageFor(appErr.Entity, appErr.Kind))
}

// requestContext bounds store calls made on behalf of a request.
func requestContext(ctx *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request.Context(), requestTimeout)
}

// pathID parses a positive integer path parameter, answering 400 otherwise.
func pathID(ctx *gin.Context, name string) (int, bool) {
	raw := ctx.Param(name)

	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		RespondBadRequest(ctx, "Invalid "+name+" '"+raw+"': must be a positive integer.")
		return 0, false
	}

	return id, true
}
