package audit

import (
	"net/http"
	"strconv"
	"time"

	"go-leave-engine/internal/shared/apperror"
	"go-leave-engine/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("audit.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("audit request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Query(c *gin.Context) {
	filter := QueryFilter{
		ActorID:    c.Query("actor_id"),
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			h.writeServiceError(c, apperror.InvalidField("from"))
			return
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			h.writeServiceError(c, apperror.InvalidField("to"))
			return
		}
		// Inclusive upper bound for a date-only filter.
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &t
	}

	entries, total, err := h.service.Query(c.Request.Context(), c.GetString("company_id"), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, filter.Page, filter.Limit)
	response.Success(c, http.StatusOK, entries, &meta)
}

func (h *Handler) Timeline(c *gin.Context) {
	entries, err := h.service.Timeline(
		c.Request.Context(),
		c.GetString("company_id"),
		c.Param("entityType"),
		c.Param("entityId"),
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, entries, nil)
}
