package scheduler

import (
	"net/http"
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
	l := zap.L().Named("scheduler.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scheduler.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, job string, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("job trigger failed", zap.String("job", job), zap.Int("status", httpErr.Status))
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) RunAccrual(c *gin.Context) {
	var req RunAccrualRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body", err.Error())
		return
	}

	result, err := h.service.RunAccrual(c.Request.Context(), req.CompanyID, time.Now().UTC())
	if err != nil {
		h.writeServiceError(c, JobAccrual, err)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) RunCarryover(c *gin.Context) {
	var req RunCarryoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body", err.Error())
		return
	}

	result, err := h.service.RunCarryover(c.Request.Context(), req.CompanyID, req.FromYear)
	if err != nil {
		h.writeServiceError(c, JobCarryover, err)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}

func (h *Handler) RunEscalations(c *gin.Context) {
	var req RunEscalationsRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body", err.Error())
		return
	}

	result, err := h.service.RunEscalations(c.Request.Context(), req.CompanyID, time.Now().UTC())
	if err != nil {
		h.writeServiceError(c, JobEscalations, err)
		return
	}

	response.Success(c, http.StatusOK, result, nil)
}
