package ledger

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
	l := zap.L().Named("ledger.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("ledger request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CreateAccrualConfig(c *gin.Context) {
	var req CreateAccrualConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CreateAccrualConfig(c.Request.Context(), c.GetString("company_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAccrualConfigs(c *gin.Context) {
	resp, err := h.service.GetAccrualConfigs(c.Request.Context(), c.GetString("company_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateAccrualConfig(c *gin.Context) {
	var req UpdateAccrualConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateAccrualConfig(c.Request.Context(), c.GetString("company_id"), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteAccrualConfig(c *gin.Context) {
	if err := h.service.DeleteAccrualConfig(c.Request.Context(), c.GetString("company_id"), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}

func (h *Handler) GetBalance(c *gin.Context) {
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))

	resp, err := h.service.GetBalance(
		c.Request.Context(),
		c.GetString("company_id"),
		c.Param("employeeId"),
		c.Param("leaveTypeId"),
		year,
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListBalances(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))

	resp, err := h.service.ListBalances(
		c.Request.Context(),
		c.GetString("company_id"),
		c.Param("employeeId"),
		year,
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) SetEntitlement(c *gin.Context) {
	var req SetEntitlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.SetEntitlement(
		c.Request.Context(),
		c.GetString("company_id"),
		c.GetString("user_id"),
		c.GetString("role"),
		req,
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Adjust(c *gin.Context) {
	var req AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Adjust(
		c.Request.Context(),
		c.GetString("company_id"),
		c.GetString("user_id"),
		c.GetString("role"),
		req,
	)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
