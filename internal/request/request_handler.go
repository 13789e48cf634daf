package request

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
	l := zap.L().Named("request.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("request.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func parseListFilter(c *gin.Context) (ListFilter, error) {
	filter := ListFilter{
		Status:     c.Query("status"),
		EmployeeID: c.Query("employee_id"),
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	if v := c.Query("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, apperror.InvalidField("from")
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, apperror.InvalidField("to")
		}
		filter.To = &t
	}
	return filter, nil
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLeaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), c.GetString("company_id"), c.GetString("user_id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.GetString("company_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	reqs, total, err := h.service.List(c.Request.Context(), c.GetString("company_id"), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, filter.Page, filter.Limit)
	response.Success(c, http.StatusOK, reqs, &meta)
}

func (h *Handler) ListMine(c *gin.Context) {
	filter, err := parseListFilter(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	reqs, total, err := h.service.ListMine(c.Request.Context(), c.GetString("company_id"), c.GetString("user_id"), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(total, filter.Page, filter.Limit)
	response.Success(c, http.StatusOK, reqs, &meta)
}

func (h *Handler) ListPendingApprovals(c *gin.Context) {
	reqs, err := h.service.ListPendingApprovals(c.Request.Context(), c.GetString("company_id"), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, reqs, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateLeaveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), c.GetString("company_id"), c.GetString("user_id"), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	resp, err := h.service.Cancel(c.Request.Context(), c.GetString("company_id"), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Decide(c *gin.Context) {
	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), c.GetString("company_id"), c.GetString("user_id"), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Override(c *gin.Context) {
	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Override(c.Request.Context(), c.GetString("company_id"), c.GetString("user_id"), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
