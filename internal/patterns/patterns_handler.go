package patterns

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
	l := zap.L().Named("patterns.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("patterns.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Analyze(c *gin.Context) {
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(time.Now().Year())))
	employeeID := c.Query("employee_id")

	report, err := h.service.Analyze(c.Request.Context(), c.GetString("company_id"), employeeID, year)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("pattern analysis failed",
			zap.String("employee_id", employeeID),
			zap.Int("status", httpErr.Status),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, report, nil)
}
