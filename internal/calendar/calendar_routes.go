package calendar

import (
	"go-leave-engine/internal/domain"
	"go-leave-engine/internal/middleware"
	"go-leave-engine/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
) {
	calendars := r.Group("/calendars")
	calendars.Use(middleware.AuthMiddleware())
	{
		calendars.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceCalendar, domain.ActionRead), handler.GetAll)
		calendars.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceCalendar, domain.ActionRead), handler.GetById)
		calendars.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceCalendar, domain.ActionManage), handler.Create)
		calendars.DELETE("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceCalendar, domain.ActionManage), handler.Delete)

		calendars.POST("/:id/holidays", middleware.RBACAuthorize(rbacService, domain.ResourceCalendar, domain.ActionManage), handler.AddHoliday)
		calendars.DELETE("/:id/holidays/:holidayId", middleware.RBACAuthorize(rbacService, domain.ResourceCalendar, domain.ActionManage), handler.RemoveHoliday)
		calendars.POST("/:id/blocked-periods", middleware.RBACAuthorize(rbacService, domain.ResourceCalendar, domain.ActionManage), handler.AddBlockedPeriod)
		calendars.DELETE("/:id/blocked-periods/:blockedPeriodId", middleware.RBACAuthorize(rbacService, domain.ResourceCalendar, domain.ActionManage), handler.RemoveBlockedPeriod)
	}
}
