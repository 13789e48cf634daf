package leavetype

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
	types := r.Group("/leave-types")
	types.Use(middleware.AuthMiddleware())
	{
		types.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveType, domain.ActionRead), handler.GetAll)
		types.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveType, domain.ActionRead), handler.GetById)
		types.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveType, domain.ActionManage), handler.Create)
		types.PUT("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveType, domain.ActionManage), handler.Update)
		types.DELETE("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveType, domain.ActionManage), handler.Delete)
	}
}
