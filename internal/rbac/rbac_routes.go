package rbac

import (
	"go-leave-engine/internal/domain"
	"go-leave-engine/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, service Service) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("/enforce", handler.Enforce)

		group.GET("/roles", middleware.RBACAuthorize(service, domain.ResourceRole, domain.ActionRead), handler.ListRoles)
		group.GET("/permissions", middleware.RBACAuthorize(service, domain.ResourceRole, domain.ActionManage), handler.ListPermissions)
	}
}
