package audit

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
	entries := r.Group("/audit")
	entries.Use(middleware.AuthMiddleware())
	{
		entries.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceAudit, domain.ActionRead), handler.Query)
		entries.GET("/timeline/:entityType/:entityId", middleware.RBACAuthorize(rbacService, domain.ResourceAudit, domain.ActionRead), handler.Timeline)
	}
}
