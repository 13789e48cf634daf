package patterns

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
	group := r.Group("/patterns")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("", middleware.RBACAuthorize(rbacService, domain.ResourcePattern, domain.ActionRead), handler.Analyze)
	}
}
