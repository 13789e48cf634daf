package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionRead), handler.Directory)
		employees.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionRead), handler.GetById)
	}
}
