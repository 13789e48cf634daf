package workflow

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
	workflows := r.Group("/workflows")
	workflows.Use(middleware.AuthMiddleware())
	{
		workflows.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceWorkflow, domain.ActionRead), handler.GetConfigs)
		workflows.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceWorkflow, domain.ActionRead), handler.GetConfigById)
		workflows.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceWorkflow, domain.ActionManage), handler.CreateConfig)
		workflows.PUT("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceWorkflow, domain.ActionManage), handler.UpdateConfig)
		workflows.DELETE("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceWorkflow, domain.ActionManage), handler.DeleteConfig)
	}

	delegations := r.Group("/delegations")
	delegations.Use(middleware.AuthMiddleware())
	{
		delegations.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceDelegation, domain.ActionRead), handler.GetDelegations)
		delegations.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceDelegation, domain.ActionManage), handler.CreateDelegation)
		delegations.DELETE("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceDelegation, domain.ActionManage), handler.DeleteDelegation)
	}
}
