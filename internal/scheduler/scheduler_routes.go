package scheduler

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
	group := r.Group("/jobs")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("/accrual", middleware.RBACAuthorize(rbacService, domain.ResourceJob, domain.ActionRun), handler.RunAccrual)
		group.POST("/carryover", middleware.RBACAuthorize(rbacService, domain.ResourceJob, domain.ActionRun), handler.RunCarryover)
		group.POST("/escalations", middleware.RBACAuthorize(rbacService, domain.ResourceJob, domain.ActionRun), handler.RunEscalations)
	}
}
