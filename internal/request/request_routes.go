package request

import (
	"go-leave-engine/internal/domain"
	"go-leave-engine/internal/middleware"
	"go-leave-engine/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb *redis.Client,
) {
	requests := r.Group("/leave-requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.POST("",
			middleware.RBACAuthorize(rbacService, domain.ResourceLeaveRequest, domain.ActionCreate),
			middleware.IdempotencyMiddleware(rdb),
			handler.Create,
		)
		requests.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveRequest, domain.ActionReadAll), handler.List)
		requests.GET("/mine", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveRequest, domain.ActionRead), handler.ListMine)
		requests.GET("/approvals", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveRequest, domain.ActionDecide), handler.ListPendingApprovals)
		requests.GET("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveRequest, domain.ActionRead), handler.GetById)
		requests.PUT("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveRequest, domain.ActionUpdate), handler.Update)
		requests.POST("/:id/cancel", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveRequest, domain.ActionUpdate), handler.Cancel)
		requests.POST("/:id/decide",
			middleware.RBACAuthorize(rbacService, domain.ResourceLeaveRequest, domain.ActionDecide),
			middleware.IdempotencyMiddleware(rdb),
			handler.Decide,
		)
		requests.POST("/:id/override", middleware.RBACAuthorize(rbacService, domain.ResourceLeaveRequest, domain.ActionOverride), handler.Override)
	}
}
