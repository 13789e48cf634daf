package ledger

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
	balances := r.Group("/balances")
	balances.Use(middleware.AuthMiddleware())
	{
		balances.GET("/:employeeId", middleware.RBACAuthorize(rbacService, domain.ResourceBalance, domain.ActionRead), handler.ListBalances)
		balances.GET("/:employeeId/:leaveTypeId", middleware.RBACAuthorize(rbacService, domain.ResourceBalance, domain.ActionRead), handler.GetBalance)
		balances.PUT("/entitlement", middleware.RBACAuthorize(rbacService, domain.ResourceBalance, domain.ActionManage), handler.SetEntitlement)
		balances.POST("/adjustments", middleware.RBACAuthorize(rbacService, domain.ResourceBalance, domain.ActionManage), handler.Adjust)
	}

	configs := r.Group("/accrual-configs")
	configs.Use(middleware.AuthMiddleware())
	{
		configs.GET("", middleware.RBACAuthorize(rbacService, domain.ResourceAccrualConfig, domain.ActionRead), handler.GetAccrualConfigs)
		configs.POST("", middleware.RBACAuthorize(rbacService, domain.ResourceAccrualConfig, domain.ActionManage), handler.CreateAccrualConfig)
		configs.PUT("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceAccrualConfig, domain.ActionManage), handler.UpdateAccrualConfig)
		configs.DELETE("/:id", middleware.RBACAuthorize(rbacService, domain.ResourceAccrualConfig, domain.ActionManage), handler.DeleteAccrualConfig)
	}
}
