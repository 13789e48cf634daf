package app

import (
	"path/filepath"

	"go-leave-engine/internal/audit"
	"go-leave-engine/internal/calendar"
	"go-leave-engine/internal/employee"
	"go-leave-engine/internal/leavetype"
	"go-leave-engine/internal/ledger"
	"go-leave-engine/internal/messaging/kafka"
	"go-leave-engine/internal/middleware"
	"go-leave-engine/internal/patterns"
	"go-leave-engine/internal/rbac"
	"go-leave-engine/internal/rbac/infra"
	"go-leave-engine/internal/request"
	"go-leave-engine/internal/scheduler"
	"go-leave-engine/internal/shared/counter"
	"go-leave-engine/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	auditRepo := audit.NewRepository(gormDB)
	calendarRepo := calendar.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	ledgerRepo := ledger.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	requestRepo := request.NewRepository(gormDB)
	schedulerRepo := scheduler.NewRepository(gormDB)
	workflowRepo := workflow.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	auditService := audit.NewService(auditRepo)
	calendarService := calendar.NewService(calendarRepo)
	employeeService := employee.NewService(employeeRepo, rdb)
	leaveTypeService := leavetype.NewService(leaveTypeRepo)
	workflowService := workflow.NewService(workflowRepo)
	ledgerService := ledger.NewService(ledgerRepo, employeeService, leaveTypeService, auditService)
	requestService := request.NewService(
		gormDB,
		requestRepo,
		employeeService,
		leaveTypeService,
		calendarService,
		workflowService,
		ledgerService,
		auditService,
		counterRepo,
		outboxRepo,
	)
	patternsService := patterns.NewService(requestService, calendarService, employeeService, rdb)
	schedulerService := scheduler.NewService(schedulerRepo, ledgerService, requestService)

	// --- Handlers ---
	auditHandler := audit.NewHandler(auditService)
	calendarHandler := calendar.NewHandler(calendarService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	ledgerHandler := ledger.NewHandler(ledgerService)
	patternsHandler := patterns.NewHandler(patternsService)
	rbacHandler := rbac.NewHandler(rbacService, rbacRepo)
	requestHandler := request.NewHandler(requestService)
	schedulerHandler := scheduler.NewHandler(schedulerService)
	workflowHandler := workflow.NewHandler(workflowService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(middleware.RequestID())
	api.Use(middleware.RateLimitByIP(rate.Limit(50), 100))
	{
		audit.RegisterRoutes(api, auditHandler, rbacService)
		calendar.RegisterRoutes(api, calendarHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		ledger.RegisterRoutes(api, ledgerHandler, rbacService)
		patterns.RegisterRoutes(api, patternsHandler, rbacService)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
		request.RegisterRoutes(api, requestHandler, rbacService, rdb)
		scheduler.RegisterRoutes(api, schedulerHandler, rbacService)
		workflow.RegisterRoutes(api, workflowHandler, rbacService)
	}

	return nil
}
