package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-leave-engine/internal/audit"
	"go-leave-engine/internal/calendar"
	"go-leave-engine/internal/employee"
	"go-leave-engine/internal/leavetype"
	"go-leave-engine/internal/ledger"
	"go-leave-engine/internal/messaging/kafka"
	"go-leave-engine/internal/request"
	"go-leave-engine/internal/scheduler"
	"go-leave-engine/internal/shared/connection"
	"go-leave-engine/internal/shared/counter"
	"go-leave-engine/internal/workflow"

	"go.uber.org/zap"
)

// RunScheduler runs the periodic accrual, carryover and escalation jobs
// until interrupted.
func RunScheduler() error {
	logger := zap.L().Named("app.scheduler")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}

	auditService := audit.NewService(audit.NewRepository(gormDB))
	calendarService := calendar.NewService(calendar.NewRepository(gormDB))
	employeeService := employee.NewService(employee.NewRepository(gormDB), redisClient)
	leaveTypeService := leavetype.NewService(leavetype.NewRepository(gormDB))
	workflowService := workflow.NewService(workflow.NewRepository(gormDB))
	ledgerService := ledger.NewService(ledger.NewRepository(gormDB), employeeService, leaveTypeService, auditService)
	requestService := request.NewService(
		gormDB,
		request.NewRepository(gormDB),
		employeeService,
		leaveTypeService,
		calendarService,
		workflowService,
		ledgerService,
		auditService,
		counter.NewRepository(gormDB),
		kafka.NewOutboxRepository(gormDB),
	)
	schedulerService := scheduler.NewService(scheduler.NewRepository(gormDB), ledgerService, requestService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go schedulerService.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("scheduler shutting down")
	cancel()

	return nil
}
