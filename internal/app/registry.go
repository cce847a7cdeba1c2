package app

import (
	"database/sql"
	"time"

	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/config"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/dashboard"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/messaging/kafka"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/middleware"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/notification"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/payslip"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/rbac"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/salarychangerequest"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/snapshot"
	"github.com/digitos-team/Digitos-Payroll-software-sub000/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Global middleware ---
	router.Use(middleware.RequestID())
	router.Use(middleware.ContextLogger(logger))
	router.Use(middleware.RateLimitByIP(20, 40))

	// --- Upstream client ---
	api := upstream.NewClient(
		cfg.UpstreamBaseURL,
		cfg.UpstreamToken,
		logger,
		upstream.WithUnauthorizedHook(func() {
			logger.Warn("upstream rejected the service token, sessions are stale")
		}),
	)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Repositories ---
	requestRepo := salarychangerequest.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	loader := snapshot.NewLoader(api, logger)
	view := payslip.NewView(payslip.NewUpstreamFetcher(api), time.Now().UTC().Format("2006-01"), logger)
	badgeService := notification.NewBadgeService(rdb, logger)
	requestService := salarychangerequest.NewService(db, requestRepo, outboxRepo, salarychangerequest.NewUpstreamApplier(api))

	// --- Handlers ---
	dashboardHandler := dashboard.NewHandler(loader, api)
	payslipHandler := payslip.NewHandler(view, loader.Snapshot())
	notificationHandler := notification.NewHandler(badgeService)
	requestHandler := salarychangerequest.NewHandlerWithRedis(requestService, rdb)

	// --- Routes Registration ---
	apiGroup := router.Group("/api/v1")
	{
		dashboard.RegisterRoutes(apiGroup, dashboardHandler, rbacService, cfg.JWTSecret)
		payslip.RegisterRoutes(apiGroup, payslipHandler, rbacService, cfg.JWTSecret)
		notification.RegisterRoutes(apiGroup, notificationHandler, rbacService, cfg.JWTSecret)
		salarychangerequest.RegisterRoutes(apiGroup, requestHandler, rbacService, cfg.JWTSecret, rdb)
	}

	return nil
}
