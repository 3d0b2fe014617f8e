package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appfinance "github.com/societyhub/backend/internal/application/finance"
	appidentity "github.com/societyhub/backend/internal/application/identity"
	appreport "github.com/societyhub/backend/internal/application/report"
	appsociety "github.com/societyhub/backend/internal/application/society"
	"github.com/societyhub/backend/internal/infrastructure/auth"
	"github.com/societyhub/backend/internal/infrastructure/config"
	"github.com/societyhub/backend/internal/infrastructure/logger"
	"github.com/societyhub/backend/internal/infrastructure/persistence"
	"github.com/societyhub/backend/internal/interfaces/http/handler"
	"github.com/societyhub/backend/internal/interfaces/http/middleware"
	"github.com/societyhub/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting SocietyHub backend",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// Token blacklist backs logout and forced invalidation. Redis is the
	// normal backend; fall back to the in-process store when it is
	// unreachable so a dev setup still works.
	var blacklist auth.TokenBlacklist
	redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn("Redis unavailable, using in-memory token blacklist", zap.Error(err))
		blacklist = auth.NewInMemoryTokenBlacklist()
	} else {
		blacklist = redisBlacklist
		defer func() {
			_ = redisBlacklist.Close()
		}()
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	userRepo := persistence.NewUserRepository(db.DB)
	societyRepo := persistence.NewSocietyRepository(db.DB)
	flatRepo := persistence.NewFlatRepository(db.DB)
	categoryRepo := persistence.NewExpenseCategoryRepository(db.DB)
	expenseRepo := persistence.NewExpenseRepository(db.DB)
	paymentRepo := persistence.NewMaintenancePaymentRepository(db.DB)
	reportRepo := persistence.NewFinanceReportRepository(db.DB)

	authService := appidentity.NewAuthService(userRepo, societyRepo, flatRepo, jwtService, blacklist, log)
	societyService := appsociety.NewSocietyService(societyRepo, flatRepo)
	flatService := appsociety.NewFlatService(societyRepo, flatRepo)
	expenseService := appfinance.NewExpenseService(categoryRepo, expenseRepo)
	paymentService := appfinance.NewPaymentService(paymentRepo, flatRepo, reportRepo)
	reportService := appreport.NewReportService(reportRepo, societyRepo, flatRepo)

	authHandler := handler.NewAuthHandler(authService)
	societyHandler := handler.NewSocietyHandler(societyService)
	flatHandler := handler.NewFlatHandler(flatService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	reportHandler := handler.NewReportHandler(reportService)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFromHTTP(cfg.HTTP)))

	requireAuth := middleware.JWTAuth(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		Blacklist:  blacklist,
		Logger:     log,
	})

	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	authRoutes.POST("/logout", requireAuth, authHandler.Logout)
	authRoutes.GET("/me", requireAuth, authHandler.Me)
	authRoutes.POST("/change-password", requireAuth, authHandler.ChangePassword)

	societyRoutes := router.NewDomainGroup("society", "/societies")
	societyRoutes.Use(requireAuth)
	societyRoutes.POST("", societyHandler.Create)
	societyRoutes.GET("", societyHandler.List)
	societyRoutes.GET("/:societyId", societyHandler.Get)
	societyRoutes.PUT("/:societyId", societyHandler.Update)
	societyRoutes.DELETE("/:societyId", societyHandler.Delete)
	societyRoutes.POST("/:societyId/flats", flatHandler.Create)
	societyRoutes.GET("/:societyId/flats", flatHandler.List)
	societyRoutes.GET("/:societyId/expense-categories", expenseHandler.ListCategories)
	societyRoutes.POST("/:societyId/expense-categories", expenseHandler.CreateCategory)
	societyRoutes.POST("/:societyId/expenses", expenseHandler.Create)
	societyRoutes.GET("/:societyId/expenses", expenseHandler.List)
	societyRoutes.GET("/:societyId/payments", paymentHandler.List)
	societyRoutes.POST("/:societyId/payments/bulk", paymentHandler.BulkCreate)
	societyRoutes.GET("/:societyId/payments/defaulters", paymentHandler.Defaulters)
	societyRoutes.GET("/:societyId/reports/summary", reportHandler.Summary)
	societyRoutes.GET("/:societyId/reports/monthly", reportHandler.Monthly)
	societyRoutes.GET("/:societyId/reports/year-to-date", reportHandler.YearToDate)
	societyRoutes.GET("/:societyId/reports/collection-trends", reportHandler.Trends)

	flatRoutes := router.NewDomainGroup("flat", "/flats")
	flatRoutes.Use(requireAuth)
	flatRoutes.GET("/:id", flatHandler.Get)
	flatRoutes.PUT("/:id", flatHandler.Update)
	flatRoutes.DELETE("/:id", flatHandler.Delete)

	expenseRoutes := router.NewDomainGroup("expense", "/expenses")
	expenseRoutes.Use(requireAuth)
	expenseRoutes.GET("/:id", expenseHandler.Get)
	expenseRoutes.PUT("/:id", expenseHandler.Update)
	expenseRoutes.DELETE("/:id", expenseHandler.Delete)

	paymentRoutes := router.NewDomainGroup("payment", "/payments")
	paymentRoutes.Use(requireAuth)
	paymentRoutes.POST("", paymentHandler.Create)
	paymentRoutes.GET("/:id", paymentHandler.Get)
	paymentRoutes.PUT("/:id", paymentHandler.Update)
	paymentRoutes.DELETE("/:id", paymentHandler.Delete)

	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/health", systemHandler.Health)

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(authRoutes).
		Register(societyRoutes).
		Register(flatRoutes).
		Register(expenseRoutes).
		Register(paymentRoutes).
		Register(systemRoutes)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
