package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"profico-inventory/internal/controllers"
	"profico-inventory/internal/repositories"
	"profico-inventory/internal/services"
	"profico-inventory/pkg/config"
	"profico-inventory/pkg/middleware"
	"profico-inventory/pkg/service"
)

type Loggers struct {
	Main      *zap.Logger
	Auth      *zap.Logger
	Equipment *zap.Logger
	Billing   *zap.Logger
}

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, loggers *Loggers, cfg *config.Config) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)
	txManager := repositories.NewTxManager(dbConn)

	// --- РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(dbConn, loggers.Main)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, loggers.Equipment)
	historyRepo := repositories.NewEquipmentHistoryRepository(dbConn)
	maintenanceRepo := repositories.NewMaintenanceRepository(dbConn)
	statsRepo := repositories.NewStatsRepository(dbConn, loggers.Main)
	exportRepo := repositories.NewExportRepository(dbConn)
	subscriptionRepo := repositories.NewSubscriptionRepository(dbConn)
	invoiceRepo := repositories.NewInvoiceRepository(dbConn)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)

	// --- СЕРВИСЫ ---
	authService := services.NewAuthService(userRepo, jwtSvc, loggers.Auth)
	userService := services.NewUserService(userRepo, loggers.Main)
	equipmentService := services.NewEquipmentService(equipmentRepo, historyRepo, cacheRepo, loggers.Equipment)
	lifecycleService := services.NewLifecycleService(txManager, equipmentRepo, historyRepo, userRepo, cacheRepo, loggers.Equipment)
	maintenanceService := services.NewMaintenanceService(maintenanceRepo, equipmentRepo, loggers.Equipment)
	statsService := services.NewStatsService(statsRepo, cacheRepo, cfg.Stats.CacheTTL, loggers.Main)
	exportService := services.NewExportService(exportRepo, loggers.Main)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, loggers.Billing)
	invoiceService := services.NewInvoiceService(invoiceRepo, loggers.Billing)

	// --- КОНТРОЛЛЕРЫ ---
	authController := controllers.NewAuthController(authService, loggers.Auth)
	userController := controllers.NewUserController(userService, loggers.Main)
	equipmentController := controllers.NewEquipmentController(equipmentService, lifecycleService, loggers.Equipment)
	maintenanceController := controllers.NewMaintenanceController(maintenanceService, loggers.Equipment)
	statsController := controllers.NewStatsController(statsService, loggers.Main)
	exportController := controllers.NewExportController(exportService, loggers.Main)
	subscriptionController := controllers.NewSubscriptionController(subscriptionService, loggers.Billing)
	invoiceController := controllers.NewInvoiceController(invoiceService, loggers.Billing)

	// --- РОУТЕРЫ ---
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authController)
	runUserRouter(secureGroup, userController)
	runEquipmentRouter(secureGroup, equipmentController, maintenanceController, statsController, exportController)
	runBillingRouter(secureGroup, subscriptionController, invoiceController, statsController)

	loggers.Main.Info("InitRouter: Создание маршрутов завершено")
}
