package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"equipment-catalog/internal/controllers"
	"equipment-catalog/internal/repositories"
	"equipment-catalog/internal/services"
	"equipment-catalog/pkg/config"
	"equipment-catalog/pkg/filestorage"
	appmiddleware "equipment-catalog/pkg/middleware"
	"equipment-catalog/pkg/service"
)

// InitRouter собирает весь граф зависимостей и вешает маршруты.
// Чтение каталога публичное (OptionalAuth), мутации и личные данные — под Auth.
func InitRouter(e *echo.Echo, pool *pgxpool.Pool, redisClient *redis.Client, cfg *config.Config, logger *zap.Logger) error {
	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.BasePath)
	if err != nil {
		return err
	}

	jwtService := service.NewJWTService(
		cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL, logger)
	authMW := appmiddleware.NewAuthMiddleware(jwtService, logger)

	// Репозитории
	siteRepo := repositories.NewSiteRepository(pool, logger)
	workshopRepo := repositories.NewWorkshopRepository(pool, logger)
	typeRepo := repositories.NewEquipmentTypeRepository(pool, logger)
	equipmentRepo := repositories.NewEquipmentRepository(pool, logger)
	passportRepo := repositories.NewPassportRepository(pool, logger)
	cartRepo := repositories.NewCartRepository(pool, logger)
	orderRepo := repositories.NewOrderRequestRepository(pool, logger)
	userRepo := repositories.NewUserRepository(pool, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	txManager := repositories.NewTxManager(pool)

	// Сервисы
	authService := services.NewAuthService(userRepo, cacheRepo, jwtService, cfg.AuthContextTTL, logger)
	siteService := services.NewSiteService(siteRepo, logger)
	workshopService := services.NewWorkshopService(workshopRepo, siteRepo, equipmentRepo, logger)
	typeService := services.NewEquipmentTypeService(typeRepo, logger)
	equipmentService := services.NewEquipmentService(
		equipmentRepo, typeRepo, siteRepo, workshopRepo, passportRepo, fileStorage, logger)
	exportService := services.NewEquipmentExportService(equipmentRepo, logger)
	passportService := services.NewPassportService(passportRepo, equipmentRepo, fileStorage, logger)
	cartService := services.NewCartService(cartRepo, equipmentRepo, logger)
	orderService := services.NewOrderService(orderRepo, cartRepo, txManager, logger)

	// Контроллеры
	authController := controllers.NewAuthController(authService, logger)
	siteController := controllers.NewSiteController(siteService, authService, logger)
	workshopController := controllers.NewWorkshopController(workshopService, authService, logger)
	typeController := controllers.NewEquipmentTypeController(typeService, authService, logger)
	equipmentController := controllers.NewEquipmentController(equipmentService, exportService, authService, logger)
	passportController := controllers.NewPassportController(passportService, authService, logger)
	cartController := controllers.NewCartController(cartService, authService, logger)
	orderController := controllers.NewOrderController(orderService, authService, logger)

	api := e.Group("/api")

	// Аутентификация
	auth := api.Group("/auth")
	auth.POST("/register", authController.Register)
	auth.POST("/login", authController.Login)
	auth.POST("/refresh", authController.Refresh)
	auth.GET("/me", authController.Me, authMW.Auth)

	// Публичное чтение каталога
	public := api.Group("", authMW.OptionalAuth)
	public.GET("/sites", siteController.GetSites)
	public.GET("/sites/:id", siteController.FindSite)
	public.GET("/workshops", workshopController.GetWorkshops)
	public.GET("/workshops/:id", workshopController.FindWorkshop)
	public.GET("/equipment-types", typeController.GetEquipmentTypes)
	public.GET("/equipment-types/:id", typeController.FindEquipmentType)
	public.GET("/equipment", equipmentController.GetEquipments)
	public.GET("/equipment/:id", equipmentController.FindEquipment)
	public.GET("/equipment/:id/passports", passportController.GetPassports)

	// Мутации каталога и личные данные
	secure := api.Group("", authMW.Auth)
	secure.POST("/sites", siteController.CreateSite)
	secure.PUT("/sites/:id", siteController.UpdateSite)
	secure.DELETE("/sites/:id", siteController.DeleteSite)

	secure.POST("/workshops", workshopController.CreateWorkshop)
	secure.PUT("/workshops/:id", workshopController.UpdateWorkshop)
	secure.DELETE("/workshops/:id", workshopController.DeleteWorkshop)

	secure.POST("/equipment-types", typeController.CreateEquipmentType)
	secure.PUT("/equipment-types/:id", typeController.UpdateEquipmentType)
	secure.DELETE("/equipment-types/:id", typeController.DeleteEquipmentType)

	secure.GET("/equipment/export", equipmentController.ExportEquipments)
	secure.POST("/equipment", equipmentController.CreateEquipment)
	secure.PUT("/equipment/:id", equipmentController.UpdateEquipment)
	secure.DELETE("/equipment/:id", equipmentController.DeleteEquipment)
	secure.POST("/equipment/:id/image", equipmentController.UploadEquipmentImage)
	secure.POST("/equipment/:id/passports", passportController.UploadPassport)
	secure.DELETE("/passports/:id", passportController.DeletePassport)

	secure.GET("/cart", cartController.GetCart)
	secure.POST("/cart", cartController.AddToCart)
	secure.DELETE("/cart/:id", cartController.RemoveFromCart)

	secure.POST("/checkout", orderController.Checkout)
	secure.GET("/orders", orderController.GetMyOrders)
	secure.GET("/orders/:id", orderController.FindOrder)

	return nil
}
