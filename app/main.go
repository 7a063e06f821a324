package main

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"equipment-catalog/internal/routes"
	"equipment-catalog/pkg/config"
	"equipment-catalog/pkg/customvalidator"
	"equipment-catalog/pkg/database/postgresql"
	"equipment-catalog/pkg/logger"
	"equipment-catalog/pkg/utils"
)

func main() {
	log := logger.NewLogger()
	defer log.Sync()

	cfg := config.New()

	pool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Warn("Redis недоступен, авторизационный кеш работать не будет", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		log.Fatal("Не удалось зарегистрировать валидаторы", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	e.Static("/uploads", cfg.Upload.BasePath)

	if err := routes.InitRouter(e, pool, redisClient, cfg, log); err != nil {
		log.Fatal("Не удалось инициализировать маршруты", zap.Error(err))
	}

	log.Info("Запуск сервера", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		log.Fatal("Сервер остановлен", zap.Error(err))
	}
}
