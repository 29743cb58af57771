package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/GGmuzem/polish-calc/internal/calculate"
	"github.com/GGmuzem/polish-calc/internal/config"
	"github.com/GGmuzem/polish-calc/internal/handlers"
	"github.com/GGmuzem/polish-calc/internal/logging"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.Init(cfg.Logging)

	if !cfg.HTTP.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	calc := calculate.New(calculate.WithMaxDepth(cfg.Calculator.MaxDepth))
	router.POST("/api/v1/evaluate", handlers.NewCalculateHandler(calc).Evaluate)

	slog.Info("сервис запущен", slog.String("port", cfg.HTTP.Port))
	if err := http.ListenAndServe(":"+cfg.HTTP.Port, router); err != nil {
		slog.Error("ошибка запуска сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
