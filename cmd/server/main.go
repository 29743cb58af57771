package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/GGmuzem/polish-calc/internal/config"
	"github.com/GGmuzem/polish-calc/internal/database"
	"github.com/GGmuzem/polish-calc/internal/logging"
	"github.com/GGmuzem/polish-calc/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logging.Init(cfg.Logging)

	db, err := database.Open(cfg.DB.Path, cfg.DB.InMemory)
	if err != nil {
		slog.Error("ошибка инициализации базы данных", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.New(cfg, db).Run(ctx); err != nil {
		slog.Error("сервер завершился с ошибкой", slog.String("error", err.Error()))
		os.Exit(1)
	}
	slog.Info("сервер остановлен")
}
