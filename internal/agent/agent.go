package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/GGmuzem/polish-calc/internal/config"
)

// Agent отправляет пакеты выражений на сервер калькулятора
type Agent struct {
	client  *GRPCClient
	workers int
}

// NewAgent создает агента по настройкам из конфигурации
func NewAgent(cfg config.Config) (*Agent, error) {
	client, err := NewGRPCClient(cfg.Agent.Server,
		WithTimeout(cfg.Agent.Timeout),
		WithRetries(cfg.Agent.MaxRetries, 500*time.Millisecond),
	)
	if err != nil {
		return nil, err
	}

	return &Agent{client: client, workers: cfg.Agent.Workers}, nil
}

// Run вычисляет пакет выражений и возвращает результаты в исходном порядке
func (a *Agent) Run(ctx context.Context, expressions []string) []Result {
	slog.Info("агент запущен",
		slog.Int("workers", a.workers),
		slog.Int("expressions", len(expressions)),
	)
	start := time.Now()
	results := RunBatch(ctx, a.client, expressions, a.workers)
	slog.Info("пакет вычислен", slog.Duration("duration", time.Since(start)))
	return results
}

// Close закрывает соединение с сервером
func (a *Agent) Close() error {
	return a.client.Close()
}
