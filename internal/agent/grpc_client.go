package agent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/GGmuzem/polish-calc/pkg/calculator"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// GRPCClient клиент сервиса калькулятора
type GRPCClient struct {
	client     calculator.CalculatorClient
	conn       *grpc.ClientConn
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
}

// ClientOption настройка клиента
type ClientOption func(*GRPCClient)

// WithTimeout задает таймаут одного вызова
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *GRPCClient) {
		c.timeout = timeout
	}
}

// WithRetries задает число повторов при недоступности сервера и шаг задержки между ними
func WithRetries(maxRetries int, backoff time.Duration) ClientOption {
	return func(c *GRPCClient) {
		c.maxRetries = maxRetries
		c.backoff = backoff
	}
}

// NewGRPCClient создает соединение без TLS с сервером по адресу serverAddr
func NewGRPCClient(serverAddr string, opts ...ClientOption) (*GRPCClient, error) {
	conn, err := grpc.Dial(serverAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к %s: %w", serverAddr, err)
	}

	c := NewClient(calculator.NewCalculatorClient(conn), opts...)
	c.conn = conn
	return c, nil
}

// NewClient оборачивает готовый CalculatorClient
func NewClient(client calculator.CalculatorClient, opts ...ClientOption) *GRPCClient {
	c := &GRPCClient{
		client:     client,
		timeout:    5 * time.Second,
		maxRetries: 5,
		backoff:    500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close закрывает соединение с сервером
func (c *GRPCClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Calculate отправляет выражение на сервер и возвращает результат строкой.
// При коде Unavailable вызов повторяется с линейно растущей задержкой.
func (c *GRPCClient) Calculate(ctx context.Context, expression string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * c.backoff
			slog.Debug("повтор запроса",
				slog.Int("attempt", attempt),
				slog.Duration("delay", delay),
				slog.String("error", lastErr.Error()),
			)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}

		result, err := c.call(ctx, expression)
		if err == nil {
			return result, nil
		}
		if status.Code(err) != codes.Unavailable {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("сервер недоступен после %d попыток: %w", c.maxRetries+1, lastErr)
}

func (c *GRPCClient) call(ctx context.Context, expression string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.client.Calculate(ctx, wrapperspb.String(expression))
	if err != nil {
		return "", err
	}
	return resp.GetValue(), nil
}
