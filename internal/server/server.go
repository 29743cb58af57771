package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/GGmuzem/polish-calc/internal/auth"
	"github.com/GGmuzem/polish-calc/internal/calculate"
	"github.com/GGmuzem/polish-calc/internal/config"
	"github.com/GGmuzem/polish-calc/internal/database"
	"github.com/GGmuzem/polish-calc/internal/handlers"
	"github.com/GGmuzem/polish-calc/pkg/calculator"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

const shutdownTimeout = 5 * time.Second

// Server HTTP API и gRPC сервис калькулятора поверх общего хранилища
type Server struct {
	cfg  config.Config
	db   database.Database
	auth *auth.Service
	calc *calculate.Calculator
	ids  *IDGenerator
}

// New создает сервер
func New(cfg config.Config, db database.Database) *Server {
	return &Server{
		cfg:  cfg,
		db:   db,
		auth: auth.NewService(db, cfg.Auth.JWTSignKey, cfg.Auth.TokenExpiration),
		calc: calculate.New(calculate.WithMaxDepth(cfg.Calculator.MaxDepth)),
		ids:  NewIDGenerator(),
	}
}

// Router собирает gin-маршруты
func (s *Server) Router() *gin.Engine {
	if !s.cfg.HTTP.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	corsCfg := cors.DefaultConfig()
	if origins := s.cfg.HTTP.AllowOrigins; len(origins) == 0 || slices.Contains(origins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	v1.POST("/evaluate", handlers.NewCalculateHandler(s.calc).Evaluate)
	v1.POST("/register", s.Register)
	v1.POST("/login", s.Login)

	private := v1.Group("/")
	private.Use(s.auth.Middleware())
	private.POST("/calculate", s.Calculate)
	private.GET("/expressions", s.ListExpressions)
	private.GET("/expressions/:id", s.GetExpression)

	return router
}

// GRPCServer создает gRPC сервер с зарегистрированным сервисом Calculator
func (s *Server) GRPCServer() *grpc.Server {
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(loggingInterceptor))
	calculator.RegisterCalculatorServer(grpcServer, NewCalculatorServer(s.calc))
	reflection.Register(grpcServer)
	return grpcServer
}

// Run запускает HTTP и gRPC серверы и останавливает их при отмене ctx
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    ":" + s.cfg.HTTP.Port,
		Handler: s.Router(),
	}

	lis, err := net.Listen("tcp", ":"+s.cfg.GRPC.Port)
	if err != nil {
		return fmt.Errorf("не удалось открыть порт gRPC %s: %w", s.cfg.GRPC.Port, err)
	}
	grpcServer := s.GRPCServer()

	errCh := make(chan error, 2)
	go func() {
		slog.Info("gRPC сервер запущен", slog.String("port", s.cfg.GRPC.Port))
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("gRPC сервер: %w", err)
		}
	}()
	go func() {
		slog.Info("HTTP сервер запущен", slog.String("port", s.cfg.HTTP.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP сервер: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("получен сигнал остановки")
	case err = <-errCh:
		slog.Error("сервер остановлен с ошибкой", slog.String("error", err.Error()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		slog.Error("ошибка остановки HTTP сервера", slog.String("error", shutdownErr.Error()))
	}
	grpcServer.GracefulStop()

	return err
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("HTTP запрос",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	}
}
