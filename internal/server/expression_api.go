package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/GGmuzem/polish-calc/internal/auth"
	"github.com/GGmuzem/polish-calc/internal/calculate"
	"github.com/GGmuzem/polish-calc/internal/database"
	"github.com/GGmuzem/polish-calc/internal/handlers"
	"github.com/GGmuzem/polish-calc/pkg/models"
	"github.com/gin-gonic/gin"
)

// IDGenerator выдает уникальные ID выражений вида <unix-millis>-<counter>
type IDGenerator struct {
	counter atomic.Uint64
	now     func() time.Time
}

// NewIDGenerator создает генератор ID
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{now: time.Now}
}

// Next возвращает следующий ID
func (g *IDGenerator) Next() string {
	return fmt.Sprintf("%d-%d", g.now().UnixMilli(), g.counter.Add(1))
}

// Calculate вычисляет выражение пользователя и сохраняет запись в историю
func (s *Server) Calculate(c *gin.Context) {
	user, ok := auth.GetUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	expr := &models.Expression{
		ID:         s.ids.Next(),
		Expression: req.Expression,
		UserID:     user.ID,
		CreatedAt:  time.Now().Unix(),
	}

	result, calcErr := s.calc.Evaluate(req.Expression)
	if calcErr != nil {
		expr.Status = models.StatusError
		expr.Error = handlers.ErrorMessage(calcErr)
	} else {
		expr.Status = models.StatusCompleted
		expr.Result = result
	}

	if err := s.db.SaveExpression(expr); err != nil {
		slog.Error("не удалось сохранить выражение", slog.String("id", expr.ID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := models.CalculateResponse{
		ID:     expr.ID,
		Status: expr.Status,
		Result: expr.Result,
		Error:  expr.Error,
	}
	if calcErr != nil {
		slog.Debug("ошибка вычисления",
			slog.String("id", expr.ID),
			slog.String("kind", calculate.KindOf(calcErr).String()),
			slog.String("error", calcErr.Error()),
		)
		c.JSON(handlers.StatusForError(calcErr), response)
		return
	}

	slog.Info("выражение вычислено", slog.String("id", expr.ID), slog.Int("user_id", user.ID))
	c.JSON(http.StatusCreated, response)
}

// ListExpressions возвращает историю вычислений пользователя, новые первыми
func (s *Server) ListExpressions(c *gin.Context) {
	user, ok := auth.GetUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expressions, err := s.db.GetExpressions(user.ID)
	if err != nil {
		slog.Error("не удалось получить выражения", slog.Int("user_id", user.ID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"expressions": expressions})
}

// GetExpression возвращает одно выражение пользователя по ID
func (s *Server) GetExpression(c *gin.Context) {
	user, ok := auth.GetUserFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	expr, err := s.db.GetExpression(c.Param("id"), user.ID)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expression not found"})
		return
	}
	if err != nil {
		slog.Error("не удалось получить выражение", slog.String("id", c.Param("id")), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"expression": expr})
}
