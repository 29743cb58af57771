package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/GGmuzem/polish-calc/internal/auth"
	"github.com/GGmuzem/polish-calc/pkg/models"
	"github.com/gin-gonic/gin"
)

// Register обработчик регистрации нового пользователя
func (s *Server) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request data"})
		return
	}

	id, err := s.auth.RegisterUser(&req)
	switch {
	case errors.Is(err, auth.ErrEmptyCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Login and password are required"})
		return
	case errors.Is(err, auth.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	case err != nil:
		slog.Error("ошибка регистрации", slog.String("login", req.Login), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	slog.Info("зарегистрирован пользователь", slog.String("login", req.Login), slog.Int("id", id))
	c.JSON(http.StatusCreated, gin.H{"id": id, "login": req.Login})
}

// Login обработчик входа пользователя
func (s *Server) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid request data"})
		return
	}

	token, err := s.auth.LoginUser(&req)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid login or password"})
		return
	}
	if err != nil {
		slog.Error("ошибка входа", slog.String("login", req.Login), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{Token: token})
}
