package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/GGmuzem/polish-calc/pkg/models"
	"github.com/gin-gonic/gin"
)

type contextKey string

const userContextKey contextKey = "user"

// SetUserContext сохраняет пользователя в контексте
func SetUserContext(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext извлекает пользователя из контекста
func GetUserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

// Middleware проверяет Bearer токен и кладет пользователя в контекст запроса
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c.GetHeader("Authorization"))
		if token == "" {
			slog.Warn("токен в заголовке Authorization не найден", slog.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Требуется авторизация"})
			return
		}

		claims, err := s.ValidateToken(token)
		if err != nil {
			slog.Warn("ошибка проверки токена", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Неверный токен"})
			return
		}

		// Проверяем, что пользователь все еще существует
		user, err := s.db.GetUserByLogin(claims.Login)
		if err != nil || user.ID != claims.UserID {
			slog.Warn("пользователь из токена не найден",
				slog.Int("user_id", claims.UserID),
				slog.String("login", claims.Login),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Пользователь не найден"})
			return
		}

		c.Request = c.Request.WithContext(SetUserContext(c.Request.Context(), user))
		c.Next()
	}
}
