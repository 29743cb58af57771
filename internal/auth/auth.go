package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/GGmuzem/polish-calc/internal/database"
	"github.com/GGmuzem/polish-calc/pkg/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("неверный логин или пароль")
	ErrInvalidToken       = errors.New("неверный или истекший токен")
	ErrUserExists         = errors.New("пользователь с таким логином уже существует")
	ErrEmptyCredentials   = errors.New("логин и пароль обязательны")
)

// Claims структура для JWT-токена
type Claims struct {
	UserID int    `json:"user_id"`
	Login  string `json:"login"`
	jwt.RegisteredClaims
}

// Service регистрирует пользователей и выдает токены
type Service struct {
	db        database.Database
	signKey   []byte
	expiresIn time.Duration
}

// NewService создает сервис аутентификации
func NewService(db database.Database, signKey string, expiresIn time.Duration) *Service {
	return &Service{
		db:        db,
		signKey:   []byte(signKey),
		expiresIn: expiresIn,
	}
}

// GenerateToken создает JWT токен для пользователя
func (s *Service) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Login:  user.Login,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.signKey)
}

// ValidateToken проверяет подпись и срок действия токена
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("неожиданный метод подписи: %v", token.Header["alg"])
		}
		return s.signKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidToken
}

// ExtractToken извлекает токен из заголовка Authorization
func ExtractToken(header string) string {
	if len(header) > 7 && strings.ToUpper(header[0:7]) == "BEARER " {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// RegisterUser регистрирует нового пользователя и возвращает его ID
func (s *Service) RegisterUser(req *models.RegisterRequest) (int, error) {
	if req.Login == "" || req.Password == "" {
		return 0, ErrEmptyCredentials
	}

	id, err := s.db.CreateUser(&models.User{
		Login:    req.Login,
		Password: req.Password,
	})
	if errors.Is(err, database.ErrUserExists) {
		return 0, ErrUserExists
	}
	return id, err
}

// LoginUser аутентифицирует пользователя и возвращает JWT токен
func (s *Service) LoginUser(req *models.LoginRequest) (string, error) {
	user, err := s.db.GetUserByLogin(req.Login)
	if err != nil {
		slog.Debug("пользователь не найден", slog.String("login", req.Login), slog.String("error", err.Error()))
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		slog.Debug("неверный пароль", slog.String("login", req.Login))
		return "", ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return "", fmt.Errorf("ошибка генерации токена: %w", err)
	}
	return token, nil
}
