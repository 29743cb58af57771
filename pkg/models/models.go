package models

// Статусы вычисленного выражения
const (
	StatusCompleted = "completed"
	StatusError     = "error"
)

// Expression запись истории вычислений пользователя
type Expression struct {
	ID         string `json:"id"`
	Expression string `json:"expression"`
	Status     string `json:"status"`
	// Result результат в строковом виде ("3", "17.5", "inf")
	Result    string `json:"result,omitempty"`
	Error     string `json:"error,omitempty"`
	UserID    int    `json:"user_id,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
}

// User представляет пользователя системы
type User struct {
	ID       int    `json:"id"`
	Login    string `json:"login"`
	Password string `json:"-"` // Не сериализуем пароль в JSON
}

// LoginRequest используется для запроса на вход
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// LoginResponse ответ на успешный вход
type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterRequest используется для регистрации
type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// CalculateRequest тело запроса на вычисление
type CalculateRequest struct {
	Expression string `json:"expression"`
}

// CalculateResponse ответ с результатом вычисления в виде строки
type CalculateResponse struct {
	ID     string `json:"id,omitempty"`
	Status string `json:"status,omitempty"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
