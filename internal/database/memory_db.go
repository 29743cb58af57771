package database

import (
	"fmt"
	"sync"
	"time"

	"github.com/GGmuzem/polish-calc/pkg/models"
	"golang.org/x/crypto/bcrypt"
)

// MemoryDB реализация БД в памяти без использования SQLite
type MemoryDB struct {
	users       map[string]*models.User
	expressions map[string]*models.Expression
	// порядок вставки выражений для сортировки "новые первыми"
	order     []string
	mutex     sync.RWMutex
	userIDSeq int
}

// NewMemoryDB создает новую in-memory БД
func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		users:       make(map[string]*models.User),
		expressions: make(map[string]*models.Expression),
		userIDSeq:   1,
	}
}

// Close просто заглушка для совместимости
func (db *MemoryDB) Close() error {
	return nil
}

// MigrateDB для in-memory не требуется миграция
func (db *MemoryDB) MigrateDB() error {
	return nil
}

// UserExists проверяет существование пользователя с указанным логином
func (db *MemoryDB) UserExists(login string) (bool, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	_, exists := db.users[login]
	return exists, nil
}

// CreateUser создает нового пользователя
func (db *MemoryDB) CreateUser(user *models.User) (int, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, exists := db.users[user.Login]; exists {
		return 0, ErrUserExists
	}

	userID := db.userIDSeq
	db.userIDSeq++

	db.users[user.Login] = &models.User{
		ID:       userID,
		Login:    user.Login,
		Password: string(hashedPassword),
	}

	return userID, nil
}

// GetUserByLogin возвращает пользователя по логину
func (db *MemoryDB) GetUserByLogin(login string) (*models.User, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	user, exists := db.users[login]
	if !exists {
		return nil, fmt.Errorf("пользователь с логином %s: %w", login, ErrNotFound)
	}
	copied := *user
	return &copied, nil
}

// SaveExpression сохраняет выражение в БД
func (db *MemoryDB) SaveExpression(expr *models.Expression) error {
	if expr.CreatedAt == 0 {
		expr.CreatedAt = time.Now().Unix()
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	if _, exists := db.expressions[expr.ID]; exists {
		return fmt.Errorf("выражение с ID %s уже существует", expr.ID)
	}

	copied := *expr
	db.expressions[expr.ID] = &copied
	db.order = append(db.order, expr.ID)
	return nil
}

// GetExpression возвращает выражение по ID и user_id
func (db *MemoryDB) GetExpression(id string, userID int) (*models.Expression, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	expr, exists := db.expressions[id]
	if !exists || expr.UserID != userID {
		return nil, fmt.Errorf("выражение с ID %s: %w", id, ErrNotFound)
	}
	copied := *expr
	return &copied, nil
}

// GetExpressions возвращает все выражения пользователя
func (db *MemoryDB) GetExpressions(userID int) ([]*models.Expression, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	expressions := []*models.Expression{}
	for i := len(db.order) - 1; i >= 0; i-- {
		expr := db.expressions[db.order[i]]
		if expr.UserID == userID {
			copied := *expr
			expressions = append(expressions, &copied)
		}
	}
	return expressions, nil
}
