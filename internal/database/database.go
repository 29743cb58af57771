package database

import (
	"errors"
	"log/slog"

	"github.com/GGmuzem/polish-calc/pkg/models"
)

var (
	// ErrNotFound запись не найдена
	ErrNotFound = errors.New("запись не найдена")
	// ErrUserExists логин уже занят
	ErrUserExists = errors.New("пользователь с таким логином уже существует")
)

// Database хранилище пользователей и истории вычислений
type Database interface {
	Close() error
	MigrateDB() error

	UserExists(login string) (bool, error)
	// CreateUser хеширует пароль и возвращает ID нового пользователя
	CreateUser(user *models.User) (int, error)
	GetUserByLogin(login string) (*models.User, error)

	SaveExpression(expr *models.Expression) error
	GetExpression(id string, userID int) (*models.Expression, error)
	// GetExpressions возвращает выражения пользователя, новые первыми
	GetExpressions(userID int) ([]*models.Expression, error)
}

// Open выбирает реализацию: в памяти или SQLite по пути dbPath, и выполняет миграцию
func Open(dbPath string, inMemory bool) (Database, error) {
	var db Database
	if inMemory {
		slog.Info("Используется хранилище в памяти")
		db = NewMemoryDB()
	} else {
		sqliteDB, err := New(dbPath)
		if err != nil {
			return nil, err
		}
		slog.Info("Используется SQLite", slog.String("path", dbPath))
		db = sqliteDB
	}

	if err := db.MigrateDB(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
