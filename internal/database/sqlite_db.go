package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/GGmuzem/polish-calc/pkg/models"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

// SQLiteDB реализация интерфейса Database для SQLite
type SQLiteDB struct {
	db *sql.DB
}

// New создаёт и инициализирует новый экземпляр SQLite БД
func New(dbPath string) (*SQLiteDB, error) {
	// Убедимся, что директория существует
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("не удалось создать директорию для базы данных: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("не удалось проверить соединение с базой данных: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close закрывает соединение с БД
func (db *SQLiteDB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// MigrateDB выполняет миграцию базы данных
func (db *SQLiteDB) MigrateDB() error {
	_, err := db.db.Exec(`
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		login TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("не удалось создать таблицу users: %w", err)
	}

	_, err = db.db.Exec(`
	CREATE TABLE IF NOT EXISTS expressions (
		id TEXT PRIMARY KEY,
		expression TEXT NOT NULL,
		status TEXT NOT NULL,
		result TEXT,
		error TEXT,
		user_id INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		FOREIGN KEY (user_id) REFERENCES users (id)
	)`)
	if err != nil {
		return fmt.Errorf("не удалось создать таблицу expressions: %w", err)
	}

	_, err = db.db.Exec(`CREATE INDEX IF NOT EXISTS idx_expressions_user ON expressions (user_id, created_at)`)
	if err != nil {
		return fmt.Errorf("не удалось создать индекс expressions: %w", err)
	}

	return nil
}

// UserExists проверяет существование пользователя с указанным логином
func (db *SQLiteDB) UserExists(login string) (bool, error) {
	var count int
	err := db.db.QueryRow("SELECT COUNT(*) FROM users WHERE login = ?", login).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("ошибка при проверке существования пользователя: %w", err)
	}
	return count > 0, nil
}

// CreateUser создает нового пользователя
func (db *SQLiteDB) CreateUser(user *models.User) (int, error) {
	exists, err := db.UserExists(user.Login)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	result, err := db.db.Exec(
		"INSERT INTO users (login, password, created_at) VALUES (?, ?, ?)",
		user.Login, string(hashedPassword), time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("ошибка при сохранении пользователя: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка при получении ID пользователя: %w", err)
	}

	return int(id), nil
}

// GetUserByLogin возвращает пользователя по логину
func (db *SQLiteDB) GetUserByLogin(login string) (*models.User, error) {
	user := &models.User{}
	err := db.db.QueryRow("SELECT id, login, password FROM users WHERE login = ?", login).Scan(
		&user.ID, &user.Login, &user.Password,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("пользователь с логином %s: %w", login, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении пользователя: %w", err)
	}
	return user, nil
}

// SaveExpression сохраняет выражение в БД
func (db *SQLiteDB) SaveExpression(expr *models.Expression) error {
	if expr.CreatedAt == 0 {
		expr.CreatedAt = time.Now().Unix()
	}

	var result sql.NullString
	if expr.Result != "" {
		result = sql.NullString{String: expr.Result, Valid: true}
	}
	var errText sql.NullString
	if expr.Error != "" {
		errText = sql.NullString{String: expr.Error, Valid: true}
	}

	_, err := db.db.Exec(`
		INSERT INTO expressions (id, expression, status, result, error, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		expr.ID, expr.Expression, expr.Status, result, errText, expr.UserID, expr.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка при сохранении выражения: %w", err)
	}
	return nil
}

// GetExpression возвращает выражение по ID и user_id
func (db *SQLiteDB) GetExpression(id string, userID int) (*models.Expression, error) {
	row := db.db.QueryRow(`
		SELECT id, expression, status, result, error, user_id, created_at
		FROM expressions
		WHERE id = ? AND user_id = ?`, id, userID)

	expr, err := scanExpression(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("выражение с ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("ошибка при получении выражения: %w", err)
	}
	return expr, nil
}

// GetExpressions возвращает все выражения пользователя
func (db *SQLiteDB) GetExpressions(userID int) ([]*models.Expression, error) {
	rows, err := db.db.Query(`
		SELECT id, expression, status, result, error, user_id, created_at
		FROM expressions
		WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении выражений: %w", err)
	}
	defer rows.Close()

	expressions := []*models.Expression{}
	for rows.Next() {
		expr, err := scanExpression(rows)
		if err != nil {
			return nil, fmt.Errorf("ошибка при сканировании выражения: %w", err)
		}
		expressions = append(expressions, expr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации результатов: %w", err)
	}

	return expressions, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpression(s scanner) (*models.Expression, error) {
	expr := &models.Expression{}
	var result, errText sql.NullString
	if err := s.Scan(&expr.ID, &expr.Expression, &expr.Status, &result, &errText, &expr.UserID, &expr.CreatedAt); err != nil {
		return nil, err
	}
	expr.Result = result.String
	expr.Error = errText.String
	return expr, nil
}
