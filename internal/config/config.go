package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/GGmuzem/polish-calc/internal/logging"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Переменные окружения
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"
	ENV_HTTP_PORT        = "HTTP_PORT"
	ENV_GRPC_PORT        = "GRPC_PORT"
	ENV_GRPC_SERVER      = "GRPC_SERVER"
	ENV_DB_PATH          = "DB_PATH"
	ENV_JWT_SIGN_KEY     = "JWT_SIGN_KEY"
	ENV_LOG_LEVEL        = "LOG_LEVEL"
	ENV_MAX_DEPTH        = "MAX_DEPTH"
	ENV_COMPUTING_POWER  = "COMPUTING_POWER"
)

// Config общая конфигурация сервисов
type Config struct {
	Logging logging.Config `yaml:"logging"`

	HTTP struct {
		Port         string   `yaml:"port"`
		DebugMode    bool     `yaml:"debug_mode"`
		AllowOrigins []string `yaml:"allow_origins"`
	} `yaml:"http"`

	GRPC struct {
		Port string `yaml:"port"`
	} `yaml:"grpc"`

	DB struct {
		Path     string `yaml:"path"`
		InMemory bool   `yaml:"in_memory"`
	} `yaml:"db"`

	Auth struct {
		JWTSignKey      string        `yaml:"jwt_sign_key"`
		TokenExpiration time.Duration `yaml:"token_expiration"`
	} `yaml:"auth"`

	Calculator struct {
		// MaxDepth ограничение вложенности скобок, 0 без ограничения
		MaxDepth int `yaml:"max_depth"`
	} `yaml:"calculator"`

	Agent struct {
		Server     string        `yaml:"server"`
		Workers    int           `yaml:"workers"`
		Timeout    time.Duration `yaml:"timeout"`
		MaxRetries int           `yaml:"max_retries"`
	} `yaml:"agent"`
}

// Default возвращает конфигурацию по умолчанию
func Default() Config {
	var cfg Config
	cfg.Logging = logging.Config{LogLevel: "info", MaxSize: 50, MaxAge: 28, MaxBackups: 3}
	cfg.HTTP.Port = "8080"
	cfg.HTTP.AllowOrigins = []string{"*"}
	cfg.GRPC.Port = "50052"
	cfg.DB.Path = "./calculator.db"
	cfg.Auth.JWTSignKey = "super_secret_key_change_in_production"
	cfg.Auth.TokenExpiration = time.Hour
	cfg.Calculator.MaxDepth = 256
	cfg.Agent.Workers = 3
	cfg.Agent.Timeout = 5 * time.Second
	cfg.Agent.MaxRetries = 5
	return cfg
}

// Load читает .env, YAML-файл из CONFIG_FILE_PATH (если задан) и применяет
// переопределения из окружения поверх значений по умолчанию
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("ошибка чтения .env: %w", err)
	}

	cfg := Default()
	if path := os.Getenv(ENV_CONFIG_FILE_PATH); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadFile накладывает значения из YAML-файла
func (cfg *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ошибка чтения конфигурации %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("ошибка разбора конфигурации %s: %w", path, err)
	}
	return nil
}

// ApplyEnv переопределяет значения из переменных окружения
func (cfg *Config) ApplyEnv() {
	cfg.HTTP.Port = getEnvString(ENV_HTTP_PORT, cfg.HTTP.Port)
	cfg.GRPC.Port = getEnvString(ENV_GRPC_PORT, cfg.GRPC.Port)
	cfg.DB.Path = getEnvString(ENV_DB_PATH, cfg.DB.Path)
	cfg.Auth.JWTSignKey = getEnvString(ENV_JWT_SIGN_KEY, cfg.Auth.JWTSignKey)
	cfg.Logging.LogLevel = getEnvString(ENV_LOG_LEVEL, cfg.Logging.LogLevel)
	cfg.Calculator.MaxDepth = getEnvInt(ENV_MAX_DEPTH, cfg.Calculator.MaxDepth)
	cfg.Agent.Workers = getEnvInt(ENV_COMPUTING_POWER, cfg.Agent.Workers)

	// адрес из GRPC_SERVER важнее файла, localhost:<порт> только если адрес не задан нигде
	if server := os.Getenv(ENV_GRPC_SERVER); server != "" {
		cfg.Agent.Server = server
	} else if cfg.Agent.Server == "" {
		cfg.Agent.Server = "localhost:" + cfg.GRPC.Port
	}
}

func getEnvString(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		slog.Warn("некорректное значение переменной окружения, используем значение по умолчанию",
			slog.String("key", key), slog.String("value", raw), slog.Int("default", defaultVal))
		return defaultVal
	}
	return val
}
