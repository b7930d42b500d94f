// Пакет config — загрузка и валидация конфигурации сервиса newhires
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации сервиса newhires.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string
	// Окружение (development, production) — влияет на referrer gate
	Env string

	// --- HTTP Server Timeouts ---

	// Таймаут чтения HTTP-сервера (по умолчанию 30s)
	HTTPReadTimeout time.Duration
	// Таймаут записи HTTP-сервера (по умолчанию 60s)
	HTTPWriteTimeout time.Duration
	// Таймаут простоя HTTP-сервера (по умолчанию 120s)
	HTTPIdleTimeout time.Duration

	// --- Graceful shutdown ---

	// Таймаут graceful shutdown (по умолчанию 5s)
	ShutdownTimeout time.Duration

	// --- Кадровая БД (PostgreSQL) ---

	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	// --- Photo store (PostgreSQL, внешняя БД) ---

	PhotoDBHost     string
	PhotoDBPort     int
	PhotoDBName     string
	PhotoDBUser     string
	PhotoDBPassword string
	PhotoDBSSLMode  string

	// --- Справочники ---

	// DepartmentDenylist — названия подразделений, исключаемые из справочника
	// (не-операционные единицы)
	DepartmentDenylist []string
	// ReferenceCacheSize — максимальное количество записей кэша справочников
	ReferenceCacheSize int
	// ReferenceCacheTTL — время жизни записи кэша справочников
	ReferenceCacheTTL time.Duration

	// --- Access gate ---

	// PortalHost — хост корпоративного портала; в production пропускаются
	// только запросы с Referer, содержащим этот хост
	PortalHost string

	// --- Dephealth ---

	// DephealthGroup — имя группы в метриках зависимостей
	DephealthGroup string
	// DephealthCheckInterval — интервал проверки зависимостей
	DephealthCheckInterval time.Duration
	// DephealthIsEntry — лейбл isentry=yes для входной вершины графа
	DephealthIsEntry bool
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если обязательные переменные не заданы
// или значения некорректны.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// NH_PORT — порт HTTP-сервера (по умолчанию 8040)
	cfg.Port, err = getEnvInt("NH_PORT", 8040)
	if err != nil {
		return nil, fmt.Errorf("NH_PORT: %w", err)
	}

	// NH_LOG_LEVEL — уровень логирования (по умолчанию info)
	logLevel := getEnvDefault("NH_LOG_LEVEL", "info")
	cfg.LogLevel, err = parseLogLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("NH_LOG_LEVEL: %w", err)
	}

	// NH_LOG_FORMAT — формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("NH_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("NH_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}

	// NH_ENV — окружение (по умолчанию development)
	cfg.Env = getEnvDefault("NH_ENV", "development")
	if cfg.Env != "development" && cfg.Env != "production" {
		return nil, fmt.Errorf("NH_ENV: недопустимое окружение %q, допустимые: development, production", cfg.Env)
	}

	// --- HTTP Server Timeouts ---

	cfg.HTTPReadTimeout, err = getEnvDuration("NH_HTTP_READ_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("NH_HTTP_READ_TIMEOUT: %w", err)
	}

	cfg.HTTPWriteTimeout, err = getEnvDuration("NH_HTTP_WRITE_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, fmt.Errorf("NH_HTTP_WRITE_TIMEOUT: %w", err)
	}

	cfg.HTTPIdleTimeout, err = getEnvDuration("NH_HTTP_IDLE_TIMEOUT", 120*time.Second)
	if err != nil {
		return nil, fmt.Errorf("NH_HTTP_IDLE_TIMEOUT: %w", err)
	}

	// --- Graceful shutdown ---

	cfg.ShutdownTimeout, err = getEnvDuration("NH_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("NH_SHUTDOWN_TIMEOUT: %w", err)
	}

	// --- Кадровая БД ---

	if cfg.DBHost, err = getEnvRequired("NH_DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.DBPort, err = getEnvInt("NH_DB_PORT", 5432); err != nil {
		return nil, fmt.Errorf("NH_DB_PORT: %w", err)
	}
	if cfg.DBName, err = getEnvRequired("NH_DB_NAME"); err != nil {
		return nil, err
	}
	if cfg.DBUser, err = getEnvRequired("NH_DB_USER"); err != nil {
		return nil, err
	}
	if cfg.DBPassword, err = getEnvRequired("NH_DB_PASSWORD"); err != nil {
		return nil, err
	}
	cfg.DBSSLMode = getEnvDefault("NH_DB_SSLMODE", "disable")

	// --- Photo store ---

	if cfg.PhotoDBHost, err = getEnvRequired("NH_PHOTO_DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.PhotoDBPort, err = getEnvInt("NH_PHOTO_DB_PORT", 5432); err != nil {
		return nil, fmt.Errorf("NH_PHOTO_DB_PORT: %w", err)
	}
	if cfg.PhotoDBName, err = getEnvRequired("NH_PHOTO_DB_NAME"); err != nil {
		return nil, err
	}
	if cfg.PhotoDBUser, err = getEnvRequired("NH_PHOTO_DB_USER"); err != nil {
		return nil, err
	}
	if cfg.PhotoDBPassword, err = getEnvRequired("NH_PHOTO_DB_PASSWORD"); err != nil {
		return nil, err
	}
	cfg.PhotoDBSSLMode = getEnvDefault("NH_PHOTO_DB_SSLMODE", "disable")

	// --- Справочники ---

	// NH_DEPARTMENT_DENYLIST — список через запятую (по умолчанию пустой)
	cfg.DepartmentDenylist = getEnvList("NH_DEPARTMENT_DENYLIST")

	if cfg.ReferenceCacheSize, err = getEnvInt("NH_REFERENCE_CACHE_SIZE", 8); err != nil {
		return nil, fmt.Errorf("NH_REFERENCE_CACHE_SIZE: %w", err)
	}
	if cfg.ReferenceCacheTTL, err = getEnvDuration("NH_REFERENCE_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, fmt.Errorf("NH_REFERENCE_CACHE_TTL: %w", err)
	}

	// --- Access gate ---

	// NH_PORTAL_HOST — хост портала (пустой = gate выключен)
	cfg.PortalHost = getEnvDefault("NH_PORTAL_HOST", "")

	// --- Dephealth ---

	cfg.DephealthGroup = getEnvDefault("NH_DEPHEALTH_GROUP", "newhires")
	if cfg.DephealthCheckInterval, err = getEnvDuration("NH_DEPHEALTH_CHECK_INTERVAL", 15*time.Second); err != nil {
		return nil, fmt.Errorf("NH_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}
	if cfg.DephealthIsEntry, err = getEnvBool("NH_DEPHEALTH_ISENTRY", false); err != nil {
		return nil, fmt.Errorf("NH_DEPHEALTH_ISENTRY: %w", err)
	}

	return cfg, nil
}

// DatabaseDSN возвращает DSN кадровой БД для pgxpool.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// PhotoDatabaseDSN возвращает DSN photo store для pgxpool.
func (c *Config) PhotoDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.PhotoDBUser, c.PhotoDBPassword, c.PhotoDBHost, c.PhotoDBPort, c.PhotoDBName, c.PhotoDBSSLMode,
	)
}

// DatabaseURL возвращает URL кадровой БД без учётных данных (для лейблов метрик).
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%d/%s", c.DBHost, c.DBPort, c.DBName)
}

// PhotoDatabaseURL возвращает URL photo store без учётных данных (для лейблов метрик).
func (c *Config) PhotoDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%d/%s", c.PhotoDBHost, c.PhotoDBPort, c.PhotoDBName)
}

// GateEnabled сообщает, включён ли referrer gate:
// только в production и только при заданном хосте портала.
func (c *Config) GateEnabled() bool {
	return c.Env == "production" && c.PortalHost != ""
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvList возвращает список значений, разделённых запятыми.
// Пустая переменная — пустой список. Пробелы вокруг элементов обрезаются.
func getEnvList(key string) []string {
	val := os.Getenv(key)
	if val == "" {
		return nil
	}
	parts := strings.Split(val, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q (допустимые: true, false, 1, 0)", val)
	}
	return b, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
