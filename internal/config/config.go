// config реализует конфигурацию celebrations-service: загрузка из YAML/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Драйверы хранилищ и справочника людей.
const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"

	DirectoryRoster   = "roster"
	DirectoryPostgres = "postgres"

	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./local.yaml из рабочей директории;
//  4. переменные окружения.
type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	Transport TransportConfig `yaml:"transport"`
	Storage   StorageConfig   `yaml:"storage"`
	Directory DirectoryConfig `yaml:"directory"`
	Seed      SeedConfig      `yaml:"seed"`
	Caller    CallerConfig    `yaml:"caller"`
	Limits    LimitsConfig    `yaml:"limits"`
	Timeouts  TimeoutConfig   `yaml:"timeouts"`
}

// TimeoutConfig — сервисные таймауты (общий дедлайн обработки запроса).
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"5s"`
}

// HTTPConfig — HTTP-сервер: MCP (streamable), JSON API, health и metrics.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50085"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// TransportConfig — как публикуются MCP-инструменты.
//   - http: streamable HTTP на MCPPath (плюс JSON API и служебные ручки);
//   - stdio: MCP по stdin/stdout, HTTP поднимается только для health/metrics.
type TransportConfig struct {
	Mode    string `yaml:"mode"     env:"MCP_TRANSPORT" env-default:"http"`
	MCPPath string `yaml:"mcp_path" env:"MCP_PATH"      env-default:"/mcp"`
}

// StorageConfig — выбор хранилища празднований и веток комментариев.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	// URL MongoDB; обязателен для driver=mongo.
	URL string `yaml:"url" env:"DATABASE_URL"`
}

// DirectoryConfig — справочник людей (PersonDirectory).
type DirectoryConfig struct {
	Driver string `yaml:"driver" env:"DIRECTORY_DRIVER" env-default:"roster"`
	// URL PostgreSQL; обязателен для driver=postgres.
	URL string `yaml:"url" env:"DIRECTORY_DATABASE_URL"`
	// CacheURL — опциональный Redis (redis://host:6379/0) перед справочником.
	CacheURL string        `yaml:"cache_url" env:"DIRECTORY_CACHE_URL"`
	CacheTTL time.Duration `yaml:"cache_ttl" env:"DIRECTORY_CACHE_TTL" env-default:"5m"`
}

// SeedConfig — YAML с людьми, празднованиями и комментариями для старта.
// Для driver=roster файл одновременно является источником справочника.
type SeedConfig struct {
	Path string `yaml:"path" env:"SEED_PATH"`
}

// CallerConfig — идентичность вызывающего по умолчанию.
// Используется, когда транспорт не передал X-Roster-Person-Id (stdio, локальная отладка).
type CallerConfig struct {
	DefaultPersonID string `yaml:"default_person_id" env:"DEFAULT_CALLER_ID"`
}

// LimitsConfig — лимиты выдачи, глубины веток и повторов.
type LimitsConfig struct {
	// Верхняя граница pagination.limit в search.
	SearchMax int32 `yaml:"search_max" env:"SEARCH_MAX_LIMIT" env-default:"100"`
	// Размер страницы корневых комментариев в celebration_contributions.
	ThreadPageSize int32 `yaml:"thread_page_size" env:"THREAD_PAGE_SIZE" env-default:"20"`
	// Максимальная глубина ответа (корень = 0). 1 — на ответы отвечать нельзя.
	MaxDepth int32 `yaml:"max_depth" env:"MAX_DEPTH" env-default:"1"`
	// Максимальная длина комментария в рунах.
	CommentMaxLen int32 `yaml:"comment_max_len" env:"COMMENT_MAX_LEN" env-default:"2000"`
	// Сколько кандидатов предлагать в suggestedInvitees.
	Suggestions int32 `yaml:"suggestions" env:"SUGGESTIONS_LIMIT" env-default:"5"`
	// Сколько людей отдавать в find_invitees.
	FindResults int32 `yaml:"find_results" env:"FIND_RESULTS_LIMIT" env-default:"10"`
	// Число повторов invite при конфликте версий, после чего — Conflict.
	ConflictRetries int32 `yaml:"conflict_retries" env:"CONFLICT_RETRIES" env-default:"5"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// После чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	readFile := func(p string) error {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		return nil
	}

	switch {
	case path != "":
		if err := readFile(path); err != nil {
			return nil, err
		}
	case os.Getenv("CONFIG_PATH") != "":
		if err := readFile(os.Getenv("CONFIG_PATH")); err != nil {
			return nil, err
		}
	default:
		if _, err := os.Stat("local.yaml"); err == nil {
			if err := readFile("local.yaml"); err != nil {
				return nil, err
			}
		} else if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
		}
	}

	// ReadConfig уже накладывает ENV, повторный ReadEnv нужен для ветки «только ENV» и безвреден для остальных.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to overlay env: %w", err)
	}

	cfg.normalize()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// normalize приводит строковые перечисления к нижнему регистру.
func (c *Config) normalize() {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	c.Directory.Driver = strings.ToLower(strings.TrimSpace(c.Directory.Driver))
	c.Transport.Mode = strings.ToLower(strings.TrimSpace(c.Transport.Mode))
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	switch c.Storage.Driver {
	case StorageMemory:
	case StorageMongo:
		if c.Storage.URL == "" {
			return fmt.Errorf("storage.url is required for mongo driver")
		}
	default:
		return fmt.Errorf("storage.driver must be one of memory|mongo, got %q", c.Storage.Driver)
	}

	switch c.Directory.Driver {
	case DirectoryRoster:
		if c.Seed.Path == "" {
			return fmt.Errorf("seed.path is required for roster directory")
		}
	case DirectoryPostgres:
		if c.Directory.URL == "" {
			return fmt.Errorf("directory.url is required for postgres driver")
		}
	default:
		return fmt.Errorf("directory.driver must be one of roster|postgres, got %q", c.Directory.Driver)
	}

	if c.Directory.CacheURL != "" && c.Directory.CacheTTL <= 0 {
		return fmt.Errorf("directory.cache_ttl must be > 0")
	}

	switch c.Transport.Mode {
	case TransportHTTP, TransportStdio:
	default:
		return fmt.Errorf("transport.mode must be one of http|stdio, got %q", c.Transport.Mode)
	}

	if !strings.HasPrefix(c.Transport.MCPPath, "/") {
		return fmt.Errorf("transport.mcp_path must start with '/'")
	}

	if c.Limits.SearchMax <= 0 {
		return fmt.Errorf("limits.search_max must be > 0")
	}

	if c.Limits.ThreadPageSize <= 0 {
		return fmt.Errorf("limits.thread_page_size must be > 0")
	}

	if c.Limits.MaxDepth <= 0 {
		return fmt.Errorf("limits.max_depth must be > 0")
	}

	if c.Limits.MaxDepth > 32 {
		return fmt.Errorf("limits.max_depth is too large (<= 32)")
	}

	if c.Limits.CommentMaxLen <= 0 {
		return fmt.Errorf("limits.comment_max_len must be > 0")
	}

	if c.Limits.Suggestions < 0 {
		return fmt.Errorf("limits.suggestions must be >= 0")
	}

	if c.Limits.FindResults <= 0 {
		return fmt.Errorf("limits.find_results must be > 0")
	}

	if c.Limits.ConflictRetries <= 0 {
		return fmt.Errorf("limits.conflict_retries must be > 0")
	}

	return nil
}
