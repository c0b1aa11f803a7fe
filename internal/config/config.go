package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Auth      AuthConfig
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port         string
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	APIPrefix    string `mapstructure:"api_prefix"`
	// TrustedProxies: адреса прокси, которым доверяем при определении IP клиента
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

// DatabaseConfig содержит настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	// LogLevel: уровень логирования gorm ("silent", "error", "warn", "info")
	LogLevel string `mapstructure:"log_level"`
	// MigrationsPath: каталог SQL-миграций
	MigrationsPath string `mapstructure:"migrations_path"`
}

// RedisConfig содержит унифицированные настройки подключения к Redis
// Поддерживает режимы: single, sentinel, cluster
type RedisConfig struct {
	// Enabled: без Redis кеш категорий и ограничение частоты запросов отключаются
	Enabled bool `mapstructure:"enabled"`

	// Mode: Режим работы Redis ("single", "sentinel", "cluster"). По умолчанию "single".
	Mode string `mapstructure:"mode"`

	// Addrs: Список адресов Redis (хост:порт). Используется для всех режимов.
	Addrs []string `mapstructure:"addrs"`

	// Addr: Альтернативный адрес для режима 'single'.
	// Используется, если Mode="single" и Addrs пустой.
	Addr string `mapstructure:"addr"`

	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// MasterName: Имя мастер-сервера Redis (только для режима "sentinel")
	MasterName string `mapstructure:"master_name"`

	MaxRetries      int `mapstructure:"max_retries"`
	MinRetryBackoff int `mapstructure:"min_retry_backoff"` // мс
	MaxRetryBackoff int `mapstructure:"max_retry_backoff"` // мс
}

// CacheConfig содержит настройки кеша категорий
type CacheConfig struct {
	TTL    time.Duration `mapstructure:"ttl"`
	Prefix string        `mapstructure:"prefix"`
	// RefreshSpec: расписание cron для обновления кеша категорий (пусто - не обновлять)
	RefreshSpec string `mapstructure:"refresh_spec"`
}

// CORSConfig содержит список разрешенных источников ("*" - любой)
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// RateLimitConfig содержит лимиты запросов (работают только с Redis)
type RateLimitConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	WriteMax     int           `mapstructure:"write_max"`
	WriteWindow  time.Duration `mapstructure:"write_window"`
	GlobalMax    int           `mapstructure:"global_max"`
	GlobalWindow time.Duration `mapstructure:"global_window"`
}

// AuthConfig содержит настройки токенов администратора
type AuthConfig struct {
	// Enabled: требовать токен администратора для создания и удаления вопросов
	Enabled   bool          `mapstructure:"enabled"`
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// dsnQuoter экранирует значение для key/value строки подключения libpq
var dsnQuoter = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

func quoteDSNValue(v string) string {
	return "'" + dsnQuoter.Replace(v) + "'"
}

// PostgresConnectionString формирует строку подключения к PostgreSQL.
// Значения берутся в кавычки, поэтому пароль может содержать пробелы и кавычки.
func (d *DatabaseConfig) PostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		quoteDSNValue(d.Host), quoteDSNValue(d.Port), quoteDSNValue(d.User),
		quoteDSNValue(d.Password), quoteDSNValue(d.DBName), quoteDSNValue(d.SSLMode),
	)
}

// PostgresURL формирует URL подключения (cmd/migrate)
func (d *DatabaseConfig) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.DBName,
		RawQuery: url.Values{"sslmode": []string{d.SSLMode}}.Encode(),
	}
	return u.String()
}

func setDefaults(vip *viper.Viper) {
	vip.SetDefault("server.port", "5000")
	vip.SetDefault("server.read_timeout", 10)
	vip.SetDefault("server.write_timeout", 30)
	vip.SetDefault("server.api_prefix", "/api")

	vip.SetDefault("database.host", "localhost")
	vip.SetDefault("database.port", "5432")
	vip.SetDefault("database.dbname", "trivia")
	vip.SetDefault("database.sslmode", "disable")
	vip.SetDefault("database.log_level", "warn")
	vip.SetDefault("database.migrations_path", "migrations")

	vip.SetDefault("redis.enabled", false)
	vip.SetDefault("redis.mode", "single")
	vip.SetDefault("redis.addr", "localhost:6379")

	vip.SetDefault("cache.ttl", time.Hour)
	vip.SetDefault("cache.prefix", "trivia")
	vip.SetDefault("cache.refresh_spec", "@every 30m")

	vip.SetDefault("cors.allow_origins", []string{"*"})

	vip.SetDefault("ratelimit.enabled", true)
	vip.SetDefault("ratelimit.write_max", 30)
	vip.SetDefault("ratelimit.write_window", time.Minute)
	vip.SetDefault("ratelimit.global_max", 300)
	vip.SetDefault("ratelimit.global_window", time.Minute)

	vip.SetDefault("auth.enabled", false)
	vip.SetDefault("auth.token_ttl", 24*time.Hour)
}

// LoadDotEnv подгружает переменные окружения из .env файла для локальной разработки.
// Уже заданные переменные не перезаписываются.
func LoadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: не удалось прочитать %s: %v", path, err)
		}
		return
	}
	log.Printf("Переменные окружения загружены из %s", path)
}

// Load загружает конфигурацию из файла и переменных окружения
func Load(configPath string) (*Config, error) {
	vip := viper.New() // Используем новый экземпляр Viper, чтобы избежать глобального состояния

	setDefaults(vip)

	// Привязка для секции Database
	vip.BindEnv("database.host", "DATABASE_HOST")
	vip.BindEnv("database.port", "DATABASE_PORT")
	vip.BindEnv("database.user", "DATABASE_USER")
	vip.BindEnv("database.password", "DATABASE_PASSWORD")
	vip.BindEnv("database.dbname", "DATABASE_DBNAME")
	vip.BindEnv("database.sslmode", "DATABASE_SSLMODE")
	vip.BindEnv("database.log_level", "DATABASE_LOG_LEVEL")

	// Привязка для секции Redis
	vip.BindEnv("redis.enabled", "REDIS_ENABLED")
	vip.BindEnv("redis.mode", "REDIS_MODE")
	vip.BindEnv("redis.addrs", "REDIS_ADDRS")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("redis.master_name", "REDIS_MASTER_NAME")

	vip.BindEnv("cache.ttl", "CACHE_TTL")
	vip.BindEnv("cache.refresh_spec", "CACHE_REFRESH_SPEC")
	vip.BindEnv("cors.allow_origins", "CORS_ALLOW_ORIGINS")
	vip.BindEnv("ratelimit.enabled", "RATELIMIT_ENABLED")

	vip.BindEnv("auth.enabled", "AUTH_ENABLED")
	vip.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET")
	vip.BindEnv("auth.token_ttl", "AUTH_TOKEN_TTL")

	vip.BindEnv("server.port", "SERVER_PORT")
	vip.BindEnv("server.api_prefix", "SERVER_API_PREFIX")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		// Файла может не быть: значения по умолчанию и env vars достаточны
		if err := vip.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok || os.IsNotExist(err) {
				log.Printf("Файл конфигурации '%s' не найден, используются переменные окружения/умолчания.", configPath)
			} else {
				log.Printf("Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Списки из env приходят одной строкой через запятую
	cfg.Redis.Addrs = splitList(cfg.Redis.Addrs)
	cfg.CORS.AllowOrigins = splitList(cfg.CORS.AllowOrigins)

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Database Host: %s", cfg.Database.Host)
		log.Printf("Database Port: %s", cfg.Database.Port)
		log.Printf("Database Name: %s", cfg.Database.DBName)
		log.Printf("Redis Enabled: %t (mode %s)", cfg.Redis.Enabled, cfg.Redis.Mode)
		log.Printf("API Prefix: %s", cfg.Server.APIPrefix)
		log.Printf("CORS Origins: %v", cfg.CORS.AllowOrigins)
		log.Printf("Admin Auth Enabled: %t", cfg.Auth.Enabled)
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("-----------------------------------------")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" || c.Database.User == "" {
		return fmt.Errorf("database configuration (host, dbname, user) is incomplete in config (check DATABASE_HOST, DATABASE_DBNAME, DATABASE_USER env vars)")
	}
	if c.Auth.Enabled && c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth is enabled but jwt secret is empty (check AUTH_JWT_SECRET env var)")
	}
	if c.Redis.Enabled && len(c.Redis.Addrs) == 0 && c.Redis.Addr == "" {
		return fmt.Errorf("redis is enabled but no address is configured (check REDIS_ADDR or REDIS_ADDRS env vars)")
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}
	return nil
}

func splitList(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
	}
	return result
}
