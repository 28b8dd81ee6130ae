package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Storage backends understood by the state repository.
const (
	StorageMemory   = "memory"
	StorageFile     = "file"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	CORS     CORSConfig
	Log      LogConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Roster   RosterConfig
	Demo     DemoConfig
	Export   ExportConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// StorageConfig selects the key-value backend that persists scores and layouts.
type StorageConfig struct {
	Backend   string
	Dir       string
	KeyPrefix string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// RosterConfig drives deterministic generation of the synthetic class rosters.
type RosterConfig struct {
	Seed      int64
	ClassSize int
}

// DemoConfig gates the populate/clear tooling.
type DemoConfig struct {
	Enabled bool
}

type ExportConfig struct {
	Filename string
}

// Load reads configuration from .env, the environment and, when provided, command line flags.
func Load(flags ...*pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	for _, fs := range flags {
		if fs == nil {
			continue
		}
		if err := bindFlags(v, fs); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Storage = StorageConfig{
		Backend:   strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_BACKEND"))),
		Dir:       v.GetString("STORAGE_DIR"),
		KeyPrefix: v.GetString("STORAGE_KEY_PREFIX"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	classSize := v.GetInt("ROSTER_CLASS_SIZE")
	if classSize <= 0 {
		classSize = 30
	}
	cfg.Roster = RosterConfig{
		Seed:      v.GetInt64("ROSTER_SEED"),
		ClassSize: classSize,
	}

	cfg.Demo = DemoConfig{Enabled: v.GetBool("ENABLE_DEMO_TOOLS")}

	filename := strings.TrimSpace(v.GetString("EXPORT_FILENAME"))
	if filename == "" {
		filename = "grades-export.csv"
	}
	cfg.Export = ExportConfig{Filename: filename}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("STORAGE_BACKEND", StorageFile)
	v.SetDefault("STORAGE_DIR", "./data")
	v.SetDefault("STORAGE_KEY_PREFIX", "")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "classroom")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 5)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)

	v.SetDefault("ROSTER_SEED", 2024)
	v.SetDefault("ROSTER_CLASS_SIZE", 30)

	v.SetDefault("ENABLE_DEMO_TOOLS", false)
	v.SetDefault("EXPORT_FILENAME", "grades-export.csv")
}

// bindFlags maps kebab-case flags onto the upper snake-case keys used above,
// e.g. --storage-backend overrides STORAGE_BACKEND.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil || !f.Changed {
			return
		}
		key := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		bindErr = v.BindPFlag(key, f)
	})
	return bindErr
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
