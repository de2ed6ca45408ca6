package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type BaseEnv struct {
	Env      string `envconfig:"ENV" default:"local"`
	HTTPHost string `envconfig:"HTTP_HOST" default:""`
	HTTPPort string `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"debug"`
	APIKey   string `envconfig:"API_KEY" required:"true"`
}

type StorageEnv struct {
	// local, s3 or postgres
	Type    string `envconfig:"STORAGE_TYPE" default:"local"`
	BaseDir string `envconfig:"STORAGE_BASE_DIR" default:".ticketboard/data"`
	// S3 settings (used when Type == "s3")
	S3Bucket string `envconfig:"S3_BUCKET"`
	S3Prefix string `envconfig:"S3_PREFIX" default:"ticketboard/"`
	S3Region string `envconfig:"S3_REGION" default:"ap-northeast-1"`
}

// PostgresEnv is used when StorageEnv.Type == "postgres".
type PostgresEnv struct {
	DSN            string        `envconfig:"POSTGRES_DSN"`
	MaxConns       int32         `envconfig:"POSTGRES_MAX_CONNS" default:"10"`
	MinConns       int32         `envconfig:"POSTGRES_MIN_CONNS" default:"1"`
	QueryTimeout   time.Duration `envconfig:"POSTGRES_QUERY_TIMEOUT" default:"5s"`
	MigrateTimeout time.Duration `envconfig:"POSTGRES_MIGRATE_TIMEOUT" default:"30s"`
}

type Env struct {
	BaseEnv
	StorageEnv
	PostgresEnv
}

const namespace = "TICKETBOARD"

func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	if err := env.validate(); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	return &env, nil
}

func (e *Env) validate() error {
	switch e.StorageEnv.Type {
	case "local":
	case "s3":
		if e.S3Bucket == "" {
			return fmt.Errorf("%s_S3_BUCKET is required for s3 storage", namespace)
		}
	case "postgres":
		if e.DSN == "" {
			return fmt.Errorf("%s_POSTGRES_DSN is required for postgres storage", namespace)
		}
	default:
		return fmt.Errorf("unsupported storage type: %q", e.StorageEnv.Type)
	}
	return nil
}

func (e *BaseEnv) IsLocal() bool {
	return e != nil && e.Env == "local"
}

func (e *BaseEnv) Addr() string {
	return e.HTTPHost + ":" + e.HTTPPort
}

func (e *BaseEnv) SlogLevel() slog.Level {
	if e == nil {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return slog.LevelDebug
	}
	return level
}
