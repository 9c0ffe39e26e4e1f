package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

// Storage backends accepted in STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendDynamoDB = "dynamodb"
	BackendRedis    = "redis"
)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT" default:"8080"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`

	Agenda struct {
		Backend     string `envconfig:"STORAGE_BACKEND" default:"memory"`
		Validate    bool   `envconfig:"AGENDA_VALIDATE" default:"true"`
		CallerSlots bool   `envconfig:"AGENDA_CALLER_SLOTS"`
	}
	SQLite struct {
		Path string `envconfig:"SQLITE_PATH" default:"agenda.db"`
	}
	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	DynamoDB struct {
		Region            string `envconfig:"DDB_REGION"`
		Endpoint          string `envconfig:"DDB_ENDPOINT"`
		AccessKey         string `envconfig:"DDB_ACCESS_KEY"`
		SecretKey         string `envconfig:"DDB_SECRET_KEY"`
		SessionToken      string `envconfig:"DDB_SESSION_TOKEN"`
		ContactsTable     string `envconfig:"DDB_CONTACTS_TABLE" default:"contacts"`
		AppointmentsTable string `envconfig:"DDB_APPOINTMENTS_TABLE" default:"appointments"`
		SequencesTable    string `envconfig:"DDB_SEQUENCES_TABLE" default:"sequences"`
	}
	Redis struct {
		Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
		Password string `envconfig:"REDIS_PASSWORD"`
		DB       int    `envconfig:"REDIS_DB"`
		Prefix   string `envconfig:"REDIS_PREFIX" default:"agenda"`
	}
	Auth struct {
		JWTSecret string `envconfig:"AUTH_JWT_SECRET"`
		// TokenTTL is in seconds.
		TokenTTL int `envconfig:"AUTH_TOKEN_TTL" default:"3600"`
	}
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	switch cfg.Agenda.Backend {
	case BackendMemory, BackendSQLite, BackendPostgres, BackendDynamoDB, BackendRedis:
	default:
		return nil, fmt.Errorf("load config error: unknown storage backend %q", cfg.Agenda.Backend)
	}

	return cfg, nil
}
