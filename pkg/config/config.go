// Package config manages the persisted environment record for the
// Graveboards backend: a flat key=value file created once by the
// provisioner and read by every subsequent gbctl invocation.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (ENV, POSTGRESQL_*, REDIS_*, ...)
//  2. The persisted record file
//  3. Mode defaults (development or production topology)
package config

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/mitchellh/mapstructure"
)

// Environment modes. Development targets a machine-local topology,
// production the composed service hostnames.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Record keys, one per line of the persisted file.
const (
	KeyEnv             = "ENV"
	KeyBaseURL         = "BASE_URL"
	KeyJWTSecretKey    = "JWT_SECRET_KEY"
	KeyJWTAlgorithm    = "JWT_ALGORITHM"
	KeyAdminUserIDs    = "ADMIN_USER_IDS"
	KeyDisableSecurity = "DISABLE_SECURITY"
	KeyOsuClientID     = "OSU_CLIENT_ID"
	KeyOsuClientSecret = "OSU_CLIENT_SECRET"

	KeyPostgresHost     = "POSTGRESQL_HOST"
	KeyPostgresPort     = "POSTGRESQL_PORT"
	KeyPostgresUsername = "POSTGRESQL_USERNAME"
	KeyPostgresPassword = "POSTGRESQL_PASSWORD"
	KeyPostgresDatabase = "POSTGRESQL_DATABASE"

	KeyRedisHost     = "REDIS_HOST"
	KeyRedisPort     = "REDIS_PORT"
	KeyRedisUsername = "REDIS_USERNAME"
	KeyRedisPassword = "REDIS_PASSWORD"
	KeyRedisDB       = "REDIS_DB"
)

// recordKeys is the canonical key order of the persisted file.
var recordKeys = []string{
	KeyEnv,
	KeyBaseURL,
	KeyJWTSecretKey,
	KeyJWTAlgorithm,
	KeyAdminUserIDs,
	KeyDisableSecurity,
	KeyOsuClientID,
	KeyOsuClientSecret,
	KeyPostgresHost,
	KeyPostgresPort,
	KeyPostgresUsername,
	KeyPostgresPassword,
	KeyPostgresDatabase,
	KeyRedisHost,
	KeyRedisPort,
	KeyRedisUsername,
	KeyRedisPassword,
	KeyRedisDB,
}

// Config is the fully resolved environment record. Mode branching happens
// while this value is built; the gate and dispatcher only ever see the
// resolved hosts and ports.
type Config struct {
	Env             string  `mapstructure:"ENV" validate:"required,oneof=development production"`
	BaseURL         string  `mapstructure:"BASE_URL" validate:"required,url"`
	JWTSecretKey    string  `mapstructure:"JWT_SECRET_KEY" validate:"required,len=32,alphanum"`
	JWTAlgorithm    string  `mapstructure:"JWT_ALGORITHM" validate:"required"`
	AdminUserIDs    []int64 `mapstructure:"ADMIN_USER_IDS" validate:"required,min=1"`
	DisableSecurity bool    `mapstructure:"DISABLE_SECURITY"`
	OsuClientID     string  `mapstructure:"OSU_CLIENT_ID" validate:"required"`
	OsuClientSecret string  `mapstructure:"OSU_CLIENT_SECRET" validate:"required"`

	Postgres PostgresConfig `mapstructure:",squash"`
	Redis    RedisConfig    `mapstructure:",squash"`
}

// PostgresConfig holds the database connection settings.
type PostgresConfig struct {
	Host     string `mapstructure:"POSTGRESQL_HOST" validate:"required"`
	Port     int    `mapstructure:"POSTGRESQL_PORT" validate:"required,gte=1,lte=65535"`
	Username string `mapstructure:"POSTGRESQL_USERNAME" validate:"required"`
	Password string `mapstructure:"POSTGRESQL_PASSWORD"`
	Database string `mapstructure:"POSTGRESQL_DATABASE" validate:"required"`
}

// DSN returns the PostgreSQL connection string.
func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.Username, c.Password, c.Database)
}

// URL returns the postgres:// form of the connection string, as consumed by
// golang-migrate.
func (c *PostgresConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Username, c.Password, c.Host, c.Port, c.Database)
}

// RedisConfig holds the cache connection settings.
type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST" validate:"required"`
	Port     int    `mapstructure:"REDIS_PORT" validate:"required,gte=1,lte=65535"`
	Username string `mapstructure:"REDIS_USERNAME"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB" validate:"gte=0"`
}

// Addr returns the host:port pair for the cache.
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PrimaryAdminID returns the first configured administrator identifier.
func (c *Config) PrimaryAdminID() int64 {
	return c.AdminUserIDs[0]
}

// Validate checks structural constraints and that the configured signing
// algorithm is one golang-jwt actually knows.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if jwt.GetSigningMethod(c.JWTAlgorithm) == nil {
		return fmt.Errorf("invalid configuration: unknown signing algorithm %q", c.JWTAlgorithm)
	}
	return nil
}

// Record renders the configuration back into its flat record form, the
// inverse of Load.
func (c *Config) Record() map[string]string {
	return map[string]string{
		KeyEnv:              c.Env,
		KeyBaseURL:          c.BaseURL,
		KeyJWTSecretKey:     c.JWTSecretKey,
		KeyJWTAlgorithm:     c.JWTAlgorithm,
		KeyAdminUserIDs:     formatAdminIDs(c.AdminUserIDs),
		KeyDisableSecurity:  strconv.FormatBool(c.DisableSecurity),
		KeyOsuClientID:      c.OsuClientID,
		KeyOsuClientSecret:  c.OsuClientSecret,
		KeyPostgresHost:     c.Postgres.Host,
		KeyPostgresPort:     strconv.Itoa(c.Postgres.Port),
		KeyPostgresUsername: c.Postgres.Username,
		KeyPostgresPassword: c.Postgres.Password,
		KeyPostgresDatabase: c.Postgres.Database,
		KeyRedisHost:        c.Redis.Host,
		KeyRedisPort:        strconv.Itoa(c.Redis.Port),
		KeyRedisUsername:    c.Redis.Username,
		KeyRedisPassword:    c.Redis.Password,
		KeyRedisDB:          strconv.Itoa(c.Redis.DB),
	}
}

// Environ renders the record as KEY=VALUE pairs in canonical key order, for
// the environment of a launched child process.
func (c *Config) Environ() []string {
	record := c.Record()
	pairs := make([]string, 0, len(recordKeys))
	for _, key := range recordKeys {
		pairs = append(pairs, key+"="+record[key])
	}
	return pairs
}

// Defaults returns the non-interactive record values for the given mode.
// Development points at localhost; production at the composed service names.
func Defaults(env string) map[string]string {
	pgHost, redisHost := "localhost", "localhost"
	if env == EnvProduction {
		pgHost, redisHost = "postgresql", "redis"
	}

	return map[string]string{
		KeyEnv:              env,
		KeyBaseURL:          "http://localhost:3000",
		KeyJWTAlgorithm:     "HS256",
		KeyDisableSecurity:  "false",
		KeyPostgresHost:     pgHost,
		KeyPostgresPort:     "5432",
		KeyPostgresUsername: "graveboards",
		KeyPostgresPassword: "graveboards",
		KeyPostgresDatabase: "graveboards",
		KeyRedisHost:        redisHost,
		KeyRedisPort:        "6379",
		KeyRedisUsername:    "",
		KeyRedisPassword:    "",
		KeyRedisDB:          "0",
	}
}

// decodeHook converts the flat string record into typed fields: admin IDs
// are a comma-separated list of integers.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		func(from reflect.Type, to reflect.Type, data any) (any, error) {
			if from.Kind() != reflect.String || to != reflect.TypeOf([]int64(nil)) {
				return data, nil
			}
			raw, _ := data.(string)
			if strings.TrimSpace(raw) == "" {
				return []int64{}, nil
			}
			var ids []int64
			for _, part := range strings.Split(raw, ",") {
				id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
				if err != nil {
					return nil, fmt.Errorf("invalid user id %q: %w", part, err)
				}
				ids = append(ids, id)
			}
			return ids, nil
		},
		mapstructure.StringToSliceHookFunc(","),
	)
}

// formatAdminIDs renders admin IDs back into the comma-separated record form.
func formatAdminIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
