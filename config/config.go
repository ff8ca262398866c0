package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backends accepted by storage.backend.
const (
	BackendPostgres = "postgres"
	BackendLevelDB  = "leveldb"
)

// DefaultProgramID is the program identity mixed into every derived address.
const DefaultProgramID = "D1wdCFggRdEXEYHTgVYBxVF8DQDJe3xRbe9QhQiYEnx2"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	LevelDB  LevelDBConfig  `mapstructure:"leveldb"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Program  ProgramConfig  `mapstructure:"program"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Operator OperatorConfig `mapstructure:"operator"`
	Faucet   FaucetConfig   `mapstructure:"faucet"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type StorageConfig struct {
	Backend string `mapstructure:"backend"` // postgres, leveldb
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	Migrate         bool          `mapstructure:"migrate"` // apply schema on startup
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type LevelDBConfig struct {
	Path string `mapstructure:"path"` // empty = in-memory
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// ProgramConfig controls address derivation and the creation deposit.
type ProgramConfig struct {
	ID                  string `mapstructure:"id"` // base58
	LamportsPerByteYear uint64 `mapstructure:"lamports_per_byte_year"`
	ExemptionThreshold  uint64 `mapstructure:"exemption_threshold"`
	StoreSpace          int    `mapstructure:"store_space"`
	UserStoreSpace      int    `mapstructure:"user_store_space"`
}

// AuthConfig controls signed instruction verification.
type AuthConfig struct {
	MaxTimestampDrift time.Duration `mapstructure:"max_timestamp_drift"`
	NonceTTL          time.Duration `mapstructure:"nonce_ttl"`
}

type OperatorConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTExpiry time.Duration `mapstructure:"jwt_expiry"`
	JWTIssuer string        `mapstructure:"jwt_issuer"`
}

type FaucetConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	MaxAmount uint64 `mapstructure:"max_amount"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: DLG_ (Donation LedGer).
// Nested keys use underscore: DLG_DATABASE_HOST, DLG_PROGRAM_ID, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("storage.backend", BackendLevelDB)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "donation_ledger")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.migrate", true)
	v.SetDefault("leveldb.path", "")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("program.id", DefaultProgramID)
	v.SetDefault("program.lamports_per_byte_year", 3480)
	v.SetDefault("program.exemption_threshold", 2)
	v.SetDefault("program.store_space", 1024)
	v.SetDefault("program.user_store_space", 10240)
	v.SetDefault("auth.max_timestamp_drift", "60s")
	v.SetDefault("auth.nonce_ttl", "120s")
	v.SetDefault("operator.jwt_secret", "")
	v.SetDefault("operator.jwt_expiry", "1h")
	v.SetDefault("operator.jwt_issuer", "donation-ledger")
	v.SetDefault("faucet.enabled", false)
	v.SetDefault("faucet.max_amount", 10_000_000_000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: DLG_DATABASE_HOST -> database.host
	v.SetEnvPrefix("DLG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field constraints that defaults cannot express.
func (c *Config) Validate() error {
	var errs []error
	switch c.Storage.Backend {
	case BackendPostgres, BackendLevelDB:
	default:
		errs = append(errs, fmt.Errorf("storage.backend: unsupported value %q", c.Storage.Backend))
	}
	if c.Program.ID == "" {
		errs = append(errs, errors.New("program.id: required"))
	}
	if c.Program.StoreSpace < 0 || c.Program.UserStoreSpace < 0 {
		errs = append(errs, errors.New("program: space must not be negative"))
	}
	if c.Auth.MaxTimestampDrift <= 0 {
		errs = append(errs, errors.New("auth.max_timestamp_drift: must be positive"))
	}
	if c.Auth.NonceTTL < c.Auth.MaxTimestampDrift {
		errs = append(errs, errors.New("auth.nonce_ttl: must cover max_timestamp_drift"))
	}
	if c.Faucet.Enabled && c.Operator.JWTSecret == "" {
		errs = append(errs, errors.New("operator.jwt_secret: required when faucet is enabled"))
	}
	return errors.Join(errs...)
}
