package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"shipment/internal/adapters/out/postgres"
	"shipment/internal/core/application/usecases/commands"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Ledger drivers.
const (
	DriverPebble   = "pebble"
	DriverPostgres = "postgres"
	DriverEthereum = "ethereum"
)

// DevPrivateKey is the first well-known development account of a local node.
// It signs for the local ledgers when PRIVATE_KEY is not set.
const DevPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

type Config struct {
	HTTPPort string
	LogLevel string

	LedgerDriver        string
	LedgerConfirmations uint64
	LedgerTimeout       time.Duration
	LedgerPollInterval  time.Duration
	BlockInterval       time.Duration
	PrivateKey          string

	EthRPCURL       string
	ContractAddress string

	PebbleDir string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost              string
	KafkaOrderChangedTopic string

	OrderCacheTTL time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LEDGER_DRIVER", DriverPebble)
	v.SetDefault("LEDGER_CONFIRMATIONS", 0)
	v.SetDefault("LEDGER_TIMEOUT", commands.DefaultAwaitTimeout)
	v.SetDefault("LEDGER_POLL_INTERVAL", 500*time.Millisecond)
	v.SetDefault("PEBBLE_DIR", "data/ledger")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_ORDER_CHANGED_TOPIC", "order.changed")
	v.SetDefault("ORDER_CACHE_TTL", 10*time.Minute)
}

// NewViper returns a viper instance with defaults that reads the environment.
// Values from envFile are loaded into the environment first; a missing file is
// not an error. Variables already set in the environment win over the file.
func NewViper(envFile string) (*viper.Viper, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v, nil
}

// LoadConfig reads the configuration out of v.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		HTTPPort:               v.GetString("HTTP_PORT"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		LedgerDriver:           strings.ToLower(v.GetString("LEDGER_DRIVER")),
		LedgerConfirmations:    v.GetUint64("LEDGER_CONFIRMATIONS"),
		LedgerTimeout:          v.GetDuration("LEDGER_TIMEOUT"),
		LedgerPollInterval:     v.GetDuration("LEDGER_POLL_INTERVAL"),
		BlockInterval:          v.GetDuration("BLOCK_INTERVAL"),
		PrivateKey:             v.GetString("PRIVATE_KEY"),
		EthRPCURL:              v.GetString("ETH_RPC_URL"),
		ContractAddress:        v.GetString("CONTRACT_ADDRESS"),
		PebbleDir:              v.GetString("PEBBLE_DIR"),
		DBHost:                 v.GetString("DB_HOST"),
		DBPort:                 v.GetString("DB_PORT"),
		DBUser:                 v.GetString("DB_USER"),
		DBPassword:             v.GetString("DB_PASSWORD"),
		DBName:                 v.GetString("DB_NAME"),
		DBSslMode:              v.GetString("DB_SSLMODE"),
		KafkaHost:              v.GetString("KAFKA_HOST"),
		KafkaOrderChangedTopic: v.GetString("KAFKA_ORDER_CHANGED_TOPIC"),
		OrderCacheTTL:          v.GetDuration("ORDER_CACHE_TTL"),
	}

	if cfg.PrivateKey == "" && cfg.LedgerDriver != DriverEthereum {
		cfg.PrivateKey = DevPrivateKey
	}

	return cfg, cfg.Validate()
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var problems []error

	switch c.LedgerDriver {
	case DriverPebble:
		problems = append(problems, c.validateLocalBlocks()...)
	case DriverPostgres:
		problems = append(problems, c.validateLocalBlocks()...)
		if c.DBName == "" {
			problems = append(problems, errors.New("DB_NAME is required for the postgres ledger"))
		}
		if c.DBUser == "" {
			problems = append(problems, errors.New("DB_USER is required for the postgres ledger"))
		}
	case DriverEthereum:
		if c.EthRPCURL == "" {
			problems = append(problems, errors.New("ETH_RPC_URL is required for the ethereum ledger"))
		}
		if c.ContractAddress == "" {
			problems = append(problems, errors.New("CONTRACT_ADDRESS is required for the ethereum ledger"))
		}
		if c.PrivateKey == "" {
			problems = append(problems, errors.New("PRIVATE_KEY is required for the ethereum ledger"))
		}
		if c.BlockInterval > 0 {
			problems = append(problems, errors.New("BLOCK_INTERVAL only applies to local ledgers"))
		}
	default:
		problems = append(problems, fmt.Errorf("LEDGER_DRIVER %q is not one of %s, %s, %s",
			c.LedgerDriver, DriverPebble, DriverPostgres, DriverEthereum))
	}

	if c.LedgerTimeout <= 0 {
		problems = append(problems, errors.New("LEDGER_TIMEOUT must be positive"))
	}
	if c.BlockInterval != 0 && c.BlockInterval < time.Second {
		problems = append(problems, errors.New("BLOCK_INTERVAL must be at least 1s"))
	}
	if c.HTTPPort == "" {
		problems = append(problems, errors.New("HTTP_PORT is required"))
	}

	return errors.Join(problems...)
}

// validateLocalBlocks checks that awaited confirmations can accrue. A local ledger
// seals one block per accepted call and nothing more unless the block producer runs.
func (c Config) validateLocalBlocks() []error {
	if c.LedgerConfirmations == 0 {
		return nil
	}
	if c.BlockInterval == 0 {
		return []error{errors.New("LEDGER_CONFIRMATIONS above 0 requires BLOCK_INTERVAL on a local ledger")}
	}
	if needed := time.Duration(c.LedgerConfirmations) * c.BlockInterval; c.LedgerTimeout > 0 && needed >= c.LedgerTimeout {
		return []error{fmt.Errorf("LEDGER_TIMEOUT %s does not cover %d confirmations at BLOCK_INTERVAL %s",
			c.LedgerTimeout, c.LedgerConfirmations, c.BlockInterval)}
	}
	return nil
}

// Postgres returns the database settings.
func (c Config) Postgres() postgres.Config {
	return postgres.Config{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		DBName:   c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

// KafkaBrokers splits KAFKA_HOST on commas.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// SlogLevel parses LOG_LEVEL, falling back to info.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
