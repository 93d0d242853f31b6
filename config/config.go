package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/radhian/sip-engine/consts"
	"github.com/radhian/sip-engine/infra/idgen"
	"github.com/radhian/sip-engine/infra/payment"
	"github.com/radhian/sip-engine/utils"

	"github.com/joho/godotenv"
)

const (
	DriverMemory   = "memory"
	DriverSqlite   = "sqlite3"
	DriverPostgres = "postgres"
)

type Config struct {
	DbDriver   string
	DbHost     string
	DbPort     string
	DbUser     string
	DbName     string
	DbPassword string
	DbPath     string

	Port     string
	LogLevel string

	CronSpec                string
	SchedulerWorkers        int
	SkipPendingInstallments bool
	IDStrategy              string

	PaymentMode        string
	PaymentSuccessRate float64
	PaymentRateLimit   float64
	NavFluctuation     float64

	SimStartDate time.Time
	SeedFunds    bool
}

// Load reads configuration from the environment after loading an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	driver := strings.ToLower(getEnv("DB_DRIVER", DriverMemory))
	cfg := &Config{
		DbDriver:                driver,
		DbHost:                  getEnv("DB_HOST", "localhost"),
		DbPort:                  getEnv("DB_PORT", "5432"),
		DbUser:                  getEnv("DB_USER", ""),
		DbName:                  getEnv("DB_NAME", "sip_engine"),
		DbPassword:              getEnv("DB_PASSWORD", ""),
		DbPath:                  getEnv("DB_PATH", "./sip_engine.db"),
		Port:                    getEnv("PORT", "8080"),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		CronSpec:                getEnv("CRON_SPEC", consts.DefaultCronSpec),
		SchedulerWorkers:        getEnvAsInt("SCHEDULER_WORKERS", consts.DefaultWorkerNumber),
		SkipPendingInstallments: getEnvAsBool("SKIP_PENDING_INSTALLMENTS", true),
		IDStrategy:              strings.ToLower(getEnv("ID_STRATEGY", defaultIDStrategy(driver))),
		PaymentMode:             strings.ToLower(getEnv("PAYMENT_MODE", payment.ModeImmediate)),
		PaymentSuccessRate:      getEnvAsFloat("PAYMENT_SUCCESS_RATE", 1),
		PaymentRateLimit:        getEnvAsFloat("PAYMENT_RATE_LIMIT", 0),
		NavFluctuation:          getEnvAsFloat("NAV_FLUCTUATION", 0),
		SeedFunds:               getEnvAsBool("SEED_FUNDS", true),
	}

	start, err := utils.ParseDate(getEnv("SIM_START_DATE", "2024-01-01"))
	if err != nil {
		return nil, fmt.Errorf("invalid SIM_START_DATE: %w", err)
	}
	cfg.SimStartDate = start

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DbDriver {
	case DriverMemory, DriverSqlite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DbDriver)
	}
	switch c.PaymentMode {
	case payment.ModeImmediate, payment.ModeManual, payment.ModeAsync:
	default:
		return fmt.Errorf("unsupported PAYMENT_MODE %q", c.PaymentMode)
	}
	switch c.IDStrategy {
	case idgen.StrategySequence, idgen.StrategyUUID:
	default:
		return fmt.Errorf("unsupported ID_STRATEGY %q", c.IDStrategy)
	}
	if c.SchedulerWorkers < 1 {
		return fmt.Errorf("SCHEDULER_WORKERS must be at least 1")
	}
	if c.PaymentSuccessRate < 0 || c.PaymentSuccessRate > 1 {
		return fmt.Errorf("PAYMENT_SUCCESS_RATE must be within [0, 1]")
	}
	if c.NavFluctuation < 0 || c.NavFluctuation >= 1 {
		return fmt.Errorf("NAV_FLUCTUATION must be within [0, 1)")
	}
	return nil
}

// PostgresDSN builds the connection string for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable password=%s",
		c.DbHost, c.DbPort, c.DbUser, c.DbName, c.DbPassword)
}

// defaultIDStrategy picks uuid for SQL stores, which the http and cron
// binaries may share; per-process sequences would hand out the same ids.
func defaultIDStrategy(driver string) string {
	if driver == DriverMemory {
		return idgen.StrategySequence
	}
	return idgen.StrategyUUID
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
