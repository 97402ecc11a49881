package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sokofin/corebank/internal/registry"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool
	JWTSecret    string

	// Rate limiting, e.g. "100-M" for 100 requests per minute.
	RateLimit string

	// MigrationsPath is the file:// URL of the schema migrations.
	MigrationsPath string

	// RequestTimeout bounds each database unit of work.
	RequestTimeout time.Duration

	// GLAccounts are the chart-of-accounts codes the workflow services
	// post against. All must resolve at startup.
	GLAccounts registry.Codes
}

// LoadConfig loads configuration from environment variables and a .env
// file if present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("REQUEST_TIMEOUT", "10s")
	viper.SetDefault("GL_CASH_CODE", "1000")
	viper.SetDefault("GL_LOANS_RECEIVABLE_CODE", "1100")
	viper.SetDefault("GL_INTEREST_INCOME_CODE", "4100")
	viper.SetDefault("GL_SAVINGS_CONTROL_CODE", "2100")
	viper.SetDefault("GL_DEPOSIT_CONTROL_CODE", "2200")
	viper.SetDefault("GL_INTEREST_EXPENSE_CODE", "5100")
	viper.SetDefault("GL_FEE_INCOME_CODE", "4200")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	timeoutStr := viper.GetString("REQUEST_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Printf("Warning: Invalid REQUEST_TIMEOUT (%q). Defaulting to 10s.\n", timeoutStr)
		timeout = 10 * time.Second
	}
	cfg.RequestTimeout = timeout

	cfg.GLAccounts = registry.Codes{
		Cash:            viper.GetString("GL_CASH_CODE"),
		LoansReceivable: viper.GetString("GL_LOANS_RECEIVABLE_CODE"),
		InterestIncome:  viper.GetString("GL_INTEREST_INCOME_CODE"),
		SavingsControl:  viper.GetString("GL_SAVINGS_CONTROL_CODE"),
		DepositControl:  viper.GetString("GL_DEPOSIT_CONTROL_CODE"),
		InterestExpense: viper.GetString("GL_INTEREST_EXPENSE_CODE"),
		FeeIncome:       viper.GetString("GL_FEE_INCOME_CODE"),
	}

	return cfg, nil
}
