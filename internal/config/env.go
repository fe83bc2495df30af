package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Env carries all runtime configuration. Values come from environment
// variables (optionally loaded from .env by main) with sane defaults.
type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	CORSOrigins []string

	// TaxRateBP is the VAT applied at booking creation, in basis points.
	TaxRateBP int64
	// WalkerShareBP is the provider's cut of a captured payment
	// (platform keeps the rest).
	WalkerShareBP int64
	// WithdrawMinCents is the smallest withdrawal the API accepts.
	WithdrawMinCents int64
	// WithdrawFeeBP is the processing fee taken out of the payout.
	WithdrawFeeBP int64
}

// LoadEnv reads configuration through viper so env vars override defaults.
func LoadEnv() Env {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ADDR", ":8080")
	v.SetDefault("GIN_MODE", "")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_HOST", "127.0.0.1:3306")
	v.SetDefault("DB_NAME", "pawbooking")
	v.SetDefault("JWT_SECRET", "super-secret-key-change-me")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("TAX_RATE_BP", 2000)
	v.SetDefault("WALKER_SHARE_BP", 8000)
	v.SetDefault("WITHDRAW_MIN_CENTS", 1000)
	v.SetDefault("WITHDRAW_FEE_BP", 100)

	origins := []string{}
	for _, o := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Env{
		AppAddr:          v.GetString("APP_ADDR"),
		GinMode:          v.GetString("GIN_MODE"),
		DBUser:           v.GetString("DB_USER"),
		DBPass:           v.GetString("DB_PASS"),
		DBHost:           v.GetString("DB_HOST"),
		DBName:           v.GetString("DB_NAME"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		CORSOrigins:      origins,
		TaxRateBP:        v.GetInt64("TAX_RATE_BP"),
		WalkerShareBP:    v.GetInt64("WALKER_SHARE_BP"),
		WithdrawMinCents: v.GetInt64("WITHDRAW_MIN_CENTS"),
		WithdrawFeeBP:    v.GetInt64("WITHDRAW_FEE_BP"),
	}
}
