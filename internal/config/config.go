package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port         string
	DBDSN        string
	JWTSecret    string
	TokenTTL     time.Duration
	LogFile      string
	AllowOrigins string
}

func Load() Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "5000")
	viper.SetDefault("DB_DSN", "mercadito.db") // sqlite file in project root
	viper.SetDefault("TOKEN_TTL_HOURS", 168)   // 7 days
	viper.SetDefault("LOG_FILE", "")
	viper.SetDefault("CORS_ORIGINS", "*")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("[config] no .env file: %v", err)
	}

	cfg := Config{
		Port:         viper.GetString("PORT"),
		DBDSN:        viper.GetString("DB_DSN"),
		JWTSecret:    viper.GetString("JWT_SECRET"),
		TokenTTL:     time.Duration(viper.GetInt("TOKEN_TTL_HOURS")) * time.Hour,
		LogFile:      viper.GetString("LOG_FILE"),
		AllowOrigins: viper.GetString("CORS_ORIGINS"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s TOKEN_TTL=%s", cfg.Port, cfg.DBDSN, cfg.TokenTTL)
	return cfg
}
