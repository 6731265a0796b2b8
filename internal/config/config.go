package config

import (
	"errors"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// missingConfigFile reports whether err means the config file simply is
// not there, as opposed to being unreadable or malformed.
func missingConfigFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

type Config struct {
	Server struct {
		Port               int      `mapstructure:"port"`
		CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
		CorsAllowedMethods []string `mapstructure:"cors_allowed_methods"`
		CorsAllowedHeaders []string `mapstructure:"cors_allowed_headers"`
	} `mapstructure:"server"`

	Database struct {
		Host     string `mapstructure:"host"`
		Port     int    `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`

	Invoice struct {
		Prefix string `mapstructure:"prefix"`
	} `mapstructure:"invoice"`

	PDF struct {
		ChromePath string `mapstructure:"chrome_path"`
		OutputDir  string `mapstructure:"output_dir"`
	} `mapstructure:"pdf"`
}

func Load() *Config {
	// Load .env file if exists (ignore error in production)
	godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile("configs/config.yaml")

	// Auto bind environment variables
	v.AutomaticEnv()

	// Set sensible defaults (binary works without config file)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})
	v.SetDefault("server.cors_allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("server.cors_allowed_headers", []string{"Content-Type", "Authorization"})
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "transfer_db")
	v.SetDefault("invoice.prefix", "TY")

	// The config file is optional, but a present-yet-broken file must not
	// be silently papered over with defaults.
	if err := v.ReadInConfig(); err != nil {
		if !missingConfigFile(err) {
			log.Fatalf("[Config] failed to read %s: %v", v.ConfigFileUsed(), err)
		}
		log.Printf("[Config] No config file found, using defaults")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("config unmarshal error: %v", err)
	}

	// Override database settings from DB_* environment variables
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Database.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			cfg.Database.Port = n
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.Database.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.Database.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Database.Name = name
	}

	if prefix := os.Getenv("INVOICE_PREFIX"); prefix != "" {
		cfg.Invoice.Prefix = prefix
	}
	if chrome := os.Getenv("CHROME_PATH"); chrome != "" {
		cfg.PDF.ChromePath = chrome
	}
	if dir := os.Getenv("PDF_OUTPUT_DIR"); dir != "" {
		cfg.PDF.OutputDir = dir
	}

	return &cfg
}
