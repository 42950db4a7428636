// Package config loads the service settings from the environment, an optional
// .env file and command-line flags.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const defaultAppPort = ":5000"

// Config holds runtime settings of the catalog service.
type Config struct {
	AppPort          string
	StoreDriver      string
	MongoURI         string
	MongoDatabase    string
	MongoCollection  string
	MongoTimeout     time.Duration
	DatabaseDSN      string
	RabbitMQURL      string
	LogLevel         string
	LogFormat        string
	CORSAllowOrigins string
	SeedDemoData     bool
	ShutdownTimeout  time.Duration
}

// SetDefaults registers the development defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", defaultAppPort)
	v.SetDefault("STORE_DRIVER", DriverMemory)
	v.SetDefault("MONGO_HOST", "localhost:27017")
	v.SetDefault("MONGO_DATABASE", "LegoLelo")
	v.SetDefault("MONGO_COLLECTION", "toys")
	v.SetDefault("MONGO_TIMEOUT", 10*time.Second)
	v.SetDefault("DATABASE_DSN", "file:legolelo.db?_journal_mode=WAL&_busy_timeout=5000")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("SEED_DEMO_DATA", false)
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
}

// BindFlags binds command-line flags to their configuration keys. Flag names are
// the lower-case, dash-separated form of the key (STORE_DRIVER -> --store-driver).
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))
		if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = fmt.Errorf("failed to bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; variables already set win.
func LoadDotEnv(files ...string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// Load builds a Config from v. Environment variables are read through
// v.AutomaticEnv.
func Load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:          v.GetString("APP_PORT"),
		StoreDriver:      strings.ToLower(v.GetString("STORE_DRIVER")),
		MongoURI:         v.GetString("MONGO_URI"),
		MongoDatabase:    v.GetString("MONGO_DATABASE"),
		MongoCollection:  v.GetString("MONGO_COLLECTION"),
		MongoTimeout:     v.GetDuration("MONGO_TIMEOUT"),
		DatabaseDSN:      v.GetString("DATABASE_DSN"),
		RabbitMQURL:      v.GetString("RABBITMQ_URL"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		CORSAllowOrigins: v.GetString("CORS_ALLOW_ORIGINS"),
		SeedDemoData:     v.GetBool("SEED_DEMO_DATA"),
		ShutdownTimeout:  v.GetDuration("SHUTDOWN_TIMEOUT"),
	}

	// Hosting platforms usually hand out a bare PORT.
	_, explicit := os.LookupEnv("APP_PORT")
	if port := v.GetString("PORT"); port != "" && !explicit && cfg.AppPort == defaultAppPort {
		cfg.AppPort = ":" + strings.TrimPrefix(port, ":")
	}

	if cfg.MongoURI == "" {
		cfg.MongoURI = mongoURI(v.GetString("DB_USER"), v.GetString("DB_PASS"), v.GetString("MONGO_HOST"))
	}

	switch cfg.StoreDriver {
	case DriverMemory, DriverMongo, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	return cfg, nil
}

// mongoURI builds a connection string from separate credentials. Hosts without
// a port are treated as SRV records, as hosted clusters are.
func mongoURI(user, pass, host string) string {
	scheme := "mongodb"
	if !strings.Contains(host, ":") {
		scheme = "mongodb+srv"
	}
	u := url.URL{Scheme: scheme, Host: host, Path: "/"}
	if user != "" {
		u.User = url.UserPassword(user, pass)
		u.RawQuery = "retryWrites=true&w=majority"
	}
	return u.String()
}
