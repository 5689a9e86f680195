package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Primary data backend selection: memory, sqlite or mysql.
	DataBackend string

	// SQLite
	SQLiteDBPath string

	// MySQL
	MySQLDSN string

	// AMQP transaction change events
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Mirror worker
	MirrorBackend     string
	ReconcileInterval time.Duration

	// AI advisor
	AIModel     string
	CompanyName string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		DataBackend:  getEnv("DATA_BACKEND", "memory"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/finnexus.db"),
		MySQLDSN:     getEnv("MYSQL_DSN", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finnexus"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "transaction_events"),

		MirrorBackend:     getEnv("MIRROR_BACKEND", ""),
		ReconcileInterval: getEnvDuration("RECONCILE_INTERVAL", 5*time.Minute),

		AIModel:     getEnv("AI_MODEL", "gemini-2.0-flash"),
		CompanyName: getEnv("COMPANY_NAME", "FinNexus Enterprise"),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if err := validateBackend("data backend", c.DataBackend, false); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBackend("mirror backend", c.MirrorBackend, true); err != nil {
		errs = append(errs, err.Error())
	}
	if c.MirrorBackend != "" && c.MirrorBackend == c.DataBackend {
		errs = append(errs, "mirror backend must differ from the primary data backend")
	}

	needsSQLite := c.DataBackend == "sqlite" || c.MirrorBackend == "sqlite"
	if needsSQLite {
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errs = append(errs, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if (c.DataBackend == "mysql" || c.MirrorBackend == "mysql") && c.MySQLDSN == "" {
		errs = append(errs, "MYSQL_DSN is required when using the mysql backend")
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.ReconcileInterval < time.Second {
		errs = append(errs, fmt.Sprintf("invalid reconcile interval %v: must be at least 1 second", c.ReconcileInterval))
	} else if c.ReconcileInterval > 24*time.Hour {
		errs = append(errs, fmt.Sprintf("invalid reconcile interval %v: must be at most 24 hours", c.ReconcileInterval))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func validateBackend(label, value string, optional bool) error {
	if value == "" {
		if optional {
			return nil
		}
		return fmt.Errorf("%s cannot be empty", label)
	}
	switch value {
	case "memory", "sqlite", "mysql":
		return nil
	}
	return fmt.Errorf("invalid %s '%s': must be one of [memory sqlite mysql]", label, value)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
