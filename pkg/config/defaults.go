// Package config provides centralized default values for the directory server.
package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		if err := godotenv.Load(); err == nil {
			log.Println("Loading configuration overrides from .env file...")
		}
	})
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseBool(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%t (default: %t)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Database Configuration. DBDriver is "sqlite3" for a local file or
	// "libsql" for a remote turso instance; DBDataSource is the path or URL.
	DBDriver           string
	DBDataSource       string
	SlowQueryThreshold time.Duration

	// Auth Configuration. AdminPasswordHash is a bcrypt hash; JWTSecret is
	// minted at startup when left empty.
	AdminPasswordHash  string
	EditorPasswordHash string
	JWTSecret          string

	// Catalog Configuration
	CatalogLocale   string
	ReconcileOnLoad bool

	// Logging Configuration
	LogDirectory string
	LogToFile    bool
	LogJSON      bool
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Database Configuration
	DBDriver = getEnvString("DB_DRIVER", "sqlite3")
	DBDataSource = getEnvString("DB_DATA_SOURCE", "store.db")
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 100*time.Millisecond)

	// Auth Configuration
	AdminPasswordHash = getEnvString("ADMIN_PASSWORD_HASH", "")
	EditorPasswordHash = getEnvString("EDITOR_PASSWORD_HASH", "")
	JWTSecret = getEnvString("JWT_SECRET", "")

	// Catalog Configuration
	CatalogLocale = getEnvString("CATALOG_LOCALE", "ar")
	ReconcileOnLoad = getEnvBool("RECONCILE_ON_LOAD", true)

	// Logging Configuration
	LogDirectory = getEnvString("LOG_DIRECTORY", "logs")
	LogToFile = getEnvBool("LOG_TO_FILE", true)
	LogJSON = getEnvBool("LOG_JSON", true)
}
