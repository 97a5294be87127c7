package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/vcscsvcscs/wellness-companion/internal/repository"
)

// Storage drivers
const (
	DriverMemory   = repository.DriverMemory
	DriverFile     = repository.DriverFile
	DriverPostgres = repository.DriverPostgres
	DriverBlob     = repository.DriverBlob
	DriverMongo    = repository.DriverMongo
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Azure     AzureConfig
	Mongo     MongoConfig
	Analysis  AnalysisConfig
	Metrics   MetricsConfig
	Profile   ProfileConfig
	Notify    NotifyConfig
	Scheduler SchedulerConfig
	Logging   LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port                 string
	Environment          string
	ShutdownTimeout      time.Duration
	AllowedOrigins       []string
	ValidateRequests     bool
	SlowRequestThreshold time.Duration
}

// StorageConfig selects the backing store
type StorageConfig struct {
	Driver        string
	Dir           string
	EncryptionKey string
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	URL             string
	Table           string
	MaxConns        int32
	ConnMaxLifetime time.Duration
}

// AzureConfig holds Azure service configuration
type AzureConfig struct {
	Storage AzureStorageConfig
}

// AzureStorageConfig holds Azure Blob Storage configuration
type AzureStorageConfig struct {
	AccountName string
	AccountKey  string
	Container   string
}

// MongoConfig holds MongoDB configuration
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// AnalysisConfig holds report analysis configuration
type AnalysisConfig struct {
	Delay time.Duration
}

// MetricsConfig holds wellness metric retention configuration
type MetricsConfig struct {
	WindowDays int
}

// ProfileConfig holds the static user profile
type ProfileConfig struct {
	Name           string
	PregnancyStage string
}

// NotifyConfig holds outbound email configuration
type NotifyConfig struct {
	SendGridAPIKey string
	FromName       string
	FromEmail      string
}

// SchedulerConfig holds the background job schedule
type SchedulerConfig struct {
	Enabled       bool
	TrimSpec      string
	DigestSpec    string
	RemindersSpec string
	JobTimeout    time.Duration
	Timezone      string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from an optional .env file, environment
// variables and defaults
func Load() (*Config, error) {
	// A missing .env is fine; real environment variables win
	_ = godotenv.Load()

	v := viper.New()

	// Set default values
	setDefaults(v)

	// Read from environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind specific environment variables
	bindEnvVars(v)

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.shutdowntimeout", 30*time.Second)
	v.SetDefault("server.allowedorigins", []string{})
	v.SetDefault("server.validaterequests", true)
	// Above the default analysis delay
	v.SetDefault("server.slowrequestthreshold", 3*time.Second)

	// Storage defaults
	v.SetDefault("storage.driver", DriverFile)
	v.SetDefault("storage.dir", "data")

	// Database defaults
	v.SetDefault("database.table", "wellness_kv")
	v.SetDefault("database.maxconns", 10)
	v.SetDefault("database.connmaxlifetime", 30*time.Minute)

	// Azure Storage defaults
	v.SetDefault("azure.storage.container", "wellness-state")

	// Mongo defaults
	v.SetDefault("mongo.database", "wellness")
	v.SetDefault("mongo.collection", "kv")

	v.SetDefault("analysis.delay", 2*time.Second)
	v.SetDefault("metrics.windowdays", 90)

	v.SetDefault("profile.name", "Asma")
	v.SetDefault("profile.pregnancystage", "Second Trimester")

	v.SetDefault("notify.fromname", "Wellness Companion")

	// Scheduler defaults
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.trimspec", "5 0 * * *")
	v.SetDefault("scheduler.digestspec", "0 9 * * 1")
	v.SetDefault("scheduler.remindersspec", "0 8 * * *")
	v.SetDefault("scheduler.jobtimeout", 2*time.Minute)
	v.SetDefault("scheduler.timezone", "Local")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.environment", "ENV", "ENVIRONMENT")
	v.BindEnv("server.allowedorigins", "CORS_ALLOWED_ORIGINS")
	v.BindEnv("server.validaterequests", "VALIDATE_REQUESTS")
	v.BindEnv("server.slowrequestthreshold", "SLOW_REQUEST_THRESHOLD")

	// Storage
	v.BindEnv("storage.driver", "STORAGE_DRIVER")
	v.BindEnv("storage.dir", "STORAGE_DIR")
	v.BindEnv("storage.encryptionkey", "STORAGE_ENCRYPTION_KEY")

	// Database
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("database.table", "DATABASE_TABLE")

	// Azure Storage
	v.BindEnv("azure.storage.accountname", "AZURE_STORAGE_ACCOUNT_NAME")
	v.BindEnv("azure.storage.accountkey", "AZURE_STORAGE_ACCOUNT_KEY")
	v.BindEnv("azure.storage.container", "AZURE_STORAGE_CONTAINER")

	// Mongo
	v.BindEnv("mongo.uri", "MONGO_URI")
	v.BindEnv("mongo.database", "MONGO_DATABASE")
	v.BindEnv("mongo.collection", "MONGO_COLLECTION")

	v.BindEnv("analysis.delay", "ANALYSIS_DELAY")
	v.BindEnv("metrics.windowdays", "METRICS_WINDOW_DAYS")

	v.BindEnv("profile.name", "PROFILE_NAME")
	v.BindEnv("profile.pregnancystage", "PROFILE_PREGNANCY_STAGE")

	// Notifications
	v.BindEnv("notify.sendgridapikey", "SENDGRID_API_KEY")
	v.BindEnv("notify.fromname", "EMAIL_FROM_NAME")
	v.BindEnv("notify.fromemail", "EMAIL_FROM_ADDRESS")

	// Scheduler
	v.BindEnv("scheduler.enabled", "SCHEDULER_ENABLED")
	v.BindEnv("scheduler.trimspec", "SCHEDULER_TRIM_SPEC")
	v.BindEnv("scheduler.digestspec", "SCHEDULER_DIGEST_SPEC")
	v.BindEnv("scheduler.remindersspec", "SCHEDULER_REMINDERS_SPEC")
	v.BindEnv("scheduler.timezone", "SCHEDULER_TIMEZONE")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("storage.dir is required for the file driver")
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("database.url is required for the postgres driver")
		}
	case DriverBlob:
		if c.Azure.Storage.AccountName == "" || c.Azure.Storage.AccountKey == "" {
			return fmt.Errorf("azure storage credentials are required for the blob driver (account name + key)")
		}
		if c.Azure.Storage.Container == "" {
			return fmt.Errorf("azure.storage.container is required for the blob driver")
		}
	case DriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("mongo.uri is required for the mongo driver")
		}
	default:
		return fmt.Errorf("unknown storage.driver %q", c.Storage.Driver)
	}

	if c.Server.SlowRequestThreshold < 0 {
		return fmt.Errorf("server.slowrequestthreshold cannot be negative")
	}

	if c.Analysis.Delay < 0 {
		return fmt.Errorf("analysis.delay cannot be negative")
	}

	if c.Metrics.WindowDays < 1 {
		return fmt.Errorf("metrics.windowdays must be at least 1")
	}

	if c.Notify.SendGridAPIKey != "" && c.Notify.FromEmail == "" {
		return fmt.Errorf("notify.fromemail is required when a SendGrid API key is set")
	}

	if c.Scheduler.Enabled {
		if _, err := c.Scheduler.Location(); err != nil {
			return err
		}
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}

	return nil
}

// StoreOptions maps the storage sections onto repository.OpenOptions
func (c *Config) StoreOptions() repository.OpenOptions {
	return repository.OpenOptions{
		Driver:          c.Storage.Driver,
		Dir:             c.Storage.Dir,
		DatabaseURL:     c.Database.URL,
		Table:           c.Database.Table,
		MaxConns:        c.Database.MaxConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		BlobAccountName: c.Azure.Storage.AccountName,
		BlobAccountKey:  c.Azure.Storage.AccountKey,
		BlobContainer:   c.Azure.Storage.Container,
		MongoURI:        c.Mongo.URI,
		MongoDatabase:   c.Mongo.Database,
		MongoCollection: c.Mongo.Collection,
		EncryptionKey:   c.Storage.EncryptionKey,
	}
}

// Location resolves the scheduler timezone
func (s SchedulerConfig) Location() (*time.Location, error) {
	if s.Timezone == "" || s.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler.timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}
