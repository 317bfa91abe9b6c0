// Package config loads process settings and resource schemas.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"claimsview/internal/database"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the service reads.
const EnvPrefix = "CLAIMSVIEW"

// Source kinds
const (
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

// Settings is the full process configuration.
type Settings struct {
	Port           string
	LogLevel       string
	LogDevelopment bool

	Source         string
	BackendURL     string
	BackendToken   string
	RequestTimeout time.Duration
	MaxBodyBytes   int64

	Database       database.Config
	MigrationsPath string

	SchemaFile    string
	PollInterval  time.Duration
	PollResources []string

	NotificationsResource string
	UnreadStatus          string

	CORSOrigins []string
	ScreenTTL   time.Duration
}

// New returns a viper instance with defaults, environment binding and the
// optional config file wired. CLAIMSVIEW_CONFIG names an explicit file;
// otherwise claimsview.yaml is looked up in the working directory and
// /etc/claimsview.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile := os.Getenv(EnvPrefix + "_CONFIG"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("claimsview")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/claimsview")
	}
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)

	v.SetDefault("source", SourceHTTP)
	v.SetDefault("backend.url", "http://localhost:8081/api")
	v.SetDefault("backend.token", "")
	v.SetDefault("backend.timeout", "15s")
	v.SetDefault("backend.max_body_bytes", 64<<20)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "password")
	v.SetDefault("db.name", "claimsview")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_retries", 30)
	v.SetDefault("db.retry_interval", "2s")
	v.SetDefault("migrations.path", "db/migrations")

	v.SetDefault("schemas.file", "")
	v.SetDefault("poll.interval", "30s")
	v.SetDefault("poll.resources", []string{"notifications"})

	v.SetDefault("notifications.resource", "notifications")
	v.SetDefault("notifications.unread_status", "UNREAD")

	v.SetDefault("cors.origins", []string{"http://localhost:3001"})
	v.SetDefault("screens.ttl", "30m")
}

// Load reads the config file, if any, and resolves settings.
func Load(v *viper.Viper) (Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	s := Settings{
		Port:           v.GetString("port"),
		LogLevel:       v.GetString("log.level"),
		LogDevelopment: v.GetBool("log.development"),

		Source:         strings.ToLower(v.GetString("source")),
		BackendURL:     v.GetString("backend.url"),
		BackendToken:   v.GetString("backend.token"),
		RequestTimeout: v.GetDuration("backend.timeout"),
		MaxBodyBytes:   v.GetInt64("backend.max_body_bytes"),

		Database: database.Config{
			Host:          v.GetString("db.host"),
			Port:          v.GetString("db.port"),
			User:          v.GetString("db.user"),
			Password:      v.GetString("db.password"),
			Name:          v.GetString("db.name"),
			SSLMode:       v.GetString("db.sslmode"),
			MaxRetries:    v.GetInt("db.max_retries"),
			RetryInterval: v.GetDuration("db.retry_interval"),
		},
		MigrationsPath: v.GetString("migrations.path"),

		SchemaFile:    v.GetString("schemas.file"),
		PollInterval:  v.GetDuration("poll.interval"),
		PollResources: splitList(v.GetStringSlice("poll.resources")),

		NotificationsResource: v.GetString("notifications.resource"),
		UnreadStatus:          v.GetString("notifications.unread_status"),

		CORSOrigins: splitList(v.GetStringSlice("cors.origins")),
		ScreenTTL:   v.GetDuration("screens.ttl"),
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects settings the service cannot start with.
func (s Settings) Validate() error {
	switch s.Source {
	case SourceHTTP:
		if s.BackendURL == "" {
			return fmt.Errorf("backend.url is required for the %s source", SourceHTTP)
		}
	case SourcePostgres:
		if s.Database.Host == "" || s.Database.Name == "" {
			return fmt.Errorf("db.host and db.name are required for the %s source", SourcePostgres)
		}
	default:
		return fmt.Errorf("unknown source %q (want %s or %s)", s.Source, SourceHTTP, SourcePostgres)
	}
	if s.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if s.MaxBodyBytes < 0 {
		return fmt.Errorf("backend.max_body_bytes cannot be negative")
	}
	if s.PollInterval < 0 {
		return fmt.Errorf("poll.interval cannot be negative")
	}
	return nil
}

// splitList flattens comma separated entries, which is how list values
// arrive from the environment.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
