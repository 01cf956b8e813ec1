// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configDir = pflag.String("config", ".", "Directory containing config.toml")

	validLogLevels     = []string{"debug", "info", "warn", "error", "fatal"}
	validDatabaseTypes = []string{"mongo", "sqlite", "postgres", "memory"}
)

func init() {
	pflag.Int("port", 8000, "Port to listen on")
}

// ParseFlags parses the command line. Only main should call it so tests
// aren't tripped up by the go test flags
func ParseFlags() {
	pflag.Parse()
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
//
// A missing config.toml is fine, everything can come from the environment
func Setup() error {
	v.BindPFlag("host.port", pflag.Lookup("port"))

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(*configDir)

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "APP_LOG_LEVEL", "app_log_level")

	v.BindEnv("host.port", "PORT", "HOST_PORT", "host_port")
	v.BindEnv("host.cors_origins", "HOST_CORS_ORIGINS", "host_cors_origins")

	v.BindEnv("database.type", "DATABASE_TYPE", "database_type")
	v.BindEnv("database.url", "DATABASE_URL", "database_url")
	v.BindEnv("database.name", "DATABASE_NAME", "database_name")

	v.BindEnv("upload.max_size", "UPLOAD_MAX_SIZE", "upload_max_size")
	v.BindEnv("upload.url_prefix", "UPLOAD_URL_PREFIX", "upload_url_prefix")

	v.BindEnv("generation.sample_video_url", "GENERATION_SAMPLE_VIDEO_URL", "generation_sample_video_url")

	v.BindEnv("cache.enabled", "CACHE_ENABLED", "cache_enabled")
	v.BindEnv("cache.ttl", "CACHE_TTL", "cache_ttl")
	v.BindEnv("cache.redis_addr", "CACHE_REDIS_ADDR", "cache_redis_addr")
	v.BindEnv("cache.redis_password", "CACHE_REDIS_PASSWORD", "cache_redis_password")

	v.BindEnv("security.rate_limit", "SECURITY_RATE_LIMIT", "security_rate_limit")

	v.BindEnv("tracing.enabled", "TRACING_ENABLED", "tracing_enabled")
	v.BindEnv("tracing.endpoint", "TRACING_ENDPOINT", "tracing_endpoint")
	v.BindEnv("tracing.service_name", "TRACING_SERVICE_NAME", "tracing_service_name")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8000)
	v.SetDefault("host.cors_origins", []string{"*"})

	v.SetDefault("database.type", "mongo")
	v.SetDefault("database.name", "videogen")

	v.SetDefault("upload.max_size", 50)
	v.SetDefault("upload.url_prefix", "/uploads")

	v.SetDefault("generation.sample_video_url", "https://sample-videos.com/video321/mp4/720/big_buck_bunny_720p_1mb.mp4")

	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", 5)

	v.SetDefault("security.rate_limit", 0)

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4318")
	v.SetDefault("tracing.service_name", "videogen-api")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}

		zap.L().Debug("No config.toml found, using environment and defaults")
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 || v.GetInt("host.port") > 65535 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDatabaseTypes, v.GetString("database.type")) {
		return errors.New("invalid database type provided")
	}

	if v.GetString("database.type") != "memory" && v.GetString("database.url") == "" {
		zap.L().Warn("No database.url set, endpoints that need the database will fail")
	}

	if v.GetString("database.name") == "" {
		return errors.New("database name can't be empty")
	}

	if v.GetInt("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetInt("cache.ttl") <= 0 {
		return errors.New("cache.ttl must be bigger than 0")
	}

	if v.GetInt("security.rate_limit") < 0 {
		return errors.New("security.rate_limit can't be negative")
	}

	if v.GetBool("tracing.enabled") && v.GetString("tracing.endpoint") == "" {
		return errors.New("tracing is enabled but no endpoint was provided")
	}

	if len(CORSOrigins()) == 0 {
		return errors.New("host.cors_origins can't be empty")
	}

	return nil
}

// MaxUploadSize is upload.max_size converted from megabytes to bytes
func MaxUploadSize() int64 {
	return v.GetInt64("upload.max_size") << 20
}

// CORSOrigins accepts both a TOML list and a comma separated env value
func CORSOrigins() []string {
	var out []string
	for _, entry := range v.GetStringSlice("host.cors_origins") {
		for _, o := range strings.Split(entry, ",") {
			if o = strings.TrimSpace(o); o != "" {
				out = append(out, o)
			}
		}
	}

	return out
}
