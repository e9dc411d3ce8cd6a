// Package config handles loading and validating the voicebridge configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the root configuration for the voicebridge daemon.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Speech     SpeechConfig     `mapstructure:"speech"`
	Translator TranslatorConfig `mapstructure:"translator"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds the HTTP listener and health check settings.
type ServerConfig struct {
	Port              int  `mapstructure:"port"`
	HealthPort        int  `mapstructure:"health_port"`
	GRPCHealthEnabled bool `mapstructure:"grpc_health_enabled"`
	GRPCHealthPort    int  `mapstructure:"grpc_health_port"`
}

// SpeechConfig holds the Azure Speech service credentials, shared by the
// recognition and synthesis stages.
type SpeechConfig struct {
	Key    string `mapstructure:"key"`
	Region string `mapstructure:"region"`
}

// TranslatorConfig holds the Azure Translator service settings. Region is
// optional; when present it is attached as an additional request header.
type TranslatorConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Key      string `mapstructure:"key"`
	Region   string `mapstructure:"region"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./voicebridge.yaml, ./configs/voicebridge.yaml,
// /etc/voicebridge/voicebridge.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("server.grpc_health_enabled", false)
	v.SetDefault("server.grpc_health_port", 8082)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("voicebridge")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/voicebridge")
	}

	// Environment variables: VOICEBRIDGE_SERVER_PORT, VOICEBRIDGE_SPEECH_KEY, etc.
	v.SetEnvPrefix("VOICEBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional — env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Resolve env var references in sensitive fields (e.g., "${AZURE_SPEECH_KEY}")
	cfg.Speech.Key = resolveEnvRef(cfg.Speech.Key)
	cfg.Translator.Key = resolveEnvRef(cfg.Translator.Key)

	// Credentials left unset fall back to the Azure environment variable
	// aliases, first non-empty wins.
	cfg.Speech.Key = firstNonEmpty(cfg.Speech.Key,
		envFirst("AZURE_SPEECH_KEY", "AZURE_SPEECH_API_KEY"))
	cfg.Speech.Region = firstNonEmpty(cfg.Speech.Region,
		envFirst("AZURE_SPEECH_REGION", "AZURE_SPEECH_LOCATION"))
	cfg.Translator.Endpoint = firstNonEmpty(cfg.Translator.Endpoint,
		envFirst("AZURE_TRANSLATE_ENDPOINT", "AZURE_TRANSLATOR_ENDPOINT", "AZURE_TRANSLATOR_URL"))
	cfg.Translator.Key = firstNonEmpty(cfg.Translator.Key,
		envFirst("AZURE_TRANSLATE_KEY", "AZURE_TRANSLATOR_KEY"))
	cfg.Translator.Region = firstNonEmpty(cfg.Translator.Region,
		envFirst("AZURE_TRANSLATE_REGION", "AZURE_TRANSLATOR_REGION", "AZURE_TRANSLATOR_LOCATION"))

	cfg.Translator.Endpoint = strings.TrimRight(cfg.Translator.Endpoint, "/")
	cfg.Translator.Region = strings.TrimSpace(cfg.Translator.Region)

	return &cfg, nil
}

// envFirst returns the first non-empty value among the named env vars.
func envFirst(names ...string) string {
	for _, name := range names {
		if val := os.Getenv(name); val != "" {
			return val
		}
	}
	return ""
}

// firstNonEmpty returns the first non-empty string.
func firstNonEmpty(vals ...string) string {
	for _, val := range vals {
		if val != "" {
			return val
		}
	}
	return ""
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		envKey := val[2 : len(val)-1]
		if envVal := os.Getenv(envKey); envVal != "" {
			return envVal
		}
	}
	return val
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
