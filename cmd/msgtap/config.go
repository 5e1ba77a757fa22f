package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "MSGTAP_"

type appConfig struct {
	APIID       int    `koanf:"api_id"`
	APIHash     string `koanf:"api_hash"`
	SessionFile string `koanf:"session_file"`
	Peer        string `koanf:"peer"`
	MessageID   int    `koanf:"message_id"`
	LogLevel    string `koanf:"log_level"`
}

// loadConfig merges the optional yaml config file with MSGTAP_ environment
// variables, environment winning.
func loadConfig(path string) (appConfig, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return appConfig{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	} else if _, err := os.Stat("msgtap.yaml"); err == nil {
		if err := k.Load(file.Provider("msgtap.yaml"), yaml.Parser()); err != nil {
			return appConfig{}, fmt.Errorf("load config file msgtap.yaml: %w", err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(key string) string {
		return strings.ToLower(strings.TrimPrefix(key, envPrefix))
	}), nil); err != nil {
		return appConfig{}, fmt.Errorf("load environment: %w", err)
	}

	cfg := appConfig{
		SessionFile: ".cache/msgtap/session.json",
		LogLevel:    "info",
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return appConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.APIID == 0 {
		return appConfig{}, fmt.Errorf("validate config: missing api_id")
	}
	if cfg.APIHash == "" {
		return appConfig{}, fmt.Errorf("validate config: missing api_hash")
	}
	if cfg.MessageID <= 0 {
		return appConfig{}, fmt.Errorf("validate config: missing message_id")
	}

	return cfg, nil
}

func parseLogLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", value)
	}
}
