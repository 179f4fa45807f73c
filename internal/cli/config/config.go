// Package config resolves the runtime configuration for a scan from
// defaults, an optional config file, environment variables and command-line
// flags, in ascending priority.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix namespaces the environment variables read by viper, e.g.
	// SFDX_SCANNER_CONCURRENCY.
	EnvPrefix = "SFDX_SCANNER"
	// DefaultConfigName is the config file base name searched in standard
	// locations when --config is not given.
	DefaultConfigName = "sfdx-scanner"
)

// Config is the fully resolved configuration for one scan.
type Config struct {
	ProjectDir     string   `mapstructure:"project-dir"`
	TargetPatterns []string `mapstructure:"target"`
	Concurrency    int      `mapstructure:"concurrency"`
	Verbose        bool     `mapstructure:"verbose"`
	GitDiffOnly    bool     `mapstructure:"git-diff-only"`
	GitSinceRef    string   `mapstructure:"git-since"`
	ConfigFilePath string   `mapstructure:"-"`
}

// flagKeys are the flag names bound onto viper keys. Flag values take
// priority over env and file settings.
var flagKeys = []string{
	"project-dir", "target", "concurrency", "verbose",
	"git-diff-only", "git-since",
}

// LoadAndValidate merges all configuration sources, validates the result and
// builds the application logger. The returned logger writes text to stderr at
// debug level when verbose is set, info otherwise.
func LoadAndValidate(cfgFile string, flags *pflag.FlagSet) (Config, *slog.Logger, error) {
	var cfg Config
	v := viper.New()

	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", DefaultConfigName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			tempLogger.Debug("No configuration file found, using defaults/env/flags")
		} else {
			used := cfgFile
			if used == "" {
				used = fmt.Sprintf("searched locations for %s.yaml", DefaultConfigName)
			}
			return cfg, tempLogger, fmt.Errorf("read config file %q: %w", used, err)
		}
	} else {
		cfg.ConfigFilePath = v.ConfigFileUsed()
		tempLogger.Debug("Using configuration file", slog.String("path", cfg.ConfigFilePath))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, key := range flagKeys {
			if flag := flags.Lookup(key); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return cfg, tempLogger, fmt.Errorf("bind flag --%s: %w", key, err)
				}
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, tempLogger, fmt.Errorf("unmarshal configuration: %w", err)
	}
	cfg.ConfigFilePath = v.ConfigFileUsed()

	absDir, err := filepath.Abs(cfg.ProjectDir)
	if err != nil {
		return cfg, tempLogger, fmt.Errorf("resolve project dir %q: %w", cfg.ProjectDir, err)
	}
	cfg.ProjectDir = absDir
	if info, err := os.Stat(cfg.ProjectDir); err != nil {
		return cfg, tempLogger, fmt.Errorf("cannot access project dir %q: %w", cfg.ProjectDir, err)
	} else if !info.IsDir() {
		return cfg, tempLogger, fmt.Errorf("project dir %q is not a directory", cfg.ProjectDir)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return cfg, logger, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("project-dir", ".")
	v.SetDefault("target", []string{})
	v.SetDefault("concurrency", 0)
	v.SetDefault("verbose", false)
	v.SetDefault("git-diff-only", false)
	v.SetDefault("git-since", "")
}
