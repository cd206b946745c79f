package internal

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type NovaRelConfig struct {
	AppName string `mapstructure:"app_name"`

	Catalog struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"catalog"`

	Repl struct {
		Prompt      string `mapstructure:"prompt"`
		HistoryFile string `mapstructure:"history_file"`
		HistoryMax  int    `mapstructure:"history_max"`
	} `mapstructure:"repl"`

	Display struct {
		NullMarker string `mapstructure:"null_marker"`
	} `mapstructure:"display"`

	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "novarel")
	v.SetDefault("catalog.path", "")
	v.SetDefault("repl.prompt", "novarel> ")
	v.SetDefault("repl.history_file", "~/.novarel_history")
	v.SetDefault("repl.history_max", 2000)
	v.SetDefault("display.null_marker", "NULL")
	v.SetDefault("log.level", "info")
}

// LoadConfig reads the YAML config at path. An empty path yields the
// defaults. NOVAREL_* environment variables override both, e.g.
// NOVAREL_LOG_LEVEL=debug.
func LoadConfig(path string) (*NovaRelConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("novarel")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg NovaRelConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Repl.HistoryFile = expandHome(cfg.Repl.HistoryFile)

	return &cfg, nil
}

// LogLevel maps the configured level name onto a slog level. Unknown names
// fall back to info.
func (c *NovaRelConfig) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
