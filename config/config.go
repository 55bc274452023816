package config

import (
	"strings"
	"time"

	"github.com/Spirent/openperf-sub000/common"
	"github.com/Spirent/openperf-sub000/plot"
	"github.com/hyp3rd/ewrap"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. DIGESTPLOT_OUTPUT_DIR.
	EnvPrefix = "DIGESTPLOT"
	// ConfigFileEnv names the config file when no --config flag is given.
	ConfigFileEnv = EnvPrefix + "_CONFIG"

	KeyConfig    = "config"
	KeyOutputDir = "output_dir"
	KeyFormat    = "format"
	KeyWidth     = "width"
	KeyHeight    = "height"
	KeyTimeout   = "timeout"
	KeyLogLevel  = "log_level"
)

type Config struct {
	OutputDir string        `mapstructure:"output_dir"`
	Format    string        `mapstructure:"format"`
	Width     int           `mapstructure:"width"`
	Height    int           `mapstructure:"height"`
	Timeout   time.Duration `mapstructure:"timeout"`
	LogLevel  string        `mapstructure:"log_level"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyOutputDir, ".")
	v.SetDefault(KeyFormat, string(plot.PNG))
	v.SetDefault(KeyWidth, plot.DefaultWidth)
	v.SetDefault(KeyHeight, plot.DefaultHeight)
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyLogLevel, "info")
}

// Load reads the optional config file, applies environment overrides and
// validates the result. Flags must already be bound to v.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, ewrap.Wrapf(common.ErrorInvalidValue, "read config %s: %v", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, ewrap.Wrapf(common.ErrorInvalidValue, "decode config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := plot.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return ewrap.Wrapf(common.ErrorInvalidValue, "image size %dx%d", c.Width, c.Height)
	}
	if c.Timeout <= 0 {
		return ewrap.Wrapf(common.ErrorInvalidValue, "timeout %v", c.Timeout)
	}
	if c.OutputDir == "" {
		return ewrap.Wrap(common.ErrorInvalidValue, "empty output_dir")
	}
	return nil
}
