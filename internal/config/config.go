// Package config loads the settings shared by the vitae commands.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/tsawler/vitae/layout"
)

// App is the application name. It is also the config file name and, upper
// cased, the environment variable prefix.
const App = "vitae"

// Config is the decoded configuration.
type Config struct {
	Debug  bool          `mapstructure:"debug"`
	JSON   bool          `mapstructure:"json"`
	Server *ServerConfig `mapstructure:"server"`
	Parse  *ParseConfig  `mapstructure:"parse"`
}

// ServerConfig configures the HTTP host.
type ServerConfig struct {
	Addr      string `mapstructure:"addr"`
	BodyLimit int    `mapstructure:"body-limit"`
}

// ParseConfig configures the parse pipeline.
type ParseConfig struct {
	Jobs                int     `mapstructure:"jobs"`
	LineTolerance       float64 `mapstructure:"line-tolerance"`
	PrivacyFilter       bool    `mapstructure:"privacy-filter"`
	KeepPageFurniture   bool    `mapstructure:"keep-page-furniture"`
	IgnoreEmbedded      bool    `mapstructure:"ignore-embedded"`
	MinDescriptionWords int     `mapstructure:"min-description-words"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	sub := layout.DefaultSubsectionConfig()
	line := layout.DefaultLineConfig()

	v.SetDefault("debug", false)
	v.SetDefault("json", false)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.body-limit", 10<<20)
	v.SetDefault("parse.jobs", 4)
	v.SetDefault("parse.line-tolerance", line.LineHeightTolerance)
	v.SetDefault("parse.privacy-filter", true)
	v.SetDefault("parse.keep-page-furniture", false)
	v.SetDefault("parse.ignore-embedded", false)
	v.SetDefault("parse.min-description-words", sub.MinDescriptionWords)
}

// Load reads the config file, if any, and the VITAE_ environment into v and
// decodes the result. An empty path searches the working directory for
// vitae.yaml; a missing file there is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(strings.ToUpper(App))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(App)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg *Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Server == nil || c.Parse == nil {
		return errors.New("config: missing server or parse section")
	}
	if c.Server.BodyLimit <= 0 {
		return fmt.Errorf("config: server.body-limit must be positive, got %d", c.Server.BodyLimit)
	}
	if c.Parse.Jobs < 1 {
		return fmt.Errorf("config: parse.jobs must be at least 1, got %d", c.Parse.Jobs)
	}
	if c.Parse.LineTolerance <= 0 {
		return fmt.Errorf("config: parse.line-tolerance must be positive, got %v", c.Parse.LineTolerance)
	}
	return nil
}

// LineConfig returns the line grouping configuration these settings select.
func (p *ParseConfig) LineConfig() layout.LineConfig {
	cfg := layout.DefaultLineConfig()
	cfg.LineHeightTolerance = p.LineTolerance
	return cfg
}

// SubsectionConfig returns the entry splitting configuration these settings select.
func (p *ParseConfig) SubsectionConfig() layout.SubsectionConfig {
	cfg := layout.DefaultSubsectionConfig()
	if p.MinDescriptionWords > 0 {
		cfg.MinDescriptionWords = p.MinDescriptionWords
	}
	return cfg
}
