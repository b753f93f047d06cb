// Package config loads spellbook settings from defaults, an optional config
// file, and command-line flags.
package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/coolbeans/spellbook/pkg/api"
	"github.com/coolbeans/spellbook/pkg/extract"
)

// Config holds all spellbook configuration.
type Config struct {
	Sanitize SanitizeConfig
	Parse    ParseConfig
	Serve    ServeConfig
	Log      LogConfig
}

// SanitizeConfig holds line filtering settings.
type SanitizeConfig struct {
	Footer          string `mapstructure:"footer"`
	SectionHeader   string `mapstructure:"section_header"`
	PageNumberFloor int    `mapstructure:"page_number_floor"`
}

// ParseConfig holds segmenter settings.
type ParseConfig struct {
	HeaderLookahead int `mapstructure:"header_lookahead"`
}

// ServeConfig holds HTTP server settings.
type ServeConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// LogConfig holds diagnostic settings.
type LogConfig struct {
	TraceSpell string `mapstructure:"trace_spell"`
}

// flagKeys maps command-line flag names to the config keys they override.
var flagKeys = map[string]string{
	"addr":      "serve.addr",
	"lookahead": "parse.header_lookahead",
	"trace":     "log.trace_spell",
}

// Load reads configuration. configFile may be empty. Flags present in flags
// and explicitly set by the user take precedence over the file and defaults.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("sanitize.footer", extract.DefaultFooterPhrase)
	v.SetDefault("sanitize.section_header", extract.DefaultSectionHeader)
	v.SetDefault("sanitize.page_number_floor", extract.DefaultPageNumberFloor)

	v.SetDefault("parse.header_lookahead", extract.DefaultHeaderLookahead)

	v.SetDefault("serve.addr", ":8880")
	v.SetDefault("serve.read_timeout", "15s")
	v.SetDefault("serve.write_timeout", "15s")

	v.SetDefault("log.trace_spell", "")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", configFile, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			flag := flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.Parse.HeaderLookahead < 1 {
		return nil, fmt.Errorf("parse.header_lookahead must be at least 1, got %d", cfg.Parse.HeaderLookahead)
	}
	if cfg.Sanitize.PageNumberFloor < 0 {
		return nil, fmt.Errorf("sanitize.page_number_floor must not be negative, got %d", cfg.Sanitize.PageNumberFloor)
	}

	return cfg, nil
}

// ParserConfig builds the extract configuration. Trace output goes to logger
// when a trace spell is configured.
func (c *Config) ParserConfig(logger *log.Logger) extract.ParserConfig {
	pc := extract.DefaultParserConfig()
	pc.Sanitize = extract.SanitizePolicy{
		FooterPhrase:    c.Sanitize.Footer,
		SectionHeader:   c.Sanitize.SectionHeader,
		PageNumberFloor: c.Sanitize.PageNumberFloor,
	}
	pc.HeaderLookahead = c.Parse.HeaderLookahead
	if c.Log.TraceSpell != "" {
		pc.TraceSpell = c.Log.TraceSpell
		pc.TraceLogger = logger
	}
	return pc
}

// ServerConfig builds the HTTP server configuration.
func (c *Config) ServerConfig() api.ServerConfig {
	return api.ServerConfig{
		Addr:         c.Serve.Addr,
		ReadTimeout:  c.Serve.ReadTimeout,
		WriteTimeout: c.Serve.WriteTimeout,
	}
}
