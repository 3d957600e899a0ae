package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		Port     string `env:"PORT" envDefault:"8080"`
		GinMode  string `env:"GIN_MODE" envDefault:"release"`
		LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

		// pretty or json.
		LogFormat string `env:"LOG_FORMAT" envDefault:"pretty"`

		MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`

		Streams Streams

		// Path rewritten playlist lines point back to.
		ProxyPath string `env:"PROXY_PATH" envDefault:"/proxy"`

		UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"0s"`
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	}

	Streams struct {
		Default string `env:"DEFAULT_STREAM" envDefault:"sky"`

		Sky    string `env:"SKY_URL" envDefault:"https://example.com/your-sky-stream.m3u8"`
		Willow string `env:"WILLOW_URL" envDefault:"https://example.com/your-willow-stream.m3u8"`

		// Extra name:url pairs, comma separated.
		Extra map[string]string `env:"STREAMS" envKeyValSeparator:":"`
	}
)

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads the configuration from the given variables instead of the
// process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	if vars == nil {
		vars = map[string]string{}
	}

	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var conf Config
	if err := env.ParseWithOptions(&conf, opts); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := conf.validate(); err != nil {
		return Config{}, err
	}

	return conf, nil
}

func (c *Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}

	switch strings.ToLower(c.LogFormat) {
	case "pretty", "json":
	default:
		return fmt.Errorf("unsupported LOG_FORMAT %q", c.LogFormat)
	}

	if !strings.HasPrefix(c.ProxyPath, "/") {
		return fmt.Errorf("PROXY_PATH must start with '/', got %q", c.ProxyPath)
	}

	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must not be negative")
	}

	if strings.TrimSpace(c.Streams.Default) == "" {
		return fmt.Errorf("DEFAULT_STREAM must not be empty")
	}

	return nil
}

// Mapping returns every configured stream as name -> upstream URL. Names are
// lower-cased, so STREAMS entries win over SKY_URL and WILLOW_URL whatever
// their case.
func (s Streams) Mapping() map[string]string {
	m := map[string]string{
		"sky":    s.Sky,
		"willow": s.Willow,
	}

	for name, url := range s.Extra {
		m[strings.ToLower(strings.TrimSpace(name))] = strings.TrimSpace(url)
	}

	return m
}
