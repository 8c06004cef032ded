package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/restkit/codec"
	"github.com/kbukum/restkit/validation"
)

const (
	defaultTimeout = 30 * time.Second
	defaultName    = "http"
)

// Config configures the HTTP client.
type Config struct {
	// Name identifies the client in logs and health reports.
	Name string `yaml:"name" mapstructure:"name"`

	// BaseURL is the address relative request paths resolve against.
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`

	// Timeout bounds a whole exchange. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`

	// Auth is applied to every request unless the request overrides it.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// TLS configures the transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Headers are sent with every request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Naming is the property naming policy for bodies: "camelCase" or "none".
	Naming string `yaml:"naming" mapstructure:"naming" validate:"omitempty,oneof=camelCase camelcase none"`

	// CaseSensitive disables case-insensitive property matching on decode.
	CaseSensitive bool `yaml:"case_sensitive" mapstructure:"case_sensitive"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = defaultName
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if err := validation.Struct(c); err != nil {
		return fmt.Errorf("httpclient: %w", err)
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CodecOptions returns the codec options described by the config.
func (c *Config) CodecOptions() codec.Options {
	return codec.Options{
		Naming:          codec.ParseNaming(c.Naming),
		CaseInsensitive: !c.CaseSensitive,
	}
}
