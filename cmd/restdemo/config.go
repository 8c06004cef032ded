package main

import (
	"fmt"

	"github.com/kbukum/restkit/config"
	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/observability"
	"github.com/kbukum/restkit/server"
	"github.com/kbukum/restkit/server/middleware"
)

// Config is the restdemo configuration, read from config.yml and RESTDEMO_*
// environment variables.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Upstream      httpclient.Config    `yaml:"upstream" mapstructure:"upstream"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	// Secure guards the /secure routes independently of server.auth.
	Secure middleware.AuthConfig `yaml:"secure" mapstructure:"secure"`
}

// ApplyDefaults fills every section. The upstream client calls this same
// service unless pointed elsewhere.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()

	if c.Upstream.Name == "" {
		c.Upstream.Name = "upstream"
	}
	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = fmt.Sprintf("http://127.0.0.1:%d", c.Server.Port)
	}
	c.Upstream.ApplyDefaults()

	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = c.Name
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Environment
	}
	c.Observability.ApplyDefaults()

	if c.Secure.Realm == "" {
		c.Secure.Realm = c.Name
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := c.Upstream.Validate(); err != nil {
		return fmt.Errorf("config.upstream: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	return nil
}
