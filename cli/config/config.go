package config

import (
	"fmt"
	"net/url"
	"reflect"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/storacha/api3ctl/pkg/services/chain"
	"github.com/storacha/api3ctl/pkg/services/market"
	"github.com/storacha/api3ctl/pkg/services/network"
)

const redacted = "[redacted]"

// Defaults applied to viper before flags, env and file are read.
var Defaults = map[string]any{
	"network":        "ethereum",
	"rpc_retries":    3,
	"rpc_timeout":    30 * time.Second,
	"market_api_url": market.DefaultBaseURL,
}

// Load reads configuration from viper and returns a validated Config struct.
// It reads from configuration file, environment variables, and command-line flags
// in that order of precedence (flags override env vars which override config file).
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper(), true)
}

// LoadOffline is Load for commands that never contact a node; rpc_url may
// be empty.
func LoadOffline() (*Config, error) {
	return LoadFrom(viper.GetViper(), false)
}

func LoadFrom(v *viper.Viper, online bool) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := cfg.Validate
	if !online {
		validate = cfg.ValidateOffline
	}
	if err := validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

type Config struct {
	Network    string        `mapstructure:"network" validate:"required,network"`
	RPCUrl     string        `mapstructure:"rpc_url" validate:"required,url"`
	RPCRetries uint          `mapstructure:"rpc_retries" validate:"gte=1,lte=10"`
	RPCTimeout time.Duration `mapstructure:"rpc_timeout" validate:"gte=0"`

	// Key material is optional and only used by prepare-* commands.
	PrivateKey       string `mapstructure:"private_key"`
	KeystorePath     string `mapstructure:"keystore_path" validate:"omitempty,file"`
	KeystorePassword string `mapstructure:"keystore_password"`

	MarketAPIURL string `mapstructure:"market_api_url" validate:"omitempty,url"`
	MarketAPIKey string `mapstructure:"market_api_key"`

	DatabaseURL string `mapstructure:"database_url"`
}

// NewValidator returns a validator that knows the "network" and "address"
// tags.
func NewValidator() (*validator.Validate, error) {
	v := validator.New()
	err := v.RegisterValidation("network", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			panic(fmt.Errorf("%q is not a string", fl.FieldName()))
		}
		_, err := network.Default().Lookup(fl.Field().String())
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	err = v.RegisterValidation("address", func(fl validator.FieldLevel) bool {
		return common.IsHexAddress(fl.Field().String())
	})
	return v, err
}

// Validate checks that all required configuration fields are set and valid
func (c *Config) Validate() error {
	return c.validate(true)
}

// ValidateOffline is Validate without the RPC endpoint requirement.
func (c *Config) ValidateOffline() error {
	return c.validate(false)
}

func (c *Config) validate(online bool) error {
	v, err := NewValidator()
	if err != nil {
		return err
	}
	if online {
		err = v.Struct(c)
	} else {
		err = v.StructExcept(c, "RPCUrl")
	}
	if err != nil {
		return err
	}
	if c.PrivateKey != "" && c.KeystorePath != "" {
		return fmt.Errorf("private_key and keystore_path are mutually exclusive")
	}
	return nil
}

// Credentials returns the configured key material.
func (c *Config) Credentials() chain.Credentials {
	return chain.Credentials{
		PrivateKey:       c.PrivateKey,
		KeystorePath:     c.KeystorePath,
		KeystorePassword: c.KeystorePassword,
	}
}

// Redacted returns a copy that is safe to log or print.
func (c Config) Redacted() Config {
	for _, secret := range []*string{&c.PrivateKey, &c.KeystorePassword, &c.MarketAPIKey} {
		if *secret != "" {
			*secret = redacted
		}
	}
	c.RPCUrl = redactURL(c.RPCUrl)
	c.DatabaseURL = redactURL(c.DatabaseURL)
	return c
}

// redactURL hides passwords and query strings, which commonly carry
// provider API keys.
func redactURL(raw string) string {
	if raw == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return redacted
	}
	if u.RawQuery != "" {
		u.RawQuery = redacted
	}
	return u.Redacted()
}
