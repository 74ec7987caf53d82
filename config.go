package netstorage

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config holds the connection settings for one NetStorage account.
// It is immutable once bound to a Client; construct a new Client to
// talk to a different host or key. Multiple clients with distinct
// configs may be used concurrently within the same process.
type Config struct {
	// Host is the storage hostname, without scheme.
	Host string `validate:"required,hostname|hostname_port"`
	// KeyName identifies the upload account key.
	KeyName string `validate:"required"`
	// Key is the shared secret used to sign every request.
	Key string `validate:"required"`
	// SSL selects https instead of http.
	SSL bool
	// Verbose includes raw response bodies in protocol errors.
	Verbose bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the config can produce signed requests.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// BaseURL returns the scheme and host portion of every request URL.
func (c *Config) BaseURL() string {
	scheme := "http"
	if c.SSL {
		scheme = "https"
	}
	return scheme + "://" + c.Host
}

// String renders the config for diagnostics with the secret redacted.
func (c *Config) String() string {
	return fmt.Sprintf("host=%s keyName=%s ssl=%t", c.Host, c.KeyName, c.SSL)
}
