// Package config provides a centralized entrypoint for the application parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/creasty/defaults"
	"go.yaml.in/yaml/v3"
)

// Runtime modes.
const (
	ModeLambda  = "lambda"
	ModeService = "service"
)

// Webhook secret sources.
const (
	SecretSourceEnv = "env"
	SecretSourceSSM = "ssm"
)

var (
	// Global is a struct that contains the global configuration.
	Global global
	// Cakto is a struct that contains the configuration of the Cakto webhook.
	Cakto cakto
	// Email is a struct that contains the configuration of the notification email.
	Email email
	// Service is a struct that contains the configuration for the service mode.
	Service service
	// Lambda is a struct that contains the configuration for the lambda mode.
	Lambda lambda
)

type global struct {
	// Mode is the runtime mode of the application.
	Mode string `yaml:"mode,omitempty" default:"lambda"`
	// Logging is a struct that contains the logging configuration.
	Logging struct {
		// Verbosity is the verbosity level of the application. It represents slog levels.
		Verbosity int `yaml:"verbosity,omitempty"`
		// CallerTrace is a flag that enables the caller trace in the logger.
		CallerTrace bool `yaml:"callerTrace,omitempty"`
	} `yaml:"logging,omitempty"`
}

type cakto struct {
	// WebhookSecret is the shared secret expected in the payload. Empty disables the check.
	WebhookSecret string `yaml:"webhookSecret,omitempty"`
	// SecretSource selects where WebhookSecret comes from: env or ssm.
	SecretSource string `yaml:"secretSource,omitempty" default:"env"`
	// SSMKey is the SSM parameter holding the secret when SecretSource is ssm.
	SSMKey string `yaml:"ssmKey,omitempty"`
}

type email struct {
	// Provider is one of smtp, ses or noop.
	Provider string `yaml:"provider,omitempty" default:"smtp"`
	// From is the sender address, optionally with a display name.
	From string `yaml:"from,omitempty" default:"\"Painel PrecisionX\" <nao-responder@suaproducao.com>"`
	// Timeout bounds the SMTP dial and send.
	Timeout time.Duration `yaml:"timeout,omitempty" default:"10s"`
	SMTP    struct {
		Host      string `yaml:"host,omitempty" default:"smtp.example.com"`
		Port      uint   `yaml:"port,omitempty" default:"587"`
		Username  string `yaml:"username,omitempty"`
		Password  string `yaml:"password,omitempty"`
		TLSPolicy string `yaml:"tlsPolicy,omitempty" default:"opportunistic"`
	} `yaml:"smtp,omitempty"`
	// Templates optionally overrides the embedded email templates with objects stored in S3.
	Templates struct {
		Bucket  string `yaml:"bucket,omitempty"`
		TextKey string `yaml:"textKey,omitempty"`
		HTMLKey string `yaml:"htmlKey,omitempty"`
	} `yaml:"templates,omitempty"`
}

type service struct {
	Path    string        `yaml:"path,omitempty" default:"/"`
	Addr    string        `yaml:"addr,omitempty"`
	Port    string        `yaml:"port,omitempty" default:"8080"`
	Timeout time.Duration `yaml:"timeout,omitempty" default:"5s"`
}

type lambda struct {
	PayloadType string `yaml:"payloadType,omitempty" default:"api-gateway-v2"`
}

// SetDefaults sets the default values for the configuration.
func SetDefaults() error {
	return errors.Join(
		defaults.Set(&Global),
		defaults.Set(&Cakto),
		defaults.Set(&Email),
		defaults.Set(&Service),
		defaults.Set(&Lambda),
	)
}

// LoadFromFile loads the configuration from a file.
func LoadFromFile(path string) error {
	if len(path) == 0 {
		return nil
	}
	fstat, err := os.Stat(path)
	if err != nil {
		return nil //nolint:nilerr // If the file does not exist, we ignore it.
	}
	if fstat.IsDir() {
		return fmt.Errorf("configuration file %s is a directory", path)
	}
	if !fstat.Mode().IsRegular() {
		return fmt.Errorf("configuration file %s is not a regular file", path)
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	type all struct {
		Global  global  `yaml:"global,omitempty"`
		Cakto   cakto   `yaml:"cakto,omitempty"`
		Email   email   `yaml:"email,omitempty"`
		Service service `yaml:"service,omitempty"`
		Lambda  lambda  `yaml:"lambda,omitempty"`
	}
	var a all
	if err = yaml.Unmarshal(content, &a); err != nil {
		return fmt.Errorf("failed to unmarshal configuration file %s: %w", path, err)
	}
	Global = a.Global
	Cakto = a.Cakto
	Email = a.Email
	Service = a.Service
	Lambda = a.Lambda

	return nil
}
