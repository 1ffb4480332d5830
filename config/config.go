// Package config loads para2github settings.
//
// Credentials come from the environment (optionally seeded from a .env file
// in the working directory). Repository layout comes from an optional
// .para2github.yaml file; every layout field has a default matching the
// modpack's conventions, so most runs need no file at all.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvAPIToken   = "API_TOKEN"
	EnvProjectID  = "PROJECT_ID"
	EnvBaseURL    = "PARATRANZ_BASE_URL"
	EnvConfigFile = "PARA2GITHUB_CONFIG"
)

// ErrMissing is matched by every missing-setting error.
var ErrMissing = errors.New("required setting not set")

// MissingError reports a required environment variable that is absent or blank.
type MissingError struct {
	Name string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("config: environment variable %s is not set", e.Name)
}

func (e *MissingError) Unwrap() error { return ErrMissing }

// Config is the fully resolved run configuration.
type Config struct {
	Token     string
	ProjectID int
	BaseURL   string
	Timeout   time.Duration
	Layout    Layout
}

// Load reads .env (if present), the environment and the layout file from dir.
func Load(dir string) (*Config, error) {
	// .env is optional: CI provides the variables directly.
	_ = godotenv.Load()

	return FromEnv(dir, os.Getenv)
}

// FromEnv builds a Config using getenv for lookups. The layout file is
// resolved relative to dir unless PARA2GITHUB_CONFIG names another path.
func FromEnv(dir string, getenv func(string) string) (*Config, error) {
	token := strings.TrimSpace(getenv(EnvAPIToken))
	if token == "" {
		return nil, &MissingError{Name: EnvAPIToken}
	}
	rawID := strings.TrimSpace(getenv(EnvProjectID))
	if rawID == "" {
		return nil, &MissingError{Name: EnvProjectID}
	}
	projectID, err := strconv.Atoi(rawID)
	if err != nil || projectID <= 0 {
		return nil, fmt.Errorf("config: %s must be a positive integer, got %q", EnvProjectID, rawID)
	}

	layout, err := LoadLayout(dir, getenv(EnvConfigFile))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Token:     token,
		ProjectID: projectID,
		BaseURL:   layout.BaseURL,
		Timeout:   layout.Timeout,
		Layout:    *layout,
	}
	if v := strings.TrimSpace(getenv(EnvBaseURL)); v != "" {
		cfg.BaseURL = v
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return cfg, nil
}
