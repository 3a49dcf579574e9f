package main

import (
	"os"
	"strconv"
	"time"

	"github.com/pavletto/reliefgrid/internal/elevation"
	"github.com/pavletto/reliefgrid/internal/geo"
	"github.com/spf13/cobra"
)

// Config holds settings shared by every command
type Config struct {
	Endpoint  string
	Units     geo.Units
	Timeout   time.Duration
	UserAgent string
	Verbose   bool
}

// LoadConfig loads configuration from environment variables and command flags
// Flags take precedence over environment variables
func LoadConfig(cmd *cobra.Command) (Config, error) {
	cfg := Config{}

	units, err := geo.ParseUnits(getConfigString(cmd, "units", "RELIEF_UNITS", "metric"))
	if err != nil {
		return cfg, err
	}
	cfg.Units = units
	cfg.Endpoint = getConfigString(cmd, "endpoint", "RELIEF_ENDPOINT", elevation.DefaultBaseURL)
	cfg.Timeout = getConfigDuration(cmd, "timeout", "RELIEF_HTTP_TIMEOUT", 30*time.Second)
	cfg.UserAgent = getConfigString(cmd, "user-agent", "RELIEF_USER_AGENT", "reliefgrid/1.0")
	cfg.Verbose = verboseEnabled(cmd)

	return cfg, nil
}

// CreateClient creates an elevation service client from the configuration
func (c *Config) CreateClient() (*elevation.Client, error) {
	return elevation.NewClient(elevation.ClientConfig{
		BaseURL:           c.Endpoint,
		Units:             c.Units,
		HTTPClientTimeout: c.Timeout,
		UserAgent:         c.UserAgent,
	})
}

// verboseEnabled resolves --verbose / RELIEF_VERBOSE. Call it after env.Load.
func verboseEnabled(cmd *cobra.Command) bool {
	return getConfigBool(cmd, "verbose", "RELIEF_VERBOSE", false)
}

// getConfigString gets a string value from flag, then env, then default
func getConfigString(cmd *cobra.Command, flagName, envName, defaultValue string) string {
	// Check if flag was explicitly set
	if cmd.Flags().Changed(flagName) {
		val, _ := cmd.Flags().GetString(flagName)
		return val
	}

	// Check environment variable
	if v := os.Getenv(envName); v != "" {
		return v
	}

	return defaultValue
}

// getConfigInt gets an int value from flag, then env, then default
func getConfigInt(cmd *cobra.Command, flagName, envName string, defaultValue int) int {
	if cmd.Flags().Changed(flagName) {
		val, _ := cmd.Flags().GetInt(flagName)
		return val
	}
	if v := os.Getenv(envName); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

// getConfigFloat gets a float64 value from flag, then env, then default
func getConfigFloat(cmd *cobra.Command, flagName, envName string, defaultValue float64) float64 {
	if cmd.Flags().Changed(flagName) {
		val, _ := cmd.Flags().GetFloat64(flagName)
		return val
	}
	if v := os.Getenv(envName); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getConfigBool gets a bool value from flag, then env, then default.
// Env values are parsed with strconv.ParseBool; anything else is ignored.
func getConfigBool(cmd *cobra.Command, flagName, envName string, defaultValue bool) bool {
	if cmd.Flags().Changed(flagName) {
		val, _ := cmd.Flags().GetBool(flagName)
		return val
	}
	if v := os.Getenv(envName); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

// getConfigDuration gets a duration (e.g. "45s") from flag, then env, then default
func getConfigDuration(cmd *cobra.Command, flagName, envName string, defaultValue time.Duration) time.Duration {
	if cmd.Flags().Changed(flagName) {
		val, _ := cmd.Flags().GetDuration(flagName)
		return val
	}
	if v := os.Getenv(envName); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}
