// Package config loads newsdesk settings from the user config file and
// NEWSDESK_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/jask/newsdesk/internal/workflow"
)

// Config holds application configuration.
type Config struct {
	API  APIConfig
	User UserConfig
	UI   UIConfig
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL        string
	Token          string
	TimeoutSeconds int
}

// UserConfig is the acting identity. The backend enforces permissions
// authoritatively; this drives which actions the UI offers.
type UserConfig struct {
	ID   int
	Name string
	Role string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PageLimit  int
	DateFormat string
	// AutoApplyPickers makes date-range and picker changes refetch without an
	// explicit Apply on queue views. The search view always requires Apply.
	AutoApplyPickers bool
}

// Load reads configuration from file and env. Env var overrides use prefix
// NEWSDESK_, e.g. NEWSDESK_API_TOKEN.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("api.base_url", "http://localhost:8080")
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout_seconds", 15)
	v.SetDefault("user.id", 0)
	v.SetDefault("user.name", "")
	v.SetDefault("user.role", string(workflow.RoleInput))
	v.SetDefault("ui.page_limit", 20)
	v.SetDefault("ui.date_format", "02 Jan 2006")
	v.SetDefault("ui.auto_apply_pickers", true)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("NEWSDESK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "newsdesk"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("NEWSDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch workflow.Role(c.User.Role) {
	case workflow.RoleStringer, workflow.RoleInput, workflow.RoleOutput, workflow.RoleAdmin:
	default:
		return fmt.Errorf("config: unknown user.role %q", c.User.Role)
	}
	if c.UI.PageLimit < 1 {
		return fmt.Errorf("config: ui.page_limit must be positive, got %d", c.UI.PageLimit)
	}
	return nil
}

// Role returns the typed desk role.
func (c Config) Role() workflow.Role { return workflow.Role(c.User.Role) }

// Identity returns the acting user for the workflow policy table.
func (c Config) Identity() workflow.User {
	return workflow.User{ID: c.User.ID, Name: c.User.Name, Role: c.Role()}
}
