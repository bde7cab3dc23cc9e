package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jask/newsdesk/internal/workflow"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NEWSDESK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:8080" {
		t.Fatalf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.UI.PageLimit != 20 {
		t.Fatalf("PageLimit = %d", cfg.UI.PageLimit)
	}
	if cfg.Role() != workflow.RoleInput {
		t.Fatalf("Role = %q", cfg.Role())
	}
	if !cfg.UI.AutoApplyPickers {
		t.Fatal("AutoApplyPickers should default on")
	}
}

func TestLoadFromFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[api]\nbase_url = \"https://desk.example.net\"\ntoken = \"filetok\"\n\n[user]\nid = 7\nname = \"Dana\"\nrole = \"output\"\n\n[ui]\npage_limit = 50\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("NEWSDESK_CONFIG", path)
	t.Setenv("NEWSDESK_API_TOKEN", "envtok")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://desk.example.net" {
		t.Fatalf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.Token != "envtok" {
		t.Fatalf("Token = %q, env must override file", cfg.API.Token)
	}
	if cfg.User.ID != 7 || cfg.Role() != workflow.RoleOutput {
		t.Fatalf("user = %+v", cfg.User)
	}
	if cfg.UI.PageLimit != 50 {
		t.Fatalf("PageLimit = %d", cfg.UI.PageLimit)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("NEWSDESK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("NEWSDESK_USER_ROLE", "editor-in-chief")
	if _, err := Load(); err == nil {
		t.Fatal("unknown role must be rejected")
	}
	t.Setenv("NEWSDESK_USER_ROLE", "input")
	t.Setenv("NEWSDESK_UI_PAGE_LIMIT", "0")
	if _, err := Load(); err == nil {
		t.Fatal("zero page limit must be rejected")
	}
}
