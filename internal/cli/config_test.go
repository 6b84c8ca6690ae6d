package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/workflowgraph/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[layout]
window_width = 1600
straight_arrows = true
leaf_policy = "continue"

[theme]
node = "#e8eef7"
badge_height = 24

[redis]
addr = "localhost:6379"
db = 2

[server]
addr = ":9090"
`)
	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}

	if cfg.Layout.WindowWidth != 1600 || !cfg.Layout.StraightArrows || cfg.Layout.LeafPolicy != "continue" {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	if cfg.Layout.WindowHeight != 0 {
		t.Errorf("unset fields must stay zero, WindowHeight = %v", cfg.Layout.WindowHeight)
	}
	if cfg.Theme.Node != "#e8eef7" || cfg.Theme.BadgeHeight != 24 {
		t.Errorf("theme = %+v", cfg.Theme)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 2 {
		t.Errorf("redis = %+v", cfg.Redis)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("server = %+v", cfg.Server)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", "[layout\nwindow_width = 1", errors.ErrCodeInvalidConfig},
		{"unknown key", "[layout]\nwindow_widht = 1600", errors.ErrCodeInvalidConfig},
		{"unknown table", "[colours]\nnode = \"red\"", errors.ErrCodeInvalidConfig},
		{"negative size", "[layout]\nrect_height = -5", errors.ErrCodeInvalidConfig},
		{"bad leaf policy", "[layout]\nleaf_policy = \"sideways\"", errors.ErrCodeInvalidConfig},
		{"negative radius", "[theme]\nbadge_radius = -1", errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.content))
			if !errors.Is(err, tt.code) {
				t.Errorf("loadConfig() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing file: err = %v, want FILE_NOT_FOUND", err)
	}

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("absent default config should not fail: %v", err)
	}
	if cfg != (Config{}) {
		t.Errorf("cfg = %+v, want zero value", cfg)
	}
}

func TestLoadConfig_DefaultLocation(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[layout]\nwindow_height = 900\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error: %v", err)
	}
	if cfg.Layout.WindowHeight != 900 {
		t.Errorf("WindowHeight = %v, want 900", cfg.Layout.WindowHeight)
	}
}
