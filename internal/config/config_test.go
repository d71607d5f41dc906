package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestApplyDefaults(t *testing.T) {
	SetLogger(zerolog.New(os.Stderr).Level(zerolog.Disabled))

	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Server.Port != "12700" {
		t.Errorf("Expected default port 12700, got %s", cfg.Server.Port)
	}
	if cfg.Content.PostsDir != "content/posts" {
		t.Errorf("Expected default posts dir content/posts, got %s", cfg.Content.PostsDir)
	}
	if cfg.Content.Store != "fs" {
		t.Errorf("Expected default store fs, got %s", cfg.Content.Store)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.Logging.Level)
	}
	if !cfg.Auth.Enabled {
		t.Error("Expected auth to default to enabled")
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Port = "8080"
	ApplyDefaults(cfg)

	if cfg.Server.Port != "8080" {
		t.Errorf("Expected explicit port to survive defaults, got %s", cfg.Server.Port)
	}
}

func TestLoadConfig(t *testing.T) {
	SetLogger(zerolog.New(os.Stderr).Level(zerolog.Disabled))

	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, c *Config)
	}{
		{
			name: "valid config",
			yaml: "site:\n  name: Test Site\ncontent:\n  posts_dir: /tmp/posts\n",
			check: func(t *testing.T, c *Config) {
				if c.Site.Name != "Test Site" {
					t.Errorf("Expected site name 'Test Site', got %s", c.Site.Name)
				}
				if c.Content.PostsDir != "/tmp/posts" {
					t.Errorf("Expected posts dir /tmp/posts, got %s", c.Content.PostsDir)
				}
				// Unset fields still get defaults
				if c.Server.Port != "12700" {
					t.Errorf("Expected default port, got %s", c.Server.Port)
				}
			},
		},
		{
			name:    "invalid store backend",
			yaml:    "content:\n  store: gopher\n",
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			yaml:    "site: [\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}

			err := LoadConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if tt.check != nil {
				tt.check(t, AppConfig)
			}
		})
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	SetLogger(zerolog.New(os.Stderr).Level(zerolog.Disabled))

	err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Expected defaults for missing file, got error: %v", err)
	}
	if AppConfig.Site.Name != "Letterpress" {
		t.Errorf("Expected default site name, got %s", AppConfig.Site.Name)
	}
}
