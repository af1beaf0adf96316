package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestRecommendArgsReorder(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{
			name:     "flags after title are moved first",
			args:     []string{"the dark knight", "-output", "json"},
			expected: []string{"-output", "json", "the dark knight"},
		},
		{
			name:     "flags first returns unchanged",
			args:     []string{"-output", "json", "the dark knight"},
			expected: []string{"-output", "json", "the dark knight"},
		},
		{
			name:     "title only returns unchanged",
			args:     []string{"the dark knight"},
			expected: []string{"the dark knight"},
		},
		{
			name:     "empty args returns unchanged",
			args:     []string{},
			expected: []string{},
		},
		{
			name:     "multiple positionals then flags",
			args:     []string{"the", "matrix", "-server", "http://localhost:9000"},
			expected: []string{"-server", "http://localhost:9000", "the", "matrix"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recommendArgsReorder(tt.args)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("recommendArgsReorder() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestBuildQueryTitle(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"single word", []string{"avatar"}, "avatar"},
		{"multiple words", []string{"the", "dark", "knight"}, "the dark knight"},
		{"single quoted phrase", []string{"the dark knight"}, "the dark knight"},
		{"empty args", []string{}, ""},
		{"blank args", []string{"  ", "  "}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildQueryTitle(tt.args)
			if got != tt.expected {
				t.Errorf("buildQueryTitle(%v) = %q, want %q", tt.args, got, tt.expected)
			}
		})
	}
}

func TestLoadConfig_prefersCwdConfigWhenDefaultPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  port: 9090
`
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Clean(resolved) != filepath.Clean(configPath) {
		t.Errorf("resolved path = %q, want %q", resolved, configPath)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true from cwd config")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
}

func TestLoadConfig_explicitPath(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(configPath, []byte("server:\n  port: 7070\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, resolved, err := loadConfig(configPath)
	if err != nil {
		t.Fatal(err)
	}
	if resolved != configPath {
		t.Errorf("resolved path = %q, want %q", resolved, configPath)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
}
