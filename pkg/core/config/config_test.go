package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/devconsole/pkg/core/logging"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Console.PauseTime {
		t.Error("PauseTime should default to true")
	}
	if !cfg.Console.WarnAboutInitScript {
		t.Error("WarnAboutInitScript should default to true")
	}
	if cfg.Console.MaxHistory != 50 {
		t.Errorf("MaxHistory = %d, want 50", cfg.Console.MaxHistory)
	}
	if cfg.Remote.Path != "/console" {
		t.Errorf("Remote.Path = %q, want /console", cfg.Remote.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

const tomlContent = `
[console]
fullscreen = true
pause_time = false
max_history = 20
startup_script = "init.cfg"

[logging]
level = "debug"

[remote]
listen = "127.0.0.1:9999"
read_timeout = "30s"
`

const yamlContent = `
console:
  fullscreen: true
  pause_time: false
  max_history: 20
  startup_script: init.cfg
logging:
  level: debug
remote:
  listen: 127.0.0.1:9999
  read_timeout: 30s
`

const jsoncContent = `{
  // console settings
  "console": {
    "fullscreen": true,
    "pause_time": false,
    "max_history": 20,
    "startup_script": "init.cfg",
  },
  "logging": {"level": "debug"},
  /* remote console */
  "remote": {"listen": "127.0.0.1:9999", "read_timeout": "30s"}
}`

func TestLoad_Formats(t *testing.T) {
	want := Default()
	want.Console.Fullscreen = true
	want.Console.PauseTime = false
	want.Console.MaxHistory = 20
	want.Console.StartupScript = "init.cfg"
	want.Logging.Level = "debug"
	want.Remote.Listen = "127.0.0.1:9999"
	want.Remote.ReadTimeout = Duration{30 * time.Second}

	tests := []struct {
		file    string
		content string
	}{
		{"devconsole.toml", tomlContent},
		{"devconsole.yaml", yamlContent},
		{"devconsole.jsonc", jsoncContent},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Load() error = %v, want not found", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[console\nmax_history = "},
		{"negative history", "[console]\nmax_history = -1\n"},
		{"bad level", "[logging]\nlevel = \"loud\"\n"},
		{"bad path", "[remote]\npath = \"console\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "devconsole.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() expected error")
			}
		})
	}
}

func TestParse_MaxHistory(t *testing.T) {
	tests := []struct {
		name    string
		content string
		ext     string
		want    int
	}{
		{"omitted", "[console]\nshow_log = true\n", ".toml", DefaultMaxHistory},
		{"zero toml", "[console]\nmax_history = 0\n", ".toml", 0},
		{"zero yaml", "console:\n  max_history: 0\n", ".yaml", 0},
		{"zero jsonc", `{"console": {"max_history": 0}}`, ".jsonc", 0},
		{"set", "[console]\nmax_history = 3\n", ".toml", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.content), tt.ext)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if cfg.Console.MaxHistory != tt.want {
				t.Errorf("MaxHistory = %d, want %d", cfg.Console.MaxHistory, tt.want)
			}
		})
	}
}

func TestConsoleConfig_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.yaml")
	content := "console:\n  show_log: true\n  max_history: 9\nremote:\n  listen: \"0.0.0.0:1\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c := Default().Console
	if err := c.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if !c.ShowLog || c.MaxHistory != 9 {
		t.Errorf("LoadFile() = %+v", c)
	}

	before := c
	if err := c.LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("LoadFile() expected error for a missing file")
	}
	if diff := cmp.Diff(before, c); diff != "" {
		t.Errorf("failed load changed the settings (-before +after):\n%s", diff)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.toml")
	if err := os.WriteFile(path, []byte("[console]\nmax_history = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvVar, path)

	cfg, used, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if used != path {
		t.Errorf("LoadFromEnv() path = %q, want %q", used, path)
	}
	if cfg.Console.MaxHistory != 7 {
		t.Errorf("MaxHistory = %d, want 7", cfg.Console.MaxHistory)
	}
}

func TestLoggerConfig(t *testing.T) {
	cfg := Default()
	cfg.Logging.File = "/tmp/console.log"

	lc := cfg.LoggerConfig("devconsole")
	if lc.ServiceName != "devconsole" || lc.Level != "info" || lc.File != "/tmp/console.log" {
		t.Errorf("LoggerConfig() = %+v", lc)
	}
}

func TestWatch_Reload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "devconsole.toml")
	if err := os.WriteFile(path, []byte("[console]\nmax_history = 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, logging.Discard(), func(cfg *Config) { changes <- cfg })
	}()

	// Give the watcher time to register before writing.
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("[console]\nmax_history = 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-changes:
		if cfg.Console.MaxHistory != 9 {
			t.Errorf("reloaded MaxHistory = %d, want 9", cfg.Console.MaxHistory)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload within 5s")
	}

	cancel()
	if err := <-done; err != nil {
		t.Errorf("Watch() error = %v", err)
	}
}
