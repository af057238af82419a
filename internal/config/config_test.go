package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hostlink.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Baud != 115200 {
		t.Errorf("Baud = %d, want 115200", cfg.Baud)
	}
	if cfg.Interval != 500*time.Millisecond {
		t.Errorf("Interval = %v, want 500ms", cfg.Interval)
	}
	if cfg.Settle != 100*time.Millisecond {
		t.Errorf("Settle = %v, want 100ms", cfg.Settle)
	}
	if cfg.Port == "" {
		t.Error("Port is empty")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}

	cfg, err = Load("")
	if err != nil || *cfg != *Default() {
		t.Errorf("Load(\"\") = %+v, %v", cfg, err)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
port: /dev/ttyACM1
baud: 921600
interval: 250ms
status_addr: 127.0.0.1:7071
log_file: /var/log/hostlink.log
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		Port:       "/dev/ttyACM1",
		Baud:       921600,
		Interval:   250 * time.Millisecond,
		Settle:     DefaultSettle,
		StatusAddr: "127.0.0.1:7071",
		LogFile:    "/var/log/hostlink.log",
	}
	if *cfg != want {
		t.Errorf("cfg = %+v\nwant  %+v", *cfg, want)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"bad yaml", "port: [unterminated", "parsing config"},
		{"negative baud", "baud: -9600", "baud must be positive"},
		{"negative interval", "interval: -1s", "interval must not be negative"},
		{"bad duration", "interval: soon", "parsing config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load succeeded")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestZeroIntervalAllowed(t *testing.T) {
	cfg, err := Load(writeConfig(t, "interval: 0s\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Interval != 0 {
		t.Errorf("Interval = %v, want 0", cfg.Interval)
	}
}
