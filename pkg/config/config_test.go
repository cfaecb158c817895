package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	os.Unsetenv("ZFS_DEVICE_PATH")
	os.Unsetenv("POOL_WHITELIST")
	os.Unsetenv("LOG_LEVEL")

	cfg := NewConfig()

	if cfg.DevicePath != "/dev/zfs" {
		t.Errorf("DevicePath = %s, want /dev/zfs", cfg.DevicePath)
	}
	if len(cfg.PoolWhitelist) != 0 {
		t.Errorf("PoolWhitelist = %v, want empty", cfg.PoolWhitelist)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.IsDebug() {
		t.Error("IsDebug() = true with info level")
	}
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("ZFS_DEVICE_PATH", "/tmp/fake-zfs")
	t.Setenv("POOL_WHITELIST", "tank, dozer , ")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := NewConfig()

	if cfg.DevicePath != "/tmp/fake-zfs" {
		t.Errorf("DevicePath = %s, want /tmp/fake-zfs", cfg.DevicePath)
	}
	if len(cfg.PoolWhitelist) != 2 || cfg.PoolWhitelist[0] != "tank" || cfg.PoolWhitelist[1] != "dozer" {
		t.Errorf("PoolWhitelist = %v, want [tank dozer]", cfg.PoolWhitelist)
	}
	if !cfg.IsDebug() {
		t.Error("IsDebug() = false with debug level")
	}
}

func TestIsPoolAllowed(t *testing.T) {
	tests := []struct {
		name      string
		whitelist []string
		pool      string
		want      bool
	}{
		{"empty whitelist allows all", nil, "tank", true},
		{"listed pool allowed", []string{"tank", "dozer"}, "tank", true},
		{"unlisted pool denied", []string{"tank"}, "dozer", false},
		{"no prefix matching", []string{"tank"}, "tankx", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{PoolWhitelist: tt.whitelist}
			if got := cfg.IsPoolAllowed(tt.pool); got != tt.want {
				t.Errorf("IsPoolAllowed(%s) = %v, want %v", tt.pool, got, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zinspect.yaml")
	data := []byte("device_path: /tmp/zfs-test\npool_whitelist:\n  - tank\nlog_level: debug\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{DevicePath: "/dev/zfs", LogLevel: "info"}
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if cfg.DevicePath != "/tmp/zfs-test" {
		t.Errorf("DevicePath = %s, want /tmp/zfs-test", cfg.DevicePath)
	}
	if len(cfg.PoolWhitelist) != 1 || cfg.PoolWhitelist[0] != "tank" {
		t.Errorf("PoolWhitelist = %v, want [tank]", cfg.PoolWhitelist)
	}
	if !cfg.IsDebug() {
		t.Error("LogLevel not overlaid from file")
	}
}

func TestLoadFilePartialOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zinspect.yaml")
	if err := os.WriteFile(path, []byte("log_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{DevicePath: "/dev/zfs", LogLevel: "info"}
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	// Fields absent from the file keep their values.
	if cfg.DevicePath != "/dev/zfs" {
		t.Errorf("DevicePath = %s, want /dev/zfs", cfg.DevicePath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg := &Config{}
	if err := cfg.LoadFile("/nonexistent/zinspect.yaml"); err == nil {
		t.Error("LoadFile() on a missing file should fail")
	}
}
