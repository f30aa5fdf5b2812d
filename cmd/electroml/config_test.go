package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/antoinebcx/ElectronML/xgboost"
)

// clearElectromlEnv blanks every ELECTROML_* variable for the test so
// results do not depend on the invoking shell.
func clearElectromlEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ELECTROML_CONFIG", "ELECTROML_MODEL", "ELECTROML_META",
		"ELECTROML_LOG", "ELECTROML_CACHE",
	} {
		t.Setenv(key, "")
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "electroml.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	clearElectromlEnv(t)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Log != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.Log)
	}
	if cfg.Cache != xgboost.DefaultCacheCapacity {
		t.Errorf("Expected default cache %d, got %d", xgboost.DefaultCacheCapacity, cfg.Cache)
	}
	if cfg.Model != "" || cfg.Meta != "" {
		t.Errorf("Expected empty artifact paths, got %q and %q", cfg.Model, cfg.Meta)
	}
}

func TestLoadConfigFile(t *testing.T) {
	clearElectromlEnv(t)

	path := writeConfigFile(t, `model: artifacts/result.json
meta: artifacts/meta.json
log: debug
cache: 64
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Model != "artifacts/result.json" {
		t.Errorf("Expected model from file, got %s", cfg.Model)
	}
	if cfg.Meta != "artifacts/meta.json" {
		t.Errorf("Expected meta from file, got %s", cfg.Meta)
	}
	if cfg.Log != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.Log)
	}
	if cfg.Cache != 64 {
		t.Errorf("Expected cache 64, got %d", cfg.Cache)
	}
}

func TestLoadConfigFileViaEnv(t *testing.T) {
	clearElectromlEnv(t)

	path := writeConfigFile(t, "log: warn\n")
	t.Setenv("ELECTROML_CONFIG", path)

	cfg, err := loadConfig("")
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Log != "warn" {
		t.Errorf("Expected log level warn from ELECTROML_CONFIG file, got %s", cfg.Log)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	clearElectromlEnv(t)

	path := writeConfigFile(t, `model: from-file.json
log: warn
cache: 64
`)
	t.Setenv("ELECTROML_MODEL", "from-env.json")
	t.Setenv("ELECTROML_CACHE", "128")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Model != "from-env.json" {
		t.Errorf("Expected env to win over file, got %s", cfg.Model)
	}
	if cfg.Log != "warn" {
		t.Errorf("Expected file value when env is unset, got %s", cfg.Log)
	}
	if cfg.Cache != 128 {
		t.Errorf("Expected cache 128 from env, got %d", cfg.Cache)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	clearElectromlEnv(t)

	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Expected an error for a missing config file")
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	clearElectromlEnv(t)

	path := writeConfigFile(t, "model: [unclosed\n")
	if _, err := loadConfig(path); err == nil {
		t.Fatal("Expected an error for malformed YAML")
	}
}

func TestGetIntOrDefault(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"unset", "", 7},
		{"numeric", "42", 42},
		{"not a number", "many", 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ELECTROML_TEST_INT", tt.value)
			if got := getIntOrDefault("ELECTROML_TEST_INT", 7); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestResolvePath(t *testing.T) {
	if got := resolvePath("flag.json", "config.json"); got != "flag.json" {
		t.Errorf("Expected the flag value to win, got %s", got)
	}
	if got := resolvePath("", "config.json"); got != "config.json" {
		t.Errorf("Expected the config fallback, got %s", got)
	}
}

func TestCacheCapacity(t *testing.T) {
	oldSize, oldConfig := cacheSize, config
	defer func() { cacheSize, config = oldSize, oldConfig }()

	cacheSize = 0
	config.Cache = 256
	if got := cacheCapacity(); got != 256 {
		t.Errorf("Expected the configured capacity 256, got %d", got)
	}

	cacheSize = 16
	if got := cacheCapacity(); got != 16 {
		t.Errorf("Expected the flag capacity 16, got %d", got)
	}

	cacheSize = -1
	if got := cacheCapacity(); got != -1 {
		t.Errorf("Expected the disabling flag value -1, got %d", got)
	}
}
