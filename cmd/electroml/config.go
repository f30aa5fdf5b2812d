package main

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/antoinebcx/ElectronML/pkg/errors"
	"github.com/antoinebcx/ElectronML/xgboost"
)

// Config carries the defaults an electroml.yaml file (or the ELECTROML_*
// environment variables) can provide, so repeated scoring runs do not have
// to pass --model and --meta every time. Flags win over environment
// variables, which win over the file.
type Config struct {
	Model string `yaml:"model"`
	Meta  string `yaml:"meta"`
	Log   string `yaml:"log"`
	Cache int    `yaml:"cache"`
}

func loadConfig(path string) (Config, error) {
	cfg := Config{
		Log:   "info",
		Cache: xgboost.DefaultCacheCapacity,
	}

	if path == "" {
		path = os.Getenv("ELECTROML_CONFIG")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "read config file")
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, errors.Wrap(err, "parse config file")
		}
	}

	cfg.Model = getEnvOrDefault("ELECTROML_MODEL", cfg.Model)
	cfg.Meta = getEnvOrDefault("ELECTROML_META", cfg.Meta)
	cfg.Log = getEnvOrDefault("ELECTROML_LOG", cfg.Log)
	cfg.Cache = getIntOrDefault("ELECTROML_CACHE", cfg.Cache)
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

// resolvePath prefers the flag value over the configured default.
func resolvePath(flagValue, configValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return configValue
}

// cacheCapacity resolves the traversal cache bound. A zero flag means
// --cache was not given and the configured value applies; a negative flag
// disables caching.
func cacheCapacity() int {
	if cacheSize != 0 {
		return cacheSize
	}
	return config.Cache
}
