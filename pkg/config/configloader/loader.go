package configloader

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Validator interface {
	Validate() error
}

const (
	defaultConfigFile = "config.yaml"
	defaultEnvFile    = ".env"
)

// Load builds a configuration of type T from, in increasing priority:
// the defaults map, a yaml file, a .env file and the process environment.
//
// Environment keys are prefixed with <SERVICENAME>_ and use "_" as the path
// separator, e.g. COMPARE_CATALOG_TIMEOUT maps to catalog.timeout.
// <SERVICENAME>_CONFIG_FILE overrides the yaml file location.
func Load[T Validator](serviceName string, defaults map[string]any) (T, error) {
	var cfg T
	k := koanf.New(".")

	envPrefix := fmt.Sprintf("%s_", strings.ToUpper(serviceName))
	configFile := defaultConfigFile
	if override := os.Getenv(envPrefix + "CONFIG_FILE"); override != "" {
		configFile = override
	}

	// 1. Defaults, the lowest priority
	if len(defaults) > 0 {
		if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
			return cfg, fmt.Errorf("error loading default config: %w", err)
		}
	}

	// 2. Load configuration from yaml file
	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARN: error loading YAML config file '%s': %v", configFile, err)
		}
	}

	// 3. Load environment variables from .env file
	envTransformer := keyTransformer(envPrefix, k.Keys())
	if envFileMap, err := godotenv.Read(defaultEnvFile); err == nil {
		envMap := make(map[string]any)
		for key, value := range envFileMap {
			if !strings.HasPrefix(strings.ToUpper(key), envPrefix) {
				continue
			}
			envMap[envTransformer(key)] = value
		}
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			log.Printf("WARN: error loading .env config: %v", err)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("WARN: error reading .env file: %v", err)
	}

	// 4. Load environment variables from the system, the highest priority
	if err := k.Load(env.Provider(envPrefix, ".", envTransformer), nil); err != nil {
		log.Printf("WARN: error loading system env vars: %v", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// keyTransformer maps COMPARE_SERVER_PORT style keys to server.port. Keys that
// match a known key case-insensitively take its spelling, so
// COMPARE_SERVER_MAXHEADERBYTES overrides server.maxHeaderBytes.
func keyTransformer(envPrefix string, knownKeys []string) func(string) string {
	prefix := strings.ToLower(envPrefix)
	known := make(map[string]string, len(knownKeys))
	for _, key := range knownKeys {
		known[strings.ToLower(key)] = key
	}
	return func(key string) string {
		key = strings.ToLower(key)
		key = strings.TrimPrefix(key, prefix)
		key = strings.ReplaceAll(key, "_", ".")
		if original, ok := known[key]; ok {
			return original
		}
		return key
	}
}
