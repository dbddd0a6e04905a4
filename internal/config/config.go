package config

import (
	"strings"

	"github.com/abgdnv/productcompare/pkg/config"
	"github.com/abgdnv/productcompare/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	Catalog    config.CatalogConfig    `koanf:"catalog"`
	HTTPServer config.HTTPConfig       `koanf:"server"`
	Log        config.LogConfig        `koanf:"log"`
	PProf      config.PProfConfig      `koanf:"pprof"`
	GRPC       config.GrpcServerConfig `koanf:"grpc"`
	Shutdown   config.ShutdownConfig   `koanf:"shutdown"`
	NATS       config.NATSConfig       `koanf:"nats"`
	Telemetry  config.TelemetryConfig  `koanf:"telemetry"`
}

// Defaults are the lowest priority configuration values, overridden by
// config.yaml, .env and COMPARE_* environment variables.
func Defaults() map[string]any {
	return map[string]any{
		"catalog.endpoint":                           config.DefaultCatalogEndpoint,
		"catalog.timeout":                            "30s",
		"catalog.circuitbreaker.enabled":             false,
		"catalog.circuitbreaker.consecutivefailures": 5,
		"catalog.circuitbreaker.errorratepercent":    50,
		"catalog.circuitbreaker.opentimeout":         "30s",

		"server.port":               8080,
		"server.maxHeaderBytes":     1 << 20,
		"server.timeout.read":       "5s",
		"server.timeout.write":      "10s",
		"server.timeout.idle":       "60s",
		"server.timeout.readHeader": "2s",

		"log.level":        "info",
		"pprof.enabled":    false,
		"pprof.addr":       "localhost:6060",
		"grpc.port":        "9090",
		"grpc.reflection":  false,
		"shutdown.timeout": "10s",

		"nats.enabled": false,
		"nats.url":     "nats://localhost:4222",
		"nats.stream":  "CATALOG",
		"nats.timeout": "5s",

		"telemetry.traces.enabled":           false,
		"telemetry.traces.otlphttp.endpoint": "localhost:4318",
		"telemetry.traces.otlphttp.insecure": true,
		"telemetry.traces.otlphttp.timeout":  "5s",
	}
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString(c.Catalog.String())
	b.WriteString(c.HTTPServer.String())
	b.WriteString(c.GRPC.String())
	b.WriteString(c.NATS.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Shutdown.String())
	return b.String()
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	validators := []configloader.Validator{
		&c.Catalog,
		&c.HTTPServer,
		&c.Log,
		&c.PProf,
		&c.GRPC,
		&c.Shutdown,
		&c.NATS,
		&c.Telemetry,
	}
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}
