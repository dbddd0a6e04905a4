package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultCatalogEndpoint is the public product catalog the service reads by default.
const DefaultCatalogEndpoint = "https://fakestoreapi.com/products"

// CatalogConfig locates the product catalog. Timeout bounds a single request;
// zero disables the limit.
type CatalogConfig struct {
	Endpoint       string               `koanf:"endpoint"`
	Timeout        time.Duration        `koanf:"timeout"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuitbreaker"`
}

// String returns a string representation of the catalog configuration.
func (c *CatalogConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Catalog ---\n")
	b.WriteString(fmt.Sprintf("  endpoint: %s\n", c.Endpoint))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	b.WriteString(c.CircuitBreaker.String())
	return b.String()
}

func (c *CatalogConfig) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("catalog endpoint is not configured")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("catalog endpoint must be an absolute http(s) URL: %s", c.Endpoint)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid catalog timeout: %v", c.Timeout)
	}
	return c.CircuitBreaker.Validate()
}
