package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/abgdnv/productcompare/internal/product"
	"github.com/abgdnv/productcompare/pkg/config"
	"github.com/sony/gobreaker/v2"
)

// ProductFetcher is implemented by Client.
type ProductFetcher interface {
	FetchProducts(ctx context.Context) ([]product.Product, error)
}

// BreakerFetcher fails fast while the catalog keeps failing. It never retries:
// every call either reaches next once or is rejected by the open breaker.
type BreakerFetcher struct {
	next ProductFetcher
	cb   *gobreaker.CircuitBreaker[[]product.Product]
}

// NewBreakerFetcher wraps next in a circuit breaker configured by cfg.
func NewBreakerFetcher(next ProductFetcher, cfg config.CircuitBreakerConfig, logger *slog.Logger) *BreakerFetcher {
	log := logger.With("component", "catalog-breaker")
	st := gobreaker.Settings{
		Name:        "catalog-cb",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures ||
				(counts.Requests >= cfg.ConsecutiveFailures &&
					float64(counts.TotalFailures)/float64(counts.Requests)*100 > float64(cfg.ErrorRatePercent))
		},
		IsSuccessful: isSuccessful,
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}
	return &BreakerFetcher{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[[]product.Product](st),
	}
}

// FetchProducts calls next unless the breaker is open.
func (b *BreakerFetcher) FetchProducts(ctx context.Context) ([]product.Product, error) {
	products, err := b.cb.Execute(func() ([]product.Product, error) {
		return b.next.FetchProducts(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("catalog unavailable: %w", err)
	}
	return products, err
}

// isSuccessful counts transport failures and 5xx responses against the
// breaker. Cancellation and 4xx responses are not the catalog's fault.
func isSuccessful(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode < http.StatusInternalServerError
	}
	return false
}
