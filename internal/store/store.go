package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/abgdnv/productcompare/internal/product"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Fetcher retrieves the catalog. catalog.Client implements it.
type Fetcher interface {
	FetchProducts(ctx context.Context) ([]product.Product, error)
}

// Listener observes every dispatched action together with the resulting state.
// Listeners run synchronously inside Dispatch and must not call Dispatch.
type Listener func(action Action, state State)

// FetchResult is delivered once per RunFetch when the fetch settles.
type FetchResult struct {
	Products []product.Product
	Err      error
}

// Store owns a State and serialises every transition through Reduce.
//
// There is no coordination between fetches: when RunFetch is called again
// before an earlier fetch settled, whichever settles last wins.
type Store struct {
	dispatchMu sync.Mutex // serialises reduce + notify

	mu    sync.RWMutex
	state State

	listenersMu sync.Mutex
	listeners   map[uint64]Listener
	nextID      uint64

	fetcher Fetcher
	logger  *slog.Logger
	fetches metric.Int64Counter
}

// NewStore creates a Store in InitialState that fetches through fetcher.
func NewStore(fetcher Fetcher, logger *slog.Logger) *Store {
	meter := otel.Meter("compare-service")
	fetches, err := meter.Int64Counter("catalog_fetches", metric.WithDescription("Total number of settled catalog fetches"))
	if err != nil {
		panic(fmt.Sprintf("failed to create catalog_fetches counter: %v", err))
	}
	return &Store{
		state:     InitialState(),
		listeners: make(map[uint64]Listener),
		fetcher:   fetcher,
		logger:    logger.With("component", "store"),
		fetches:   fetches,
	}
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch reduces action into the current state, notifies listeners and
// returns the new state.
func (s *Store) Dispatch(action Action) State {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	next := Reduce(s.state, action)
	s.state = next
	s.mu.Unlock()

	s.logger.Debug("Action dispatched",
		"type", action.Type,
		"products", len(next.Products),
		"filtered", len(next.FilteredProducts),
		"loading", next.Loading)

	for _, l := range s.snapshotListeners() {
		l(action, next)
	}
	return next
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) snapshotListeners() []Listener {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	ls := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		ls = append(ls, l)
	}
	return ls
}

// RunFetch dispatches the pending action before it returns, then fetches the
// catalog in the background and dispatches exactly one of the fulfilled or
// rejected actions. The returned channel yields the outcome once and is then
// closed. ctx is handed to the fetcher; cancelling it rejects the fetch.
func (s *Store) RunFetch(ctx context.Context) <-chan FetchResult {
	done := make(chan FetchResult, 1)
	s.Dispatch(Pending())

	go func() {
		defer close(done)
		products, err := s.fetcher.FetchProducts(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "Catalog fetch rejected", "error", err)
			s.Dispatch(Rejected(err.Error()))
			s.fetches.Add(context.WithoutCancel(ctx), 1, metric.WithAttributes(attribute.String("outcome", "rejected")))
			done <- FetchResult{Err: err}
			return
		}
		s.logger.InfoContext(ctx, "Catalog fetch fulfilled", "count", len(products))
		s.Dispatch(Fulfilled(products))
		s.fetches.Add(context.WithoutCancel(ctx), 1, metric.WithAttributes(attribute.String("outcome", "fulfilled")))
		done <- FetchResult{Products: products}
	}()

	return done
}
