package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/abgdnv/productcompare/internal/store"
	"github.com/abgdnv/productcompare/pkg/messaging"
	"github.com/abgdnv/productcompare/pkg/messaging/events"
)

const defaultPublishTimeout = 5 * time.Second

// Notifier turns settled catalog fetches into messaging events.
type Notifier struct {
	publisher messaging.Publisher
	logger    *slog.Logger
	timeout   time.Duration
	now       func() time.Time
}

func NewNotifier(publisher messaging.Publisher, timeout time.Duration, logger *slog.Logger) *Notifier {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &Notifier{
		publisher: publisher,
		logger:    logger.With("component", "events"),
		timeout:   timeout,
		now:       time.Now,
	}
}

// Listener returns a store.Listener that publishes one event per settle.
// Publishing happens off the dispatch goroutine; failures are only logged.
func (n *Notifier) Listener() store.Listener {
	return func(action store.Action, state store.State) {
		event, ok := n.eventFor(action, state)
		if !ok {
			return
		}
		go n.publish(event)
	}
}

func (n *Notifier) eventFor(action store.Action, state store.State) (events.CatalogFetchSettledEvent, bool) {
	switch action.Type {
	case store.ActionFetchFulfilled:
		return events.CatalogFetchSettledEvent{
			Fulfilled:    true,
			ProductCount: len(state.Products),
			SettledAt:    n.now().UTC(),
		}, true
	case store.ActionFetchRejected:
		event := events.CatalogFetchSettledEvent{
			ProductCount: len(state.Products),
			SettledAt:    n.now().UTC(),
		}
		if state.Error != nil {
			event.Error = *state.Error
		}
		return event, true
	default:
		return events.CatalogFetchSettledEvent{}, false
	}
}

func (n *Notifier) publish(event events.CatalogFetchSettledEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.Error("Failed to publish catalog event", "subject", event.Subject(), "error", err)
		return
	}
	n.logger.Debug("Catalog event published", "subject", event.Subject())
}
