package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/productcompare/pkg/messaging"
)

// CatalogFetchSettledEvent reports the outcome of one catalog fetch.
type CatalogFetchSettledEvent struct {
	Fulfilled    bool      `json:"fulfilled"`
	ProductCount int       `json:"product_count"`
	Error        string    `json:"error,omitempty"`
	SettledAt    time.Time `json:"settled_at"`
}

func (e CatalogFetchSettledEvent) Subject() string {
	if e.Fulfilled {
		return messaging.CatalogFetchFulfilledSubject
	}
	return messaging.CatalogFetchRejectedSubject
}

func (e CatalogFetchSettledEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
