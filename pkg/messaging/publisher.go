package messaging

import (
	"context"
)

const (
	CatalogFetchFulfilledSubject = "catalog.fetch.fulfilled"
	CatalogFetchRejectedSubject  = "catalog.fetch.rejected"
	CatalogFetchSubjects         = "catalog.fetch.>"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
