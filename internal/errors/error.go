// Package errors provides the error values shared by the comparison service.
package errors

import "errors"

// DefaultFetchErrorMessage is recorded when a failed fetch carries no message.
const DefaultFetchErrorMessage = "Failed to fetch products"

var (
	// ErrUnexpectedStatus is returned by the catalog client for non-2xx responses.
	ErrUnexpectedStatus = errors.New("unexpected catalog response status")
	// ErrEmptySelection is returned when a comparison is requested with nothing selected.
	ErrEmptySelection = errors.New("no products selected")
	// ErrInvalidSortOption is returned for sort options other than price and rating.
	ErrInvalidSortOption = errors.New("invalid sort option")
)
