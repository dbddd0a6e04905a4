// Package store holds the product state container: the fetched catalog, the
// comparison subset and the fetch status, changed only through reducers.
package store

import (
	cerrors "github.com/abgdnv/productcompare/internal/errors"
	"github.com/abgdnv/productcompare/internal/product"
)

// State is the single value owned by the Store.
//
// Products is the catalog as last fetched successfully. FilteredProducts is
// the comparison subset; it is a separate slice so it can be narrowed or
// replaced without touching Products. Error is stale while Loading is true.
type State struct {
	Products         []product.Product `json:"products"`
	FilteredProducts []product.Product `json:"filteredProducts"`
	Loading          bool              `json:"loading"`
	Error            *string           `json:"error"`
}

// InitialState returns the empty state the application starts with.
func InitialState() State {
	return State{
		Products:         []product.Product{},
		FilteredProducts: []product.Product{},
	}
}

// BeginFetch marks a fetch as in flight. The previous error is kept.
func BeginFetch(s State) State {
	s.Loading = true
	return s
}

// FetchSucceeded installs payload as both the catalog and the comparison subset.
func FetchSucceeded(s State, payload []product.Product) State {
	s.Products = payload
	s.FilteredProducts = payload
	s.Error = nil
	s.Loading = false
	return s
}

// FetchFailed records message, or DefaultFetchErrorMessage when it is empty.
// Previously fetched products stay in place.
func FetchFailed(s State, message string) State {
	if message == "" {
		message = cerrors.DefaultFetchErrorMessage
	}
	s.Error = &message
	s.Loading = false
	return s
}

// FilterProducts keeps the products of the current comparison subset whose id
// is in ids, preserving order. It never adds products back from the catalog,
// so successive calls intersect. Unknown ids are ignored.
func FilterProducts(s State, ids []int) State {
	keep := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		keep[id] = struct{}{}
	}
	filtered := make([]product.Product, 0, len(s.FilteredProducts))
	for _, item := range s.FilteredProducts {
		if _, ok := keep[item.ID]; ok {
			filtered = append(filtered, item)
		}
	}
	s.FilteredProducts = filtered
	return s
}

// LoadAllProducts replaces the comparison subset with items. Callers pass the
// catalog to reset the comparison view; items is not checked against it.
func LoadAllProducts(s State, items []product.Product) State {
	s.FilteredProducts = items
	return s
}
