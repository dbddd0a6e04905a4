package store

import "github.com/abgdnv/productcompare/internal/product"

// Selectors never fail: a nil state reads as InitialState and nil slices read as empty.

func SelectProducts(s *State) []product.Product {
	if s == nil || s.Products == nil {
		return []product.Product{}
	}
	return s.Products
}

func SelectFilteredProducts(s *State) []product.Product {
	if s == nil || s.FilteredProducts == nil {
		return []product.Product{}
	}
	return s.FilteredProducts
}

func SelectLoading(s *State) bool {
	return s != nil && s.Loading
}

func SelectError(s *State) *string {
	if s == nil {
		return nil
	}
	return s.Error
}
