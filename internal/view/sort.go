package view

import (
	"cmp"
	"fmt"
	"slices"

	cerrors "github.com/abgdnv/productcompare/internal/errors"
	"github.com/abgdnv/productcompare/internal/product"
)

type SortOption string

const (
	SortByPrice  SortOption = "price"
	SortByRating SortOption = "rating"

	DefaultSort = SortByPrice
)

// ParseSortOption maps "" to DefaultSort and rejects anything but price and rating.
func ParseSortOption(v string) (SortOption, error) {
	switch SortOption(v) {
	case "":
		return DefaultSort, nil
	case SortByPrice, SortByRating:
		return SortOption(v), nil
	default:
		return "", fmt.Errorf("%w: %q", cerrors.ErrInvalidSortOption, v)
	}
}

// Sorted returns a sorted copy of products, highest price or highest rating
// first. Ties and unknown options keep the incoming order.
func Sorted(products []product.Product, opt SortOption) []product.Product {
	sorted := slices.Clone(products)
	if sorted == nil {
		sorted = []product.Product{}
	}
	switch opt {
	case SortByPrice:
		slices.SortStableFunc(sorted, func(a, b product.Product) int {
			return b.Price.Cmp(a.Price)
		})
	case SortByRating:
		slices.SortStableFunc(sorted, func(a, b product.Product) int {
			return cmp.Compare(b.Rating.Rate, a.Rating.Rate)
		})
	}
	return sorted
}
