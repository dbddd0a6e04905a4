// Package product defines the catalog record shared by the store and the presentation layer.
package product

import "github.com/shopspring/decimal"

// Product is one catalog record as served by the remote catalog API.
// Values are never modified after they are decoded.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Rating      Rating          `json:"rating"`
}

// Rating is the aggregated customer rating of a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// IDs returns the identifiers of products in order.
func IDs(products []Product) []int {
	ids := make([]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
