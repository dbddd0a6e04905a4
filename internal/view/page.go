package view

import (
	"fmt"

	"github.com/abgdnv/productcompare/internal/product"
	"github.com/abgdnv/productcompare/internal/store"
)

// Card is one product tile of the grid.
type Card struct {
	product.Product
	DisplayPrice string `json:"displayPrice"`
	Selected     bool   `json:"selected"`
}

// ComparisonRow is one line of the side-by-side table.
type ComparisonRow struct {
	ID      int     `json:"id"`
	Title   string  `json:"title"`
	Price   string  `json:"price"`
	Rating  float64 `json:"rating"`
	Reviews string  `json:"reviews"`
}

// Page is everything the comparison page shows for one state.
type Page struct {
	Loading    bool            `json:"loading"`
	Error      string          `json:"error,omitempty"`
	Sort       SortOption      `json:"sort"`
	Products   []Card          `json:"products"`
	Selected   []int           `json:"selected"`
	Comparison []ComparisonRow `json:"comparison,omitempty"`
}

// ComparisonRows builds a row for every selected id found in catalog, in
// selection order. Ids missing from catalog are skipped.
func ComparisonRows(selected []int, catalog []product.Product) []ComparisonRow {
	byID := make(map[int]product.Product, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}
	rows := make([]ComparisonRow, 0, len(selected))
	for _, id := range selected {
		p, ok := byID[id]
		if !ok {
			continue
		}
		rows = append(rows, ComparisonRow{
			ID:      p.ID,
			Title:   p.Title,
			Price:   "£ " + p.Price.StringFixed(2),
			Rating:  p.Rating.Rate,
			Reviews: fmt.Sprintf("%d reviews", p.Rating.Count),
		})
	}
	return rows
}

// Render projects state and the session selection into a Page. While a
// fetch is in flight only the loading flag is set. An error replaces the
// grid; the comparison table is shown whenever something is selected and
// is built from the full catalog.
func Render(s store.State, session *Session, opt SortOption) Page {
	if store.SelectLoading(&s) {
		return Page{Loading: true, Sort: opt, Selected: []int{}}
	}

	selected := session.Selected()
	page := Page{Sort: opt, Selected: selected}

	if errMsg := store.SelectError(&s); errMsg != nil {
		page.Error = *errMsg
	} else {
		sorted := Sorted(store.SelectFilteredProducts(&s), opt)
		page.Products = make([]Card, len(sorted))
		for i, p := range sorted {
			page.Products[i] = Card{
				Product:      p,
				DisplayPrice: "$" + p.Price.StringFixed(2),
				Selected:     session.Has(p.ID),
			}
		}
	}

	if len(selected) > 0 {
		page.Comparison = ComparisonRows(selected, store.SelectProducts(&s))
	}
	return page
}
