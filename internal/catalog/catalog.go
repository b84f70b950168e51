// Package catalog derives the product grid the storefront renders: a raw
// product list is filtered, sorted, enriched with display fields, then
// revealed incrementally as the visitor scrolls.
package catalog

import (
	"sort"
	"strings"

	"github.com/theBillionaireApostle/Rani-Riwaaj-sub000/internal/domain"
)

// SortOption selects one of the four catalog orderings.
type SortOption string

const (
	SortDateDesc  SortOption = "date-desc"
	SortDateAsc   SortOption = "date-asc"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
)

// JustInFilter is the new-arrivals facet. The empty value applies no filter.
type JustInFilter string

const (
	JustInAny  JustInFilter = ""
	JustInOnly JustInFilter = "justIn"
	JustInNone JustInFilter = "notJustIn"
)

// Query is the storefront's current filter and sort selection.
type Query struct {
	Search string
	JustIn JustInFilter
	Sort   SortOption
}

// Apply filters products by the query and returns them in the selected
// order. The input slice is never modified; ties keep their original
// relative order.
func Apply(products []domain.Product, q Query) []domain.Product {
	needle := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		switch q.JustIn {
		case JustInOnly:
			if !p.JustIn {
				continue
			}
		case JustInNone:
			if p.JustIn {
				continue
			}
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortDateAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price < out[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price > out[j].Price
		})
	default: // SortDateDesc, newest first
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	return out
}
