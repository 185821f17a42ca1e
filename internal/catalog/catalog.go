// Package catalog holds the pure filter and sort logic for the product list
// view. Filters compose by intersection and are independent of application
// order; sorting applies to the filtered set only.
package catalog

import (
	"sort"
	"strings"

	"mediswift/internal/types"
)

// PrescriptionFilter is the tri-state prescription axis.
type PrescriptionFilter int

const (
	PrescriptionAny PrescriptionFilter = iota
	PrescriptionRequired
	PrescriptionNotRequired
)

// SortKey selects the catalog ordering.
type SortKey int

const (
	SortNameAsc SortKey = iota
	SortPriceAsc
	SortPriceDesc
	SortDiscountDesc
)

var sortKeyNames = map[SortKey]string{
	SortNameAsc:      "Name (A-Z)",
	SortPriceAsc:     "Price: Low to High",
	SortPriceDesc:    "Price: High to Low",
	SortDiscountDesc: "Discount",
}

func (k SortKey) String() string { return sortKeyNames[k] }

// Filter is the composed filter state of the products view.
type Filter struct {
	Search       string
	Category     string
	Prescription PrescriptionFilter
}

// Apply returns the products matching every set axis. The zero Filter
// matches everything.
func Apply(products []types.Product, f Filter) []types.Product {
	out := make([]types.Product, 0, len(products))
	term := strings.ToLower(f.Search)
	for _, p := range products {
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		switch f.Prescription {
		case PrescriptionRequired:
			if !p.RequiresPrescription {
				continue
			}
		case PrescriptionNotRequired:
			if p.RequiresPrescription {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func matchesSearch(p types.Product, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(p.Name), lowerTerm) ||
		strings.Contains(strings.ToLower(p.Brand), lowerTerm) ||
		strings.Contains(strings.ToLower(p.SaltComposition), lowerTerm)
}

// Sort orders products in place by the given key. Source data has no
// duplicate-key ties that matter, so an unstable sort is fine.
func Sort(products []types.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.Slice(products, func(i, j int) bool {
			return products[i].DiscountPrice < products[j].DiscountPrice
		})
	case SortPriceDesc:
		sort.Slice(products, func(i, j int) bool {
			return products[i].DiscountPrice > products[j].DiscountPrice
		})
	case SortDiscountDesc:
		sort.Slice(products, func(i, j int) bool {
			return products[i].DiscountFraction() > products[j].DiscountFraction()
		})
	default:
		sort.Slice(products, func(i, j int) bool {
			return products[i].Name < products[j].Name
		})
	}
}

// Featured returns up to max featured products in catalog order.
func Featured(products []types.Product, max int) []types.Product {
	out := make([]types.Product, 0, max)
	for _, p := range products {
		if p.Featured {
			out = append(out, p)
			if len(out) == max {
				break
			}
		}
	}
	return out
}

// TopDiscounts returns up to max discounted products, steepest discount
// first.
func TopDiscounts(products []types.Product, max int) []types.Product {
	discounted := make([]types.Product, 0, len(products))
	for _, p := range products {
		if p.DiscountPrice < p.MRP {
			discounted = append(discounted, p)
		}
	}
	Sort(discounted, SortDiscountDesc)
	if len(discounted) > max {
		discounted = discounted[:max]
	}
	return discounted
}

// Categories returns the distinct category values in first-seen order.
func Categories(products []types.Product) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// FindByID returns the product with the given id, or false.
func FindByID(products []types.Product, id string) (types.Product, bool) {
	for _, p := range products {
		if p.ID == id {
			return p, true
		}
	}
	return types.Product{}, false
}
