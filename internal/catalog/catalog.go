// Package catalog holds the client-side filter and sort applied to VCD
// lists after a full fetch. All transformations are pure; the fetched
// slice is never mutated in place by Apply.
package catalog

import (
	"sort"
	"strings"

	"ovs/storefront/internal/ovs"
)

// Filter is a conjunction: a row is kept only when every set field
// matches. Range bounds are inclusive; nil means unbounded.
type Filter struct {
	Name     string // case-insensitive substring
	Language string // case-insensitive exact
	Genre    string // case-insensitive exact
	Category string // case-insensitive exact

	RatingMin *int
	RatingMax *int
	StockMin  *int
	StockMax  *int
	CostMin   *float64
	CostMax   *float64
}

func (f Filter) Match(v ovs.VCD) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(v.VCDName), strings.ToLower(f.Name)) {
		return false
	}
	if f.Language != "" && !strings.EqualFold(v.Language, f.Language) {
		return false
	}
	if f.Genre != "" && !strings.EqualFold(v.Genre, f.Genre) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(v.Category, f.Category) {
		return false
	}
	if f.RatingMin != nil && v.Rating < *f.RatingMin {
		return false
	}
	if f.RatingMax != nil && v.Rating > *f.RatingMax {
		return false
	}
	if f.StockMin != nil && v.Quantity < *f.StockMin {
		return false
	}
	if f.StockMax != nil && v.Quantity > *f.StockMax {
		return false
	}
	if f.CostMin != nil && v.Cost < *f.CostMin {
		return false
	}
	if f.CostMax != nil && v.Cost > *f.CostMax {
		return false
	}
	return true
}

// Apply keeps the fetched order of the rows that match.
func Apply(items []ovs.VCD, f Filter) []ovs.VCD {
	out := make([]ovs.VCD, 0, len(items))
	for _, v := range items {
		if f.Match(v) {
			out = append(out, v)
		}
	}
	return out
}

type SortField string

const (
	SortNone   SortField = ""
	SortCost   SortField = "cost"
	SortRating SortField = "rating"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort orders items by the chosen numeric field, stable so ties keep the
// fetched order. No field leaves the slice untouched.
func Sort(items []ovs.VCD, field SortField, dir Direction) {
	if field == SortNone {
		return
	}
	sign := 1.0
	if dir == Desc {
		sign = -1.0
	}
	key := func(v ovs.VCD) float64 {
		if field == SortRating {
			return float64(v.Rating)
		}
		return v.Cost
	}
	sort.SliceStable(items, func(i, j int) bool {
		return (key(items[i])-key(items[j]))*sign < 0
	})
}

// ParseSort decodes the "field:dir" encoding used by the sort widget,
// e.g. "cost:asc" or "rating:desc". Anything unrecognized means no sort.
func ParseSort(s string) (SortField, Direction) {
	field, dir, _ := strings.Cut(s, ":")
	d := Asc
	if dir == "desc" {
		d = Desc
	}
	switch field {
	case "cost":
		return SortCost, d
	case "rating":
		return SortRating, d
	default:
		return SortNone, d
	}
}
