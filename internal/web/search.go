package web

import (
	"net/http"
	"net/url"
	"strconv"

	"ovs/storefront/internal/catalog"
	"ovs/storefront/internal/ovs"
)

type searchView struct {
	Page
	Query  string
	VCDs   []ovs.VCD
	Filter searchFilterValues
	Sort   string
}

// searchFilterValues echoes the raw filter inputs back into the grid.
type searchFilterValues struct {
	Name      string
	Language  string
	Genre     string
	Category  string
	RatingMin string
	RatingMax string
	StockMin  string
	StockMax  string
	CostMin   string
	CostMax   string
}

// Search runs the coarse name query server-side and every other
// dimension client-side over the fetched set.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := h.api.SearchVCDs(r.Context(), q.Get("q"))
	if err != nil {
		h.log.WithError(err).Warn("vcd search failed")
		rows = nil
	}

	values := searchFilterValues{
		Name:      q.Get("name"),
		Language:  q.Get("language"),
		Genre:     q.Get("genre"),
		Category:  q.Get("category"),
		RatingMin: q.Get("ratingMin"),
		RatingMax: q.Get("ratingMax"),
		StockMin:  q.Get("stockMin"),
		StockMax:  q.Get("stockMax"),
		CostMin:   q.Get("costMin"),
		CostMax:   q.Get("costMax"),
	}

	visible := catalog.Apply(rows, filterFromQuery(q))
	field, dir := catalog.ParseSort(q.Get("sort"))
	catalog.Sort(visible, field, dir)

	h.render(w, "search", searchView{
		Page:   Page{Session: h.sessions.Load(r), Message: q.Get("msg")},
		Query:  q.Get("q"),
		VCDs:   visible,
		Filter: values,
		Sort:   q.Get("sort"),
	})
}

func filterFromQuery(q url.Values) catalog.Filter {
	return catalog.Filter{
		Name:      q.Get("name"),
		Language:  q.Get("language"),
		Genre:     q.Get("genre"),
		Category:  q.Get("category"),
		RatingMin: intParam(q.Get("ratingMin")),
		RatingMax: intParam(q.Get("ratingMax")),
		StockMin:  intParam(q.Get("stockMin")),
		StockMax:  intParam(q.Get("stockMax")),
		CostMin:   floatParam(q.Get("costMin")),
		CostMax:   floatParam(q.Get("costMax")),
	}
}

func intParam(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &n
}

func floatParam(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}
