package web

import (
	"net/http"
	"strconv"

	"ovs/storefront/internal/catalog"
	"ovs/storefront/internal/ovs"

	"github.com/go-chi/chi/v5"
)

type storeListView struct {
	Page
	Stores []ovs.Store
	State  string
	Place  string
}

// StoreList renders the store list. The state/place filter is the one
// query the remote API evaluates server-side; a failed fetch degrades to
// an empty list.
func (h *Handler) StoreList(w http.ResponseWriter, r *http.Request) {
	filter := ovs.StoreFilter{
		State: r.URL.Query().Get("state"),
		Place: r.URL.Query().Get("place"),
	}
	stores, err := h.api.ListStores(r.Context(), filter)
	if err != nil {
		h.log.WithError(err).Warn("store list fetch failed")
		stores = nil
	}
	h.render(w, "stores", storeListView{
		Page:   Page{Session: h.sessions.Load(r), Message: r.URL.Query().Get("msg")},
		Stores: stores,
		State:  filter.State,
		Place:  filter.Place,
	})
}

type storeCatalogView struct {
	Page
	StoreID  string
	VCDs     []ovs.VCD
	Category string
	Language string
	Sort     string
}

// StoreCatalog renders one store's items. Category/language filtering
// and cost/rating sorting happen here over the full fetched set.
func (h *Handler) StoreCatalog(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "storeID")
	vcds, err := h.api.StoreVCDs(r.Context(), storeID)
	if err != nil {
		h.log.WithError(err).WithField("store_id", storeID).Warn("store catalog fetch failed")
		vcds = nil
	}

	q := r.URL.Query()
	filter := catalog.Filter{
		Category: q.Get("category"),
		Language: q.Get("language"),
	}
	visible := catalog.Apply(vcds, filter)
	field, dir := catalog.ParseSort(q.Get("sort"))
	catalog.Sort(visible, field, dir)

	h.render(w, "store", storeCatalogView{
		Page:     Page{Session: h.sessions.Load(r), Message: q.Get("msg")},
		StoreID:  storeID,
		VCDs:     visible,
		Category: filter.Category,
		Language: filter.Language,
		Sort:     q.Get("sort"),
	})
}

// AddToCart adds a catalog row to the cart and bounces back to the
// screen the request came from.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if !sess.LoggedIn() {
		redirectMsg(w, r, "/login", "Login first")
		return
	}

	vcdID := r.FormValue("vcdId")
	quantity, _ := strconv.Atoi(r.FormValue("quantity"))
	if quantity < 1 {
		quantity = 1
	}
	back := r.FormValue("back")
	if back == "" {
		back = "/stores"
	}

	if err := h.api.AddToCart(r.Context(), sess.UserToken, vcdID, quantity); err != nil {
		redirectMsg(w, r, back, apiMessage(err, "Failed to add to cart"))
		return
	}
	redirectMsg(w, r, back, "Added to cart")
}
