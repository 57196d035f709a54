package web

import (
	"net/http"
	"net/url"
	"strconv"

	"ovs/storefront/internal/ovs"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

type adminView struct {
	Page
	Stores        []ovs.Store
	SelectedStore string
	StoreVCDs     []ovs.VCD
}

// AdminDashboard lists stores and, when one is selected, that store's
// catalog. The two fetches run concurrently.
func (h *Handler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if !sess.AdminLoggedIn() {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	selected := r.URL.Query().Get("store")

	var stores []ovs.Store
	var vcds []ovs.VCD
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		stores, err = h.api.ListStores(ctx, ovs.StoreFilter{})
		return err
	})
	if selected != "" {
		g.Go(func() error {
			var err error
			vcds, err = h.api.StoreVCDs(ctx, selected)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		h.log.WithError(err).Warn("admin dashboard fetch failed")
	}

	h.render(w, "admin", adminView{
		Page:          Page{Session: sess, Message: r.URL.Query().Get("msg")},
		Stores:        stores,
		SelectedStore: selected,
		StoreVCDs:     vcds,
	})
}

// adminGuard loads the session and redirects to the admin login when the
// admin token is missing. ok is false when the caller must return.
func (h *Handler) adminGuard(w http.ResponseWriter, r *http.Request) (string, bool) {
	sess := h.sessions.Load(r)
	if !sess.AdminLoggedIn() {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return "", false
	}
	return sess.AdminToken, true
}

func adminPath(selectedStore string) string {
	if selectedStore == "" {
		return "/admin"
	}
	return "/admin?store=" + url.QueryEscape(selectedStore)
}

type storeForm struct {
	State       string `validate:"required"`
	Place       string `validate:"required"`
	Street      string
	Zip         string
	PhoneNumber string
}

func storeInputFromForm(r *http.Request) (ovs.StoreInput, error) {
	form := storeForm{
		State:       r.FormValue("state"),
		Place:       r.FormValue("place"),
		Street:      r.FormValue("street"),
		Zip:         r.FormValue("zip"),
		PhoneNumber: r.FormValue("phoneNumber"),
	}
	if err := validate.Struct(form); err != nil {
		return ovs.StoreInput{}, err
	}
	return ovs.StoreInput{
		Address: ovs.Address{
			State:  form.State,
			Place:  form.Place,
			Street: form.Street,
			Zip:    form.Zip,
		},
		PhoneNumber: form.PhoneNumber,
	}, nil
}

func (h *Handler) AdminCreateStore(w http.ResponseWriter, r *http.Request) {
	token, ok := h.adminGuard(w, r)
	if !ok {
		return
	}
	input, err := storeInputFromForm(r)
	if err != nil {
		redirectMsg(w, r, "/admin", validationMessage(err))
		return
	}
	if err := h.api.CreateStore(r.Context(), token, input); err != nil {
		redirectMsg(w, r, "/admin", apiMessage(err, "Failed to add store"))
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *Handler) AdminUpdateStore(w http.ResponseWriter, r *http.Request) {
	token, ok := h.adminGuard(w, r)
	if !ok {
		return
	}
	storeID := chi.URLParam(r, "storeID")
	input, err := storeInputFromForm(r)
	if err != nil {
		redirectMsg(w, r, "/admin", validationMessage(err))
		return
	}
	if err := h.api.UpdateStore(r.Context(), token, storeID, input); err != nil {
		redirectMsg(w, r, "/admin", apiMessage(err, "Failed to save store"))
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// AdminDeleteStore removes a store; deleting the currently selected
// store also drops the catalog selection.
func (h *Handler) AdminDeleteStore(w http.ResponseWriter, r *http.Request) {
	token, ok := h.adminGuard(w, r)
	if !ok {
		return
	}
	storeID := chi.URLParam(r, "storeID")
	if err := h.api.DeleteStore(r.Context(), token, storeID); err != nil {
		redirectMsg(w, r, "/admin", apiMessage(err, "Failed to delete store"))
		return
	}
	selected := r.FormValue("selectedStore")
	if selected == storeID {
		selected = ""
	}
	http.Redirect(w, r, adminPath(selected), http.StatusSeeOther)
}

type vcdForm struct {
	VCDName  string  `validate:"required"`
	Language string  `validate:"required"`
	Category string  `validate:"required"`
	Genre    string
	Rating   int     `validate:"min=1,max=5"`
	Quantity int     `validate:"min=0"`
	Cost     float64 `validate:"min=0"`
}

func vcdInputFromForm(r *http.Request) (ovs.VCDInput, error) {
	rating, _ := strconv.Atoi(r.FormValue("rating"))
	quantity, _ := strconv.Atoi(r.FormValue("quantity"))
	cost, _ := strconv.ParseFloat(r.FormValue("cost"), 64)
	form := vcdForm{
		VCDName:  r.FormValue("vcdName"),
		Language: r.FormValue("language"),
		Category: r.FormValue("category"),
		Genre:    r.FormValue("genre"),
		Rating:   rating,
		Quantity: quantity,
		Cost:     cost,
	}
	if err := validate.Struct(form); err != nil {
		return ovs.VCDInput{}, err
	}
	return ovs.VCDInput{
		VCDName:  form.VCDName,
		Language: form.Language,
		Category: form.Category,
		Genre:    form.Genre,
		Rating:   form.Rating,
		Quantity: form.Quantity,
		Cost:     form.Cost,
	}, nil
}

func (h *Handler) AdminCreateVCD(w http.ResponseWriter, r *http.Request) {
	token, ok := h.adminGuard(w, r)
	if !ok {
		return
	}
	storeID := chi.URLParam(r, "storeID")
	input, err := vcdInputFromForm(r)
	if err != nil {
		redirectMsg(w, r, adminPath(storeID), validationMessage(err))
		return
	}
	if err := h.api.CreateVCD(r.Context(), token, storeID, input); err != nil {
		redirectMsg(w, r, adminPath(storeID), apiMessage(err, "Failed to add VCD"))
		return
	}
	http.Redirect(w, r, adminPath(storeID), http.StatusSeeOther)
}

func (h *Handler) AdminUpdateVCD(w http.ResponseWriter, r *http.Request) {
	token, ok := h.adminGuard(w, r)
	if !ok {
		return
	}
	storeID := chi.URLParam(r, "storeID")
	vcdID := chi.URLParam(r, "vcdID")
	input, err := vcdInputFromForm(r)
	if err != nil {
		redirectMsg(w, r, adminPath(storeID), validationMessage(err))
		return
	}
	if err := h.api.UpdateVCD(r.Context(), token, storeID, vcdID, input); err != nil {
		redirectMsg(w, r, adminPath(storeID), apiMessage(err, "Failed to save VCD"))
		return
	}
	http.Redirect(w, r, adminPath(storeID), http.StatusSeeOther)
}

func (h *Handler) AdminDeleteVCD(w http.ResponseWriter, r *http.Request) {
	token, ok := h.adminGuard(w, r)
	if !ok {
		return
	}
	storeID := chi.URLParam(r, "storeID")
	vcdID := chi.URLParam(r, "vcdID")
	if err := h.api.DeleteVCD(r.Context(), token, storeID, vcdID); err != nil {
		redirectMsg(w, r, adminPath(storeID), apiMessage(err, "Failed to delete VCD"))
		return
	}
	http.Redirect(w, r, adminPath(storeID), http.StatusSeeOther)
}
