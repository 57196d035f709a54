package web

import (
	"net/http"
	"strconv"

	"ovs/storefront/internal/ovs"
)

// Payment form defaults carried over from the original client.
const (
	defaultValidFrom = "2020-01-01"
	defaultValidTo   = "2035-12-31"
)

type cartView struct {
	Page
	Cart         *ovs.Cart
	Total        float64
	PendingOrder *ovs.Order
	ValidFrom    string
	ValidTo      string
}

// CartPage drives the three-step flow on one screen: cart review with
// the shipping form, then the payment form once an order is pending.
// Subtotals and the grand total are recomputed on every render.
func (h *Handler) CartPage(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if !sess.LoggedIn() {
		redirectMsg(w, r, "/login", "Login first")
		return
	}

	cart, err := h.api.GetCart(r.Context(), sess.UserToken)
	if err != nil {
		h.log.WithError(err).Warn("cart fetch failed")
		cart = &ovs.Cart{}
	}

	h.render(w, "cart", cartView{
		Page:         Page{Session: sess, Message: r.URL.Query().Get("msg")},
		Cart:         cart,
		Total:        cart.Total(),
		PendingOrder: sess.PendingOrder,
		ValidFrom:    defaultValidFrom,
		ValidTo:      defaultValidTo,
	})
}

// UpdateCartItem writes the new quantity and redirects back to the cart,
// which re-reads the source of truth. No optimistic local update.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
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

	if err := h.api.UpdateCartItem(r.Context(), sess.UserToken, vcdID, quantity); err != nil {
		redirectMsg(w, r, "/cart", apiMessage(err, "Failed to update cart"))
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if !sess.LoggedIn() {
		redirectMsg(w, r, "/login", "Login first")
		return
	}

	if err := h.api.RemoveCartItem(r.Context(), sess.UserToken, r.FormValue("vcdId")); err != nil {
		redirectMsg(w, r, "/cart", apiMessage(err, "Failed to remove item"))
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

type shippingForm struct {
	Name         string `validate:"required"`
	AddressLine1 string `validate:"required"`
	AddressLine2 string
	City         string `validate:"required"`
	State        string `validate:"required"`
	Zip          string `validate:"required"`
	Country      string `validate:"required"`
}

// ConfirmOrder creates an order from the shipping details. Success moves
// the screen to the payment step; failure leaves the cart untouched and
// surfaces the message.
func (h *Handler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if !sess.LoggedIn() {
		redirectMsg(w, r, "/login", "Login first")
		return
	}

	form := shippingForm{
		Name:         r.FormValue("name"),
		AddressLine1: r.FormValue("addressLine1"),
		AddressLine2: r.FormValue("addressLine2"),
		City:         r.FormValue("city"),
		State:        r.FormValue("state"),
		Zip:          r.FormValue("zip"),
		Country:      r.FormValue("country"),
	}
	if err := validate.Struct(form); err != nil {
		redirectMsg(w, r, "/cart", validationMessage(err))
		return
	}

	order, err := h.api.ConfirmOrder(r.Context(), sess.UserToken, ovs.Shipping{
		Name:         form.Name,
		AddressLine1: form.AddressLine1,
		AddressLine2: form.AddressLine2,
		City:         form.City,
		State:        form.State,
		Zip:          form.Zip,
		Country:      form.Country,
	})
	if err != nil {
		redirectMsg(w, r, "/cart", apiMessage(err, "Order failed"))
		return
	}

	if err := h.sessions.SetPendingOrder(w, *order); err != nil {
		h.log.WithError(err).Error("failed to store pending order")
		redirectMsg(w, r, "/cart", "Order failed")
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

type paymentForm struct {
	CreditCardNumber string `validate:"required"`
	ValidFrom        string `validate:"required"`
	ValidTo          string `validate:"required"`
}

// MakePayment attempts the charge. Success discards the pending order so
// the next render shows the refetched (expected empty) cart; failure
// keeps the order for retry.
func (h *Handler) MakePayment(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if !sess.LoggedIn() {
		redirectMsg(w, r, "/login", "Login first")
		return
	}

	form := paymentForm{
		CreditCardNumber: r.FormValue("creditCardNumber"),
		ValidFrom:        r.FormValue("validFrom"),
		ValidTo:          r.FormValue("validTo"),
	}
	if err := validate.Struct(form); err != nil {
		redirectMsg(w, r, "/cart", validationMessage(err))
		return
	}

	result, err := h.api.MakePayment(r.Context(), sess.UserToken, ovs.PaymentRequest{
		CreditCardNumber: form.CreditCardNumber,
		ValidFrom:        form.ValidFrom,
		ValidTo:          form.ValidTo,
	})
	if err != nil {
		redirectMsg(w, r, "/cart", apiMessage(err, "Payment failed"))
		return
	}

	h.sessions.ClearPendingOrder(w)
	redirectMsg(w, r, "/cart", "Payment successful. Charged: "+strconv.FormatFloat(result.TotalCharged, 'f', 2, 64))
}
