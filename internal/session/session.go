// Package session keeps the browser-side state of the storefront: the
// two bearer tokens (user and admin scope) and the pending order
// reference between order confirmation and payment. Each lives in its
// own cookie with no expiry metadata; an expired token is only noticed
// when an authenticated request fails.
package session

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"ovs/storefront/internal/ovs"
)

const (
	userCookie  = "ovs_token"
	adminCookie = "ovs_admin_token"
	orderCookie = "ovs_order"
)

// Session is an explicit snapshot of the caller's state, loaded once per
// request and passed to every authenticated operation.
type Session struct {
	UserToken    string
	AdminToken   string
	PendingOrder *ovs.Order
}

func (s Session) LoggedIn() bool      { return s.UserToken != "" }
func (s Session) AdminLoggedIn() bool { return s.AdminToken != "" }

// Authenticated reports whether either scope is present; general
// navigation guards treat the two scopes interchangeably.
func (s Session) Authenticated() bool { return s.LoggedIn() || s.AdminLoggedIn() }

type Manager struct {
	Secure bool
}

func NewManager(secure bool) *Manager {
	return &Manager{Secure: secure}
}

func (m *Manager) Load(r *http.Request) Session {
	var s Session
	if c, err := r.Cookie(userCookie); err == nil {
		s.UserToken = c.Value
	}
	if c, err := r.Cookie(adminCookie); err == nil {
		s.AdminToken = c.Value
	}
	if c, err := r.Cookie(orderCookie); err == nil {
		if order, err := decodeOrder(c.Value); err == nil {
			s.PendingOrder = order
		}
	}
	return s
}

func (m *Manager) SetUserToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, m.cookie(userCookie, token, 0))
}

func (m *Manager) SetAdminToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, m.cookie(adminCookie, token, 0))
}

func (m *Manager) ClearUser(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie(userCookie, "", -1))
}

func (m *Manager) ClearAdmin(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie(adminCookie, "", -1))
}

func (m *Manager) SetPendingOrder(w http.ResponseWriter, order ovs.Order) error {
	encoded, err := encodeOrder(order)
	if err != nil {
		return err
	}
	http.SetCookie(w, m.cookie(orderCookie, encoded, 0))
	return nil
}

func (m *Manager) ClearPendingOrder(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie(orderCookie, "", -1))
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func encodeOrder(order ovs.Order) (string, error) {
	data, err := json.Marshal(order)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func decodeOrder(value string) (*ovs.Order, error) {
	data, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, err
	}
	var order ovs.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
