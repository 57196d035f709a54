package web

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"ovs/storefront/internal/ovs"
	"ovs/storefront/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

var validate = validator.New()

// Handler is the navigation shell: it maps URL paths to screens and
// gates them on session state.
type Handler struct {
	router   *chi.Mux
	api      *ovs.Client
	sessions *session.Manager
	log      *logrus.Logger
}

func NewHandler(api *ovs.Client, sessions *session.Manager, log *logrus.Logger) *Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	h := &Handler{
		router:   router,
		api:      api,
		sessions: sessions,
		log:      log,
	}
	router.Use(h.requestLogger)

	h.registerRoutes()
	return h
}

func (h *Handler) registerRoutes() {
	r := h.router

	r.Get("/healthz", h.HealthCheck)

	r.Get("/", h.StoreList)
	r.Get("/stores", h.StoreList)
	r.Get("/stores/{storeID}", h.StoreCatalog)
	r.Get("/search", h.Search)

	r.Get("/login", h.LoginForm)
	r.Post("/login", h.Login)
	r.Get("/register", h.RegisterForm)
	r.Post("/register", h.Register)
	r.Post("/logout", h.Logout)

	r.Post("/cart/add", h.AddToCart)
	r.Get("/cart", h.CartPage)
	r.Post("/cart/update", h.UpdateCartItem)
	r.Post("/cart/remove", h.RemoveCartItem)
	r.Post("/order/confirm", h.ConfirmOrder)
	r.Post("/payment", h.MakePayment)

	r.Get("/admin/login", h.AdminLoginForm)
	r.Post("/admin/login", h.AdminLogin)
	r.Post("/admin/logout", h.AdminLogout)
	r.Get("/admin", h.AdminDashboard)
	r.Post("/admin/stores", h.AdminCreateStore)
	r.Post("/admin/stores/{storeID}", h.AdminUpdateStore)
	r.Post("/admin/stores/{storeID}/delete", h.AdminDeleteStore)
	r.Post("/admin/stores/{storeID}/vcds", h.AdminCreateVCD)
	r.Post("/admin/stores/{storeID}/vcds/{vcdID}", h.AdminUpdateVCD)
	r.Post("/admin/stores/{storeID}/vcds/{vcdID}/delete", h.AdminDeleteVCD)

	// Unknown paths go back to the store list, like the SPA's catch-all.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.log.WithFields(logrus.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
			"request_id": middleware.GetReqID(r.Context()),
		}).Info("request")
	})
}

// apiMessage extracts the remote API's message for display, falling back
// to an action-specific phrase when there is none.
func apiMessage(err error, fallback string) string {
	var apiErr *ovs.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Message != "request failed" {
		return apiErr.Message
	}
	return fallback
}

// redirectMsg redirects with an inline flash message carried as a query
// parameter, surviving the POST-then-redirect cycle.
func redirectMsg(w http.ResponseWriter, r *http.Request, path, msg string) {
	if msg != "" {
		sep := "?"
		if u, err := url.Parse(path); err == nil && u.RawQuery != "" {
			sep = "&"
		}
		path += sep + "msg=" + url.QueryEscape(msg)
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// validationMessage turns the first failed rule into a displayable phrase.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "invalid value for " + verrs[0].Field()
	}
	return "invalid form input"
}
