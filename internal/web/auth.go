package web

import (
	"net/http"

	"ovs/storefront/internal/ovs"
)

type authView struct {
	Page
}

// LoginForm redirects authenticated visitors away, matching the route
// guard on the original login screen.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if sess.Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, "login", authView{Page{Session: sess, Message: r.URL.Query().Get("msg")}})
}

type credentialsForm struct {
	EmailID  string `validate:"required,email"`
	Password string `validate:"required"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	form := credentialsForm{
		EmailID:  r.FormValue("emailId"),
		Password: r.FormValue("password"),
	}
	if err := validate.Struct(form); err != nil {
		redirectMsg(w, r, "/login", validationMessage(err))
		return
	}

	token, err := h.api.Login(r.Context(), ovs.Credentials{EmailID: form.EmailID, Password: form.Password})
	if err != nil {
		redirectMsg(w, r, "/login", apiMessage(err, "Login failed"))
		return
	}

	h.sessions.SetUserToken(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if sess.Authenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, "register", authView{Page{Session: sess, Message: r.URL.Query().Get("msg")}})
}

type registerForm struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	EmailID   string `validate:"required,email"`
	PhoneNo   string `validate:"required"`
	Password  string `validate:"required"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	form := registerForm{
		FirstName: r.FormValue("firstName"),
		LastName:  r.FormValue("lastName"),
		EmailID:   r.FormValue("emailId"),
		PhoneNo:   r.FormValue("phoneNo"),
		Password:  r.FormValue("password"),
	}
	if err := validate.Struct(form); err != nil {
		redirectMsg(w, r, "/register", validationMessage(err))
		return
	}

	resp, err := h.api.Register(r.Context(), ovs.RegisterRequest{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		EmailID:   form.EmailID,
		PhoneNo:   form.PhoneNo,
		Password:  form.Password,
	})
	if err != nil {
		redirectMsg(w, r, "/register", apiMessage(err, "Registration failed"))
		return
	}
	redirectMsg(w, r, "/login", "Registered. Your UserID: "+resp.UserID)
}

// Logout clears the user token and resets navigation to the home route.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearUser(w)
	h.sessions.ClearPendingOrder(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) AdminLoginForm(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	if sess.AdminLoggedIn() {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	h.render(w, "admin_login", authView{Page{Session: sess, Message: r.URL.Query().Get("msg")}})
}

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	form := credentialsForm{
		EmailID:  r.FormValue("emailId"),
		Password: r.FormValue("password"),
	}
	if err := validate.Struct(form); err != nil {
		redirectMsg(w, r, "/admin/login", validationMessage(err))
		return
	}

	token, err := h.api.AdminLogin(r.Context(), ovs.Credentials{EmailID: form.EmailID, Password: form.Password})
	if err != nil {
		redirectMsg(w, r, "/admin/login", apiMessage(err, "Admin login failed"))
		return
	}

	h.sessions.SetAdminToken(w, token)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearAdmin(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
