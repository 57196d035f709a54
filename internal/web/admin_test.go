package web_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"ovs/storefront/internal/ovs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOVS records admin mutations while serving canned list responses.
type fakeOVS struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeOVS) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			f.mu.Lock()
			f.calls = append(f.calls, r.Method+" "+r.URL.Path+" "+r.Header.Get("Authorization"))
			f.mu.Unlock()
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{}`))
			return
		}
		switch {
		case r.URL.Path == "/api/stores":
			json.NewEncoder(w).Encode([]ovs.Store{
				{StoreID: "s1", Address: ovs.Address{Place: "Pune", State: "MH"}},
			})
		case strings.HasSuffix(r.URL.Path, "/vcds"):
			json.NewEncoder(w).Encode([]ovs.VCD{
				{VCDID: "v1", VCDName: "Some Movie", Language: "English", Category: "Movie", Rating: 4, Quantity: 2, Cost: 9.99},
			})
		default:
			http.NotFound(w, r)
		}
	}
}

func TestAdminDashboard_RedirectsWithoutAdminToken(t *testing.T) {
	h, sessions := newHandler("http://unused")

	// A user token alone does not open the admin screens.
	r := withCookies(httptest.NewRequest(http.MethodGet, "/admin", nil), func(w http.ResponseWriter) {
		sessions.SetUserToken(w, "user-token")
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))
}

func TestAdminLoginForm_RedirectsWhenAdminAuthenticated(t *testing.T) {
	h, sessions := newHandler("http://unused")
	r := withCookies(httptest.NewRequest(http.MethodGet, "/admin/login", nil), func(w http.ResponseWriter) {
		sessions.SetAdminToken(w, "admin-token")
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestAdminLogin_SetsAdminCookie(t *testing.T) {
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/admin/login", r.URL.Path)
		json.NewEncoder(w).Encode(ovs.TokenResponse{Token: "admin-token"})
	}))
	defer remote.Close()

	h, _ := newHandler(remote.URL)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, postForm("/admin/login", url.Values{"emailId": {"a@b.com"}, "password": {"pw"}}))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
	c := findCookie(w.Result().Cookies(), "ovs_admin_token")
	require.NotNil(t, c)
	assert.Equal(t, "admin-token", c.Value)
}

func TestAdminDashboard_ListsStoresAndSelectedCatalog(t *testing.T) {
	fake := &fakeOVS{}
	remote := httptest.NewServer(fake.handler())
	defer remote.Close()

	h, sessions := newHandler(remote.URL)
	r := withCookies(httptest.NewRequest(http.MethodGet, "/admin?store=s1", nil), func(w http.ResponseWriter) {
		sessions.SetAdminToken(w, "admin-token")
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Pune")
	assert.Contains(t, body, "Some Movie")
}

func TestAdminCreateStore(t *testing.T) {
	fake := &fakeOVS{}
	remote := httptest.NewServer(fake.handler())
	defer remote.Close()

	h, sessions := newHandler(remote.URL)
	form := url.Values{
		"state": {"MH"}, "place": {"Pune"}, "street": {"FC Road"},
		"zip": {"411001"}, "phoneNumber": {"123"},
	}
	r := withCookies(postForm("/admin/stores", form), func(w http.ResponseWriter) {
		sessions.SetAdminToken(w, "admin-token")
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
	require.Len(t, fake.calls, 1)
	assert.Equal(t, "POST /api/stores Bearer admin-token", fake.calls[0])
}

func TestAdminUpdateAndDeleteVCD(t *testing.T) {
	fake := &fakeOVS{}
	remote := httptest.NewServer(fake.handler())
	defer remote.Close()

	h, sessions := newHandler(remote.URL)
	withAdmin := func(r *http.Request) *http.Request {
		return withCookies(r, func(w http.ResponseWriter) {
			sessions.SetAdminToken(w, "admin-token")
		})
	}

	form := url.Values{
		"vcdName": {"Some Movie"}, "language": {"English"}, "category": {"Movie"},
		"rating": {"4"}, "quantity": {"2"}, "cost": {"9.99"},
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, withAdmin(postForm("/admin/stores/s1/vcds/v1", form)))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin?store=s1", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, withAdmin(postForm("/admin/stores/s1/vcds/v1/delete", url.Values{})))
	assert.Equal(t, http.StatusSeeOther, w.Code)

	require.Len(t, fake.calls, 2)
	assert.Equal(t, "PUT /api/stores/s1/vcds/v1 Bearer admin-token", fake.calls[0])
	assert.Equal(t, "DELETE /api/stores/s1/vcds/v1 Bearer admin-token", fake.calls[1])
}

func TestAdminCreateVCD_RatingOutOfRangeRejected(t *testing.T) {
	fake := &fakeOVS{}
	remote := httptest.NewServer(fake.handler())
	defer remote.Close()

	h, sessions := newHandler(remote.URL)
	form := url.Values{
		"vcdName": {"X"}, "language": {"English"}, "category": {"Movie"},
		"rating": {"9"}, "quantity": {"1"}, "cost": {"1"},
	}
	r := withCookies(postForm("/admin/stores/s1/vcds", form), func(w http.ResponseWriter) {
		sessions.SetAdminToken(w, "admin-token")
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, w.Header().Get("Location"), "Rating")
	assert.Empty(t, fake.calls)
}

func TestAdminDeleteStore_ClearsSelectionWhenSelectedDeleted(t *testing.T) {
	fake := &fakeOVS{}
	remote := httptest.NewServer(fake.handler())
	defer remote.Close()

	h, sessions := newHandler(remote.URL)
	r := withCookies(postForm("/admin/stores/s1/delete", url.Values{"selectedStore": {"s1"}}), func(w http.ResponseWriter) {
		sessions.SetAdminToken(w, "admin-token")
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin", w.Header().Get("Location"))
}

func TestAdminLogout_ClearsAdminCookie(t *testing.T) {
	h, sessions := newHandler("http://unused")
	r := withCookies(postForm("/admin/logout", url.Values{}), func(w http.ResponseWriter) {
		sessions.SetAdminToken(w, "admin-token")
	})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	c := findCookie(w.Result().Cookies(), "ovs_admin_token")
	require.NotNil(t, c)
	assert.Less(t, c.MaxAge, 0)
}
