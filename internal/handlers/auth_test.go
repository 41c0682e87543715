package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"slideforge/internal/repository"
	"slideforge/internal/service"
)

func postForm(r http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	return w
}

func get(r http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(value string) *http.Cookie {
	return &http.Cookie{Name: sessionCookieName, Value: value}
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegister_SuccessRedirectsToLogin(t *testing.T) {
	auth := &mockAuth{registerID: 5, token: "tok5"}
	r := newTestRouter(&service.Service{Authorization: auth}, t.TempDir())

	w := postForm(r, "/register", url.Values{
		"username":         {"alice"},
		"email":            {"alice@example.com"},
		"password":         {"hunter22"},
		"confirm_password": {"hunter22"},
	})

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Fatalf("redirect to %q, want /login", loc)
	}
	if c := findCookie(w, sessionCookieName); c == nil || c.Value != "tok5" {
		t.Fatalf("session cookie not set: %+v", c)
	}
	if c := findCookie(w, flashCookieName); c == nil {
		t.Fatal("flash cookie not set")
	}
}

func TestRegister_Duplicate(t *testing.T) {
	auth := &mockAuth{registerErr: repository.ErrDuplicateUser}
	r := newTestRouter(&service.Service{Authorization: auth}, t.TempDir())

	w := postForm(r, "/register", url.Values{
		"username":         {"alice"},
		"email":            {"alice@example.com"},
		"password":         {"hunter22"},
		"confirm_password": {"hunter22"},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "already taken") {
		t.Fatalf("body missing duplicate message: %s", w.Body.String())
	}
}

func TestRegister_FormValidation(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}}, t.TempDir())

	cases := []struct {
		name    string
		form    url.Values
		wantMsg string
	}{
		{
			name: "invalid email",
			form: url.Values{
				"username":         {"alice"},
				"email":            {"not-an-email"},
				"password":         {"hunter22"},
				"confirm_password": {"hunter22"},
			},
			wantMsg: "valid email",
		},
		{
			name: "password mismatch",
			form: url.Values{
				"username":         {"alice"},
				"email":            {"alice@example.com"},
				"password":         {"hunter22"},
				"confirm_password": {"different"},
			},
			wantMsg: "Passwords do not match",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postForm(r, "/register", tc.form)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d", w.Code)
			}
			if !strings.Contains(w.Body.String(), tc.wantMsg) {
				t.Fatalf("body missing %q: %s", tc.wantMsg, w.Body.String())
			}
		})
	}
}

func TestLogin_FailureStaysOnPage(t *testing.T) {
	auth := &mockAuth{authErr: service.ErrInvalidCredentials}
	r := newTestRouter(&service.Service{Authorization: auth}, t.TempDir())

	w := postForm(r, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrong"},
	})

	// No redirect; the page re-renders with a generic message.
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Login unsuccessful") {
		t.Fatalf("body missing failure message: %s", w.Body.String())
	}
	if c := findCookie(w, sessionCookieName); c != nil {
		t.Fatalf("no session cookie expected, got %+v", c)
	}
}

func TestLogin_Success(t *testing.T) {
	auth := &mockAuth{authUser: testUser(), token: "tok1"}
	r := newTestRouter(&service.Service{Authorization: auth}, t.TempDir())

	w := postForm(r, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"hunter22"},
		"remember": {"true"},
	})

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); loc != "/home" {
		t.Fatalf("redirect to %q, want /home", loc)
	}
	c := findCookie(w, sessionCookieName)
	if c == nil || c.Value != "tok1" {
		t.Fatalf("session cookie not set: %+v", c)
	}
	// remember stretches the cookie past the browser session
	if c.MaxAge <= 0 {
		t.Fatalf("expected persistent cookie, MaxAge=%d", c.MaxAge)
	}
	if !auth.lastRemember {
		t.Fatal("remember flag not passed through")
	}
}

func TestLogin_WithoutRememberUsesSessionCookie(t *testing.T) {
	auth := &mockAuth{authUser: testUser(), token: "tok1"}
	r := newTestRouter(&service.Service{Authorization: auth}, t.TempDir())

	w := postForm(r, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"hunter22"},
	})

	c := findCookie(w, sessionCookieName)
	if c == nil {
		t.Fatal("session cookie not set")
	}
	if c.MaxAge != 0 {
		t.Fatalf("expected session-scoped cookie, MaxAge=%d", c.MaxAge)
	}
}

func TestLoginPage_AuthenticatedRedirectsHome(t *testing.T) {
	auth := authedMock(testUser())
	r := newTestRouter(&service.Service{Authorization: auth}, t.TempDir())

	w := get(r, "/login", sessionCookie("tok1"))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/home" {
		t.Fatalf("status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
}

func TestProfile_RequiresSession(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}}, t.TempDir())

	w := get(r, "/profile")
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Fatalf("status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
}

func TestProfile_ShowsUser(t *testing.T) {
	auth := authedMock(testUser())
	r := newTestRouter(&service.Service{Authorization: auth}, t.TempDir())

	w := get(r, "/profile", sessionCookie("tok1"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "alice") || !strings.Contains(body, "alice@example.com") {
		t.Fatalf("profile body missing user details: %s", body)
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	auth := authedMock(testUser())
	r := newTestRouter(&service.Service{Authorization: auth}, t.TempDir())

	w := get(r, "/logout", sessionCookie("tok1"))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Fatalf("status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
	c := findCookie(w, sessionCookieName)
	if c == nil || c.Value != "" || c.MaxAge >= 0 {
		t.Fatalf("session cookie not cleared: %+v", c)
	}
}

func TestCurrentUser_InvalidTokenTreatedAsAnonymous(t *testing.T) {
	auth := &mockAuth{parseErr: service.ErrInvalidToken}
	r := newTestRouter(&service.Service{Authorization: auth}, t.TempDir())

	w := get(r, "/profile", sessionCookie("garbage"))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Fatalf("status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
}

func TestHome_PublicForAnonymous(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}}, t.TempDir())

	w := get(r, "/home")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
