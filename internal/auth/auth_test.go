package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMockAuthLoginCreatesSession(t *testing.T) {
	m := NewMockAuth()

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	rec := httptest.NewRecorder()
	m.LoginHandler(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session_id" {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("login did not set session_id cookie")
	}

	// Session cookie grants access through the middleware
	var gotUser *User
	protected := m.Middleware(func(w http.ResponseWriter, r *http.Request) {
		gotUser = GetUser(r)
	})

	req = httptest.NewRequest(http.MethodGet, "/api/draft/state", nil)
	req.AddCookie(sessionCookie)
	rec = httptest.NewRecorder()
	protected(rec, req)

	if gotUser == nil {
		t.Fatal("middleware did not attach user to context")
	}
	if !IsAdmin(gotUser) {
		t.Error("dev user should be a commissioner")
	}
}

func TestMockAuthMiddlewareRejectsMissingSession(t *testing.T) {
	m := NewMockAuth()

	called := false
	protected := m.Middleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/draft/state", nil)
	rec := httptest.NewRecorder()
	protected(rec, req)

	if called {
		t.Error("handler should not run without a session")
	}
	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want redirect to login", rec.Code)
	}
}

func TestMockAuthLogoutInvalidatesSession(t *testing.T) {
	m := NewMockAuth()

	rec := httptest.NewRecorder()
	m.LoginHandler(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session_id" {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("login did not set session_id cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/logout", nil)
	req.AddCookie(sessionCookie)
	m.LogoutHandler(httptest.NewRecorder(), req)

	called := false
	protected := m.Middleware(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})
	req = httptest.NewRequest(http.MethodGet, "/api/draft/state", nil)
	req.AddCookie(sessionCookie)
	protected(httptest.NewRecorder(), req)

	if called {
		t.Error("session should be invalid after logout")
	}
}

func TestIsAdmin(t *testing.T) {
	if IsAdmin(nil) {
		t.Error("nil user should not be admin")
	}
	if IsAdmin(&User{Groups: []string{"users"}}) {
		t.Error("plain user should not be admin")
	}
	if !IsAdmin(&User{Groups: []string{"users", "commissioners"}}) {
		t.Error("commissioner should be admin")
	}
}

func TestAuthentikAuthEndpoints(t *testing.T) {
	a := NewAuthentikAuth(&AuthentikConfig{
		BaseURL:      "https://auth.example.com",
		ClientID:     "draft",
		ClientSecret: "secret",
		RedirectURL:  "https://draft.example.com/auth/callback",
	})

	if got := a.oauth2Config.Endpoint.AuthURL; got != "https://auth.example.com/application/o/authorize/" {
		t.Errorf("AuthURL = %q", got)
	}
	if got := a.oauth2Config.Endpoint.TokenURL; got != "https://auth.example.com/application/o/token/" {
		t.Errorf("TokenURL = %q", got)
	}
	if len(a.oauth2Config.Scopes) == 0 {
		t.Error("default scopes should be applied")
	}
}

func TestAuthentikCallbackRejectsBadState(t *testing.T) {
	a := NewAuthentikAuth(&AuthentikConfig{BaseURL: "https://auth.example.com"})

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?state=forged", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "expected"})
	rec := httptest.NewRecorder()
	a.CallbackHandler(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
