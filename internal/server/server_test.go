package server

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/nsharda/newscheck/internal/config"
	"github.com/nsharda/newscheck/internal/database"
	"github.com/nsharda/newscheck/internal/middleware"
)

type fixedClassifier struct{}

func (fixedClassifier) Classify(string) (string, float64) { return "REAL", 64.2 }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		BaseURL:        "http://localhost:8080",
		SecretKey:      "test-secret",
		ResetTokenSalt: "test-salt",
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(db, fixedClassifier{}, cfg, logger).Router()
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestProtectedRoutesRedirectToLogin(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/index", "/history"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusSeeOther {
			t.Errorf("%s: status = %d, want %d", path, rec.Code, http.StatusSeeOther)
		}
		if loc := rec.Header().Get("Location"); loc != "/login" {
			t.Errorf("%s: redirect = %q, want /login", path, loc)
		}
	}
}

func TestSignupLoginBrowse(t *testing.T) {
	router := newTestRouter(t)

	form := url.Values{
		"name":             {"Alice"},
		"email":            {"alice@example.com"},
		"password":         {"hunter2secret"},
		"confirm_password": {"hunter2secret"},
	}
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("signup status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	form = url.Values{
		"email":    {"alice@example.com"},
		"password": {"hunter2secret"},
	}
	req = httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d, want %d", rec.Code, http.StatusSeeOther)
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("login did not set a session cookie")
	}

	req = httptest.NewRequest(http.MethodGet, "/index", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("/index status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Alice") {
		t.Error("user name missing from dashboard")
	}
}

func TestLoginRateLimited(t *testing.T) {
	router := newTestRouter(t)

	form := url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrong"},
	}
	var last int
	for i := 0; i < 11; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.RemoteAddr = "203.0.113.9:4455"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("11th attempt status = %d, want %d", last, http.StatusTooManyRequests)
	}
}

func TestLandingIsPublic(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
