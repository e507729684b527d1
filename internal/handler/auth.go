package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/nsharda/newscheck/internal/auth"
	"github.com/nsharda/newscheck/internal/email"
	"github.com/nsharda/newscheck/internal/middleware"
	"github.com/nsharda/newscheck/internal/store"
)

// genericResetAck is shown for every /forgot_password submission, whether or
// not the address is registered, so the endpoint cannot be used to probe for
// accounts.
const genericResetAck = "If the email exists, a reset link has been sent."

// dummyPasswordHash is a bcrypt hash of an arbitrary string at the default
// cost, compared against when a login names an unknown email.
var dummyPasswordHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

type signupForm struct {
	Name  string
	Email string
}

type loginForm struct {
	Email string
}

type AuthHandler struct {
	users       *store.UserStore
	sessions    *store.SessionStore
	resetTokens *auth.ResetTokens
	mail        *email.Client
	baseURL     string
	logger      *slog.Logger
}

func NewAuthHandler(
	users *store.UserStore,
	sessions *store.SessionStore,
	resetTokens *auth.ResetTokens,
	mail *email.Client,
	baseURL string,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		users:       users,
		sessions:    sessions,
		resetTokens: resetTokens,
		mail:        mail,
		baseURL:     strings.TrimRight(baseURL, "/"),
		logger:      logger,
	}
}

// processRegistration validates and creates the account. Returns the
// user-facing message either way; a duplicate email is a soft failure.
func (h *AuthHandler) processRegistration(name, email, password string) (bool, string) {
	if name == "" || email == "" || password == "" {
		return false, "Please fill all fields."
	}

	_, err := h.users.Create(name, email, password)
	if errors.Is(err, store.ErrEmailTaken) {
		return false, "Email already registered."
	}
	if err != nil {
		h.logger.Error("create user", "error", err)
		return false, "Registration failed. Try again."
	}
	return true, "Registration successful! Please log in."
}

func (h *AuthHandler) SignupPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.logger, "signup.html", map[string]any{"FormData": signupForm{}})
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	emailAddr := store.NormalizeEmail(r.FormValue("email"))
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	form := signupForm{Name: name, Email: emailAddr}

	if password != confirm {
		render(w, h.logger, "signup.html", map[string]any{
			"Error":    "Passwords do not match.",
			"FormData": form,
		})
		return
	}

	ok, message := h.processRegistration(name, emailAddr, password)
	if ok {
		// Registration never establishes a session; the user logs in next.
		http.Redirect(w, r, "/login?registered=1", http.StatusSeeOther)
		return
	}

	render(w, h.logger, "signup.html", map[string]any{
		"Error":    message,
		"FormData": form,
	})
}

// RegisterJSON is the programmatic variant of signup for AJAX callers.
func (h *AuthHandler) RegisterJSON(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "error", "message": "Invalid form data."})
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	emailAddr := store.NormalizeEmail(r.FormValue("email"))
	password := r.FormValue("password")

	// Confirmation is checked only when the caller sends the field.
	if r.PostForm.Has("confirm_password") && password != r.PostForm.Get("confirm_password") {
		writeJSON(w, http.StatusOK, map[string]string{"status": "error", "message": "Passwords do not match."})
		return
	}

	ok, message := h.processRegistration(name, emailAddr, password)
	status := "error"
	if ok {
		status = "success"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status, "message": message})
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	var success string
	if r.URL.Query().Get("registered") == "1" {
		success = "Account created successfully. Please sign in to continue."
	}
	render(w, h.logger, "login.html", map[string]any{
		"SuccessMessage": success,
		"FormData":       loginForm{},
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	emailAddr := store.NormalizeEmail(r.FormValue("email"))
	password := r.FormValue("password")

	// One rejection message for unknown email and wrong password alike.
	reject := func() {
		render(w, h.logger, "login.html", map[string]any{
			"Error":    "Invalid email or password.",
			"FormData": loginForm{Email: emailAddr},
		})
	}

	user, err := h.users.GetByEmail(emailAddr)
	if err != nil {
		h.logger.Error("login lookup", "error", err)
		reject()
		return
	}
	if user == nil {
		// Burn a comparison against a throwaway hash so the unknown-email
		// path takes as long as a wrong password; the response timing must
		// not reveal whether the account exists.
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
		reject()
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		reject()
		return
	}

	sess, err := h.sessions.Create(user.ID)
	if err != nil {
		h.logger.Error("create session", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	// No MaxAge: the cookie lives as long as the browser session.
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})

	http.Redirect(w, r, "/index", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if sess, err := h.sessions.GetByToken(cookie.Value); err == nil && sess != nil {
			if err := h.sessions.Delete(sess.ID); err != nil {
				h.logger.Error("delete session", "error", err)
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.logger, "forgot_password.html", map[string]any{})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	emailAddr := store.NormalizeEmail(r.FormValue("email"))

	user, err := h.users.GetByEmail(emailAddr)
	if err != nil {
		h.logger.Error("forgot password lookup", "error", err)
	}
	if user == nil {
		render(w, h.logger, "forgot_password.html", map[string]any{"Info": genericResetAck})
		return
	}

	token, err := h.resetTokens.Issue(emailAddr)
	if err != nil {
		h.logger.Error("issue reset token", "error", err)
		render(w, h.logger, "forgot_password.html", map[string]any{"Error": "Unable to send reset email. Try again later."})
		return
	}

	link := h.baseURL + "/reset_password/" + token
	if err := h.mail.SendPasswordReset(emailAddr, link); err != nil {
		h.logger.Error("send reset email", "error", err)
		render(w, h.logger, "forgot_password.html", map[string]any{
			"Error": "Unable to send reset email: " + err.Error(),
		})
		return
	}

	render(w, h.logger, "forgot_password.html", map[string]any{"Info": genericResetAck})
}

func (h *AuthHandler) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if _, err := h.resetTokens.Verify(token); err != nil {
		render(w, h.logger, "reset_password.html", map[string]any{"Invalid": true})
		return
	}
	render(w, h.logger, "reset_password.html", map[string]any{"Token": token})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	emailAddr, err := h.resetTokens.Verify(token)
	if err != nil {
		render(w, h.logger, "reset_password.html", map[string]any{"Invalid": true})
		return
	}

	password := r.FormValue("password")
	confirm := r.FormValue("password2")
	if password == "" || password != confirm {
		render(w, h.logger, "reset_password.html", map[string]any{
			"Token": token,
			"Error": "Passwords do not match",
		})
		return
	}

	if err := h.users.UpdatePassword(emailAddr, password); err != nil {
		h.logger.Error("update password", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	render(w, h.logger, "reset_password.html", map[string]any{"Done": true})
}
