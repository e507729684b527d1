package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/nsharda/newscheck/internal/auth"
	"github.com/nsharda/newscheck/internal/config"
	"github.com/nsharda/newscheck/internal/email"
	"github.com/nsharda/newscheck/internal/handler"
	"github.com/nsharda/newscheck/internal/middleware"
	"github.com/nsharda/newscheck/internal/ocr"
	"github.com/nsharda/newscheck/internal/store"
)

type Server struct {
	db           *sql.DB
	userStore    *store.UserStore
	sessionStore *store.SessionStore
	authH        *handler.AuthHandler
	predictH     *handler.PredictHandler
	pageH        *handler.PageHandler
	rateLimiter  *middleware.RateLimiter
	logger       *slog.Logger
}

// New wires stores, services, and handlers over the open database and the
// loaded classification model.
func New(db *sql.DB, model handler.Classifier, cfg *config.Config, logger *slog.Logger) *Server {
	userStore := store.NewUserStore(db)
	sessionStore := store.NewSessionStore(db)
	historyStore := store.NewHistoryStore(db)

	resetTokens := auth.NewResetTokens(cfg.SecretKey, cfg.ResetTokenSalt)
	mailClient := email.NewClient(cfg.Email.Host, cfg.Email.Port, cfg.Email.Username, cfg.Email.Password, cfg.Email.From)
	ocrEngine := ocr.NewEngine(cfg.TesseractPath)

	return &Server{
		db:           db,
		userStore:    userStore,
		sessionStore: sessionStore,
		authH:        handler.NewAuthHandler(userStore, sessionStore, resetTokens, mailClient, cfg.BaseURL, logger.With("component", "auth")),
		predictH:     handler.NewPredictHandler(model, ocrEngine, historyStore, logger.With("component", "predict")),
		pageH:        handler.NewPageHandler(logger.With("component", "pages")),
		rateLimiter:  middleware.NewRateLimiter(),
		logger:       logger,
	}
}

// RateLimiter returns the limiter for periodic cleanup.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	requireAuth := middleware.RequireAuth(s.sessionStore, s.userStore)
	withSession := middleware.LoadSession(s.sessionStore, s.userStore)

	// Public routes
	mux.Handle("GET /{$}", withSession(http.HandlerFunc(s.pageH.Landing)))
	mux.HandleFunc("GET /signup", s.authH.SignupPage)
	mux.Handle("POST /signup", s.rateLimited(s.authH.Signup))
	mux.Handle("POST /register", s.rateLimited(s.authH.RegisterJSON))
	mux.HandleFunc("GET /login", s.authH.LoginPage)
	mux.Handle("POST /login", s.rateLimited(s.authH.Login))
	mux.HandleFunc("GET /logout", s.authH.Logout)
	mux.HandleFunc("GET /forgot_password", s.authH.ForgotPasswordPage)
	mux.Handle("POST /forgot_password", s.rateLimited(s.authH.ForgotPassword))
	mux.HandleFunc("GET /reset_password/{token}", s.authH.ResetPasswordPage)
	mux.HandleFunc("POST /reset_password/{token}", s.authH.ResetPassword)
	mux.HandleFunc("GET /chart-data", s.predictH.ChartData)
	mux.HandleFunc("GET /health", s.healthHandler)

	// Protected routes
	mux.Handle("GET /index", requireAuth(http.HandlerFunc(s.pageH.Index)))
	mux.Handle("POST /predict_text", requireAuth(http.HandlerFunc(s.predictH.PredictText)))
	mux.Handle("POST /predict_image", requireAuth(http.HandlerFunc(s.predictH.PredictImage)))
	mux.Handle("GET /history", requireAuth(http.HandlerFunc(s.predictH.History)))

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// rateLimited wraps credential endpoints with a per-IP limit.
func (s *Server) rateLimited(h http.HandlerFunc) http.Handler {
	return middleware.RateLimit(s.rateLimiter, middleware.RealIP, 10, time.Minute)(h)
}
