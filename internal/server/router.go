package server

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/patronacct/draftboard/auth"
	"github.com/patronacct/draftboard/httpx"
	"github.com/patronacct/draftboard/internal/config"
	"github.com/patronacct/draftboard/internal/handlers"
	"github.com/patronacct/draftboard/internal/models"
	"github.com/patronacct/draftboard/internal/pdf"
	"github.com/patronacct/draftboard/internal/policy"
	"github.com/patronacct/draftboard/internal/workflow"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, renderer pdf.Renderer) http.Handler {
	mux := http.NewServeMux()

	// RequireAuth drops sessions whose user was deleted or deactivated.
	auth.SetUserVerifier(func(_ context.Context, uid string) bool {
		var count int64
		err := db.Model(&models.User{}).
			Where("id = ? AND is_active = ?", uid, true).
			Limit(1).Count(&count).Error
		return err == nil && count > 0
	})

	g := policy.New()
	sessions := workflow.NewSessions()

	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	authHandler := handlers.NewAuthHandler(db)
	authHandler.Register(mux)
	mux.Handle("/auth/me", protect(authHandler.Me))

	handlers.NewDraftHandler(db, sessions, g).Register(mux, protect)
	handlers.NewTemplateHandler(db, g).Register(mux, protect)
	handlers.NewResolutionHandler(db, g, renderer).Register(mux, protect)
	handlers.NewClientHandler(db, g).Register(mux, protect)
	handlers.NewAdminHandler(db, g).Register(mux, protect)

	return withRecover(withLogging(auth.Middleware(mux)))
}

// protect wraps a handler func with the session requirement. The identity
// middleware itself sits at the mux root so public routes can also see who
// is asking.
func protect(fn http.HandlerFunc) http.Handler {
	return auth.RequireAuth(fn)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		config.Logger().WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   sw.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				config.Logger().WithField("panic", rec).Error("recovered")
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
