package handler

import (
	"net/http"

	"github.com/msomdec/lotes-map/internal/service"
)

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, plots *service.PlotService, auth *service.AuthService, sessions *service.SessionService, limiter *service.TokenBucket, cookieSecure bool) {
	plotHandler := NewPlotHandler(plots)
	authHandler := NewAuthHandler(auth, sessions, cookieSecure)

	withSession := func(h http.HandlerFunc) http.Handler {
		return LoadSession(sessions, h)
	}
	limited := func(h http.HandlerFunc) http.Handler {
		return RateLimit(limiter, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	mux.HandleFunc("GET /lotes", plotHandler.HandleList)
	mux.HandleFunc("GET /lotes/signals", plotHandler.HandleSignals)
	mux.HandleFunc("POST /lotes", plotHandler.HandleCreate)
	mux.Handle("POST /lotes/update/{id}", withSession(plotHandler.HandleUpdate))
	mux.HandleFunc("POST /lotes/delete", plotHandler.HandleDelete)
	mux.HandleFunc("POST /reset", plotHandler.HandleReset)

	mux.Handle("POST /auth/register", limited(authHandler.HandleRegister))
	mux.Handle("POST /auth/login", limited(authHandler.HandleLogin))
	mux.HandleFunc("POST /auth/logout", authHandler.HandleLogout)
	mux.Handle("GET /auth/me", withSession(authHandler.HandleMe))
}
