package main

import (
	"net/http"

	"github.com/abezemskiy/immersilearn/internal/repositories/identity"
	"github.com/abezemskiy/immersilearn/internal/server/connection/middlewares/forbider"
	"github.com/abezemskiy/immersilearn/internal/server/handlers"
	"github.com/abezemskiy/immersilearn/internal/server/identity/auth"
	"github.com/abezemskiy/immersilearn/internal/server/logger"
	"github.com/abezemskiy/immersilearn/internal/server/metrics"
	"github.com/abezemskiy/immersilearn/internal/server/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// RouterOptions - настройки транспорта, не относящиеся к логике аутентификации.
type RouterOptions struct {
	AllowedOrigins []string // источники для CORS
	SecureCookie   bool     // cookie с токеном только по HTTPS
}

// Router - дирижирует обработку http запросов к серверу.
func Router(authn identity.Authenticator, stor storage.IServerStorage, opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(func(h http.Handler) http.Handler {
		return logger.RequestLogger(h)
	})

	authMiddleware := auth.Middleware(authn)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", handlers.RegisterHandler(authn, identity.KindUser))
			r.Post("/signup-professor", handlers.RegisterHandler(authn, identity.KindProfessor))
			r.Post("/login", handlers.LoginHandler(authn, identity.KindUser, handlers.CookieOptions{}))
			// преподавателю токен дополнительно передается в httpOnly cookie
			r.Post("/login-professor", handlers.LoginHandler(authn, identity.KindProfessor,
				handlers.CookieOptions{Enabled: true, Secure: opts.SecureCookie}))
			r.With(authMiddleware).Get("/me", handlers.MeHandler(authn))
		})

		r.Route("/leaderboard", func(r chi.Router) {
			r.Get("/", handlers.GetLeaderboardHandler(stor))
			r.With(authMiddleware).Post("/", handlers.AddScoreHandler(stor))
		})

		r.Route("/progress", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/{userID}", handlers.GetProgressHandler(stor))
			r.With(forbider.ForeignForbider("userID")).Post("/update-points/{userID}", handlers.UpdatePointsHandler(stor))
		})
	})

	r.Get("/ping", handlers.PingHandler(stor))
	r.Handle("/metrics", metrics.Handler())

	// Определяем маршрут по умолчанию для некорректных запросов
	r.NotFound(handlers.HandleOtherRequest())

	return r
}
