// DevConnect is a social-networking backend: user registration and login
// with bearer tokens, per-user developer profiles with experience and
// education sub-collections, posts with likes/dislikes and comments, and a
// pass-through GitHub repositories lookup.
//
// @title DevConnect API
// @version 1.0
// @description Social network API for developers.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/user/devconnect-go/apperror"
	"github.com/user/devconnect-go/auth"
	"github.com/user/devconnect-go/config"
	"github.com/user/devconnect-go/db"
	"github.com/user/devconnect-go/posts"
	"github.com/user/devconnect-go/profile"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg(".env file not found or could not be loaded")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create database pool")
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	authService := auth.NewAuthService(pool, *cfg.Auth)
	authHandlers := auth.NewHandlers(authService)

	profileService := profile.NewProfileService(pool)
	githubClient := profile.NewGithubClient(*cfg.Github)
	profileHandlers := profile.NewProfileHandlers(profileService, githubClient)

	postService := posts.NewPostService(pool)
	postHandlers := posts.NewPostHandlers(postService)

	requireAuth := auth.JWTMiddleware(cfg.Auth)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "x-auth-token"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic recovery that renders the standard 500 body instead of an empty
	// response.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Error().Interface("panic", rvr).Str("path", r.URL.Path).Msg("panic in handler")
					auth.WriteError(w, r, apperror.NewInternalError("Server Error", nil))
				}
			}()
			next.ServeHTTP(w, r)
		})
	})

	r.Post("/api/users", authHandlers.HandleRegister())
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/", authHandlers.HandleLogin())
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", authHandlers.HandleCurrentUser())
		})
	})

	r.Route("/api/profile", func(r chi.Router) {
		profileHandlers.RegisterRoutes(r, requireAuth)
	})

	r.Route("/api/posts", func(r chi.Router) {
		r.Use(requireAuth)
		postHandlers.RegisterRoutes(r)
	})

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("server stopped gracefully")
}

// requestLogger logs one line per request with method, path, status and
// duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}
