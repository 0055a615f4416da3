package main

import (
	"context"
	_ "embed"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patitas/internal/auth"
	"patitas/internal/domain/collection"
	"patitas/internal/domain/storage"
	"patitas/internal/ids"
	"patitas/internal/mailer"
	"patitas/internal/notifications"
	"patitas/internal/ratelimiter"
	"patitas/internal/realtime"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

//go:embed swagger.json
var swaggerDoc []byte

type application struct {
	config        config
	store         *storage.Container
	logger        *zap.SugaredLogger
	mailer        mailer.Client
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	ids           *ids.Codec
	hub           *realtime.Hub
	push          notifications.PushSender
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	if app.config.rateLimiter.Enabled {
		r.Use(app.RateLimiterMiddleware)
	}

	r.Route("/v1", func(r chi.Router) {
		// live streams stay open past the request timeout
		r.Group(func(r chi.Router) {
			r.Use(app.OptionalAuthMiddleware)
			r.Get("/advice/live", app.liveListHandler(collection.Advice))
			r.Get("/recipes/live", app.liveListHandler(collection.Recipes))
			r.Get("/daycares/live", app.liveListHandler(collection.Daycares))
			r.Get("/advice/{id}/comments/live", app.liveCommentsHandler(collection.Advice))
			r.Get("/recipes/{id}/comments/live", app.liveCommentsHandler(collection.Recipes))
			r.Get("/daycares/{id}/comments/live", app.liveCommentsHandler(collection.Daycares))
		})

		r.Group(func(r chi.Router) {
			// Set a timeout value on the request context (ctx), that will signal through ctx.Done() that the request has timed out and further processing should be stopped
			r.Use(middleware.Timeout(60 * time.Second))

			r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
			r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

			r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(swaggerDoc)
			})
			r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/v1/swagger/doc.json")))

			// Public routes
			r.Route("/authentication", func(r chi.Router) {
				r.Post("/user", app.registerUserHandler)
				r.Post("/token", app.createTokenHandler)
				r.Post("/refresh", app.refreshTokenHandler)
				r.Post("/reset-password", app.requestResetPasswordHandler)
				r.Patch("/reset-password", app.resetPasswordHandler)
			})

			r.Route("/users", func(r chi.Router) {
				r.Use(app.AuthTokenMiddleware)
				r.Get("/me", app.getCurrentUserHandler)
				r.Post("/logout", app.logoutHandler)
				r.Put("/push-tokens", app.savePushTokenHandler)
				r.Delete("/push-tokens", app.removePushTokenHandler)
			})

			r.Route("/advice", func(r chi.Router) {
				r.With(app.OptionalAuthMiddleware).Get("/", app.listHandler(collection.Advice))
				r.With(app.OptionalAuthMiddleware).Get("/{id}", app.getAdviceHandler)
				r.Get("/{id}/comments", app.listCommentsHandler(collection.Advice))

				r.Group(func(r chi.Router) {
					r.Use(app.AuthTokenMiddleware)
					r.Post("/", app.createAdviceHandler)
					r.Patch("/{id}", app.updateAdviceHandler)
					r.Delete("/{id}", app.deleteAdviceHandler)
					r.Post("/{id}/like", app.toggleLikeHandler(collection.Advice))
					r.Post("/{id}/comments", app.createCommentHandler(collection.Advice))
				})
			})

			r.Route("/recipes", func(r chi.Router) {
				r.With(app.OptionalAuthMiddleware).Get("/", app.listHandler(collection.Recipes))
				r.With(app.OptionalAuthMiddleware).Get("/{id}", app.getRecipeHandler)
				r.Get("/{id}/comments", app.listCommentsHandler(collection.Recipes))

				r.Group(func(r chi.Router) {
					r.Use(app.AuthTokenMiddleware)
					r.Post("/", app.createRecipeHandler)
					r.Patch("/{id}", app.updateRecipeHandler)
					r.Delete("/{id}", app.deleteRecipeHandler)
					r.Post("/{id}/like", app.toggleLikeHandler(collection.Recipes))
					r.Post("/{id}/comments", app.createCommentHandler(collection.Recipes))
				})
			})

			r.Route("/daycares", func(r chi.Router) {
				r.With(app.OptionalAuthMiddleware).Get("/", app.listHandler(collection.Daycares))
				r.With(app.OptionalAuthMiddleware).Get("/{id}", app.getDaycareHandler)
				r.Get("/{id}/comments", app.listCommentsHandler(collection.Daycares))

				r.Group(func(r chi.Router) {
					r.Use(app.AuthTokenMiddleware)
					r.Post("/", app.createDaycareHandler)
					r.Patch("/{id}", app.updateDaycareHandler)
					r.Delete("/{id}", app.deleteDaycareHandler)
					r.Post("/{id}/like", app.toggleLikeHandler(collection.Daycares))
					r.Post("/{id}/comments", app.createCommentHandler(collection.Daycares))
				})
			})
		})
	})

	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
