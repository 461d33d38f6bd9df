package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/fitload/internal/api"
	apiMiddleware "github.com/phrazzld/fitload/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	trainingHandler := api.NewTrainingHandler(app.trainingService, app.logger)
	coachHandler := api.NewCoachHandler(app.coachService, app.logger)
	usageHandler := api.NewUsageHandler(app.accountant, app.logger)
	profileHandler := api.NewProfileHandler(app.profiles, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Post("/sets", trainingHandler.RecordSet)
		r.Post("/sets/{id}/complete", trainingHandler.CompleteSet)
		r.Post("/workouts", trainingHandler.CreateWorkout)
		r.Post("/estimate", trainingHandler.EstimateSession)

		r.Post("/exercises/{id}/overload", trainingHandler.SuggestOverload)
		r.Post("/exercises/{id}/advice", coachHandler.RequestAdvice)

		r.Get("/usage", usageHandler.GetUsage)

		r.Get("/profile", profileHandler.GetProfile)
		r.Put("/profile", profileHandler.PutProfile)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
