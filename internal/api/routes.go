package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Routes builds the HTTP handler for every endpoint.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.Server.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Location"},
		MaxAge:         300,
	}))
	r.Use(MetricsMiddleware)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/health", s.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws/reviews", s.ServeReviewFeedHandler)

	r.Get("/user", s.GetUserHandler)
	r.Put("/user/update", s.UpdateUserHandler)
	r.Delete("/user/delete", s.DeleteUserHandler)
	r.Post("/user/login", s.LoginHandler)
	r.Post("/user/register", s.RegisterHandler)
	r.With(s.AuthMiddleware).Get("/users", s.ListUsersHandler)

	r.Post("/review/create", s.CreateReviewHandler)
	r.Get("/review", s.GetReviewHandler)
	r.Get("/review/userid", s.ListUserReviewsHandler)
	r.Get("/review/location", s.ListLocationReviewsHandler)
	r.Put("/review/update", s.UpdateReviewHandler)
	r.Delete("/review/delete", s.DeleteReviewHandler)

	r.Post("/image/create", s.UploadImageHandler)
	r.Get("/image", s.GetImageHandler)
	r.Delete("/image/delete", s.DeleteImageHandler)

	return r
}
