package http

import (
	"github.com/MKhiriev/go-tours/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init assembles the request pipeline. Middleware order is significant:
// a request rejected by one stage never reaches the later ones.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		h.withTraceID,
		h.withMetrics,
		h.recoverPanic,
		h.securityHeaders,
		compressResponses(),
	)
	if h.app.IsDevelopment() {
		router.Use(h.withLogging)
	}
	router.Use(
		h.rateLimit,
		h.decompressRequests,
		middleware.RequestSize(h.security.BodyLimit),
		h.sanitizeOperators,
		h.sanitizeXSS,
		h.preventParameterPollution,
		h.serveStatic,
	)

	router.NotFound(h.notFound)
	router.MethodNotAllowed(h.notFound)

	router.Handle("/metrics", h.metrics.handler())
	router.Get("/version", h.getServerVersion)

	router.Route("/api/v1/tours", h.tourRoutes)
	router.Route("/api/v1/users", h.userRoutes)
	router.Route("/api/v1/reviews", h.reviewRoutes)

	return router
}

func (h *Handler) tourRoutes(r chi.Router) {
	r.Route("/{tourId}/reviews", h.reviewRoutes)

	r.With(aliasTopTours).Get("/top-5-cheap", h.getAllTours)
	r.Get("/tour-stats", h.getTourStats)
	r.With(h.protect, h.restrictTo(models.RoleAdmin, models.RoleLeadGuide, models.RoleGuide)).
		Get("/monthly-plan/{year}", h.getMonthlyPlan)

	r.Get("/", h.getAllTours)
	r.Get("/{tourId}", h.getTour)

	r.Group(func(r chi.Router) {
		r.Use(h.protect, h.restrictTo(models.RoleAdmin, models.RoleLeadGuide))
		r.Post("/", h.createTour)
		r.Patch("/{tourId}", h.updateTour)
		r.Delete("/{tourId}", h.deleteTour)
	})
}

func (h *Handler) userRoutes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
	r.Get("/logout", h.logout)

	r.Group(func(r chi.Router) {
		r.Use(h.protect)

		r.Patch("/updateMyPassword", h.updateMyPassword)
		r.Get("/me", h.getMe)
		r.Patch("/updateMe", h.updateMe)
		r.Delete("/deleteMe", h.deleteMe)

		r.Group(func(r chi.Router) {
			r.Use(h.restrictTo(models.RoleAdmin))

			r.Get("/", h.getAllUsers)
			r.Post("/", h.createUser)
			r.Get("/{userId}", h.getUser)
			r.Patch("/{userId}", h.updateUser)
			r.Delete("/{userId}", h.deleteUser)
		})
	})
}

func (h *Handler) reviewRoutes(r chi.Router) {
	r.Use(h.protect)

	r.Get("/", h.getAllReviews)
	r.With(h.restrictTo(models.RoleUser)).Post("/", h.createReview)
	r.Get("/{reviewId}", h.getReview)

	r.Group(func(r chi.Router) {
		r.Use(h.restrictTo(models.RoleUser, models.RoleAdmin))
		r.Patch("/{reviewId}", h.updateReview)
		r.Delete("/{reviewId}", h.deleteReview)
	})
}
