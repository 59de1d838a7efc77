package handlers

import (
	"net/http"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/api"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterOptions struct {
	CORSAllowedOrigins []string
	RateLimitRequests  int
	RateLimitWindow    time.Duration
	RequestTimeout     time.Duration
}

func (h *Handlers) Router(auth *middleware.Auth, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	origins := opts.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(h.logger))
	r.Use(middleware.Recovery(h.logger, h.errs))
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         86400,
	}))
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	limit := h.rateLimiter(opts)

	r.Get("/", h.Root)
	r.Get("/api/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())
	api.RegisterDocsRoutes(r)

	r.Route("/api/auth", func(r chi.Router) {
		r.With(limit).Post("/register", h.Register)
		r.With(limit).Post("/login", h.Login)
		r.With(auth.Authenticate).Get("/me", h.Me)
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Patch("/me", h.UpdateProfile)
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Get("/", h.ListUsers)
			r.Get("/{id}", h.GetUser)
			r.Patch("/{id}", h.UpdateUser)
			r.Delete("/{id}", h.DeleteUser)
		})
	})

	r.Route("/api/pets", func(r chi.Router) {
		r.Get("/", h.ListPets)
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)
			r.Post("/submit", h.SubmitPet)
			r.Get("/my-submissions", h.MySubmissions)
			r.Patch("/my-submissions/{id}", h.UpdateMySubmission)
			r.Delete("/my-submissions/{id}", h.DeleteMySubmission)
		})
		r.Get("/{id}", h.GetPet)
	})

	r.Route("/api/adoptions", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Post("/apply", h.ApplyAdoption)
		r.Get("/my", h.MyAdoptions)
	})

	r.Post("/api/inquiries", h.CreateInquiry)
	r.Post("/api/volunteers/apply", h.ApplyVolunteer)

	r.Route("/api/events", func(r chi.Router) {
		r.Get("/", h.ListEvents)
		r.Get("/{slug}", h.GetEvent)
	})

	r.Route("/api/stories", func(r chi.Router) {
		r.Get("/", h.ListStories)
		r.Get("/{slug}", h.GetStory)
	})

	r.Route("/api/donations", func(r chi.Router) {
		r.With(limit, auth.Optional).Post("/init", h.InitDonation)
		r.Post("/payment/ipn", h.PaymentIPN)
		r.Post("/payment/success/{tranId}", h.PaymentSuccess)
		r.Post("/payment/fail/{tranId}", h.PaymentFail)
		r.Post("/payment/cancel/{tranId}", h.PaymentCancel)
		r.With(auth.Authenticate, auth.RequireAdmin).Get("/{tranId}", h.GetDonation)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(auth.Authenticate, auth.RequireAdmin)

		r.Get("/analytics", h.Analytics)
		r.Get("/donations", h.ListDonations)

		r.Get("/pets", h.AdminListPets)
		r.Post("/pets", h.AdminCreatePet)
		r.Patch("/pets/{id}", h.AdminUpdatePet)
		r.Delete("/pets/{id}", h.AdminDeletePet)

		r.Get("/adoptions", h.ListAdoptions)
		r.Patch("/adoptions/{id}", h.ReviewAdoption)

		r.Get("/inquiries", h.ListInquiries)
		r.Patch("/inquiries/{id}", h.UpdateInquiry)

		r.Get("/volunteers", h.ListVolunteers)
		r.Patch("/volunteers/{id}", h.ReviewVolunteer)

		r.Get("/events", h.AdminListEvents)
		r.Post("/events", h.CreateEvent)
		r.Patch("/events/{id}", h.UpdateEvent)
		r.Delete("/events/{id}", h.DeleteEvent)

		r.Get("/stories", h.AdminListStories)
		r.Post("/stories", h.CreateStory)
		r.Patch("/stories/{id}", h.UpdateStory)
		r.Delete("/stories/{id}", h.DeleteStory)
	})

	r.NotFound(h.NotFound)

	return r
}

func (h *Handlers) rateLimiter(opts RouterOptions) func(http.Handler) http.Handler {
	if opts.RateLimitRequests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		opts.RateLimitRequests,
		opts.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			h.errs.Write(w, r, errTooManyRequests)
		}),
	)
}
