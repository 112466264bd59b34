// Package api is the HTTP boundary: chi routes under /api, bearer
// authentication and the JSON response envelope.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Spok95/geosites/internal/auth"
	"github.com/Spok95/geosites/internal/domain/access"
	"github.com/Spok95/geosites/internal/domain/dashboard"
	"github.com/Spok95/geosites/internal/domain/sites"
	"github.com/Spok95/geosites/internal/domain/submissions"
	"github.com/Spok95/geosites/internal/domain/users"
)

type AuthService interface {
	Register(ctx context.Context, email, password string) (*auth.Session, error)
	Login(ctx context.Context, email, password string) (*auth.Session, error)
	Profile(ctx context.Context, userID int64) (*users.User, error)
}

type UserService interface {
	Create(ctx context.Context, in users.CreateInput) (*users.User, error)
	List(ctx context.Context) ([]users.User, error)
	Get(ctx context.Context, id int64) (*users.User, error)
	Update(ctx context.Context, id int64, in users.UpdateInput) (*users.User, error)
	Delete(ctx context.Context, id int64) error
}

type SiteService interface {
	Create(ctx context.Context, actor access.Actor, in sites.Input) (*sites.Site, error)
	FindApproved(ctx context.Context) ([]sites.Site, error)
	FindAll(ctx context.Context, status sites.Status) ([]sites.Site, error)
	FindOne(ctx context.Context, id int64) (*sites.Site, error)
	Update(ctx context.Context, actor access.Actor, id int64, p sites.Patch) (*sites.Site, error)
	UpdateStatus(ctx context.Context, id int64, status sites.Status) (*sites.Site, error)
	Remove(ctx context.Context, actor access.Actor, id int64) error
}

type SubmissionService interface {
	Create(ctx context.Context, actor access.Actor, data submissions.SiteData) (*submissions.Submission, error)
	FindAll(ctx context.Context, status submissions.Status) ([]submissions.Submission, error)
	FindPending(ctx context.Context) ([]submissions.Submission, error)
	FindByUser(ctx context.Context, userID int64) ([]submissions.Submission, error)
	FindOne(ctx context.Context, id int64) (*submissions.Submission, error)
	Review(ctx context.Context, reviewer access.Actor, id int64, decision submissions.Status) (*submissions.Submission, error)
	Remove(ctx context.Context, actor access.Actor, id int64) error
}

type DashboardService interface {
	Stats(ctx context.Context) (dashboard.Stats, error)
	Activity(ctx context.Context) (dashboard.Activity, error)
}

type Deps struct {
	Auth        AuthService
	Users       UserService
	Sites       SiteService
	Submissions SubmissionService
	Dashboard   DashboardService
	Tokens      TokenParser
	Log         *slog.Logger
	Env         string
}

type handler struct {
	Deps
}

// NewRouter returns the /api tree. Public reads stay open; everything that
// writes needs a bearer token and admin routes need the ADMIN role.
func NewRouter(d Deps) http.Handler {
	h := &handler{Deps: d}
	log := d.Log

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Observe(log))
	r.Use(middleware.Recoverer)
	r.Use(Authenticate(d.Tokens, log))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, Response{Message: "Route not found", ErrorCode: "ROUTE_NOT_FOUND"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/", h.hello)
		r.Get("/health", h.health)

		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)
		r.With(RequireAuth(log)).Get("/auth/profile", h.profile)

		r.Get("/sites", h.listApprovedSites)
		r.Get("/sites/{id}", h.getSite)

		r.Group(func(r chi.Router) {
			r.Use(RequireAuth(log))

			r.Post("/sites", h.createSite)
			r.Patch("/sites/{id}", h.updateSite)
			r.Delete("/sites/{id}", h.deleteSite)

			r.Post("/submissions", h.createSubmission)
			r.Get("/submissions/my", h.mySubmissions)
			r.Get("/submissions/{id}", h.getSubmission)
			r.Delete("/submissions/{id}", h.deleteSubmission)

			r.Group(func(r chi.Router) {
				r.Use(RequireAdmin(log))

				r.Get("/sites/all", h.listAllSites)
				r.Get("/sites/export", h.exportSites)
				r.Patch("/sites/{id}/status", h.updateSiteStatus)

				r.Get("/submissions", h.listSubmissions)
				r.Get("/submissions/pending", h.pendingSubmissions)
				r.Get("/submissions/export", h.exportSubmissions)
				r.Patch("/submissions/{id}", h.reviewSubmission)

				r.Get("/dashboard/stats", h.stats)
				r.Get("/dashboard/activity", h.activity)

				r.Post("/users", h.createUser)
				r.Get("/users", h.listUsers)
				r.Get("/users/{id}", h.getUser)
				r.Patch("/users/{id}", h.updateUser)
				r.Delete("/users/{id}", h.deleteUser)
			})
		})
	})
	return r
}
