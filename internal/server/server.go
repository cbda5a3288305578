// internal/server/server.go
package server

import (
	"net/http"
	"strconv"

	"fitnexus/internal/apperr"
	"fitnexus/internal/calendar"
	"fitnexus/internal/catalog"
	"fitnexus/internal/enrollment"
	"fitnexus/internal/httpx"
	"fitnexus/internal/journal"
	"fitnexus/internal/membership"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

const defaultEventBatch = 100

// App wires the gym services over one journal and clock.
type App struct {
	Clock      calendar.Clock
	Journal    *journal.Journal
	Members    membership.Service
	Catalog    catalog.Service
	Enrollment enrollment.Service
}

// NewApp builds empty in-memory services.
func NewApp(clock calendar.Clock) *App {
	j := journal.New()
	members := membership.NewService(membership.NewStore(), j, clock)
	sessions := catalog.NewService(catalog.NewSchedule(), j)
	return &App{
		Clock:      clock,
		Journal:    j,
		Members:    members,
		Catalog:    sessions,
		Enrollment: enrollment.NewService(members, sessions, clock),
	}
}

// NewRouter exposes the app over HTTP. Mutating routes share writeLimiter.
func NewRouter(app *App, writeLimiter *rate.Limiter) http.Handler {
	members := membership.NewHandler(app.Members, app.Clock)
	sessions := catalog.NewHandler(app.Catalog)
	enrollments := enrollment.NewHandler(app.Enrollment)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/members", members.HandleListMembers)
	r.Get("/members/fees", members.HandleListFees)
	r.Get("/members/lookup", members.HandleGetMember)
	r.Get("/sessions", sessions.HandleListSessions)
	r.Get("/events", eventsHandler(app.Journal))

	r.Group(func(r chi.Router) {
		r.Use(httpx.RateLimit(writeLimiter))

		r.Post("/members", members.HandleAddMember)
		r.Post("/members/import", members.HandleImportMember)
		r.Delete("/members", members.HandleRemoveMember)
		r.Post("/sessions", sessions.HandleAddSession)

		r.Route("/enrollments", func(r chi.Router) {
			r.Post("/check-in", enrollments.HandleCheckIn)
			r.Post("/check-out", enrollments.HandleCheckOut)
			r.Post("/guest-check-in", enrollments.HandleGuestCheckIn)
			r.Post("/guest-check-out", enrollments.HandleGuestCheckOut)
		})
	})

	return r
}

// eventsHandler streams journal events after ?from= in batches of ?limit=.
func eventsHandler(j *journal.Journal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from, err := intParam(r, "from", 0)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		limit, err := intParam(r, "limit", defaultEventBatch)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		if limit <= 0 {
			httpx.WriteError(w, apperr.New(apperr.CodeInvalidArgument, "limit must be positive"))
			return
		}

		events, err := j.Stream(r.Context(), int64(from), limit)
		if err != nil {
			httpx.WriteError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, events)
	}
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.New(apperr.CodeInvalidArgument, "%s must be an integer", name)
	}
	return n, nil
}
