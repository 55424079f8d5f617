package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes builds the HTTP router. bus is checked by /readyz when it reports connectivity.
func Routes(h *APIHandlers, bus any) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthz)
	r.Get("/readyz", h.Readyz(bus))

	r.Route("/api", func(r chi.Router) {
		r.Get("/league", h.GetLeague)
		r.Get("/events", h.EventsSSE)
		r.Post("/reset", h.ResetAll)

		r.Route("/owners/{ownerID}", func(r chi.Router) {
			r.Get("/", h.GetOwner)
			r.Post("/protect", h.ChooseProtect)
			r.Put("/protections", h.SaveProtections)
			r.Delete("/protections", h.ClearProtections)
			r.Post("/unlock", h.UnlockProtections)
			r.Post("/disperse", h.Disperse)
		})

		r.Route("/order", func(r chi.Router) {
			r.Get("/", h.GetOrder)
			r.Post("/teams", h.AddTeam)
			r.Put("/teams/{index}", h.RenameTeam)
			r.Delete("/teams/{index}", h.RemoveTeam)
			r.Post("/shuffle", h.ShuffleOrder)
		})

		r.Route("/draft", func(r chi.Router) {
			r.Get("/", h.GetDraft)
			r.Get("/pool", h.GetPool)
			r.Get("/board", h.GetBoard)
			r.Post("/select", h.SelectPlayer)
			r.Post("/pick", h.MakePick)
			r.Post("/reset", h.ResetDraft)
		})
	})

	return r
}
