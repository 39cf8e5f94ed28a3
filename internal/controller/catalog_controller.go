package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/unclebandit/brandplay-backend/internal/access"
	"github.com/unclebandit/brandplay-backend/internal/handler"
	"github.com/unclebandit/brandplay-backend/internal/model"
	"github.com/unclebandit/brandplay-backend/internal/service"
)

// CatalogController serves the fixture pages. The sort parameter is
// accepted and ignored.
type CatalogController struct {
	Catalog *service.CatalogService
}

func list[T any](fetch func(string) ([]T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := r.URL.Query().Get("filter")
		items, err := fetch(filter)
		if err != nil {
			handler.WriteError(w, err)
			return
		}
		handler.WriteJSON(w, http.StatusOK, map[string]any{"filter": filter, "data": items})
	}
}

func (c *CatalogController) Rankings() http.HandlerFunc { return list(c.Catalog.Rankings) }
func (c *CatalogController) Missions() http.HandlerFunc { return list(c.Catalog.Missions) }
func (c *CatalogController) Events() http.HandlerFunc   { return list(c.Catalog.Events) }
func (c *CatalogController) Games() http.HandlerFunc    { return list(c.Catalog.Games) }

// action answers with what the client must do next: sign in, accept terms,
// complete the profile or go to the game.
func action(act func(*model.User, string) (access.Outcome, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := act(handler.UserFrom(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			handler.WriteError(w, err)
			return
		}
		handler.WriteJSON(w, http.StatusOK, out)
	}
}

func (c *CatalogController) Join() http.HandlerFunc      { return action(c.Catalog.Join) }
func (c *CatalogController) Start() http.HandlerFunc     { return action(c.Catalog.Start) }
func (c *CatalogController) BuyTicket() http.HandlerFunc { return action(c.Catalog.BuyTicket) }
func (c *CatalogController) Play() http.HandlerFunc      { return action(c.Catalog.Play) }

func (c *CatalogController) Tickets(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, map[string]any{"data": c.Catalog.Tickets()})
}

func (c *CatalogController) Achievements(w http.ResponseWriter, r *http.Request) {
	handler.WriteJSON(w, http.StatusOK, map[string]any{"data": c.Catalog.Achievements()})
}

func (c *CatalogController) Benefits(w http.ResponseWriter, r *http.Request) {
	benefits, err := c.Catalog.Benefits(model.Plan(r.URL.Query().Get("plan")))
	if err != nil {
		handler.WriteError(w, err)
		return
	}
	handler.WriteJSON(w, http.StatusOK, map[string]any{"data": benefits})
}
