package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/unclebandit/brandplay-backend/internal/handler"
	"github.com/unclebandit/brandplay-backend/internal/service"
)

// Services bundles what the HTTP layer needs.
type Services struct {
	Auth      *service.AuthService
	Campaigns *service.CampaignService
	Catalog   *service.CatalogService
	Dialogs   *service.DialogService
	Contact   *service.ContactService
}

func NewRouter(s Services) http.Handler {
	authCtl := &AuthController{Auth: s.Auth}
	campaignCtl := &CampaignController{CampaignService: s.Campaigns, CatalogService: s.Catalog}
	wizardCtl := &WizardController{Dialogs: s.Dialogs}
	resubmitCtl := &ResubmitController{Dialogs: s.Dialogs}
	catalogCtl := &CatalogController{Catalog: s.Catalog}
	supportCtl := &SupportController{ContactService: s.Contact}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(handler.RequestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", supportCtl.Health)
		r.Post("/embed/preview", supportCtl.EmbedPreview)

		r.Post("/auth/signup", authCtl.SignUp)
		r.Post("/auth/login", authCtl.Login)
		r.Get("/auth/google", authCtl.Google)
		r.Post("/auth/google/callback", authCtl.GoogleCallback)

		// anonymous visitors may browse; actions answer with the gate
		r.Group(func(r chi.Router) {
			r.Use(handler.OptionalUser(s.Auth))

			r.Get("/rankings", catalogCtl.Rankings())
			r.Post("/rankings/{id}/join", catalogCtl.Join())
			r.Get("/missions", catalogCtl.Missions())
			r.Post("/missions/{id}/start", catalogCtl.Start())
			r.Get("/events", catalogCtl.Events())
			r.Post("/events/{id}/tickets", catalogCtl.BuyTicket())
			r.Get("/games", catalogCtl.Games())
			r.Post("/games/{id}/play", catalogCtl.Play())
			r.Get("/benefits", catalogCtl.Benefits)
			r.Post("/contact", supportCtl.Contact)
		})

		r.Group(func(r chi.Router) {
			r.Use(handler.RequireUser(s.Auth))

			r.Post("/auth/logout", authCtl.Logout)
			r.Get("/me", authCtl.Me)
			r.Post("/me/terms", authCtl.AcceptTerms)
			r.Post("/me/profile", authCtl.CompleteProfile)
			r.Patch("/me/profile", authCtl.UpdateProfile)
			r.Post("/me/plan", authCtl.UpgradePlan)

			r.Get("/tickets", catalogCtl.Tickets)
			r.Get("/achievements", catalogCtl.Achievements)
			r.Get("/dashboard", campaignCtl.Dashboard)

			r.Get("/campaigns", campaignCtl.ListCampaigns)
			r.Get("/campaigns/{id}", campaignCtl.GetCampaign)
			r.Post("/campaigns/{id}/resubmit", resubmitCtl.Open)

			r.Route("/resubmits/{rid}", func(r chi.Router) {
				r.Get("/", resubmitCtl.Get)
				r.Delete("/", resubmitCtl.Dismiss)
				r.Post("/reload", resubmitCtl.Reload)
				r.Patch("/draft", resubmitCtl.UpdateDraft)
				r.Post("/next", resubmitCtl.Next)
				r.Post("/back", resubmitCtl.Back)
				r.Post("/jump", resubmitCtl.Jump)
				r.Post("/rewards/{block}", resubmitCtl.SetReward)
				r.Post("/submit", resubmitCtl.Submit)
			})

			r.Post("/wizards", wizardCtl.Open)
			r.Route("/wizards/{wid}", func(r chi.Router) {
				r.Get("/", wizardCtl.Get)
				r.Delete("/", wizardCtl.Dismiss)
				r.Patch("/draft", wizardCtl.UpdateDraft)
				r.Post("/next", wizardCtl.Next)
				r.Post("/back", wizardCtl.Back)
				r.Post("/jump", wizardCtl.Jump)
				r.Post("/rewards/{block}", wizardCtl.SetReward)
				r.Post("/top-positions", wizardCtl.SetTopPositions)
				r.Post("/faqs", wizardCtl.AddFAQ)
				r.Put("/faqs/{index}", wizardCtl.UpdateFAQ)
				r.Delete("/faqs/{index}", wizardCtl.RemoveFAQ)
				r.Get("/checkout", wizardCtl.Checkout)
				r.Post("/checkout", wizardCtl.Pay)
			})
		})
	})

	return r
}
