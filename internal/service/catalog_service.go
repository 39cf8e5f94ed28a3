package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/unclebandit/brandplay-backend/internal/access"
	appErrors "github.com/unclebandit/brandplay-backend/internal/errors"
	"github.com/unclebandit/brandplay-backend/internal/model"
	"github.com/unclebandit/brandplay-backend/internal/repository"
)

// CatalogService serves the page containers: fixture collections, their
// filters, the gated join/start/buy/play actions and the dashboard.
type CatalogService struct {
	CampaignRepo repository.CampaignRepositoryInterface
}

func parseFilter(raw string) (model.Filter, error) {
	f := model.Filter(raw)
	switch f {
	case model.FilterAll, model.FilterAvailable, model.FilterOngoing, model.FilterFinished, model.FilterComingSoon:
		return f, nil
	}
	return "", &appErrors.ValidationError{Fields: map[string]string{"filter": "Filtro desconocido"}}
}

// filterBy keeps the items whose status matches f in a single pass.
// An empty filter keeps everything.
func filterBy[T any](items []T, f model.Filter, status func(T) model.Filter) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if f == model.FilterAll || status(it) == f {
			out = append(out, it)
		}
	}
	return out
}

func (s *CatalogService) Rankings(filter string) ([]model.Ranking, error) {
	f, err := parseFilter(filter)
	if err != nil {
		return nil, err
	}
	return filterBy(fixtureRankings, f, func(r model.Ranking) model.Filter { return r.Status }), nil
}

func (s *CatalogService) Missions(filter string) ([]model.Mission, error) {
	f, err := parseFilter(filter)
	if err != nil {
		return nil, err
	}
	return filterBy(fixtureMissions, f, func(m model.Mission) model.Filter { return m.Status }), nil
}

func (s *CatalogService) Events(filter string) ([]model.Event, error) {
	f, err := parseFilter(filter)
	if err != nil {
		return nil, err
	}
	return filterBy(fixtureEvents, f, func(e model.Event) model.Filter { return e.Status }), nil
}

func (s *CatalogService) Games(filter string) ([]model.Game, error) {
	f, err := parseFilter(filter)
	if err != nil {
		return nil, err
	}
	return filterBy(fixtureGames, f, func(g model.Game) model.Filter { return g.Status }), nil
}

func find[T any](items []T, id string, key func(T) string) (T, bool) {
	for _, it := range items {
		if key(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func gated(user *model.User, kind, id, gameID string) access.Outcome {
	out := access.Decide(user, gameID)
	logrus.WithFields(logrus.Fields{"kind": kind, "id": id, "gate": out.Gate}).Debug("catalog action gated")
	return out
}

// Join enters a ranking.
func (s *CatalogService) Join(user *model.User, rankingID string) (access.Outcome, error) {
	r, ok := find(fixtureRankings, rankingID, func(r model.Ranking) string { return r.ID })
	if !ok {
		return access.Outcome{}, appErrors.NewNotFound("ranking", rankingID)
	}
	return gated(user, "ranking", r.ID, r.GameID), nil
}

// Start begins a mission.
func (s *CatalogService) Start(user *model.User, missionID string) (access.Outcome, error) {
	m, ok := find(fixtureMissions, missionID, func(m model.Mission) string { return m.ID })
	if !ok {
		return access.Outcome{}, appErrors.NewNotFound("mission", missionID)
	}
	return gated(user, "mission", m.ID, m.GameID), nil
}

// BuyTicket reserves an event ticket.
func (s *CatalogService) BuyTicket(user *model.User, eventID string) (access.Outcome, error) {
	e, ok := find(fixtureEvents, eventID, func(e model.Event) string { return e.ID })
	if !ok {
		return access.Outcome{}, appErrors.NewNotFound("event", eventID)
	}
	return gated(user, "event", e.ID, e.GameID), nil
}

// Play opens a game.
func (s *CatalogService) Play(user *model.User, gameID string) (access.Outcome, error) {
	g, ok := find(fixtureGames, gameID, func(g model.Game) string { return g.ID })
	if !ok {
		return access.Outcome{}, appErrors.NewNotFound("game", gameID)
	}
	return gated(user, "game", g.ID, g.ID), nil
}

func (s *CatalogService) Tickets() []model.Ticket {
	return append([]model.Ticket(nil), fixtureTickets...)
}

func (s *CatalogService) Achievements() []model.Achievement {
	return append([]model.Achievement(nil), fixtureAchievements...)
}

// Benefits lists the perks of plan, or of every plan when plan is empty.
func (s *CatalogService) Benefits(plan model.Plan) ([]model.Benefit, error) {
	if plan != "" && !plan.Valid() {
		return nil, appErrors.ErrInvalidPlan
	}
	out := []model.Benefit{}
	for _, b := range fixtureBenefits {
		if plan == "" || b.Plan == plan {
			out = append(out, b)
		}
	}
	return out, nil
}

// Dashboard groups a brand's campaigns by status and adds the fixture metrics.
type Dashboard struct {
	Counts    map[model.CampaignStatus]int               `json:"counts"`
	Campaigns map[model.CampaignStatus][]model.Campaign `json:"campaigns"`
	Metrics   []Metric                                   `json:"metrics"`
}

const dashboardLimit = 100

func (s *CatalogService) Dashboard(ctx context.Context, ownerID string) (*Dashboard, error) {
	counts, err := s.CampaignRepo.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	list, _, err := s.CampaignRepo.List(ctx, 0, dashboardLimit, ownerID, "")
	if err != nil {
		return nil, err
	}
	grouped := map[model.CampaignStatus][]model.Campaign{
		model.StatusPending:   {},
		model.StatusActive:    {},
		model.StatusRejected:  {},
		model.StatusCompleted: {},
	}
	for _, c := range list {
		grouped[c.Status] = append(grouped[c.Status], *c)
	}
	return &Dashboard{
		Counts:    counts,
		Campaigns: grouped,
		Metrics:   append([]Metric(nil), fixtureMetrics...),
	}, nil
}
