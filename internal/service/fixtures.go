package service

import (
	"time"

	"github.com/unclebandit/brandplay-backend/internal/model"
)

// Static catalog content. Rankings, missions and the rest are not computed
// server-side; these collections are what every page lists.

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var fixtureRankings = []model.Ranking{
	{ID: "rk-1", Title: "Reto Snack Runner", Brand: "Crunchy", GameID: "snack-runner", Status: model.FilterAvailable, Participants: 1240, Prize: "Cupón 20%", EndsAt: day(2026, 12, 1)},
	{ID: "rk-2", Title: "Copa Memoria", Brand: "Lumen", GameID: "memory-match", Status: model.FilterOngoing, Participants: 3890, Prize: "Auriculares", EndsAt: day(2026, 11, 15)},
	{ID: "rk-3", Title: "Trivia Verano", Brand: "Playa Sol", GameID: "trivia", Status: model.FilterFinished, Participants: 5120, Prize: "Viaje", EndsAt: day(2026, 8, 31)},
	{ID: "rk-4", Title: "Maratón Puzzle", Brand: "Piezas", GameID: "puzzle-rush", Status: model.FilterOngoing, Participants: 760, Prize: "Tarjeta regalo", EndsAt: day(2026, 11, 30)},
}

var fixtureMissions = []model.Mission{
	{ID: "ms-1", Title: "Primer juego", Description: "Juega tu primera partida", GameID: "snack-runner", Status: model.FilterAvailable, Reward: 50, Goal: 1},
	{ID: "ms-2", Title: "Racha de 5", Description: "Juega 5 días seguidos", GameID: "memory-match", Status: model.FilterOngoing, Reward: 200, Progress: 3, Goal: 5},
	{ID: "ms-3", Title: "Top 10", Description: "Termina en el top 10 de un ranking", GameID: "trivia", Status: model.FilterFinished, Reward: 500, Progress: 1, Goal: 1},
}

var fixtureEvents = []model.Event{
	{ID: "ev-1", Title: "Final Snack Runner", Venue: "Arena Centro", GameID: "snack-runner", Status: model.FilterAvailable, TicketPrice: "9.99", StartsAt: day(2026, 11, 20)},
	{ID: "ev-2", Title: "Noche Trivia", Venue: "Online", GameID: "trivia", Status: model.FilterComingSoon, TicketPrice: "0.00", StartsAt: day(2027, 1, 10)},
	{ID: "ev-3", Title: "Puzzle Fest", Venue: "Palacio de Congresos", GameID: "puzzle-rush", Status: model.FilterFinished, TicketPrice: "14.99", StartsAt: day(2026, 6, 5)},
}

var fixtureGames = []model.Game{
	{ID: "snack-runner", Name: "Snack Runner", Genre: "arcade", Status: model.FilterAvailable, Players: 18200, MiniGame: true},
	{ID: "memory-match", Name: "Memory Match", Genre: "puzzle", Status: model.FilterAvailable, Players: 9400, MiniGame: true},
	{ID: "trivia", Name: "Trivia Express", Genre: "quiz", Status: model.FilterAvailable, Players: 12750, MiniGame: true},
	{ID: "puzzle-rush", Name: "Puzzle Rush", Genre: "puzzle", Status: model.FilterComingSoon, Players: 0, MiniGame: false},
}

var fixtureTickets = []model.Ticket{
	{ID: "tk-1", EventID: "ev-1", Code: "SNK-2026-0001", Status: "valid", IssuedAt: day(2026, 10, 1)},
	{ID: "tk-2", EventID: "ev-3", Code: "PZL-2026-0042", Status: "used", IssuedAt: day(2026, 5, 20)},
}

var fixtureAchievements = []model.Achievement{
	{ID: "ac-1", Title: "Debutante", Description: "Completa tu perfil", Unlocked: true, Points: 10},
	{ID: "ac-2", Title: "Competidor", Description: "Únete a 3 rankings", Unlocked: false, Points: 50},
	{ID: "ac-3", Title: "Leyenda", Description: "Gana un ranking", Unlocked: false, Points: 200},
}

var fixtureBenefits = []model.Benefit{
	{ID: "bn-1", Plan: model.PlanFree, Title: "1 campaña activa"},
	{ID: "bn-2", Plan: model.PlanPremium, Title: "5 campañas activas"},
	{ID: "bn-3", Plan: model.PlanPremium, Title: "Soporte prioritario"},
	{ID: "bn-4", Plan: model.PlanGrowth, Title: "Campañas ilimitadas"},
	{ID: "bn-5", Plan: model.PlanScale, Title: "Analítica avanzada"},
	{ID: "bn-6", Plan: model.PlanEnterprise, Title: "Gestor de cuenta dedicado"},
}

// Metric is one dashboard tile.
type Metric struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

var fixtureMetrics = []Metric{
	{Key: "impressions", Label: "Impresiones", Value: "128.400"},
	{Key: "plays", Label: "Partidas jugadas", Value: "23.910"},
	{Key: "conversion", Label: "Conversión", Value: "4,7%"},
	{Key: "redeemed", Label: "Premios canjeados", Value: "1.204"},
}

// FixtureCampaigns seeds the in-memory store with one campaign per status
// for ownerID, so the dashboard has something to show without a database.
func FixtureCampaigns(ownerID string) []model.Campaign {
	created := day(2026, 9, 1)
	return []model.Campaign{
		{ID: 1, OwnerID: ownerID, Title: "Verano Crunchy", Author: "Crunchy", Status: model.StatusActive, StartDate: "2026-09-01", EndDate: "2026-12-01", Participants: 1240, CreatedAt: created},
		{ID: 2, OwnerID: ownerID, Title: "Copa Memoria", Author: "Lumen", Status: model.StatusPending, StartDate: "2026-11-01", EndDate: "2026-11-30", CreatedAt: created},
		{
			ID: 3, OwnerID: ownerID, Title: "Trivia Express", Author: "Playa Sol", Status: model.StatusRejected,
			StartDate: "2026-10-01", EndDate: "2026-09-01", CreatedAt: created,
			RejectionReason: "Datos inconsistentes",
			RejectionDetail: "Por favor revisar el título y las fechas de la campaña",
		},
		{ID: 4, OwnerID: ownerID, Title: "Puzzle Fest", Author: "Piezas", Status: model.StatusCompleted, StartDate: "2026-05-01", EndDate: "2026-06-05", Participants: 5120, CreatedAt: created},
	}
}
