package model

import "time"

// Catalog filters. Rankings and missions use "available"/"ongoing"/"finished",
// events add "coming_soon".
type Filter string

const (
    FilterAll        Filter = ""
    FilterAvailable  Filter = "available"
    FilterOngoing    Filter = "ongoing"
    FilterFinished   Filter = "finished"
    FilterComingSoon Filter = "coming_soon"
)

type Ranking struct {
    ID           string    `json:"id"`
    Title        string    `json:"title"`
    Brand        string    `json:"brand"`
    GameID       string    `json:"game_id"`
    Status       Filter    `json:"status"`
    Participants int       `json:"participants"`
    Prize        string    `json:"prize"`
    EndsAt       time.Time `json:"ends_at"`
}

type Mission struct {
    ID          string `json:"id"`
    Title       string `json:"title"`
    Description string `json:"description"`
    GameID      string `json:"game_id"`
    Status      Filter `json:"status"`
    Reward      int    `json:"reward_points"`
    Progress    int    `json:"progress"`
    Goal        int    `json:"goal"`
}

type Event struct {
    ID          string    `json:"id"`
    Title       string    `json:"title"`
    Venue       string    `json:"venue"`
    GameID      string    `json:"game_id"`
    Status      Filter    `json:"status"`
    TicketPrice string    `json:"ticket_price"`
    StartsAt    time.Time `json:"starts_at"`
}

type Game struct {
    ID       string `json:"id"`
    Name     string `json:"name"`
    Genre    string `json:"genre"`
    Status   Filter `json:"status"`
    Players  int    `json:"players"`
    MiniGame bool   `json:"mini_game"`
}

type Ticket struct {
    ID        string    `json:"id"`
    EventID   string    `json:"event_id"`
    Code      string    `json:"code"`
    Status    string    `json:"status"`
    IssuedAt  time.Time `json:"issued_at"`
}

type Achievement struct {
    ID          string `json:"id"`
    Title       string `json:"title"`
    Description string `json:"description"`
    Unlocked    bool   `json:"unlocked"`
    Points      int    `json:"points"`
}

type Benefit struct {
    ID    string `json:"id"`
    Plan  Plan   `json:"plan"`
    Title string `json:"title"`
}
