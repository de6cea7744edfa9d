package models

import (
	"time"
)

// Game is one tournament on offer and its slot cap.
type Game struct {
	Type           GameType  `json:"gameType"`
	Name           string    `json:"name"`
	MaxTeams       int       `json:"maxTeams"`
	EntryFee       int       `json:"entryFee"`
	PrizeWinner    int       `json:"prizeWinner"`
	PrizeRunnerUp  int       `json:"prizeRunnerUp"`
	GameMode       string    `json:"gameMode"`
	Map            string    `json:"map"`
	TournamentDate time.Time `json:"tournamentDate"`
}

type Catalog map[GameType]Game

// DefaultCatalog returns the tournaments as currently announced.
func DefaultCatalog() Catalog {
	ist := time.FixedZone("IST", 5*60*60+30*60)
	return Catalog{
		GamePUBG: {
			Type:           GamePUBG,
			Name:           "PUBG Mobile",
			MaxTeams:       25,
			EntryFee:       80,
			PrizeWinner:    1000,
			PrizeRunnerUp:  400,
			GameMode:       "Squad (4 Players)",
			Map:            "Erangel (Classic)",
			TournamentDate: time.Date(2025, time.October, 25, 18, 0, 0, 0, ist),
		},
		GameFreeFire: {
			Type:           GameFreeFire,
			Name:           "Free Fire",
			MaxTeams:       12,
			EntryFee:       80,
			PrizeWinner:    500,
			PrizeRunnerUp:  260,
			GameMode:       "Squad (4 Players)",
			Map:            "Bermuda / Purgatory / Kalahari",
			TournamentDate: time.Date(2025, time.October, 26, 18, 0, 0, 0, ist),
		},
	}
}

// MaxTeams returns the cap for a game, 0 when the game is unknown.
func (c Catalog) MaxTeams(g GameType) int {
	return c[g].MaxTeams
}

func (c Catalog) Name(g GameType) string {
	if game, ok := c[g]; ok && game.Name != "" {
		return game.Name
	}
	return string(g)
}

// Slots is a catalog entry together with its live registration count.
type Slots struct {
	Game
	Registered int64 `json:"registered"`
	Available  int64 `json:"available"`
}

type Stats struct {
	Total             int64 `json:"total"`
	PubgTeams         int64 `json:"pubgTeams"`
	FreeFireTeams     int64 `json:"freeFireTeams"`
	Pending           int64 `json:"pending"`
	Approved          int64 `json:"approved"`
	Rejected          int64 `json:"rejected"`
	PubgAvailable     int64 `json:"pubgAvailable"`
	FreeFireAvailable int64 `json:"freeFireAvailable"`
}

// Available returns the free slots left under max, never negative.
func Available(max int, registered int64) int64 {
	left := int64(max) - registered
	if left < 0 {
		return 0
	}
	return left
}
