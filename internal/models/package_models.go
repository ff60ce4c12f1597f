package models

import "github.com/shopspring/decimal"

// Package is a membership plan.
type Package struct {
	ID             int64           `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	Price          decimal.Decimal `json:"price" db:"price"`
	DurationMonths int             `json:"duration_months" db:"duration_months"`
	Trainers       bool            `json:"trainers" db:"trainers"`
	CardioAccess   bool            `json:"cardio_access" db:"cardio_access"`
	SaunaAccess    bool            `json:"sauna_access" db:"sauna_access"`
	SteamRoom      bool            `json:"steam_room" db:"steam_room"`
	Timings        string          `json:"timings" db:"timings"`
}
