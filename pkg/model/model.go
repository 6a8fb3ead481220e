// Package model defines the database models, keeping the postgres and redis
// connection instances.
package model

import (
	"time"
)

type Model struct {
	Collected time.Time `json:"collected" gorm:"omitempty; not null; default:CURRENT_TIMESTAMP;"`
}

// Market is one canonical currency pair. Currency1 sorts before Currency2.
type Market struct {
	Currency1 string `json:"currency1"`
	Currency2 string `json:"currency2"`
}

// Key is the concatenated pair code stored in the market column.
func (m Market) Key() string {
	return m.Currency1 + m.Currency2
}

// RunStats is one cycle's summary, pushed to redis for ops visibility.
type RunStats struct {
	RunID    string  `json:"runID"`
	Instance string  `json:"instance"`
	Full     bool    `json:"full"`
	Events   int64   `json:"events"`
	Bars     int64   `json:"bars"`
	Cleaned  int64   `json:"cleaned"`
	Started  int64   `json:"started"`
	Seconds  float64 `json:"seconds"`
}
