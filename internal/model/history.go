package model

import "time"

// HistoryRecord is one prediction. Rows are append-only: nothing in the
// application updates or deletes them.
type HistoryRecord struct {
	ID         int64     `json:"id"`
	Original   string    `json:"original"`
	Cleaned    string    `json:"cleaned"`
	Prediction string    `json:"prediction"`
	Confidence float64   `json:"confidence"`
	Timestamp  time.Time `json:"timestamp"`
	UserID     *int64    `json:"user_id"`
}
