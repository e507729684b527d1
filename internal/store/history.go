package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/nsharda/newscheck/internal/model"
)

// HistoryStore is append/read-only: prediction records are never updated or
// deleted.
type HistoryStore struct {
	db *sql.DB
}

func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

const historyCols = `id, original, cleaned, prediction, confidence, timestamp, user_id`

func scanHistory(scanner interface{ Scan(...any) error }) (*model.HistoryRecord, error) {
	var rec model.HistoryRecord
	var userID sql.NullInt64
	err := scanner.Scan(
		&rec.ID, &rec.Original, &rec.Cleaned, &rec.Prediction,
		&rec.Confidence, &rec.Timestamp, &userID,
	)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		rec.UserID = &userID.Int64
	}
	return &rec, nil
}

// Append records one prediction. userID may be nil for anonymous records.
func (s *HistoryStore) Append(original, cleaned, prediction string, confidence float64, ts time.Time, userID *int64) error {
	_, err := s.db.Exec(
		`INSERT INTO history (original, cleaned, prediction, confidence, timestamp, user_id)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		original, cleaned, prediction, confidence, ts, userID,
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// CountByLabel returns record counts grouped by predicted label.
func (s *HistoryStore) CountByLabel() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT prediction, COUNT(*) FROM history GROUP BY prediction`)
	if err != nil {
		return nil, fmt.Errorf("count by label: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, fmt.Errorf("scan label count: %w", err)
		}
		counts[label] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count by label rows: %w", err)
	}
	return counts, nil
}

// CountByMonth returns record counts bucketed by calendar month of the
// timestamp. Index 0 is January; months with no records stay zero.
func (s *HistoryStore) CountByMonth() ([12]int, error) {
	var monthly [12]int

	rows, err := s.db.Query(
		`SELECT CAST(strftime('%m', timestamp) AS INTEGER), COUNT(*) FROM history GROUP BY 1`,
	)
	if err != nil {
		return monthly, fmt.Errorf("count by month: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var month, count int
		if err := rows.Scan(&month, &count); err != nil {
			return monthly, fmt.Errorf("scan month count: %w", err)
		}
		if month >= 1 && month <= 12 {
			monthly[month-1] = count
		}
	}
	if err := rows.Err(); err != nil {
		return monthly, fmt.Errorf("count by month rows: %w", err)
	}
	return monthly, nil
}

// ListForUser returns the user's records, most recent first.
func (s *HistoryStore) ListForUser(userID int64) ([]model.HistoryRecord, error) {
	rows, err := s.db.Query(
		`SELECT `+historyCols+` FROM history WHERE user_id = ? ORDER BY id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var records []model.HistoryRecord
	for rows.Next() {
		rec, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list history rows: %w", err)
	}
	return records, nil
}
