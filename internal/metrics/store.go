package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RunMetric records the outcome of one planning session.
type RunMetric struct {
	MealPlanID  string
	Passes      int
	DaysPlanned int
	Latency     time.Duration
	Failed      bool
	Timestamp   time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	db *sql.DB
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m RunMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	var planID sql.NullString
	if m.MealPlanID != "" {
		planID = sql.NullString{String: m.MealPlanID, Valid: true}
	}
	failed := 0
	if m.Failed {
		failed = 1
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO planning_runs (meal_plan_id, passes, days_planned, latency_ms, failed, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
		planID, m.Passes, m.DaysPlanned, m.Latency.Milliseconds(), failed, ts.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record planning run: %w", err)
	}
	return nil
}

// DailyRuns aggregates the planning runs of a single day.
type DailyRuns struct {
	Date         string
	Runs         int
	Failed       int
	AvgPasses    float64
	AvgLatencyMS float64
}

// GetDailyRuns retrieves per-day totals for the last N days, newest first.
func (s *Store) GetDailyRuns(ctx context.Context, days int) ([]DailyRuns, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.db.QueryContext(ctx, `
		SELECT substr(timestamp, 1, 10) AS day,
		       COUNT(*),
		       COALESCE(SUM(failed), 0),
		       COALESCE(AVG(passes), 0),
		       COALESCE(AVG(latency_ms), 0)
		FROM planning_runs
		WHERE timestamp >= ?
		GROUP BY day
		ORDER BY day DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily runs: %w", err)
	}
	defer rows.Close()

	var results []DailyRuns
	for rows.Next() {
		var d DailyRuns
		if err := rows.Scan(&d.Date, &d.Runs, &d.Failed, &d.AvgPasses, &d.AvgLatencyMS); err != nil {
			return nil, fmt.Errorf("failed to scan daily runs: %w", err)
		}
		results = append(results, d)
	}
	return results, rows.Err()
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	res, err := s.db.ExecContext(ctx, `DELETE FROM planning_runs WHERE timestamp < ?`, threshold)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up planning runs: %w", err)
	}
	return res.RowsAffected()
}
