package models

import (
	"time"

	"github.com/google/uuid"
)

// RowStatus classifies the fate of one upstream record during ingestion.
type RowStatus string

const (
	RowUpserted RowStatus = "upserted"
	RowSkipped  RowStatus = "skipped"
	RowFailed   RowStatus = "failed"
)

// RowOutcome is the per-record result of an ingestion step. Skips and
// failures carry a reason instead of being silently swallowed.
type RowOutcome struct {
	Abbrev string    `json:"abbrev"`
	Status RowStatus `json:"status"`
	Reason string    `json:"reason,omitempty"`
}

// DateResult aggregates the row outcomes for one fetched date.
type DateResult struct {
	Date     time.Time    `json:"date"`
	SeasonID int64        `json:"season_id"`
	Rows     []RowOutcome `json:"rows,omitempty"`
	// SkipReason is set when the whole date was skipped (rate limit
	// exhaustion, fetch failure, transaction rollback).
	SkipReason string `json:"skip_reason,omitempty"`
}

// Skipped reports whether the date produced no committed rows.
func (d *DateResult) Skipped() bool {
	return d.SkipReason != ""
}

// IngestReport summarizes one ingestion run.
type IngestReport struct {
	RunID          uuid.UUID    `json:"run_id"`
	StartedAt      time.Time    `json:"started_at"`
	FinishedAt     time.Time    `json:"finished_at"`
	DatesProcessed int          `json:"dates_processed"`
	DatesSkipped   int          `json:"dates_skipped"`
	RowsUpserted   int          `json:"rows_upserted"`
	RowsSkipped    int          `json:"rows_skipped"`
	Dates          []DateResult `json:"dates,omitempty"`
}

// AddDate folds one date's result into the running totals.
func (r *IngestReport) AddDate(res DateResult) {
	if res.Skipped() {
		r.DatesSkipped++
	} else {
		r.DatesProcessed++
	}
	for _, row := range res.Rows {
		switch row.Status {
		case RowUpserted:
			r.RowsUpserted++
		case RowSkipped, RowFailed:
			r.RowsSkipped++
		}
	}
	r.Dates = append(r.Dates, res)
}

// OutcomeReport summarizes one outcome-resolution run.
type OutcomeReport struct {
	RunID           uuid.UUID    `json:"run_id"`
	SeasonsResolved int          `json:"seasons_resolved"`
	SeasonsSkipped  int          `json:"seasons_skipped"`
	RowsUpserted    int          `json:"rows_upserted"`
	RowsSkipped     int          `json:"rows_skipped"`
	Seasons         []DateResult `json:"seasons,omitempty"`
}
