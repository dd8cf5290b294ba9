// Package db persists tracking samples and analysis runs in sqlite.
package db

import (
	"compress/gzip"
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/tailscale/tailsql/server/tailsql"
	_ "modernc.org/sqlite"
	"tailscale.com/tsweb"

	"github.com/marine-data/behavior.report/internal/source"
	"github.com/marine-data/behavior.report/internal/tracking"
)

type DB struct {
	*sql.DB
	path string
}

// NewDB opens (creating if needed) the behavior database at path.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS samples (
			run_id            TEXT,
			sampled_at        TIMESTAMP,
			subject_id        TEXT,
			x_position        DOUBLE,
			y_position        DOUBLE,
			velocity          DOUBLE,
			interaction_type  TEXT
		);
		CREATE TABLE IF NOT EXISTS analysis_runs (
			run_id            TEXT PRIMARY KEY,
			species           TEXT,
			source_origin     TEXT,
			sample_count      BIGINT,
			mean_distance     DOUBLE,
			min_distance      DOUBLE,
			proximity_events  BIGINT,
			timestamp         TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_samples_run ON samples(run_id);
	`)
	if err != nil {
		return nil, err
	}

	return &DB{DB: db, path: path}, nil
}

// Run is one persisted analysis run: where the samples came from, how many
// there were, and the summary statistics computed over them.
type Run struct {
	RunID       string           `json:"run_id"`
	Species     string           `json:"species"`
	Origin      source.Origin    `json:"source_origin"`
	SampleCount int              `json:"sample_count"`
	Summary     tracking.Summary `json:"summary"`
	CreatedAt   time.Time        `json:"created_at"`
}

// NewRun builds a Run with a fresh id for the given analysis output.
func NewRun(species string, origin source.Origin, sampleCount int, summary tracking.Summary) Run {
	return Run{
		RunID:       uuid.NewString(),
		Species:     species,
		Origin:      origin,
		SampleCount: sampleCount,
		Summary:     summary,
	}
}

// RecordRun inserts one analysis run.
func (db *DB) RecordRun(run Run) error {
	_, err := db.Exec(
		`INSERT INTO analysis_runs
			(run_id, species, source_origin, sample_count, mean_distance, min_distance, proximity_events)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Species, string(run.Origin), run.SampleCount,
		run.Summary.MeanDistance, run.Summary.MinDistance, run.Summary.ProximityEvents,
	)
	return err
}

// RecordSamples inserts a run's samples in one transaction.
func (db *DB) RecordSamples(runID string, samples []tracking.Sample) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO samples
			(run_id, sampled_at, subject_id, x_position, y_position, velocity, interaction_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, s := range samples {
		if _, err := stmt.Exec(runID, s.Timestamp, string(s.Subject), s.X, s.Y, s.Velocity, string(s.Interaction)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Runs returns the most recent analysis runs, newest first.
func (db *DB) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.Query(
		`SELECT run_id, species, source_origin, sample_count,
			mean_distance, min_distance, proximity_events, timestamp
		 FROM analysis_runs ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var origin string
		if err := rows.Scan(&r.RunID, &r.Species, &origin, &r.SampleCount,
			&r.Summary.MeanDistance, &r.Summary.MinDistance, &r.Summary.ProximityEvents, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Origin = source.Origin(origin)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// Samples returns a run's samples in insertion order.
func (db *DB) Samples(runID string) ([]tracking.Sample, error) {
	rows, err := db.Query(
		`SELECT sampled_at, subject_id, x_position, y_position, velocity, interaction_type
		 FROM samples WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []tracking.Sample
	for rows.Next() {
		var s tracking.Sample
		var subject, interaction string
		if err := rows.Scan(&s.Timestamp, &subject, &s.X, &s.Y, &s.Velocity, &interaction); err != nil {
			return nil, err
		}
		s.Subject = tracking.SubjectID(subject)
		s.Interaction = tracking.InteractionLabel(interaction)
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

// AttachAdminRoutes mounts the tailsql live-SQL console and a backup handler
// on the debug mux.
func (db *DB) AttachAdminRoutes(mux *http.ServeMux) error {
	debug := tsweb.Debugger(mux)
	tsql, err := tailsql.NewServer(tailsql.Options{
		RoutePrefix: "/debug/tailsql/",
	})
	if err != nil {
		return fmt.Errorf("failed to create tailsql server: %w", err)
	}
	tsql.SetDB("sqlite://"+db.path, db.DB, &tailsql.DBOptions{
		Label: "Behavior DB",
	})
	debug.Handle("tailsql/", "SQL live debugging", tsql.NewMux())

	debug.Handle("backup", "Create and download a backup of the database now", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backupPath := fmt.Sprintf("backup-%d.db", time.Now().Unix())
		if _, err := db.DB.Exec("VACUUM INTO ?", backupPath); err != nil {
			http.Error(w, fmt.Sprintf("Failed to create backup: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.gz", backupPath))
		w.Header().Set("Content-Type", "application/octet-stream")

		backupFile, err := os.Open(backupPath)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to open backup file: %v", err), http.StatusInternalServerError)
			return
		}
		defer func() {
			backupFile.Close()
			if err := os.Remove(backupPath); err != nil {
				log.Printf("Failed to remove backup file: %v", err)
			}
		}()

		gzipWriter := gzip.NewWriter(w)
		defer gzipWriter.Close()
		if _, err := io.Copy(gzipWriter, backupFile); err != nil {
			http.Error(w, fmt.Sprintf("Failed to write backup file: %v", err), http.StatusInternalServerError)
			return
		}
	}))
	return nil
}
