// Package api serves analysis results over HTTP: JSON summaries plus the
// default HTML charts.
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/marine-data/behavior.report/db"
	"github.com/marine-data/behavior.report/internal/httputil"
	"github.com/marine-data/behavior.report/internal/report"
	"github.com/marine-data/behavior.report/internal/tracking"
)

type Server struct {
	db *db.DB
}

func NewServer(database *db.DB) *Server {
	return &Server{db: database}
}

// ServeMux returns the route table for the analysis server.
func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/summary", s.latestSummary)
	mux.HandleFunc("/api/runs", s.listRuns)
	mux.HandleFunc("/charts/interactions", s.interactionChart)
	mux.HandleFunc("/charts/distance", s.distanceChart)
	mux.HandleFunc("/", s.homeHandler)
	return mux
}

func (s *Server) homeHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		httputil.NotFound(w, "not found")
		return
	}
	fmt.Fprint(w, "Behavior analysis server. See /api/summary, /api/runs, /charts/interactions, /charts/distance.")
}

// latestRun returns the most recent analysis run, or ok=false when the
// database holds none.
func (s *Server) latestRun(w http.ResponseWriter) (db.Run, bool) {
	runs, err := s.db.Runs(1)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to query runs: %v", err))
		return db.Run{}, false
	}
	if len(runs) == 0 {
		httputil.NotFound(w, "no analysis runs recorded")
		return db.Run{}, false
	}
	return runs[0], true
}

func (s *Server) latestSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	run, ok := s.latestRun(w)
	if !ok {
		return
	}
	httputil.WriteJSONOK(w, run)
}

func (s *Server) listRuns(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}

	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v <= 0 || v > 1000 {
			httputil.BadRequest(w, "limit must be an integer between 1 and 1000")
			return
		}
		limit = v
	}

	runs, err := s.db.Runs(limit)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to query runs: %v", err))
		return
	}
	if runs == nil {
		runs = []db.Run{}
	}
	httputil.WriteJSONOK(w, runs)
}

// latestSamples loads the sample sequence of the most recent run.
func (s *Server) latestSamples(w http.ResponseWriter) ([]tracking.Sample, bool) {
	run, ok := s.latestRun(w)
	if !ok {
		return nil, false
	}
	samples, err := s.db.Samples(run.RunID)
	if err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to load samples: %v", err))
		return nil, false
	}
	if len(samples) == 0 {
		httputil.NotFound(w, "no samples recorded for latest run")
		return nil, false
	}
	return samples, true
}

func (s *Server) interactionChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	samples, ok := s.latestSamples(w)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.InteractionPie(samples).Render(w); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
	}
}

func (s *Server) distanceChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	samples, ok := s.latestSamples(w)
	if !ok {
		return
	}

	analyzer := tracking.NewMovementAnalyzer()
	analyzer.Load(samples)
	dists := analyzer.Distances()
	if len(dists) == 0 {
		httputil.NotFound(w, "latest run does not contain both subjects")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.DistanceLine(dists).Render(w); err != nil {
		httputil.InternalServerError(w, fmt.Sprintf("failed to render chart: %v", err))
	}
}
