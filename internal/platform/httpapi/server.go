// Package httpapi serves the run history and per-player campaign records
// as read-only JSON, next to the SSH server.
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/park-guardian/internal/campaign"
	"github.com/vovakirdan/park-guardian/internal/storage"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// RunSource is the run history.
type RunSource interface {
	TopRuns(limit int) ([]storage.RunEntry, error)
	Stats() (storage.RunStats, error)
}

// Run is the JSON form of a completed campaign.
type Run struct {
	Rank      int       `json:"rank"`
	Player    string    `json:"player"`
	Time      string    `json:"time"`
	Seconds   float64   `json:"seconds"`
	Credits   int       `json:"credits"`
	Health    int       `json:"health"`
	Armor     int       `json:"armor"`
	CreatedAt time.Time `json:"createdAt"`
}

// Stats is the JSON form of the history aggregate.
type Stats struct {
	Runs         int    `json:"runs"`
	Fastest      string `json:"fastest,omitempty"`
	Average      string `json:"average,omitempty"`
	TotalCredits int    `json:"totalCredits"`
}

// Record is one player's campaign record.
type Record struct {
	Player     string             `json:"player"`
	Completed  bool               `json:"gameCompleted"`
	BestTime   string             `json:"bestRunTime,omitempty"`
	LastTime   string             `json:"currentRunTime,omitempty"`
	FinalStats *campaign.Snapshot `json:"finalStats,omitempty"`
}

// Server routes the JSON endpoints.
type Server struct {
	runs   RunSource
	kv     storage.KV
	logger *log.Logger
	router *mux.Router
}

// New creates a server. kv holds the namespaced player records.
func New(runs RunSource, kv storage.KV, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{runs: runs, kv: kv, logger: logger, router: mux.NewRouter()}
	s.router.HandleFunc("/runs", s.handleRuns).Methods(http.MethodGet)
	s.router.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	s.router.HandleFunc("/players/{name}", s.handlePlayer).Methods(http.MethodGet)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.fail(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxLimit)
	}

	entries, err := s.runs.TopRuns(limit)
	if err != nil {
		s.logger.Error("cannot list runs", "error", err)
		s.fail(w, http.StatusInternalServerError, "run history unavailable")
		return
	}
	out := make([]Run, len(entries))
	for i, e := range entries {
		out[i] = Run{
			Rank:      i + 1,
			Player:    e.Player,
			Time:      campaign.FormatClock(e.Elapsed),
			Seconds:   e.Elapsed.Seconds(),
			Credits:   e.Credits,
			Health:    e.Health,
			Armor:     e.Armor,
			CreatedAt: e.CreatedAt,
		}
	}
	s.write(w, http.StatusOK, out)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	st, err := s.runs.Stats()
	if err != nil {
		s.logger.Error("cannot aggregate runs", "error", err)
		s.fail(w, http.StatusInternalServerError, "run history unavailable")
		return
	}
	out := Stats{Runs: st.Runs, TotalCredits: st.TotalCredits}
	if st.Runs > 0 {
		out.Fastest = campaign.FormatClock(st.Fastest)
		out.Average = campaign.FormatClock(st.Average)
	}
	s.write(w, http.StatusOK, out)
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	rec := campaign.NewRecords(storage.Namespace(s.kv, name), s.logger)

	out := Record{Player: name, Completed: rec.Completed()}
	if d, ok := rec.BestTime(); ok {
		out.BestTime = campaign.FormatClock(d)
	}
	if d, ok := rec.LastRunTime(); ok {
		out.LastTime = campaign.FormatClock(d)
	}
	if final, ok := rec.FinalStats(); ok {
		out.FinalStats = &final
	}
	s.write(w, http.StatusOK, out)
}

func (s *Server) write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("cannot write response", "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string) {
	s.write(w, status, map[string]string{"error": msg})
}
