package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/banshee-data/surround.view/internal/config"
	"github.com/banshee-data/surround.view/internal/httputil"
	"github.com/banshee-data/surround.view/internal/plandb"
	"github.com/banshee-data/surround.view/internal/security"
	"github.com/banshee-data/surround.view/internal/stitch"
)

// ANSI escape codes for cyan and reset
const colorCyan = "\033[36m"
const colorReset = "\033[0m"
const colorYellow = "\033[33m"
const colorBoldGreen = "\033[1;32m"
const colorBoldRed = "\033[1;31m"

// Server serves the plan of one active rig. Requests that replace the rig
// take the write lock; plan snapshots are immutable once published.
type Server struct {
	mu      sync.RWMutex
	rigName string
	rig     *config.RigConfig
	plan    *stitch.Plan
	planErr error

	rigs  *plandb.RigStore
	plans *plandb.PlanStore
}

// NewServer plans rig under rigName. db may be nil, in which case the
// stored-plan routes answer 503. A rig whose plan fails still starts the
// server so the failure can be inspected and the rig replaced.
func NewServer(rigName string, rig *config.RigConfig, db *plandb.DB) (*Server, error) {
	name := security.SanitizeName(rigName)
	if name == "" {
		return nil, fmt.Errorf("invalid rig name %q", rigName)
	}
	rigName = name
	s := &Server{rigName: rigName}
	if db != nil {
		s.rigs = plandb.NewRigStore(db)
		s.plans = plandb.NewPlanStore(db)
	}
	plan, planErr, err := buildPlan(rig)
	if err != nil {
		return nil, err
	}
	if planErr != nil {
		log.Printf("rig %s does not plan: %v", rigName, planErr)
	}
	if s.rigs != nil {
		if err := s.rigs.SaveRig(rigName, rig); err != nil {
			return nil, err
		}
	}
	s.rig, s.plan, s.planErr = rig, plan, planErr
	return s, nil
}

// buildPlan returns a configuration error in err and a planning failure in
// planErr.
func buildPlan(rig *config.RigConfig) (plan *stitch.Plan, planErr, err error) {
	st, err := rig.NewStitcher()
	if err != nil {
		return nil, nil, err
	}
	plan, planErr = st.Plan()
	return plan, planErr, nil
}

// snapshot is the state published by the last successful rig update.
type snapshot struct {
	rigName string
	rig     *config.RigConfig
	plan    *stitch.Plan
}

// current returns the published state, or the error that kept the rig from
// planning.
func (s *Server) current() (snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{rigName: s.rigName, rig: s.rig, plan: s.plan}, s.planErr
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func statusCodeColor(statusCode int) string {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return colorBoldGreen + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 300 && statusCode < 400:
		return colorYellow + strconv.Itoa(statusCode) + colorReset
	case statusCode >= 400:
		return colorBoldRed + strconv.Itoa(statusCode) + colorReset
	default:
		return strconv.Itoa(statusCode)
	}
}

// LoggingMiddleware logs method, path, query, status, and duration
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{w, http.StatusOK}
		next.ServeHTTP(lrw, r)
		log.Printf(
			"[%s] %s %s%s%s %vms",
			statusCodeColor(lrw.statusCode), r.Method,
			colorCyan, r.RequestURI, colorReset,
			float64(time.Since(start).Nanoseconds())/1e6,
		)
	})
}

func (s *Server) ServeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/plan", s.showPlan)
	mux.HandleFunc("/api/plan/chart", s.showPlanChart)
	mux.HandleFunc("/api/plan/layout.png", s.showPlanLayout)
	mux.HandleFunc("/api/plan/summary", s.showPlanSummary)
	mux.HandleFunc("/api/rig", s.handleRig)
	mux.HandleFunc("/api/plans", s.handlePlans)
	mux.HandleFunc("/api/plans/", s.handlePlanByID)
	return mux
}

// writeError maps planner and store error kinds onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	msg := err.Error()
	switch {
	case errors.Is(err, stitch.ErrParam):
		httputil.BadRequest(w, msg)
	case errors.Is(err, stitch.ErrOrder):
		httputil.Conflict(w, msg)
	case errors.Is(err, stitch.ErrGeometry):
		httputil.UnprocessableEntity(w, msg)
	case errors.Is(err, plandb.ErrNotFound):
		httputil.NotFound(w, msg)
	default:
		httputil.InternalServerError(w, fmt.Sprintf("internal error: %v", err))
	}
}
