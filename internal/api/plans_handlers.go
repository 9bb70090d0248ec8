package api

import (
	"net/http"
	"strings"

	"github.com/banshee-data/surround.view/internal/httputil"
	"github.com/banshee-data/surround.view/internal/plandb"
)

// CreatePlanResponse is the body of a successful POST /api/plans.
type CreatePlanResponse struct {
	ID      string `json:"id"`
	RigName string `json:"rig_name"`
}

func (s *Server) handlePlans(w http.ResponseWriter, r *http.Request) {
	if s.plans == nil {
		httputil.ServiceUnavailable(w, "plan store not configured")
		return
	}

	switch r.Method {
	case http.MethodGet:
		plans, err := s.plans.ListPlans(r.URL.Query().Get("rig"))
		if err != nil {
			httputil.InternalServerError(w, err.Error())
			return
		}
		if plans == nil {
			plans = []*plandb.StoredPlan{}
		}
		httputil.WriteJSONOK(w, plans)
	case http.MethodPost:
		snap, err := s.current()
		if err != nil {
			writeError(w, err)
			return
		}
		// Each stored copy gets its own ID.
		p := *snap.plan
		p.ID = ""
		id, err := s.plans.InsertPlan(snap.rigName, &p)
		if err != nil {
			httputil.InternalServerError(w, err.Error())
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, CreatePlanResponse{ID: id, RigName: snap.rigName})
	default:
		httputil.MethodNotAllowed(w)
	}
}

func (s *Server) handlePlanByID(w http.ResponseWriter, r *http.Request) {
	if s.plans == nil {
		httputil.ServiceUnavailable(w, "plan store not configured")
		return
	}
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/plans/"), "/")
	if id == "" || strings.Contains(id, "/") {
		httputil.NotFound(w, "plan id required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		sp, err := s.plans.GetPlan(id)
		if err != nil {
			writeError(w, err)
			return
		}
		httputil.WriteJSONOK(w, sp)
	case http.MethodDelete:
		if err := s.plans.DeletePlan(id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		httputil.MethodNotAllowed(w)
	}
}
