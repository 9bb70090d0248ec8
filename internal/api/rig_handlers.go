package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/banshee-data/surround.view/internal/config"
	"github.com/banshee-data/surround.view/internal/httputil"
	"github.com/banshee-data/surround.view/internal/security"
)

// RigResponse is the body of GET /api/rig.
type RigResponse struct {
	Name   string            `json:"name"`
	Config *config.RigConfig `json:"config"`
	Error  string            `json:"plan_error,omitempty"`
}

func (s *Server) handleRig(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.showRig(w)
	case http.MethodPut:
		s.replaceRig(w, r)
	default:
		httputil.MethodNotAllowed(w)
	}
}

func (s *Server) showRig(w http.ResponseWriter) {
	snap, err := s.current()
	resp := RigResponse{Name: snap.rigName, Config: snap.rig}
	if err != nil {
		resp.Error = err.Error()
	}
	httputil.WriteJSONOK(w, resp)
}

// replaceRig plans the submitted rig and publishes it only if every stage
// succeeds; on failure the previous rig and plan stay active.
func (s *Server) replaceRig(w http.ResponseWriter, r *http.Request) {
	var name string
	if raw := strings.TrimSpace(r.URL.Query().Get("name")); raw != "" {
		if name = security.SanitizeName(raw); name == "" {
			httputil.BadRequest(w, fmt.Sprintf("invalid rig name %q", raw))
			return
		}
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, httputil.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteJSONError(w, http.StatusRequestEntityTooLarge, "rig config too large")
			return
		}
		httputil.BadRequest(w, fmt.Sprintf("failed to read body: %v", err))
		return
	}

	rig, err := config.ParseRigConfig(data)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	plan, planErr, err := buildPlan(rig)
	if err != nil {
		writeError(w, err)
		return
	}
	if planErr != nil {
		writeError(w, planErr)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if name == "" {
		name = s.rigName
	}
	if s.rigs != nil {
		if err := s.rigs.SaveRig(name, rig); err != nil {
			httputil.InternalServerError(w, err.Error())
			return
		}
	}
	s.rigName, s.rig, s.plan, s.planErr = name, rig, plan, nil
	log.Printf("rig %s replaced: %d cameras, %d copy areas", name, plan.CameraNum, len(plan.CopyAreas))
	httputil.WriteJSONOK(w, plan)
}
