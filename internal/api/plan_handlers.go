package api

import (
	"bytes"
	"net/http"

	"github.com/banshee-data/surround.view/internal/httputil"
	"github.com/banshee-data/surround.view/internal/report"
	"github.com/banshee-data/surround.view/internal/visual"
)

func (s *Server) showPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	snap, err := s.current()
	if err != nil {
		writeError(w, err)
		return
	}
	httputil.WriteJSONOK(w, snap.plan)
}

// showPlanChart renders the copy-area layout as an interactive go-echarts page.
func (s *Server) showPlanChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	snap, err := s.current()
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := visual.RenderLayoutHTML(snap.plan, &buf); err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}
	httputil.WriteBody(w, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) showPlanLayout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	snap, err := s.current()
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := visual.WriteLayoutPNG(snap.plan, &buf); err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}
	httputil.WriteBody(w, "image/png", buf.Bytes())
}

func (s *Server) showPlanSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		httputil.MethodNotAllowed(w)
		return
	}
	snap, err := s.current()
	if err != nil {
		writeError(w, err)
		return
	}

	sum, err := report.Summarize(snap.plan, snap.rig.CameraInfos())
	if err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}
	httputil.WriteJSONOK(w, sum)
}
