package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/waiola-dashboard/internal/chart"
	"github.com/couchcryptid/waiola-dashboard/internal/dashboard"
	"github.com/couchcryptid/waiola-dashboard/internal/domain"
)

const maxCallbackBody = 1 << 20

type callbackResponse struct {
	Outputs dashboard.Outputs `json:"outputs"`
}

type siteResponse struct {
	Site   string                  `json:"site"`
	Date   string                  `json:"date"`
	Year   string                  `json:"year"`
	Lat    chart.Number            `json:"lat"`
	Lon    chart.Number            `json:"lon"`
	Values map[string]chart.Number `json:"values"`
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dashboard.PageOptions())
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	b, ok := s.binding(w)
	if !ok {
		return
	}

	var ev dashboard.Event
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxCallbackBody))
	if err := dec.Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, "invalid callback body: "+err.Error())
		return
	}

	out, err := b.dispatcher.Dispatch(ev)
	switch {
	case errors.Is(err, dashboard.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		s.logger.Error("callback failed", "trigger", ev.Trigger, "error", err)
		writeError(w, http.StatusInternalServerError, "callback failed")
		return
	}

	if len(out) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, callbackResponse{Outputs: out})
}

func (s *Server) handleChartExport(w http.ResponseWriter, r *http.Request) {
	b, ok := s.binding(w)
	if !ok {
		return
	}

	q := r.URL.Query()
	format, err := chart.ParseFormat(q.Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fig, err := b.controller.Figure(r.PathValue("id"), inputsFromQuery(q))
	switch {
	case errors.Is(err, dashboard.ErrNoUpdate):
		w.WriteHeader(http.StatusNoContent)
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	err = chart.Render(fig, format, &buf)
	switch {
	case errors.Is(err, chart.ErrNotExportable):
		s.metrics.ChartExports.WithLabelValues(string(format), "error").Inc()
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, chart.ErrNoData):
		s.metrics.ChartExports.WithLabelValues(string(format), "empty").Inc()
		w.WriteHeader(http.StatusNoContent)
		return
	case err != nil:
		s.metrics.ChartExports.WithLabelValues(string(format), "error").Inc()
		s.logger.Error("chart export failed", "chart", r.PathValue("id"), "format", format, "error", err)
		writeError(w, http.StatusInternalServerError, "chart export failed")
		return
	}

	s.metrics.ChartExports.WithLabelValues(string(format), "success").Inc()
	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck // client went away
}

func (s *Server) handleSites(w http.ResponseWriter, _ *http.Request) {
	ds := s.backend.Dataset()
	if ds == nil {
		writeError(w, http.StatusServiceUnavailable, "dataset is loading")
		return
	}

	latest := ds.MostRecent()
	out := make([]siteResponse, 0, len(latest))
	for _, rec := range latest {
		values := make(map[string]chart.Number, domain.NumFields)
		for _, f := range domain.Fields() {
			values[f.Column()] = chart.Number(rec.Values[f])
		}
		out = append(out, siteResponse{
			Site:   rec.Site,
			Date:   rec.Date.Format(time.DateOnly),
			Year:   rec.Year,
			Lat:    chart.Number(rec.Position.Lat),
			Lon:    chart.Number(rec.Position.Long),
			Values: values,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// binding returns the controller and dispatcher for the loaded dataset,
// building them on first use and again only if the dataset changes. It
// writes 503 while the startup pipeline is still running.
func (s *Server) binding(w http.ResponseWriter) (*binding, bool) {
	ds := s.backend.Dataset()
	if ds == nil {
		writeError(w, http.StatusServiceUnavailable, "dataset is loading")
		return nil, false
	}
	if b := s.bound.Load(); b != nil && b.data == ds {
		return b, true
	}
	ctrl := dashboard.NewController(ds, s.mapboxToken)
	b := &binding{
		data:       ds,
		controller: ctrl,
		dispatcher: dashboard.NewDispatcher(ctrl, s.logger, s.metrics),
	}
	s.bound.Store(b)
	return b, true
}

// inputsFromQuery reads control values from theme, region (repeatable),
// color, and size parameters. An absent region parameter selects every
// region; a blank one selects none.
func inputsFromQuery(q url.Values) dashboard.Inputs {
	in := dashboard.Inputs{
		Theme:   q.Get("theme"),
		ColorBy: q.Get("color"),
		Size:    q.Get("size"),
	}
	if q.Has("region") {
		in.Regions = []string{}
		for _, r := range q["region"] {
			if r != "" {
				in.Regions = append(in.Regions, r)
			}
		}
	}
	return in
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
