package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/joeruch23/colorado-weather-network/internal/adapter/cdot"
	"github.com/joeruch23/colorado-weather-network/internal/chat"
	"github.com/joeruch23/colorado-weather-network/internal/domain"
)

type chatResponse struct {
	OK    bool   `json:"ok"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chat.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, chatResponse{OK: false, Error: "invalid JSON body"})
		return
	}
	text := s.responder.Reply(r.Context(), req)
	s.writeJSON(w, http.StatusOK, chatResponse{OK: true, Text: text})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"alerts": s.svc.Alerts(r.Context()),
	})
}

func (s *Server) handleCurrents(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := coords(r)
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat/lon required"})
		return
	}
	summary, _ := s.svc.ForecastSummary(r.Context(), lat, lon)
	s.writeJSON(w, http.StatusOK, struct {
		Current  domain.CurrentConditions `json:"current"`
		Hourly24 []domain.ForecastPoint   `json:"hourly24"`
	}{summary.Current, summary.Hourly24})
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := coords(r)
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat/lon required"})
		return
	}
	summary, _ := s.svc.ForecastSummary(r.Context(), lat, lon)
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleSnow(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := coords(r)
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat/lon required"})
		return
	}
	s.writeJSON(w, http.StatusOK, s.svc.SnowTotals(r.Context(), lat, lon))
}

func (s *Server) handleResorts(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"resorts": s.svc.ResortSnow(r.Context()),
	})
}

func (s *Server) handleRoads(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items := domain.FilterRoadItems(s.svc.RoadItems(r.Context()), q.Get("corridor"), q.Get("kind"), q.Get("q"))
	s.writeJSON(w, http.StatusOK, struct {
		Items  []domain.RoadItem `json:"items"`
		Alerts []domain.Alert    `json:"alerts"`
	}{items, s.svc.TravelAlerts(r.Context())})
}

func (s *Server) handleCameras(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	cams := domain.FilterCameras(s.svc.Cameras(r.Context()), q.Get("corridor"), q.Get("q"))
	s.writeJSON(w, http.StatusOK, map[string]any{"cameras": cams})
}

func (s *Server) handleClosures(w http.ResponseWriter, r *http.Request) {
	raw, err := s.closures.Closures(r.Context())
	if errors.Is(err, cdot.ErrNoAPIKey) {
		s.writeJSON(w, http.StatusOK, map[string]string{"error": "Missing CDOT_API_KEY"})
		return
	}
	if err != nil {
		s.logger.Warn("closures fetch failed", "error", err)
		s.writeJSON(w, http.StatusBadGateway, map[string]string{"error": "closures unavailable"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		s.logger.Warn("response write failed", "error", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// coords reads lat/lon query parameters. Both must be present and numeric.
func coords(r *http.Request) (lat, lon float64, ok bool) {
	q := r.URL.Query()
	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if latStr == "" || lonStr == "" {
		return 0, 0, false
	}
	lat, latErr := strconv.ParseFloat(latStr, 64)
	lon, lonErr := strconv.ParseFloat(lonStr, 64)
	if latErr != nil || lonErr != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
