package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avelar/wordflash/internal/logger"
)

func (s *Server) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.StatsService.Overview(r.Context(), time.Now())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) handleStatsHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	days := 30
	if v, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil && v > 0 && v <= 365 {
		days = v
	}

	log.Debug("fetching %d days of study history", days)
	history, err := s.StatsService.History(r.Context(), days, time.Now())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"days":    days,
		"history": history,
	})
}
