package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/avelar/wordflash/internal/audio"
	"github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/logger"
)

func (s *Server) handleGetAudio(w http.ResponseWriter, r *http.Request) {
	word := chi.URLParam(r, "word")
	if word == "" {
		handleError(w, r, errors.NewBadRequestError("word is required"))
		return
	}

	if !s.AudioService.Settings().Enabled {
		handleError(w, r, errors.NewConflictError("audio playback is disabled"))
		return
	}

	clip, err := s.AudioService.Get(r.Context(), word)
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(clip); err != nil {
		logger.FromContext(r.Context()).Warn("audio write interrupted: %v", err)
	}
}

func (s *Server) handlePreloadAudio(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Words []string `json:"words"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}
	if len(body.Words) == 0 {
		handleError(w, r, errors.NewBadRequestError("no words provided"))
		return
	}

	s.AudioService.Preload(r.Context(), body.Words)
	writeJSON(w, http.StatusAccepted, map[string]any{"queued": len(body.Words)})
}

func (s *Server) handleGetAudioSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.AudioService.Settings())
}

func (s *Server) handleUpdateAudioSettings(w http.ResponseWriter, r *http.Request) {
	var settings audio.Settings
	if err := decodeJSON(r, &settings); err != nil {
		handleError(w, r, err)
		return
	}

	s.AudioService.UpdateSettings(settings)
	writeJSON(w, http.StatusOK, s.AudioService.Settings())
}

func (s *Server) handleAudioCacheStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.AudioService.Status())
}

func (s *Server) handleClearAudioCache(w http.ResponseWriter, r *http.Request) {
	s.AudioService.ClearCache()
	w.WriteHeader(http.StatusNoContent)
}
