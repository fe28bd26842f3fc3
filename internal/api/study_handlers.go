package api

import (
	"net/http"

	"github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
)

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var cfg models.SessionConfig
	if err := decodeJSON(r, &cfg); err != nil {
		handleError(w, r, err)
		return
	}

	log = log.WithFields(map[string]any{
		"decks":        len(cfg.DeckIDs),
		"round_size":   cfg.RoundSize,
		"session_type": cfg.SessionType,
	})
	log.Info("starting study session")

	sess, err := s.SessionService.Create(r.Context(), cfg)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("study session started, %d cards planned", len(sess.OrderedCards))
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleCurrentSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.SessionService.Current(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleNextCard(w http.ResponseWriter, r *http.Request) {
	next, err := s.SessionService.NextCard(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, next)
}

func (s *Server) handleRecordResult(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CardID       string              `json:"card_id"`
		Result       models.ReviewResult `json:"result"`
		ResponseTime float64             `json:"response_time"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}
	if body.CardID == "" {
		handleError(w, r, errors.NewValidationError("card_id", "is required"))
		return
	}

	record, err := s.SessionService.RecordResult(r.Context(), body.CardID, body.Result, body.ResponseTime)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handlePauseSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.SessionService.Pause(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleResumeSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.SessionService.Resume(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	summary, err := s.SessionService.Complete(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleAbandonSession(w http.ResponseWriter, r *http.Request) {
	if err := s.SessionService.Abandon(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	sess, err := s.SessionService.Undo(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleRetryCards(w http.ResponseWriter, r *http.Request) {
	retries, err := s.SessionService.RetryCards(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"retries": retries})
}

func (s *Server) handleSkipRetryWait(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CardID string `json:"card_id"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}

	skipped, err := s.SessionService.SkipRetryWait(r.Context(), body.CardID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"skipped": skipped})
}
