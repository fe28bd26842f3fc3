package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
)

func (s *Server) handleGetProgress(w http.ResponseWriter, r *http.Request) {
	record, err := s.ProgressService.GetOrCreate(r.Context(), chi.URLParam(r, "wordID"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	wordID := chi.URLParam(r, "wordID")
	if err := s.ProgressService.Reset(r.Context(), wordID); err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("progress reset for word %s", wordID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportProgress(w http.ResponseWriter, r *http.Request) {
	export, err := s.ProgressService.Export(r.Context(), time.Now())
	if err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="progress.json"`)
	writeJSON(w, http.StatusOK, export)
}

func (s *Server) handleImportProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var export models.ProgressExport
	if err := decodeJSON(r, &export); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ProgressService.Import(r.Context(), export); err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("imported progress for %d words", len(export.Records))
	writeJSON(w, http.StatusOK, map[string]any{"imported": len(export.Records)})
}
