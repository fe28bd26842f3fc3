package api

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/avelar/wordflash/internal/errors"
	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/models"
)

const maxImportSize = 20 << 20 // 20 MB upload cap

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	decks, err := s.DeckService.ListDecks(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"decks": decks})
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	deck, err := s.DeckService.GetDeck(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, deck)
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	var deck models.Deck
	if err := decodeJSON(r, &deck); err != nil {
		handleError(w, r, err)
		return
	}

	created, err := s.DeckService.CreateDeck(r.Context(), deck)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateDeck(w http.ResponseWriter, r *http.Request) {
	var deck models.Deck
	if err := decodeJSON(r, &deck); err != nil {
		handleError(w, r, err)
		return
	}
	deck.ID = chi.URLParam(r, "id")

	updated, err := s.DeckService.UpdateDeck(r.Context(), deck)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	if err := s.DeckService.DeleteDeck(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddCards(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Cards []models.WordCard `json:"cards"`
	}
	if err := decodeJSON(r, &body); err != nil {
		handleError(w, r, err)
		return
	}
	if len(body.Cards) == 0 {
		handleError(w, r, errors.NewBadRequestError("no cards provided"))
		return
	}

	deckID := chi.URLParam(r, "id")
	if err := s.DeckService.AddCards(r.Context(), deckID, body.Cards); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"added": len(body.Cards)})
}

func (s *Server) handleRemoveCard(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "id")
	cardID := chi.URLParam(r, "cardID")
	if err := s.DeckService.RemoveCard(r.Context(), deckID, cardID); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 50
	if v, err := strconv.Atoi(q.Get("limit")); err == nil && v > 0 && v <= 500 {
		limit = v
	}
	offset := 0
	if v, err := strconv.Atoi(q.Get("offset")); err == nil && v > 0 {
		offset = v
	}

	filter := models.CardFilter{
		DeckID:       q.Get("deck_id"),
		PartOfSpeech: q.Get("part_of_speech"),
		CEFR:         q.Get("cefr"),
		Tag:          q.Get("tag"),
		Search:       q.Get("search"),
		Limit:        limit,
		Offset:       offset,
	}

	cards, total, err := s.DeckService.ListCards(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"cards":  cards,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

// handleImportDeck accepts a multipart upload (field "file") and builds a
// deck from it. The format is picked from the file extension.
func (s *Server) handleImportDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("file field is required"))
		return
	}
	defer file.Close()

	deckName := strings.TrimSpace(r.FormValue("name"))
	if deckName == "" {
		deckName = strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	}

	log = log.WithFields(map[string]any{
		"filename": header.Filename,
		"deck":     deckName,
	})
	log.Info("importing deck from upload")

	var summary any
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".csv":
		summary, err = s.ImportService.ImportCSV(r.Context(), deckName, file)
	case ".xlsx":
		summary, err = s.ImportService.ImportXLSX(r.Context(), deckName, file)
	default:
		err = errors.NewBadRequestError(fmt.Sprintf("unsupported file type %q", filepath.Ext(header.Filename)))
	}
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("deck import finished")
	writeJSON(w, http.StatusCreated, summary)
}

func (s *Server) handleExportDeck(w http.ResponseWriter, r *http.Request) {
	deckID := chi.URLParam(r, "id")

	var buf bytes.Buffer
	if err := s.ImportService.ExportCSV(r.Context(), deckID, &buf); err != nil {
		handleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", deckID+".csv"))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContext(r.Context()).Warn("deck export write interrupted: %v", err)
	}
}
