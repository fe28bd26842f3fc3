package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/decks", func(r chi.Router) {
			r.Get("/", s.handleListDecks)
			r.Post("/", s.handleCreateDeck)
			r.Post("/import", s.handleImportDeck)
			r.Get("/{id}", s.handleGetDeck)
			r.Put("/{id}", s.handleUpdateDeck)
			r.Delete("/{id}", s.handleDeleteDeck)
			r.Get("/{id}/export", s.handleExportDeck)
			r.Post("/{id}/cards", s.handleAddCards)
			r.Delete("/{id}/cards/{cardID}", s.handleRemoveCard)
		})
		r.Get("/cards", s.handleListCards)

		r.Route("/study", func(r chi.Router) {
			r.Post("/session", s.handleCreateSession)
			r.Get("/session", s.handleCurrentSession)
			r.Get("/next", s.handleNextCard)
			r.Post("/result", s.handleRecordResult)
			r.Post("/pause", s.handlePauseSession)
			r.Post("/resume", s.handleResumeSession)
			r.Post("/complete", s.handleCompleteSession)
			r.Post("/abandon", s.handleAbandonSession)
			r.Post("/undo", s.handleUndo)
			r.Get("/retries", s.handleRetryCards)
			r.Post("/retries/skip", s.handleSkipRetryWait)
		})

		r.Route("/progress", func(r chi.Router) {
			r.Get("/{wordID}", s.handleGetProgress)
			r.Post("/{wordID}/reset", s.handleResetProgress)
			r.Get("/export", s.handleExportProgress)
			r.Post("/import", s.handleImportProgress)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/", s.handleStatsOverview)
			r.Get("/history", s.handleStatsHistory)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", s.handleListGroups)
			r.Post("/", s.handleCreateGroup)
			r.Get("/{id}", s.handleGetGroup)
			r.Put("/{id}", s.handleUpdateGroup)
			r.Delete("/{id}", s.handleDeleteGroup)
		})

		r.Route("/audio", func(r chi.Router) {
			r.Get("/{word}", s.handleGetAudio)
			r.Post("/preload", s.handlePreloadAudio)
			r.Get("/settings", s.handleGetAudioSettings)
			r.Put("/settings", s.handleUpdateAudioSettings)
			r.Get("/cache", s.handleAudioCacheStatus)
			r.Delete("/cache", s.handleClearAudioCache)
		})
	})

	return r
}
