package audio

import (
	"context"
	"fmt"
	"sync"

	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/worker"
)

// Settings controls how pronunciations are synthesized and played back.
type Settings struct {
	Enabled      bool    `json:"enabled"`
	Lang         string  `json:"lang"`
	Voice        string  `json:"voice,omitempty"`
	PlaybackRate float64 `json:"playback_rate"`
}

// DefaultSettings returns the out-of-the-box audio settings.
func DefaultSettings() Settings {
	return Settings{Enabled: true, Lang: "en-US", PlaybackRate: 1.0}
}

// CacheStatus reports cache occupancy for the settings screen.
type CacheStatus struct {
	Entries       int   `json:"entries"`
	SizeBytes     int64 `json:"size_bytes"`
	CapacityBytes int64 `json:"capacity_bytes"`
}

// Service fronts the TTS generator with an LRU cache and a preload queue.
type Service struct {
	gen   Generator
	cache *Cache
	pool  *worker.Pool
	log   *logger.Logger

	mu       sync.RWMutex
	settings Settings
}

// NewService wires the audio service. The pool may be nil, in which case
// Preload synthesizes inline.
func NewService(gen Generator, cache *Cache, pool *worker.Pool) *Service {
	return &Service{
		gen:      gen,
		cache:    cache,
		pool:     pool,
		log:      logger.Default().WithPrefix("audio"),
		settings: DefaultSettings(),
	}
}

func cacheKey(word, lang, voice string) string {
	return fmt.Sprintf("%s|%s|%s", lang, voice, word)
}

// Get returns the pronunciation clip for word, synthesizing and caching
// it on a miss.
func (s *Service) Get(ctx context.Context, word string) ([]byte, error) {
	settings := s.Settings()
	return s.get(ctx, word, settings.Lang, settings.Voice)
}

func (s *Service) get(ctx context.Context, word, lang, voice string) ([]byte, error) {
	key := cacheKey(word, lang, voice)
	if clip, ok := s.cache.Get(key); ok {
		return clip, nil
	}

	clip, err := s.gen.Synthesize(ctx, word, lang, voice)
	if err != nil {
		return nil, err
	}
	s.cache.Put(key, clip)
	return clip, nil
}

// Preload queues background synthesis for the given words so a session's
// clips are warm before the learner reaches them.
func (s *Service) Preload(ctx context.Context, words []string) {
	settings := s.Settings()
	if !settings.Enabled {
		return
	}

	for _, word := range words {
		if _, ok := s.cache.Get(cacheKey(word, settings.Lang, settings.Voice)); ok {
			continue
		}
		job := &preloadJob{svc: s, word: word, lang: settings.Lang, voice: settings.Voice}
		if s.pool == nil {
			if err := job.Run(ctx); err != nil {
				s.log.Warn("inline preload failed for %q: %v", word, err)
			}
			continue
		}
		if err := s.pool.Submit(job); err != nil {
			s.log.Warn("preload skipped for %q: %v", word, err)
		}
	}
}

// Settings returns a copy of the current audio settings.
func (s *Service) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings replaces the audio settings.
func (s *Service) UpdateSettings(settings Settings) {
	if settings.PlaybackRate <= 0 {
		settings.PlaybackRate = 1.0
	}
	if settings.Lang == "" {
		settings.Lang = DefaultSettings().Lang
	}
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	s.log.Info("audio settings updated: enabled=%t lang=%s", settings.Enabled, settings.Lang)
}

// Status reports current cache occupancy.
func (s *Service) Status() CacheStatus {
	return CacheStatus{
		Entries:       s.cache.Len(),
		SizeBytes:     s.cache.Size(),
		CapacityBytes: s.cache.Capacity(),
	}
}

// ClearCache drops every cached clip.
func (s *Service) ClearCache() {
	s.cache.Clear()
	s.log.Info("audio cache cleared")
}

// Prune evicts until the cache fits inside maxBytes. Used by nightly
// maintenance with a bound below the hard capacity.
func (s *Service) Prune(maxBytes int64) int {
	evicted := s.cache.Shrink(maxBytes)
	if evicted > 0 {
		s.log.Info("pruned %d cached clips", evicted)
	}
	return evicted
}

type preloadJob struct {
	svc   *Service
	word  string
	lang  string
	voice string
}

func (j *preloadJob) Name() string { return "preload-audio:" + j.word }

func (j *preloadJob) Run(ctx context.Context) error {
	_, err := j.svc.get(ctx, j.word, j.lang, j.voice)
	return err
}
