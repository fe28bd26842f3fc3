package maintenance

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/avelar/wordflash/internal/logger"
	"github.com/avelar/wordflash/internal/services"
)

// AudioPruner is the slice of the audio service the nightly job needs.
type AudioPruner interface {
	Prune(maxBytes int64) int
}

// Scheduler runs periodic housekeeping: pruning the audio cache and
// logging the size of the due-word backlog.
type Scheduler struct {
	scheduler *gocron.Scheduler
	progress  services.ProgressService
	audio     AudioPruner
	pruneTo   int64
	log       *logger.Logger
}

func New(progress services.ProgressService, audio AudioPruner, pruneToBytes int64) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		progress:  progress,
		audio:     audio,
		pruneTo:   pruneToBytes,
		log:       logger.Default().WithPrefix("maintenance"),
	}
}

// Start registers the jobs and runs the scheduler in the background.
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Day().At("03:30").Do(s.nightly)
	s.scheduler.StartAsync()
	s.log.Info("maintenance scheduler started")
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("maintenance scheduler stopped")
}

// nightly is also exported through RunNow for manual triggering.
func (s *Scheduler) nightly() {
	s.RunNow(context.Background())
}

// RunNow executes the housekeeping pass immediately.
func (s *Scheduler) RunNow(ctx context.Context) {
	start := time.Now()

	if s.audio != nil && s.pruneTo > 0 {
		evicted := s.audio.Prune(s.pruneTo)
		s.log.Info("audio cache prune evicted %d clips", evicted)
	}

	if s.progress != nil {
		due, err := s.progress.DueWords(ctx, time.Now())
		if err != nil {
			s.log.Error("failed to count due words: %v", err)
		} else {
			s.log.Info("%d words due for review", len(due))
		}
	}

	s.log.Info("housekeeping finished in %s", time.Since(start).Round(time.Millisecond))
}
