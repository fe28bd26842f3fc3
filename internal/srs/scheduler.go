// Package srs implements the SM-2 derived review scheduler. Schedule is a
// pure transition function: it never touches storage and always returns a
// new record, leaving the input untouched.
package srs

import (
	"math"
	"time"

	"github.com/avelar/wordflash/internal/models"
)

const (
	minEaseFactor = 1.3
	maxEaseFactor = 2.5
	easePenalty   = 0.2
)

// Schedule applies one review outcome to a progress record and returns the
// updated record with the next review time set.
func Schedule(rec models.ProgressRecord, result models.ReviewResult, responseTime float64, now time.Time) models.ProgressRecord {
	entry := models.ReviewHistoryEntry{
		Timestamp:      now,
		Result:         result,
		ResponseTime:   responseTime,
		IntervalBefore: rec.CurrentInterval,
		EaseBefore:     rec.EaseFactor,
	}

	rec.ReviewCount++
	if result == models.ResultRemember {
		rec.SuccessCount++
	} else {
		rec.FailureCount++
	}

	// History is appended before the interval math so the quality estimate
	// below sees the outcome being recorded.
	rec.ReviewHistory = append(cloneHistory(rec.ReviewHistory), entry)
	if len(rec.ReviewHistory) > models.ReviewHistoryCap {
		rec.ReviewHistory = rec.ReviewHistory[len(rec.ReviewHistory)-models.ReviewHistoryCap:]
	}

	if result == models.ResultNotRemember {
		rec.CurrentInterval = 1
		rec.EaseFactor = math.Max(minEaseFactor, rec.EaseFactor-easePenalty)
	} else {
		switch rec.ReviewCount {
		case 1:
			rec.CurrentInterval = 1
		case 2:
			rec.CurrentInterval = 6
		default:
			rec.CurrentInterval = int(math.Round(float64(rec.CurrentInterval) * rec.EaseFactor))
		}
		q := quality(rec.ReviewHistory)
		ef := rec.EaseFactor + 0.1 - float64(5-q)*(0.08+float64(5-q)*0.02)
		rec.EaseFactor = clamp(ef, minEaseFactor, maxEaseFactor)
	}

	next := now.AddDate(0, 0, rec.CurrentInterval)
	last := now
	rec.LastReviewAt = &last
	rec.NextReviewAt = &next
	rec.LastResult = result
	rec.Status = deriveStatus(rec)
	rec.UpdatedAt = now
	return rec
}

// quality maps the remember rate of the last three reviews onto the SM-2
// quality scale.
func quality(history []models.ReviewHistoryEntry) int {
	recent := history
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	if len(recent) == 0 {
		return 3
	}
	remembered := 0
	for _, e := range recent {
		if e.Result == models.ResultRemember {
			remembered++
		}
	}
	rate := float64(remembered) / float64(len(recent))
	switch {
	case rate >= 1.0:
		return 5
	case rate >= 0.8:
		return 4
	case rate >= 0.6:
		return 3
	case rate >= 0.4:
		return 2
	default:
		return 1
	}
}

// deriveStatus recomputes the learning stage from the counters alone.
func deriveStatus(rec models.ProgressRecord) models.ReviewStatus {
	switch {
	case rec.ReviewCount == 0:
		return models.StatusNew
	case rec.CurrentInterval < 7:
		return models.StatusLearning
	case rec.CurrentInterval >= 21 && rec.SuccessRate() > 0.8:
		return models.StatusMastered
	default:
		return models.StatusReview
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func cloneHistory(h []models.ReviewHistoryEntry) []models.ReviewHistoryEntry {
	out := make([]models.ReviewHistoryEntry, len(h))
	copy(out, h)
	return out
}
