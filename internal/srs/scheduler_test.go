package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/srs"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func freshRecord() models.ProgressRecord {
	return models.NewProgressRecord("word-1", testNow)
}

func TestSchedule_FirstRemember(t *testing.T) {
	rec := srs.Schedule(freshRecord(), models.ResultRemember, 2.5, testNow)

	assert.Equal(t, 1, rec.CurrentInterval, "first successful review sets interval to 1")
	assert.Equal(t, 1, rec.ReviewCount)
	assert.Equal(t, 1, rec.SuccessCount)
	assert.Equal(t, models.StatusLearning, rec.Status)
	require.NotNil(t, rec.NextReviewAt)
	assert.Equal(t, testNow.AddDate(0, 0, 1), *rec.NextReviewAt)
}

func TestSchedule_FirstNotRemember(t *testing.T) {
	rec := srs.Schedule(freshRecord(), models.ResultNotRemember, 4.0, testNow)

	assert.Equal(t, 1, rec.CurrentInterval, "failure on a fresh record still sets interval to 1")
	assert.Equal(t, 1, rec.FailureCount)
	assert.InDelta(t, 2.3, rec.EaseFactor, 1e-9)
	assert.Equal(t, models.StatusLearning, rec.Status)
}

func TestSchedule_ConsecutiveRememberLadder(t *testing.T) {
	rec := freshRecord()

	rec = srs.Schedule(rec, models.ResultRemember, 1, testNow)
	assert.Equal(t, 1, rec.CurrentInterval, "N=1")

	rec = srs.Schedule(rec, models.ResultRemember, 1, testNow)
	assert.Equal(t, 6, rec.CurrentInterval, "N=2")

	prevInterval := rec.CurrentInterval
	prevEase := rec.EaseFactor
	rec = srs.Schedule(rec, models.ResultRemember, 1, testNow)
	assert.Equal(t, int(float64(prevInterval)*prevEase+0.5), rec.CurrentInterval, "N>=3 multiplies by ease")
}

func TestSchedule_NotRememberResetsInterval(t *testing.T) {
	rec := freshRecord()
	for i := 0; i < 5; i++ {
		rec = srs.Schedule(rec, models.ResultRemember, 1, testNow)
	}
	require.Greater(t, rec.CurrentInterval, 1)

	before := rec.EaseFactor
	rec = srs.Schedule(rec, models.ResultNotRemember, 1, testNow)
	assert.Equal(t, 1, rec.CurrentInterval)
	assert.LessOrEqual(t, rec.EaseFactor, before, "failure never increases ease")
}

func TestSchedule_EaseFactorStaysInBounds(t *testing.T) {
	rec := freshRecord()
	for i := 0; i < 30; i++ {
		result := models.ResultRemember
		if i%2 == 0 {
			result = models.ResultNotRemember
		}
		rec = srs.Schedule(rec, result, 1, testNow)
		assert.GreaterOrEqual(t, rec.EaseFactor, 1.3)
		assert.LessOrEqual(t, rec.EaseFactor, 2.5)
	}

	// All failures push ease down to the floor, never below.
	rec = freshRecord()
	for i := 0; i < 10; i++ {
		rec = srs.Schedule(rec, models.ResultNotRemember, 1, testNow)
		assert.GreaterOrEqual(t, rec.EaseFactor, 1.3)
	}
	assert.InDelta(t, 1.3, rec.EaseFactor, 1e-9)
}

func TestSchedule_HistoryBounded(t *testing.T) {
	rec := freshRecord()
	for i := 0; i < 25; i++ {
		rec = srs.Schedule(rec, models.ResultRemember, 1, testNow)
	}
	assert.Len(t, rec.ReviewHistory, models.ReviewHistoryCap)
}

func TestSchedule_HistoryCapturesPreUpdateValues(t *testing.T) {
	rec := freshRecord()
	rec = srs.Schedule(rec, models.ResultRemember, 1, testNow)
	rec = srs.Schedule(rec, models.ResultRemember, 1, testNow)

	last := rec.ReviewHistory[len(rec.ReviewHistory)-1]
	assert.Equal(t, 1, last.IntervalBefore, "entry records the interval before the update")
}

func TestSchedule_MasteredStatus(t *testing.T) {
	rec := freshRecord()
	for i := 0; i < 6; i++ {
		rec = srs.Schedule(rec, models.ResultRemember, 1, testNow)
	}
	require.GreaterOrEqual(t, rec.CurrentInterval, 21)
	require.Greater(t, rec.SuccessRate(), 0.8)
	assert.Equal(t, models.StatusMastered, rec.Status)
}

func TestSchedule_InputRecordUntouched(t *testing.T) {
	rec := freshRecord()
	first := srs.Schedule(rec, models.ResultRemember, 1, testNow)
	_ = srs.Schedule(first, models.ResultNotRemember, 1, testNow)

	assert.Equal(t, 0, rec.ReviewCount, "input record must not be mutated")
	assert.Len(t, first.ReviewHistory, 1, "history of earlier value must not grow")
}

func TestSchedule_NextReviewNotBeforeLastReview(t *testing.T) {
	rec := freshRecord()
	for i := 0; i < 8; i++ {
		result := models.ResultRemember
		if i == 3 {
			result = models.ResultNotRemember
		}
		rec = srs.Schedule(rec, result, 1, testNow)
		require.NotNil(t, rec.LastReviewAt)
		require.NotNil(t, rec.NextReviewAt)
		assert.False(t, rec.NextReviewAt.Before(*rec.LastReviewAt))
	}
}

func TestSchedule_QualityDrivesEaseDirection(t *testing.T) {
	// Three straight remembers: quality 5, ease grows by 0.1 per review
	// until the ceiling.
	rec := freshRecord()
	rec.EaseFactor = 2.0
	for i := 0; i < 3; i++ {
		rec = srs.Schedule(rec, models.ResultRemember, 1, testNow)
	}
	assert.Greater(t, rec.EaseFactor, 2.0)

	// A remember right after two failures sees a low recent rate, so the
	// ease adjustment is negative even though the answer was correct.
	rec = freshRecord()
	rec = srs.Schedule(rec, models.ResultNotRemember, 1, testNow)
	rec = srs.Schedule(rec, models.ResultNotRemember, 1, testNow)
	before := rec.EaseFactor
	rec = srs.Schedule(rec, models.ResultRemember, 1, testNow)
	assert.Less(t, rec.EaseFactor, before)
}
