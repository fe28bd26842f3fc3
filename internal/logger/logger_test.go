package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithFieldMergesIntoFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithOutput(&buf), WithLevel(DEBUG), WithColors(false))

	log.WithField("word", "accept").WithField("deck", "d1").Info("scheduled")

	line := buf.String()
	assert.Contains(t, line, "word=accept")
	assert.Contains(t, line, "deck=d1")
	assert.Contains(t, line, "scheduled")
}

func TestWithPrefixAndLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(WithOutput(&buf), WithLevel(WARN), WithColors(false)).WithPrefix("srs")

	log.Debug("hidden")
	log.Warn("interval clamped")

	line := buf.String()
	assert.NotContains(t, line, "hidden")
	assert.Contains(t, line, "[srs]")
	assert.Equal(t, 1, strings.Count(line, "\n"))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.Same(t, Default(), FromContext(context.Background()))

	var buf bytes.Buffer
	scoped := New(WithOutput(&buf))
	ctx := NewContext(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx))
}
