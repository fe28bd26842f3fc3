package maintenance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePruner struct {
	calls   int
	gotMax  int64
	evicted int
}

func (f *fakePruner) Prune(maxBytes int64) int {
	f.calls++
	f.gotMax = maxBytes
	return f.evicted
}

func TestRunNowPrunesAudioCache(t *testing.T) {
	pruner := &fakePruner{evicted: 3}
	s := New(nil, pruner, 1024)

	s.RunNow(context.Background())

	assert.Equal(t, 1, pruner.calls)
	assert.Equal(t, int64(1024), pruner.gotMax)
}

func TestRunNowSkipsPruneWhenUnbounded(t *testing.T) {
	pruner := &fakePruner{}
	s := New(nil, pruner, 0)

	s.RunNow(context.Background())

	assert.Equal(t, 0, pruner.calls)
}
