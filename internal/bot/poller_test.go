package bot

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"medtrack/reminder-service/internal/telegram"
)

type fakeUpdateSource struct {
	mu      sync.Mutex
	batches [][]telegram.Update
	offsets []int64
	done    chan struct{}
}

func (f *fakeUpdateSource) GetUpdates(ctx context.Context, offset int64, _ int) ([]telegram.Update, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offsets = append(f.offsets, offset)

	if len(f.batches) == 0 {
		select {
		case f.done <- struct{}{}:
		default:
		}
		<-ctx.Done()
		return nil, ctx.Err()
	}
	batch := f.batches[0]
	f.batches = f.batches[1:]
	return batch, nil
}

func TestPoller_AdvancesOffsetPastEveryUpdate(t *testing.T) {
	source := &fakeUpdateSource{
		batches: [][]telegram.Update{
			{
				{UpdateID: 5, Message: &telegram.Message{Chat: telegram.Chat{ID: testChatID}, Text: "/help"}},
				{UpdateID: 6, Message: &telegram.Message{Chat: telegram.Chat{ID: testChatID}, Text: "/help"}},
			},
		},
		done: make(chan struct{}, 1),
	}
	f := newEngineFixture()
	poller := NewPoller(source, f.engine, testLogger)

	ctx, cancel := context.WithCancel(context.Background())
	go poller.Run(ctx)

	select {
	case <-source.done:
	case <-time.After(2 * time.Second):
		t.Fatal("poller never drained the batch")
	}
	cancel()

	source.mu.Lock()
	defer source.mu.Unlock()
	assert.Equal(t, int64(0), source.offsets[0])
	assert.Equal(t, int64(7), source.offsets[1], "offset moves past the highest update id")
}
