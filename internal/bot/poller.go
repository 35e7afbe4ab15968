package bot

import (
	"context"
	"time"

	"medtrack/reminder-service/internal/telegram"
	"medtrack/reminder-service/pkg/logger"
)

// UpdateSource produces inbound updates. *telegram.Client satisfies it.
type UpdateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]telegram.Update, error)
}

// Poller long polls the update source and feeds each update to the engine.
// Updates are handled in separate goroutines so a slow database call in one
// chat never stalls another chat's conversation.
type Poller struct {
	source  UpdateSource
	engine  *Engine
	log     *logger.Logger
	timeout int           // long-poll window in seconds
	backoff time.Duration // pause after a failed poll
}

// NewPoller creates an update poller
func NewPoller(source UpdateSource, engine *Engine, log *logger.Logger) *Poller {
	return &Poller{
		source:  source,
		engine:  engine,
		log:     log,
		timeout: 30,
		backoff: 5 * time.Second,
	}
}

// Run polls until the context is cancelled. The offset is advanced past
// every received update before handling, so a crash mid-batch drops those
// updates rather than replaying them.
func (p *Poller) Run(ctx context.Context) {
	p.log.Info("update poller started")
	var offset int64

	for {
		select {
		case <-ctx.Done():
			p.log.Info("update poller stopped")
			return
		default:
		}

		updates, err := p.source.GetUpdates(ctx, offset, p.timeout)
		if err != nil {
			if ctx.Err() != nil {
				p.log.Info("update poller stopped")
				return
			}
			p.log.WithError(err).Error("failed to poll updates")
			select {
			case <-ctx.Done():
			case <-time.After(p.backoff):
			}
			continue
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			go p.engine.HandleUpdate(ctx, update)
		}
	}
}
