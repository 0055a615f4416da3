package realtime

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const Channel = "patitas_changes"

// Listener holds one pooled connection on LISTEN and forwards every notification to
// the hub. It reconnects with exponential backoff until its context ends.
type Listener struct {
	pool       *pgxpool.Pool
	hub        *Hub
	logger     *zap.SugaredLogger
	minBackoff time.Duration
	maxBackoff time.Duration
}

func NewListener(pool *pgxpool.Pool, hub *Hub, logger *zap.SugaredLogger) *Listener {
	return &Listener{
		pool:       pool,
		hub:        hub,
		logger:     logger,
		minBackoff: 500 * time.Millisecond,
		maxBackoff: 30 * time.Second,
	}
}

func (l *Listener) Run(ctx context.Context) {
	backoff := l.minBackoff
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return
		}

		l.logger.Warnw("change listener disconnected", "error", err, "retry_in", backoff.String())
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = nextBackoff(backoff, l.maxBackoff)
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{Channel}.Sanitize()); err != nil {
		return err
	}
	defer func() {
		// the connection goes back to the pool
		unlistenCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, _ = conn.Exec(unlistenCtx, "UNLISTEN *")
	}()

	l.logger.Infow("listening for changes", "channel", Channel)

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		change, err := ParseChange(n.Payload)
		if err != nil {
			l.logger.Warnw("ignoring change notification", "payload", n.Payload, "error", err)
			continue
		}
		l.hub.Publish(change.Topic(), change)
	}
}

func nextBackoff(cur, limit time.Duration) time.Duration {
	next := cur * 2
	if next > limit {
		return limit
	}
	return next
}
