package workers

import (
	"context"
	"time"

	"github.com/passway/passway/internal/logger"
	"github.com/passway/passway/internal/store"
)

// SessionPurgeWorker periodically deletes session rows whose tokens have
// long expired. Token validation already rejects expired tokens, so the
// purge only keeps the sessions table from growing without bound.
type SessionPurgeWorker struct {
	sessions store.SessionRepository

	// maxAge is how old a session row must be before it is purged. Set it to
	// the token duration: a row older than that can never authenticate again.
	maxAge time.Duration

	// interval is the time between purge sweeps.
	interval time.Duration

	logger *logger.Logger
}

func NewSessionPurgeWorker(sessions store.SessionRepository, maxAge, interval time.Duration, logger *logger.Logger) *SessionPurgeWorker {
	return &SessionPurgeWorker{
		sessions: sessions,
		maxAge:   maxAge,
		interval: interval,
		logger:   logger,
	}
}

// Run sweeps once immediately and then on every tick until ctx is cancelled.
func (w *SessionPurgeWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.purge(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.purge(ctx)
		}
	}
}

func (w *SessionPurgeWorker) purge(ctx context.Context) {
	cutoff := time.Now().Add(-w.maxAge)

	removed, err := w.sessions.DeleteExpiredSessions(ctx, cutoff)
	if err != nil {
		w.logger.Err(err).Str("func", "*SessionPurgeWorker.purge").Msg("session purge sweep failed")
		return
	}

	if removed > 0 {
		w.logger.Info().Int64("removed", removed).Msg("purged expired sessions")
	}
}
