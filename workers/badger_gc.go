package workers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// BadgerGC periodically reclaims space in the value log. Badger never runs
// garbage collection on its own; without this loop a long-lived chat
// server grows its value log forever.
type BadgerGC struct {
	db       *badger.DB
	log      *slog.Logger
	interval time.Duration
}

func NewBadgerGC(db *badger.DB, log *slog.Logger, interval time.Duration) *BadgerGC {
	return &BadgerGC{db: db, log: log, interval: interval}
}

func (w *BadgerGC) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping badger GC worker")
			return nil
		case <-ticker.C:
			// Each successful call rewrites at most one value log file;
			// loop until there is nothing left worth rewriting.
			for {
				err := w.db.RunValueLogGC(0.5)
				if errors.Is(err, badger.ErrNoRewrite) {
					break
				}
				if err != nil {
					w.log.Warn("badger value log GC failed", "err", err)
					break
				}
				w.log.Debug("badger value log file reclaimed")
			}
		}
	}
}
