package worker

import (
	"context"
	"log/slog"
	"time"

	"numberlookup/internal/domain/service/respcache"
	"numberlookup/pkg/contextx"
	"numberlookup/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const defaultSweepInterval = time.Hour

// Reclaimer периодически удаляет протухшие записи кеша. Нужен только для
// postgres-хранилища, memory и redis чистят себя сами.
type Reclaimer struct {
	cache    *respcache.Cache
	interval time.Duration
}

func NewReclaimer(cache *respcache.Cache) *Reclaimer {
	return &Reclaimer{
		cache:    cache,
		interval: defaultSweepInterval,
	}
}

func (w *Reclaimer) WithInterval(interval time.Duration) *Reclaimer {
	if interval > 0 {
		w.interval = interval
	}
	return w
}

// Run sweeps until the context is cancelled. One sweep runs immediately on
// start, the rest on the ticker.
func (w *Reclaimer) Run(ctx context.Context) error {
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *Reclaimer) sweep(ctx context.Context) {
	removed, err := w.cache.Sweep(ctx)
	if err != nil {
		logger(ctx).Warn("cache sweep failed", logx.Error(err))
		return
	}

	if removed > 0 {
		logger(ctx).Info("cache sweep done", slog.Int64("removed", removed))
	}
}
