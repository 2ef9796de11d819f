package worker

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"numberlookup/internal/domain/entity"
	"numberlookup/internal/infrastructure/queue"
	"numberlookup/pkg/application/modules"
	"numberlookup/pkg/contextx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LogWriter обрабатывает задачи журналирования из очереди asynq.
type LogWriter struct {
	store queue.LogStore
}

func NewLogWriter(store queue.LogStore) *LogWriter {
	return &LogWriter{store: store}
}

func (w *LogWriter) Handlers() []modules.AsynqHandler {
	return []modules.AsynqHandler{
		{Pattern: queue.TypeSearchLog, Handle: w.handleSearchLog},
		{Pattern: queue.TypeAffiliateClick, Handle: w.handleAffiliateClick},
	}
}

func (w *LogWriter) handleSearchLog(ctx context.Context, task *asynq.Task) error {
	var log entity.SearchLog
	if err := json.Unmarshal(task.Payload(), &log); err != nil {
		// Битую задачу нет смысла повторять.
		contextx.LoggerFromContextOrDefault(ctx).Error("broken search log task dropped", slog.Any("error", err))
		return nil
	}

	return w.store.Create(ctx, &log)
}

func (w *LogWriter) handleAffiliateClick(ctx context.Context, task *asynq.Task) error {
	var click entity.AffiliateClick
	if err := json.Unmarshal(task.Payload(), &click); err != nil {
		contextx.LoggerFromContextOrDefault(ctx).Error("broken affiliate click task dropped", slog.Any("error", err))
		return nil
	}

	return w.store.CreateAffiliateClick(ctx, &click)
}
