package queue

import (
	"context"

	"numberlookup/internal/domain/entity"
)

// LogStore is the write side of the search journal.
type LogStore interface {
	Create(ctx context.Context, log *entity.SearchLog) error
	CreateAffiliateClick(ctx context.Context, click *entity.AffiliateClick) error
}

// DirectEmitter пишет журнал синхронно, без очереди. Используется когда
// asynq выключен конфигом.
type DirectEmitter struct {
	store LogStore
}

func NewDirectEmitter(store LogStore) *DirectEmitter {
	return &DirectEmitter{store: store}
}

func (e *DirectEmitter) EmitSearchLog(ctx context.Context, log entity.SearchLog) error {
	return e.store.Create(ctx, &log)
}

func (e *DirectEmitter) EmitAffiliateClick(ctx context.Context, click entity.AffiliateClick) error {
	return e.store.CreateAffiliateClick(ctx, &click)
}
