// Package queue ставит записи журнала в очередь asynq, чтобы запись в БД
// не задерживала ответ пользователю.
package queue

import (
	"context"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"numberlookup/internal/domain"
	"numberlookup/internal/domain/entity"
	"numberlookup/pkg/errcodes"
)

const (
	TypeSearchLog      = "log:search"
	TypeAffiliateClick = "log:affiliate_click"

	QueueLogs = "logs"

	maxRetry = 3
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func NewSearchLogTask(log entity.SearchLog) (*asynq.Task, error) {
	payload, err := json.Marshal(log)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to marshal search log")
	}

	return asynq.NewTask(TypeSearchLog, payload, asynq.Queue(QueueLogs), asynq.MaxRetry(maxRetry)), nil
}

func NewAffiliateClickTask(click entity.AffiliateClick) (*asynq.Task, error) {
	payload, err := json.Marshal(click)
	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to marshal affiliate click")
	}

	return asynq.NewTask(TypeAffiliateClick, payload, asynq.Queue(QueueLogs), asynq.MaxRetry(maxRetry)), nil
}

// Enqueuer публикует задачи журналирования в redis.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) EmitSearchLog(ctx context.Context, log entity.SearchLog) error {
	task, err := NewSearchLogTask(log)
	if err != nil {
		return err
	}

	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to enqueue search log")
	}

	return nil
}

func (e *Enqueuer) EmitAffiliateClick(ctx context.Context, click entity.AffiliateClick) error {
	task, err := NewAffiliateClickTask(click)
	if err != nil {
		return err
	}

	if _, err := e.client.EnqueueContext(ctx, task); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to enqueue affiliate click")
	}

	return nil
}
