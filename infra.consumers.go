package main

import (
	"context"

	"go.uber.org/zap"
)

type Consumer interface {
	Consume(ctx context.Context, qids ...string) error
}

// auditConsumer drains book mutation events from the queue and persists
// them as audit records. It runs until its context is done.
type auditConsumer struct {
	logger *zap.Logger
	queue  Queuer
	audit  AuditStorage
}

func NewAuditConsumer(logger *zap.Logger, q Queuer, audit AuditStorage) Consumer {
	return &auditConsumer{logger, q, audit}
}

func (ac *auditConsumer) Consume(ctx context.Context, qids ...string) error {
	var event BookEvent
	var err error
	var qid string
	for {
		qid, event, err = ac.queue.Pop(ctx, qids...)
		if err != nil && ctx.Err() != nil {
			ac.logger.Info("consumer: queue pop call: context is done: exit", zap.String("reason", ctx.Err().Error()))
			return nil
		}

		if err != nil {
			ac.logger.Error("consumer: error on queue pop call", zap.Error(err))
			continue
		}

		if qid != AuditQueue {
			ac.logger.Warn("consumer: received event on unknown queue id", zap.String("qid", qid), zap.Any("event", event))
			continue
		}

		if err = ac.audit.Save(ctx, event); err != nil {
			ac.logger.Error("consumer: failed to save audit record", zap.Any("event", event), zap.Error(err))
		}
	}
}
