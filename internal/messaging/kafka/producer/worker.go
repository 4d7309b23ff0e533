package producer

import (
	"context"
	"time"

	"noassets/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const batchSize = 50

// ProcessOutboxEvents polls trail_outbox and relays due rows to Kafka until
// ctx is cancelled. Publish failures are marked for retry and do not stop the
// loop.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer *kafkago.Writer,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if err := drainOnce(ctx, repo, writer, log); err != nil {
				log.Error("outbox drain failed", zap.Error(err))
			}
		}
	}
}

func drainOnce(ctx context.Context, repo kafka.OutboxRepository, writer *kafkago.Writer, log *zap.Logger) error {
	events, err := repo.ListPending(ctx, batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	log.Info("draining outbox", zap.Int("count", len(events)))

	for _, event := range events {
		if err := relay(ctx, writer, event); err != nil {
			log.Error("publish trail event failed",
				zap.String("outbox_id", event.ID),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			_ = repo.MarkFailed(ctx, event.ID, err.Error())
			continue
		}
		if err := repo.MarkSent(ctx, event.ID); err != nil {
			log.Error("mark outbox sent failed", zap.String("outbox_id", event.ID), zap.Error(err))
		}
	}
	return nil
}
