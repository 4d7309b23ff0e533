package consumer

import (
	"context"
	"encoding/json"

	"noassets/internal/events"
	"noassets/internal/trail"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeTrailEvents turns audit events published by the outbox worker into
// trail rows. Undecodable messages are committed and skipped; failed inserts
// are left uncommitted so the fetch retries them.
func ConsumeTrailEvents(
	ctx context.Context,
	reader *kafkago.Reader,
	trailService trail.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.trail")
	log.Info("trail consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("trail consumer stopped")
				return
			}
			log.Error("fetch trail message failed", zap.Error(err))
			continue
		}

		var event events.TrailRecordedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode trail event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := trailService.Append(ctx, event); err != nil {
			log.Error("append trail from event failed",
				zap.String("entity", event.Entity),
				zap.String("entity_id", event.EntityID),
				zap.String("action", event.Action),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit trail message failed", zap.Error(err))
			continue
		}

		log.Debug("trail event recorded",
			zap.String("entity", event.Entity),
			zap.String("entity_id", event.EntityID),
			zap.String("action", event.Action),
		)
	}
}
