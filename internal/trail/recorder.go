package trail

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"noassets/internal/events"
	"noassets/internal/messaging/kafka"
	"noassets/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Recorder is the post-commit audit hook. Services call Record inside the
// transaction of a successful state change; the event rides the outbox and is
// turned into a trail row by the consumer. Recording is fire-and-forget:
// failures are logged and never propagate to the business operation.
//
//go:generate mockgen -source=recorder.go -destination=mock/recorder_mock.go -package=mock
type Recorder interface {
	Record(ctx context.Context, tx *gorm.DB, action, entity, entityID string, details any)
}

type outboxRecorder struct {
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewOutboxRecorder(outbox kafka.OutboxRepository, logger ...*zap.Logger) Recorder {
	l := zap.L().Named("trail.recorder")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("trail.recorder")
	}
	return &outboxRecorder{outbox: outbox, logger: l}
}

func (r *outboxRecorder) Record(ctx context.Context, tx *gorm.DB, action, entity, entityID string, details any) {
	meta := contextutil.ExtractMetadata(ctx)

	var payload json.RawMessage
	if details != nil {
		b, err := json.Marshal(details)
		if err != nil {
			r.logger.Error("marshal trail details failed",
				zap.String("entity", entity),
				zap.String("action", action),
				zap.Error(err),
			)
		} else {
			payload = b
		}
	}

	event := events.TrailRecordedEvent{
		EventType:  "trail_recorded",
		RequestID:  meta.RequestID,
		ActorID:    meta.UserID,
		Action:     action,
		Entity:     entity,
		EntityID:   entityID,
		Details:    payload,
		IP:         meta.ClientIP,
		OccurredAt: time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		r.logger.Error("marshal trail event failed", zap.Error(err))
		return
	}

	// The outbox row must ride the caller's transaction so the event exists
	// iff the state change commits.
	repo := r.outbox
	if tx != nil {
		if sqlTx, ok := tx.Statement.ConnPool.(*sql.Tx); ok {
			repo = r.outbox.WithTx(sqlTx)
		}
	}
	if err := repo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     meta.RequestID,
		AggregateType: entity,
		AggregateID:   entityID,
		EventType:     event.EventType,
		Topic:         events.TrailRecordedTopic,
		Payload:       body,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		r.logger.Error("enqueue trail event failed",
			zap.String("entity", entity),
			zap.String("entity_id", entityID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// NopRecorder drops every event. Used when the audit pipeline is disabled and
// in tests that do not assert on trails.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, *gorm.DB, string, string, string, any) {}
