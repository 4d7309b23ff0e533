package trail

import (
	"context"
	"time"

	"noassets/internal/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=trail_service.go -destination=mock/trail_service_mock.go -package=mock
type Service interface {
	Query(ctx context.Context, filter QueryFilter) ([]TrailResponse, error)
	// Append writes one trail row from a consumed audit event.
	Append(ctx context.Context, event events.TrailRecordedEvent) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("trail.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("trail.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Query(ctx context.Context, filter QueryFilter) ([]TrailResponse, error) {
	trails, err := s.repo.FindFiltered(ctx, filter)
	if err != nil {
		s.logger.Error("query trails failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(trails), nil
}

func (s *service) Append(ctx context.Context, event events.TrailRecordedEvent) error {
	t := &Trail{
		ID:        uuid.New(),
		Action:    event.Action,
		Entity:    event.Entity,
		EntityID:  event.EntityID,
		Details:   event.Details,
		IP:        event.IP,
		Timestamp: event.OccurredAt,
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now().UTC()
	}
	if actorID, err := uuid.Parse(event.ActorID); err == nil {
		t.UserID = &actorID
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("append trail failed",
			zap.String("entity", event.Entity),
			zap.String("entity_id", event.EntityID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func mapToResponse(t Trail) TrailResponse {
	resp := TrailResponse{
		ID:        t.ID.String(),
		Action:    t.Action,
		Entity:    t.Entity,
		EntityID:  t.EntityID,
		Details:   t.Details,
		IP:        t.IP,
		Timestamp: t.Timestamp.UTC().Format(time.RFC3339),
	}
	if t.UserID != nil {
		resp.UserID = t.UserID.String()
	}
	return resp
}

func mapToListResponse(trails []Trail) []TrailResponse {
	res := make([]TrailResponse, len(trails))
	for i, t := range trails {
		res[i] = mapToResponse(t)
	}
	return res
}
