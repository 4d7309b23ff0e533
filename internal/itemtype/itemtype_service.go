package itemtype

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"noassets/internal/events"
	itemtypeerrors "noassets/internal/itemtype/errors"
	"noassets/internal/trail"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const OptionsCacheKey = "itemtypes:options"

//go:generate mockgen -source=itemtype_service.go -destination=mock/itemtype_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateItemTypeRequest) (ItemTypeResponse, error)
	GetAll(ctx context.Context) ([]ItemTypeResponse, error)
	GetOptions(ctx context.Context) ([]ItemTypeResponse, error)
	GetByID(ctx context.Context, id string) (ItemTypeResponse, error)
}

type service struct {
	repo     Repository
	recorder trail.Recorder
	rdb      *redis.Client
	sf       *singleflight.Group
	logger   *zap.Logger
}

func NewService(repo Repository, recorder trail.Recorder, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("itemtype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("itemtype.service")
	}
	if recorder == nil {
		recorder = trail.NopRecorder{}
	}
	return &service{
		repo:     repo,
		recorder: recorder,
		rdb:      rdb,
		sf:       &singleflight.Group{},
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateItemTypeRequest) (ItemTypeResponse, error) {
	s.logger.Debug("create item type requested",
		zap.String("actor_id", actorID),
		zap.String("type", req.Type),
	)

	it := &ItemType{
		ID:   uuid.New(),
		Type: strings.TrimSpace(req.Type),
	}
	if actorUUID, err := uuid.Parse(actorID); err == nil {
		it.CreatedBy = &actorUUID
	}

	if err := s.repo.Create(ctx, it); err != nil {
		s.logger.Error("create item type persist failed", zap.Error(err))
		return ItemTypeResponse{}, mapRepositoryError(err)
	}

	s.recorder.Record(ctx, nil, events.ActionCreate, "itemtype", it.ID.String(), req)

	if s.rdb != nil {
		if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
			s.logger.Error("failed to invalidate item type options cache",
				zap.Error(err),
				zap.String("key", OptionsCacheKey),
			)
		}
	}

	s.logger.Info("create item type success", zap.String("itemtype_id", it.ID.String()))
	return mapToResponse(*it), nil
}

func (s *service) GetAll(ctx context.Context) ([]ItemTypeResponse, error) {
	types, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all item types failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(types), nil
}

func (s *service) GetOptions(ctx context.Context) ([]ItemTypeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var resp []ItemTypeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// Singleflight keeps a cold cache from stampeding the database when every
	// open form asks for the option list at once.
	v, err, _ := s.sf.Do(OptionsCacheKey, func() (interface{}, error) {
		types, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(types)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, OptionsCacheKey, jsonData, 1*time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]ItemTypeResponse), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ItemTypeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ItemTypeResponse{}, itemtypeerrors.ErrInvalidItemTypeID
	}
	it, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ItemTypeResponse{}, itemtypeerrors.ErrItemTypeNotFound
		}
		return ItemTypeResponse{}, err
	}
	return mapToResponse(*it), nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_itemtype_type" {
			return itemtypeerrors.ErrItemTypeAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_itemtype_type") {
		return itemtypeerrors.ErrItemTypeAlreadyExists
	}

	return err
}

func mapToResponse(it ItemType) ItemTypeResponse {
	return ItemTypeResponse{
		ID:   it.ID.String(),
		Type: it.Type,
	}
}

func mapToListResponse(types []ItemType) []ItemTypeResponse {
	res := make([]ItemTypeResponse, len(types))
	for i, it := range types {
		res[i] = mapToResponse(it)
	}
	return res
}
