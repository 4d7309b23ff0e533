package area

import (
	"context"
	"errors"
	"strings"

	areaerrors "noassets/internal/area/errors"
	"noassets/internal/events"
	"noassets/internal/shared/record"
	"noassets/internal/trail"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=area_service.go -destination=mock/area_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateAreaRequest) (AreaResponse, error)
	GetAll(ctx context.Context) ([]AreaResponse, error)
	GetByID(ctx context.Context, id string) (AreaResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateAreaRequest) (AreaResponse, error)
	Delete(ctx context.Context, actorID, id, reason string) error
}

type service struct {
	db       *gorm.DB
	repo     Repository
	recorder trail.Recorder
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, recorder trail.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("area.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("area.service")
	}
	if recorder == nil {
		recorder = trail.NopRecorder{}
	}
	return &service{db: db, repo: repo, recorder: recorder, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateAreaRequest) (AreaResponse, error) {
	s.logger.Debug("create area requested",
		zap.String("actor_id", actorID),
		zap.String("area", req.Area),
	)

	a := &Area{
		ID:     uuid.New(),
		Area:   strings.TrimSpace(req.Area),
		Status: record.StatusActive,
	}
	if actorUUID, err := uuid.Parse(actorID); err == nil {
		a.CreatedBy = &actorUUID
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("create area persist failed", zap.Error(err))
		return AreaResponse{}, mapRepositoryError(err)
	}

	s.recorder.Record(ctx, nil, events.ActionCreate, "area", a.ID.String(), req)
	s.logger.Info("create area success", zap.String("area_id", a.ID.String()))
	return mapToResponse(*a), nil
}

func (s *service) GetAll(ctx context.Context) ([]AreaResponse, error) {
	areas, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all areas failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(areas), nil
}

func (s *service) GetByID(ctx context.Context, id string) (AreaResponse, error) {
	a, err := s.findExisting(ctx, s.repo, id)
	if err != nil {
		return AreaResponse{}, err
	}
	return mapToResponse(*a), nil
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateAreaRequest) (AreaResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return AreaResponse{}, areaerrors.ErrInvalidAreaID
	}

	tx := s.db.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		s.logger.Error("update area begin tx failed", zap.Error(err))
		return AreaResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := s.findExisting(ctx, qtx, id)
	if err != nil {
		return AreaResponse{}, err
	}

	a.Area = strings.TrimSpace(req.Area)
	a.Touch(actorUUID)

	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("update area persist failed", zap.Error(err))
		return AreaResponse{}, mapRepositoryError(err)
	}

	s.recorder.Record(ctx, tx, events.ActionUpdate, "area", id, req)

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("update area commit failed", zap.Error(err))
		return AreaResponse{}, err
	}

	s.logger.Info("update area success", zap.String("area_id", id))
	return mapToResponse(*a), nil
}

func (s *service) Delete(ctx context.Context, actorID, id, reason string) error {
	s.logger.Debug("delete area requested",
		zap.String("area_id", id),
		zap.String("actor_id", actorID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return areaerrors.ErrInvalidAreaID
	}

	tx := s.db.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	a, err := s.findExisting(ctx, qtx, id)
	if err != nil {
		return err
	}

	// An area with an open issuance would orphan the assignment record.
	count, err := qtx.CountActiveIssuances(ctx, id)
	if err != nil {
		s.logger.Error("delete area issuance check failed", zap.Error(err))
		return err
	}
	if count > 0 {
		return areaerrors.ErrAreaHasActiveIssuances
	}

	a.Status = record.StatusDeleted
	a.SoftDelete(actorUUID, reason)

	if err := qtx.Update(ctx, a); err != nil {
		s.logger.Error("delete area persist failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.recorder.Record(ctx, tx, events.ActionDelete, "area", id, map[string]string{"reason": reason})

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.logger.Info("delete area success", zap.String("area_id", id))
	return nil
}

func (s *service) findExisting(ctx context.Context, repo Repository, id string) (*Area, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, areaerrors.ErrInvalidAreaID
	}
	a, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, areaerrors.ErrAreaNotFound
		}
		return nil, err
	}
	if a.Status == record.StatusDeleted {
		return nil, areaerrors.ErrAreaNotFound
	}
	return a, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return areaerrors.ErrAreaNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_area_name" {
			return areaerrors.ErrAreaAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_area_name") {
		return areaerrors.ErrAreaAlreadyExists
	}

	return err
}

func mapToResponse(a Area) AreaResponse {
	return AreaResponse{
		ID:     a.ID.String(),
		Area:   a.Area,
		Status: a.Status,
	}
}

func mapToListResponse(areas []Area) []AreaResponse {
	res := make([]AreaResponse, len(areas))
	for i, a := range areas {
		res[i] = mapToResponse(a)
	}
	return res
}
