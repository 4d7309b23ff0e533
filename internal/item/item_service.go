package item

import (
	"context"
	"errors"
	"strings"

	"noassets/internal/events"
	itemerrors "noassets/internal/item/errors"
	"noassets/internal/itemtype"
	itemtypeerrors "noassets/internal/itemtype/errors"
	"noassets/internal/trail"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=item_service.go -destination=mock/item_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateItemRequest) (ItemResponse, error)
	GetAll(ctx context.Context) ([]ItemResponse, error)
	GetByID(ctx context.Context, id string) (ItemResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateItemRequest) (ItemResponse, error)
	// Delete refuses items that are ASSIGNED or DEFECTIVE: an open issuance or
	// repair must be closed first, so a deleted item can never be referenced
	// by an active record.
	Delete(ctx context.Context, actorID, id, reason string) error
}

type service struct {
	db       *gorm.DB
	repo     Repository
	types    itemtype.Repository
	recorder trail.Recorder
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, types itemtype.Repository, recorder trail.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("item.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("item.service")
	}
	if recorder == nil {
		recorder = trail.NopRecorder{}
	}
	return &service{db: db, repo: repo, types: types, recorder: recorder, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateItemRequest) (ItemResponse, error) {
	s.logger.Debug("create item requested",
		zap.String("actor_id", actorID),
		zap.String("serial_no", req.SerialNo),
		zap.String("type_id", req.TypeID),
	)

	tx := s.db.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		s.logger.Error("create item begin tx failed", zap.Error(err))
		return ItemResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	typeID, err := uuid.Parse(req.TypeID)
	if err != nil {
		return ItemResponse{}, itemtypeerrors.ErrInvalidItemTypeID
	}
	it, err := s.types.FindByID(ctx, typeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ItemResponse{}, itemtypeerrors.ErrItemTypeNotFound
		}
		return ItemResponse{}, err
	}

	i := &Item{
		ID:           uuid.New(),
		TypeID:       it.ID,
		Type:         it,
		ItemName:     strings.TrimSpace(req.ItemName),
		Brand:        strings.TrimSpace(req.Brand),
		SerialNo:     strings.TrimSpace(req.SerialNo),
		BarcodeID:    strings.TrimSpace(req.BarcodeID),
		OtherDetails: req.OtherDetails,
		Photo:        req.Photo,
		Status:       StatusActive,
	}
	if actorUUID, err := uuid.Parse(actorID); err == nil {
		i.CreatedBy = &actorUUID
	}

	if err := qtx.Create(ctx, i); err != nil {
		s.logger.Error("create item persist failed", zap.Error(err))
		return ItemResponse{}, mapRepositoryError(err)
	}

	s.recorder.Record(ctx, tx, events.ActionCreate, "item", i.ID.String(), req)

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("create item commit failed", zap.Error(err))
		return ItemResponse{}, err
	}

	s.logger.Info("create item success",
		zap.String("item_id", i.ID.String()),
		zap.String("serial_no", i.SerialNo),
	)
	return mapToResponse(*i), nil
}

func (s *service) GetAll(ctx context.Context) ([]ItemResponse, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all items failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(items), nil
}

func (s *service) GetByID(ctx context.Context, id string) (ItemResponse, error) {
	i, err := s.findExisting(ctx, s.repo, id)
	if err != nil {
		return ItemResponse{}, err
	}
	return mapToResponse(*i), nil
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateItemRequest) (ItemResponse, error) {
	s.logger.Debug("update item requested",
		zap.String("item_id", id),
		zap.String("actor_id", actorID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return ItemResponse{}, itemerrors.ErrInvalidItemID
	}

	tx := s.db.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		s.logger.Error("update item begin tx failed", zap.Error(err))
		return ItemResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	i, err := s.findExisting(ctx, qtx, id)
	if err != nil {
		return ItemResponse{}, err
	}

	typeID, err := uuid.Parse(req.TypeID)
	if err != nil {
		return ItemResponse{}, itemtypeerrors.ErrInvalidItemTypeID
	}
	it, err := s.types.FindByID(ctx, typeID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ItemResponse{}, itemtypeerrors.ErrItemTypeNotFound
		}
		return ItemResponse{}, err
	}

	i.TypeID = it.ID
	i.Type = it
	i.ItemName = strings.TrimSpace(req.ItemName)
	i.Brand = strings.TrimSpace(req.Brand)
	i.SerialNo = strings.TrimSpace(req.SerialNo)
	i.BarcodeID = strings.TrimSpace(req.BarcodeID)
	i.OtherDetails = req.OtherDetails
	i.Photo = req.Photo
	i.Touch(actorUUID)

	if err := qtx.Update(ctx, i); err != nil {
		s.logger.Error("update item persist failed", zap.Error(err))
		return ItemResponse{}, mapRepositoryError(err)
	}

	s.recorder.Record(ctx, tx, events.ActionUpdate, "item", id, req)

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("update item commit failed", zap.Error(err))
		return ItemResponse{}, err
	}

	s.logger.Info("update item success", zap.String("item_id", id))
	return mapToResponse(*i), nil
}

func (s *service) Delete(ctx context.Context, actorID, id, reason string) error {
	s.logger.Debug("delete item requested",
		zap.String("item_id", id),
		zap.String("actor_id", actorID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return itemerrors.ErrInvalidItemID
	}

	tx := s.db.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	i, err := s.findExisting(ctx, qtx, id)
	if err != nil {
		return err
	}
	if i.Status != StatusActive {
		return itemerrors.ErrItemNotActive
	}

	i.Status = StatusDeleted
	i.SoftDelete(actorUUID, reason)

	if err := qtx.Update(ctx, i); err != nil {
		s.logger.Error("delete item persist failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.recorder.Record(ctx, tx, events.ActionDelete, "item", id, map[string]string{"reason": reason})

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.logger.Info("delete item success", zap.String("item_id", id))
	return nil
}

func (s *service) findExisting(ctx context.Context, repo Repository, id string) (*Item, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, itemerrors.ErrInvalidItemID
	}
	i, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, itemerrors.ErrItemNotFound
		}
		return nil, err
	}
	if i.Status == StatusDeleted {
		return nil, itemerrors.ErrItemNotFound
	}
	return i, nil
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return itemerrors.ErrItemNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == "uq_item_serial_no" {
			return itemerrors.ErrSerialNoAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_item_serial_no") {
		return itemerrors.ErrSerialNoAlreadyExists
	}

	return err
}

func mapToResponse(i Item) ItemResponse {
	resp := ItemResponse{
		ID:           i.ID.String(),
		TypeID:       i.TypeID.String(),
		ItemName:     i.ItemName,
		Brand:        i.Brand,
		SerialNo:     i.SerialNo,
		BarcodeID:    i.BarcodeID,
		OtherDetails: i.OtherDetails,
		Photo:        i.Photo,
		Status:       i.Status,
	}
	if i.Type != nil {
		resp.Type = &ItemTypeRef{
			ID:   i.Type.ID.String(),
			Type: i.Type.Type,
		}
	}
	return resp
}

func mapToListResponse(items []Item) []ItemResponse {
	res := make([]ItemResponse, len(items))
	for i, it := range items {
		res[i] = mapToResponse(it)
	}
	return res
}
