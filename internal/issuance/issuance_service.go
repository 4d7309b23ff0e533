package issuance

import (
	"context"
	"errors"
	"time"

	"noassets/internal/area"
	areaerrors "noassets/internal/area/errors"
	"noassets/internal/events"
	issuanceerrors "noassets/internal/issuance/errors"
	"noassets/internal/item"
	itemerrors "noassets/internal/item/errors"
	"noassets/internal/shared/record"
	"noassets/internal/trail"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=issuance_service.go -destination=mock/issuance_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateIssuanceRequest) (IssuanceResponse, error)
	GetAll(ctx context.Context) ([]IssuanceResponse, error)
	GetByID(ctx context.Context, id string) (IssuanceResponse, error)
	// ChangeStatus closes an ACTIVE issuance. TRANSFERRED keeps the item
	// ASSIGNED and opens a successor issuance for the new room so the move is
	// kept as history; SURRENDERED returns the item to ACTIVE.
	ChangeStatus(ctx context.Context, actorID, id string, req ChangeStatusRequest) (IssuanceResponse, error)
	Delete(ctx context.Context, actorID, id, reason string) error
}

type service struct {
	db       *gorm.DB
	repo     Repository
	items    item.Repository
	areas    area.Repository
	recorder trail.Recorder
	logger   *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	items item.Repository,
	areas area.Repository,
	recorder trail.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("issuance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("issuance.service")
	}
	if recorder == nil {
		recorder = trail.NopRecorder{}
	}
	return &service{db: db, repo: repo, items: items, areas: areas, recorder: recorder, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateIssuanceRequest) (IssuanceResponse, error) {
	s.logger.Debug("create issuance requested",
		zap.String("actor_id", actorID),
		zap.String("item_id", req.ItemID),
		zap.String("room_id", req.RoomID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return IssuanceResponse{}, issuanceerrors.ErrInvalidIssuanceID
	}

	tx := s.db.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		s.logger.Error("create issuance begin tx failed", zap.Error(err))
		return IssuanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	itemsTx := s.items.WithTx(tx)

	i, err := s.findIssuableItem(ctx, itemsTx, req.ItemID)
	if err != nil {
		return IssuanceResponse{}, err
	}
	a, err := s.findActiveArea(ctx, s.areas.WithTx(tx), req.RoomID)
	if err != nil {
		return IssuanceResponse{}, err
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = req.Date.UTC()
	}

	is := &Issuance{
		ID:         uuid.New(),
		Date:       date,
		ItemID:     i.ID,
		Item:       i,
		RoomID:     a.ID,
		Room:       a,
		AssignedBy: actorUUID,
		Remarks:    req.Remarks,
		Signature:  req.Signature,
		Status:     StatusActive,
	}
	is.CreatedBy = &actorUUID

	if err := qtx.Create(ctx, is); err != nil {
		s.logger.Error("create issuance persist failed", zap.Error(err))
		return IssuanceResponse{}, err
	}
	if err := itemsTx.UpdateStatus(ctx, i.ID.String(), item.StatusAssigned); err != nil {
		s.logger.Error("create issuance item status update failed", zap.Error(err))
		return IssuanceResponse{}, err
	}
	i.Status = item.StatusAssigned

	s.recorder.Record(ctx, tx, events.ActionCreate, "issuance", is.ID.String(), req)

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("create issuance commit failed", zap.Error(err))
		return IssuanceResponse{}, err
	}

	s.logger.Info("create issuance success",
		zap.String("issuance_id", is.ID.String()),
		zap.String("item_id", i.ID.String()),
		zap.String("room_id", a.ID.String()),
	)
	return mapToResponse(*is), nil
}

func (s *service) GetAll(ctx context.Context) ([]IssuanceResponse, error) {
	issuances, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all issuances failed", zap.Error(err))
		return nil, err
	}

	res := make([]IssuanceResponse, len(issuances))
	for i, is := range issuances {
		res[i] = mapToResponse(is)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (IssuanceResponse, error) {
	is, err := s.findExisting(ctx, s.repo, id)
	if err != nil {
		return IssuanceResponse{}, err
	}
	return mapToResponse(*is), nil
}

func (s *service) ChangeStatus(ctx context.Context, actorID, id string, req ChangeStatusRequest) (IssuanceResponse, error) {
	s.logger.Debug("change issuance status requested",
		zap.String("issuance_id", id),
		zap.String("actor_id", actorID),
		zap.String("status", req.Status),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return IssuanceResponse{}, issuanceerrors.ErrInvalidIssuanceID
	}

	tx := s.db.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		s.logger.Error("change issuance status begin tx failed", zap.Error(err))
		return IssuanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	is, err := s.findExisting(ctx, qtx, id)
	if err != nil {
		return IssuanceResponse{}, err
	}
	if is.Status != StatusActive {
		return IssuanceResponse{}, issuanceerrors.ErrIssuanceNotActive
	}

	switch req.Status {
	case StatusTransferred:
		if req.RoomID == "" {
			return IssuanceResponse{}, issuanceerrors.ErrTransferRoomRequired
		}
		a, err := s.findActiveArea(ctx, s.areas.WithTx(tx), req.RoomID)
		if err != nil {
			return IssuanceResponse{}, err
		}

		is.Status = StatusTransferred
		is.Touch(actorUUID)
		if err := qtx.Update(ctx, is); err != nil {
			s.logger.Error("transfer issuance persist failed", zap.Error(err))
			return IssuanceResponse{}, err
		}

		successor := &Issuance{
			ID:         uuid.New(),
			Date:       time.Now().UTC(),
			ItemID:     is.ItemID,
			RoomID:     a.ID,
			Room:       a,
			AssignedBy: actorUUID,
			Remarks:    req.Remarks,
			Status:     StatusActive,
		}
		successor.CreatedBy = &actorUUID
		if err := qtx.Create(ctx, successor); err != nil {
			s.logger.Error("transfer successor persist failed", zap.Error(err))
			return IssuanceResponse{}, err
		}

		s.recorder.Record(ctx, tx, events.ActionUpdate, "issuance", id, map[string]string{
			"status":       StatusTransferred,
			"successor_id": successor.ID.String(),
			"room_id":      a.ID.String(),
		})

	case StatusSurrendered:
		is.Status = StatusSurrendered
		is.Touch(actorUUID)
		if err := qtx.Update(ctx, is); err != nil {
			s.logger.Error("surrender issuance persist failed", zap.Error(err))
			return IssuanceResponse{}, err
		}
		if err := s.items.WithTx(tx).UpdateStatus(ctx, is.ItemID.String(), item.StatusActive); err != nil {
			s.logger.Error("surrender item status update failed", zap.Error(err))
			return IssuanceResponse{}, err
		}

		s.recorder.Record(ctx, tx, events.ActionUpdate, "issuance", id, map[string]string{
			"status": StatusSurrendered,
		})

	default:
		return IssuanceResponse{}, issuanceerrors.ErrInvalidStatusChange
	}

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("change issuance status commit failed", zap.Error(err))
		return IssuanceResponse{}, err
	}

	s.logger.Info("change issuance status success",
		zap.String("issuance_id", id),
		zap.String("status", req.Status),
	)
	return mapToResponse(*is), nil
}

func (s *service) Delete(ctx context.Context, actorID, id, reason string) error {
	s.logger.Debug("delete issuance requested",
		zap.String("issuance_id", id),
		zap.String("actor_id", actorID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return issuanceerrors.ErrInvalidIssuanceID
	}

	tx := s.db.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	is, err := s.findExisting(ctx, qtx, id)
	if err != nil {
		return err
	}
	if is.Status != StatusActive {
		return issuanceerrors.ErrIssuanceNotActive
	}

	is.Status = StatusDeleted
	is.SoftDelete(actorUUID, reason)
	if err := qtx.Update(ctx, is); err != nil {
		s.logger.Error("delete issuance persist failed", zap.Error(err))
		return err
	}
	if err := s.items.WithTx(tx).UpdateStatus(ctx, is.ItemID.String(), item.StatusActive); err != nil {
		s.logger.Error("delete issuance item status update failed", zap.Error(err))
		return err
	}

	s.recorder.Record(ctx, tx, events.ActionDelete, "issuance", id, map[string]string{"reason": reason})

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.logger.Info("delete issuance success", zap.String("issuance_id", id))
	return nil
}

func (s *service) findExisting(ctx context.Context, repo Repository, id string) (*Issuance, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, issuanceerrors.ErrInvalidIssuanceID
	}
	is, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, issuanceerrors.ErrIssuanceNotFound
		}
		return nil, err
	}
	if is.Status == StatusDeleted {
		return nil, issuanceerrors.ErrIssuanceNotFound
	}
	return is, nil
}

func (s *service) findIssuableItem(ctx context.Context, repo item.Repository, id string) (*item.Item, error) {
	i, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, itemerrors.ErrItemNotFound
		}
		return nil, err
	}
	if i.Status == item.StatusDeleted {
		return nil, itemerrors.ErrItemNotFound
	}
	if i.Status != item.StatusActive {
		return nil, itemerrors.ErrItemNotActive
	}
	return i, nil
}

func (s *service) findActiveArea(ctx context.Context, repo area.Repository, id string) (*area.Area, error) {
	a, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, areaerrors.ErrAreaNotFound
		}
		return nil, err
	}
	if a.Status != record.StatusActive {
		return nil, areaerrors.ErrAreaNotFound
	}
	return a, nil
}

func mapToResponse(is Issuance) IssuanceResponse {
	resp := IssuanceResponse{
		ID:         is.ID.String(),
		Date:       is.Date,
		ItemID:     is.ItemID.String(),
		RoomID:     is.RoomID.String(),
		AssignedBy: is.AssignedBy.String(),
		Remarks:    is.Remarks,
		Signature:  is.Signature,
		Status:     is.Status,
	}
	if is.Item != nil {
		ref := &ItemRef{
			ID:       is.Item.ID.String(),
			ItemName: is.Item.ItemName,
			SerialNo: is.Item.SerialNo,
			Status:   is.Item.Status,
		}
		if is.Item.Type != nil {
			ref.Type = is.Item.Type.Type
		}
		resp.Item = ref
	}
	if is.Room != nil {
		resp.Room = &AreaRef{
			ID:   is.Room.ID.String(),
			Area: is.Room.Area,
		}
	}
	return resp
}
