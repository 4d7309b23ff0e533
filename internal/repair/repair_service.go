package repair

import (
	"context"
	"errors"
	"time"

	"noassets/internal/events"
	"noassets/internal/item"
	itemerrors "noassets/internal/item/errors"
	repairerrors "noassets/internal/repair/errors"
	"noassets/internal/trail"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=repair_service.go -destination=mock/repair_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateRepairRequest) (RepairResponse, error)
	GetAll(ctx context.Context) ([]RepairResponse, error)
	GetByID(ctx context.Context, id string) (RepairResponse, error)
	Complete(ctx context.Context, actorID, id string, req CompleteRepairRequest) (RepairResponse, error)
	// MarkDefective writes the item off: the repair closes as DEFECTIVE and
	// the item stays DEFECTIVE permanently.
	MarkDefective(ctx context.Context, actorID, id, reason string) (RepairResponse, error)
	// Delete soft-deletes a repair record. An ONGOING repair releases the
	// item back to ACTIVE; closed repairs leave the item untouched.
	Delete(ctx context.Context, actorID, id, reason string) error
}

type service struct {
	db       *gorm.DB
	repo     Repository
	items    item.Repository
	recorder trail.Recorder
	logger   *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	items item.Repository,
	recorder trail.Recorder,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("repair.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("repair.service")
	}
	if recorder == nil {
		recorder = trail.NopRecorder{}
	}
	return &service{db: db, repo: repo, items: items, recorder: recorder, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateRepairRequest) (RepairResponse, error) {
	s.logger.Debug("create repair requested",
		zap.String("actor_id", actorID),
		zap.String("item_id", req.ItemID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RepairResponse{}, repairerrors.ErrInvalidRepairID
	}

	tx := s.db.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		s.logger.Error("create repair begin tx failed", zap.Error(err))
		return RepairResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	itemsTx := s.items.WithTx(tx)

	i, err := itemsTx.FindByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RepairResponse{}, itemerrors.ErrItemNotFound
		}
		return RepairResponse{}, err
	}
	if i.Status == item.StatusDeleted {
		return RepairResponse{}, itemerrors.ErrItemNotFound
	}

	ongoing, err := qtx.CountOngoingByItem(ctx, i.ID.String())
	if err != nil {
		return RepairResponse{}, err
	}
	if ongoing > 0 {
		return RepairResponse{}, repairerrors.ErrItemUnderRepair
	}

	date := time.Now().UTC()
	if req.Date != nil {
		date = req.Date.UTC()
	}

	rp := &Repair{
		ID:       uuid.New(),
		Date:     date,
		ItemID:   i.ID,
		Item:     i,
		Problem:  req.Problem,
		ReportBy: actorUUID,
		Status:   StatusOngoing,
	}
	rp.CreatedBy = &actorUUID

	if err := qtx.Create(ctx, rp); err != nil {
		s.logger.Error("create repair persist failed", zap.Error(err))
		return RepairResponse{}, err
	}
	if err := itemsTx.UpdateStatus(ctx, i.ID.String(), item.StatusDefective); err != nil {
		s.logger.Error("create repair item status update failed", zap.Error(err))
		return RepairResponse{}, err
	}
	i.Status = item.StatusDefective

	s.recorder.Record(ctx, tx, events.ActionCreate, "repair", rp.ID.String(), req)

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("create repair commit failed", zap.Error(err))
		return RepairResponse{}, err
	}

	s.logger.Info("create repair success",
		zap.String("repair_id", rp.ID.String()),
		zap.String("item_id", i.ID.String()),
	)
	return mapToResponse(*rp), nil
}

func (s *service) GetAll(ctx context.Context) ([]RepairResponse, error) {
	repairs, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all repairs failed", zap.Error(err))
		return nil, err
	}

	res := make([]RepairResponse, len(repairs))
	for i, rp := range repairs {
		res[i] = mapToResponse(rp)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (RepairResponse, error) {
	rp, err := s.findExisting(ctx, s.repo, id)
	if err != nil {
		return RepairResponse{}, err
	}
	return mapToResponse(*rp), nil
}

func (s *service) Complete(ctx context.Context, actorID, id string, req CompleteRepairRequest) (RepairResponse, error) {
	s.logger.Debug("complete repair requested",
		zap.String("repair_id", id),
		zap.String("actor_id", actorID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RepairResponse{}, repairerrors.ErrInvalidRepairID
	}

	tx := s.db.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		s.logger.Error("complete repair begin tx failed", zap.Error(err))
		return RepairResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rp, err := s.findExisting(ctx, qtx, id)
	if err != nil {
		return RepairResponse{}, err
	}
	if rp.Status != StatusOngoing {
		return RepairResponse{}, repairerrors.ErrRepairNotOngoing
	}

	checkedBy := actorUUID
	if req.CheckedBy != "" {
		parsed, err := uuid.Parse(req.CheckedBy)
		if err != nil {
			return RepairResponse{}, repairerrors.ErrInvalidRepairID
		}
		checkedBy = parsed
	}

	rp.Status = StatusCompleted
	rp.Diagnosis = &req.Diagnosis
	rp.CheckedBy = &checkedBy
	rp.Touch(actorUUID)

	if err := qtx.Update(ctx, rp); err != nil {
		s.logger.Error("complete repair persist failed", zap.Error(err))
		return RepairResponse{}, err
	}
	if err := s.items.WithTx(tx).UpdateStatus(ctx, rp.ItemID.String(), item.StatusActive); err != nil {
		s.logger.Error("complete repair item status update failed", zap.Error(err))
		return RepairResponse{}, err
	}

	s.recorder.Record(ctx, tx, events.ActionUpdate, "repair", id, map[string]string{
		"status":    StatusCompleted,
		"diagnosis": req.Diagnosis,
	})

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("complete repair commit failed", zap.Error(err))
		return RepairResponse{}, err
	}

	s.logger.Info("complete repair success", zap.String("repair_id", id))
	return mapToResponse(*rp), nil
}

func (s *service) MarkDefective(ctx context.Context, actorID, id, reason string) (RepairResponse, error) {
	s.logger.Debug("mark repair defective requested",
		zap.String("repair_id", id),
		zap.String("actor_id", actorID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return RepairResponse{}, repairerrors.ErrInvalidRepairID
	}

	tx := s.db.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		return RepairResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rp, err := s.findExisting(ctx, qtx, id)
	if err != nil {
		return RepairResponse{}, err
	}
	if rp.Status != StatusOngoing {
		return RepairResponse{}, repairerrors.ErrRepairNotOngoing
	}

	// Item stays DEFECTIVE: a written-off item never returns to service.
	rp.Status = StatusDefective
	rp.Diagnosis = &reason
	rp.Touch(actorUUID)

	if err := qtx.Update(ctx, rp); err != nil {
		s.logger.Error("mark repair defective persist failed", zap.Error(err))
		return RepairResponse{}, err
	}

	s.recorder.Record(ctx, tx, events.ActionUpdate, "repair", id, map[string]string{
		"status": StatusDefective,
		"reason": reason,
	})

	if err := tx.Commit().Error; err != nil {
		return RepairResponse{}, err
	}

	s.logger.Info("mark repair defective success", zap.String("repair_id", id))
	return mapToResponse(*rp), nil
}

func (s *service) Delete(ctx context.Context, actorID, id, reason string) error {
	s.logger.Debug("delete repair requested",
		zap.String("repair_id", id),
		zap.String("actor_id", actorID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return repairerrors.ErrInvalidRepairID
	}

	tx := s.db.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	rp, err := s.findExisting(ctx, qtx, id)
	if err != nil {
		return err
	}

	wasOngoing := rp.Status == StatusOngoing

	rp.Status = StatusDeleted
	rp.SoftDelete(actorUUID, reason)
	if err := qtx.Update(ctx, rp); err != nil {
		s.logger.Error("delete repair persist failed", zap.Error(err))
		return err
	}
	if wasOngoing {
		if err := s.items.WithTx(tx).UpdateStatus(ctx, rp.ItemID.String(), item.StatusActive); err != nil {
			s.logger.Error("delete repair item status update failed", zap.Error(err))
			return err
		}
	}

	s.recorder.Record(ctx, tx, events.ActionDelete, "repair", id, map[string]string{"reason": reason})

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.logger.Info("delete repair success", zap.String("repair_id", id))
	return nil
}

func (s *service) findExisting(ctx context.Context, repo Repository, id string) (*Repair, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repairerrors.ErrInvalidRepairID
	}
	rp, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repairerrors.ErrRepairNotFound
		}
		return nil, err
	}
	if rp.Status == StatusDeleted {
		return nil, repairerrors.ErrRepairNotFound
	}
	return rp, nil
}

func mapToResponse(rp Repair) RepairResponse {
	resp := RepairResponse{
		ID:        rp.ID.String(),
		Date:      rp.Date,
		ItemID:    rp.ItemID.String(),
		Problem:   rp.Problem,
		Diagnosis: rp.Diagnosis,
		ReportBy:  rp.ReportBy.String(),
		Status:    rp.Status,
	}
	if rp.CheckedBy != nil {
		checked := rp.CheckedBy.String()
		resp.CheckedBy = &checked
	}
	if rp.Item != nil {
		ref := &ItemRef{
			ID:       rp.Item.ID.String(),
			ItemName: rp.Item.ItemName,
			SerialNo: rp.Item.SerialNo,
			Status:   rp.Item.Status,
		}
		if rp.Item.Type != nil {
			ref.Type = rp.Item.Type.Type
		}
		resp.Item = ref
	}
	return resp
}
