package repair

import (
	"context"

	"noassets/internal/shared/record"

	"gorm.io/gorm"
)

//go:generate mockgen -source=repair_repo.go -destination=mock/repair_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, rp *Repair) error
	FindAll(ctx context.Context) ([]Repair, error)
	FindByID(ctx context.Context, id string) (*Repair, error)
	CountOngoingByItem(ctx context.Context, itemID string) (int64, error)
	Update(ctx context.Context, rp *Repair) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, rp *Repair) error {
	return r.db.WithContext(ctx).Create(rp).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Repair, error) {
	var repairs []Repair
	err := r.db.WithContext(ctx).
		Scopes(record.NotDeleted).
		Preload("Item").
		Preload("Item.Type").
		Order("date DESC").
		Find(&repairs).Error
	return repairs, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Repair, error) {
	var rp Repair
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Item.Type").
		First(&rp, "id = ?", id).Error
	return &rp, err
}

func (r *repository) CountOngoingByItem(ctx context.Context, itemID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Repair{}).
		Where("item_id = ?", itemID).
		Scopes(record.WithStatus(StatusOngoing)).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, rp *Repair) error {
	return r.db.WithContext(ctx).Save(rp).Error
}
