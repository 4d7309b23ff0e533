package issuance

import (
	"context"

	"noassets/internal/shared/record"

	"gorm.io/gorm"
)

//go:generate mockgen -source=issuance_repo.go -destination=mock/issuance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, is *Issuance) error
	FindAll(ctx context.Context) ([]Issuance, error)
	FindByID(ctx context.Context, id string) (*Issuance, error)
	FindActiveByItem(ctx context.Context, itemID string) (*Issuance, error)
	Update(ctx context.Context, is *Issuance) error
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

func (r *repository) Create(ctx context.Context, is *Issuance) error {
	return r.db.WithContext(ctx).Create(is).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Issuance, error) {
	var issuances []Issuance
	err := r.db.WithContext(ctx).
		Scopes(record.NotDeleted).
		Preload("Item").
		Preload("Item.Type").
		Preload("Room").
		Order("date DESC").
		Find(&issuances).Error
	return issuances, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Issuance, error) {
	var is Issuance
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Item.Type").
		Preload("Room").
		First(&is, "id = ?", id).Error
	return &is, err
}

func (r *repository) FindActiveByItem(ctx context.Context, itemID string) (*Issuance, error) {
	var is Issuance
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Scopes(record.WithStatus(StatusActive)).
		First(&is).Error
	return &is, err
}

func (r *repository) Update(ctx context.Context, is *Issuance) error {
	return r.db.WithContext(ctx).Save(is).Error
}
