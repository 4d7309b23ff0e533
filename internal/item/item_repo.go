package item

import (
	"context"

	"noassets/internal/shared/record"

	"gorm.io/gorm"
)

//go:generate mockgen -source=item_repo.go -destination=mock/item_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, i *Item) error
	FindAll(ctx context.Context) ([]Item, error)
	FindByID(ctx context.Context, id string) (*Item, error)
	Update(ctx context.Context, i *Item) error
	UpdateStatus(ctx context.Context, id, status string) error
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

func (r *repository) Create(ctx context.Context, i *Item) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Item, error) {
	var items []Item
	err := r.db.WithContext(ctx).
		Scopes(record.NotDeleted).
		Preload("Type").
		Find(&items).Error
	return items, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Item, error) {
	var i Item
	err := r.db.WithContext(ctx).
		Preload("Type").
		First(&i, "id = ?", id).Error
	return &i, err
}

func (r *repository) Update(ctx context.Context, i *Item) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&Item{}).
		Where("id = ?", id).
		Update("status", status).Error
}
