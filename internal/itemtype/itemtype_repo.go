package itemtype

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=itemtype_repo.go -destination=mock/itemtype_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, it *ItemType) error
	FindAll(ctx context.Context) ([]ItemType, error)
	FindByID(ctx context.Context, id string) (*ItemType, error)
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

func (r *repository) Create(ctx context.Context, it *ItemType) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *repository) FindAll(ctx context.Context) ([]ItemType, error) {
	var types []ItemType
	err := r.db.WithContext(ctx).Order("type ASC").Find(&types).Error
	return types, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*ItemType, error) {
	var it ItemType
	err := r.db.WithContext(ctx).First(&it, "id = ?", id).Error
	return &it, err
}
