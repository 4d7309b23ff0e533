package area

import (
	"context"

	"noassets/internal/shared/record"

	"gorm.io/gorm"
)

//go:generate mockgen -source=area_repo.go -destination=mock/area_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, a *Area) error
	FindAll(ctx context.Context) ([]Area, error)
	FindByID(ctx context.Context, id string) (*Area, error)
	Update(ctx context.Context, a *Area) error
	CountActiveIssuances(ctx context.Context, areaID string) (int64, error)
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

func (r *repository) Create(ctx context.Context, a *Area) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Area, error) {
	var areas []Area
	err := r.db.WithContext(ctx).
		Scopes(record.NotDeleted).
		Order("area ASC").
		Find(&areas).Error
	return areas, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Area, error) {
	var a Area
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) Update(ctx context.Context, a *Area) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) CountActiveIssuances(ctx context.Context, areaID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("issuances").
		Where("room_id = ?", areaID).
		Where("status = ?", record.StatusActive).
		Count(&count).Error
	return count, err
}
