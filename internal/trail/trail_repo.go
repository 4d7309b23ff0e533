package trail

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=trail_repo.go -destination=mock/trail_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, t *Trail) error
	FindFiltered(ctx context.Context, filter QueryFilter) ([]Trail, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Trail) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindFiltered(ctx context.Context, filter QueryFilter) ([]Trail, error) {
	q := r.db.WithContext(ctx).Model(&Trail{})

	if filter.Entity != "" {
		q = q.Where("entity = ?", filter.Entity)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.StartDate != "" {
		if start, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			q = q.Where("timestamp >= ?", start)
		}
	}
	if filter.EndDate != "" {
		if end, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			q = q.Where("timestamp < ?", end.AddDate(0, 0, 1))
		}
	}
	if filter.SearchQuery != "" {
		like := "%" + filter.SearchQuery + "%"
		q = q.Where("entity_id ILIKE ? OR details::text ILIKE ?", like, like)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 1000 {
		limit = 200
	}

	var trails []Trail
	err := q.Order("timestamp DESC").Limit(limit).Find(&trails).Error
	return trails, err
}
