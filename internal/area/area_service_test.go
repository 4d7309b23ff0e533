package area_test

import (
	"context"
	"database/sql"
	"testing"

	"noassets/internal/area"
	areaerrors "noassets/internal/area/errors"
	"noassets/internal/trail"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeAreaRepository struct {
	withTxFn              func(tx *gorm.DB) area.Repository
	createFn              func(ctx context.Context, a *area.Area) error
	findAllFn             func(ctx context.Context) ([]area.Area, error)
	findByIDFn            func(ctx context.Context, id string) (*area.Area, error)
	updateFn              func(ctx context.Context, a *area.Area) error
	countActiveIssuanceFn func(ctx context.Context, areaID string) (int64, error)
}

func (f *fakeAreaRepository) WithTx(tx *gorm.DB) area.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeAreaRepository) Create(ctx context.Context, a *area.Area) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeAreaRepository) FindAll(ctx context.Context) ([]area.Area, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeAreaRepository) FindByID(ctx context.Context, id string) (*area.Area, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAreaRepository) Update(ctx context.Context, a *area.Area) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}

func (f *fakeAreaRepository) CountActiveIssuances(ctx context.Context, areaID string) (int64, error) {
	if f.countActiveIssuanceFn != nil {
		return f.countActiveIssuanceFn(ctx, areaID)
	}
	return 0, nil
}

type areaServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service area.Service
	repo    *fakeAreaRepository
}

func setupAreaServiceTest(t *testing.T) *areaServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	repo := &fakeAreaRepository{}
	svc := area.NewService(gdb, repo, trail.NopRecorder{})

	return &areaServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestAreaService_Delete(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	areaID := uuid.New()

	t.Run("success soft-deletes with reason", func(t *testing.T) {
		deps := setupAreaServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*area.Area, error) {
			return &area.Area{ID: areaID, Area: "Server Room", Status: "ACTIVE"}, nil
		}

		var deleted *area.Area
		deps.repo.updateFn = func(ctx context.Context, a *area.Area) error {
			deleted = a
			return nil
		}

		err := deps.service.Delete(ctx, actorID, areaID.String(), "room closed")

		assert.NoError(t, err)
		if assert.NotNil(t, deleted) {
			assert.Equal(t, "DELETED", deleted.Status)
			if assert.NotNil(t, deleted.DeletedReason) {
				assert.Equal(t, "room closed", *deleted.DeletedReason)
			}
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("open issuance blocks deletion", func(t *testing.T) {
		deps := setupAreaServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*area.Area, error) {
			return &area.Area{ID: areaID, Area: "Server Room", Status: "ACTIVE"}, nil
		}
		deps.repo.countActiveIssuanceFn = func(ctx context.Context, id string) (int64, error) {
			return 2, nil
		}

		updated := false
		deps.repo.updateFn = func(ctx context.Context, a *area.Area) error {
			updated = true
			return nil
		}

		err := deps.service.Delete(ctx, actorID, areaID.String(), "room closed")

		assert.ErrorIs(t, err, areaerrors.ErrAreaHasActiveIssuances)
		assert.False(t, updated)
	})

	t.Run("already deleted area reads as not found", func(t *testing.T) {
		deps := setupAreaServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*area.Area, error) {
			return &area.Area{ID: areaID, Area: "Server Room", Status: "DELETED"}, nil
		}

		err := deps.service.Delete(ctx, actorID, areaID.String(), "room closed")

		assert.ErrorIs(t, err, areaerrors.ErrAreaNotFound)
	})
}

func TestAreaService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("trims the name and defaults to active", func(t *testing.T) {
		deps := setupAreaServiceTest(t)
		defer deps.db.Close()

		deps.repo.createFn = func(ctx context.Context, a *area.Area) error {
			assert.Equal(t, "Server Room", a.Area)
			assert.Equal(t, "ACTIVE", a.Status)
			return nil
		}

		resp, err := deps.service.Create(ctx, actorID, area.CreateAreaRequest{Area: " Server Room "})

		assert.NoError(t, err)
		assert.Equal(t, "Server Room", resp.Area)
	})
}
