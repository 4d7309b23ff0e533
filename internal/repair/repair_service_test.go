package repair_test

import (
	"context"
	"database/sql"
	"testing"

	"noassets/internal/item"
	itemerrors "noassets/internal/item/errors"
	"noassets/internal/repair"
	repairerrors "noassets/internal/repair/errors"
	"noassets/internal/trail"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeRepairRepository struct {
	withTxFn             func(tx *gorm.DB) repair.Repository
	createFn             func(ctx context.Context, rp *repair.Repair) error
	findAllFn            func(ctx context.Context) ([]repair.Repair, error)
	findByIDFn           func(ctx context.Context, id string) (*repair.Repair, error)
	countOngoingByItemFn func(ctx context.Context, itemID string) (int64, error)
	updateFn             func(ctx context.Context, rp *repair.Repair) error
}

func (f *fakeRepairRepository) WithTx(tx *gorm.DB) repair.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRepairRepository) Create(ctx context.Context, rp *repair.Repair) error {
	if f.createFn != nil {
		return f.createFn(ctx, rp)
	}
	return nil
}

func (f *fakeRepairRepository) FindAll(ctx context.Context) ([]repair.Repair, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeRepairRepository) FindByID(ctx context.Context, id string) (*repair.Repair, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepairRepository) CountOngoingByItem(ctx context.Context, itemID string) (int64, error) {
	if f.countOngoingByItemFn != nil {
		return f.countOngoingByItemFn(ctx, itemID)
	}
	return 0, nil
}

func (f *fakeRepairRepository) Update(ctx context.Context, rp *repair.Repair) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, rp)
	}
	return nil
}

type fakeItemRepository struct {
	withTxFn       func(tx *gorm.DB) item.Repository
	createFn       func(ctx context.Context, i *item.Item) error
	findAllFn      func(ctx context.Context) ([]item.Item, error)
	findByIDFn     func(ctx context.Context, id string) (*item.Item, error)
	updateFn       func(ctx context.Context, i *item.Item) error
	updateStatusFn func(ctx context.Context, id, status string) error
}

func (f *fakeItemRepository) WithTx(tx *gorm.DB) item.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeItemRepository) Create(ctx context.Context, i *item.Item) error {
	if f.createFn != nil {
		return f.createFn(ctx, i)
	}
	return nil
}

func (f *fakeItemRepository) FindAll(ctx context.Context) ([]item.Item, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeItemRepository) FindByID(ctx context.Context, id string) (*item.Item, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeItemRepository) Update(ctx context.Context, i *item.Item) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, i)
	}
	return nil
}

func (f *fakeItemRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, id, status)
	}
	return nil
}

type repairServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service repair.Service
	repo    *fakeRepairRepository
	items   *fakeItemRepository
}

func setupRepairServiceTest(t *testing.T) *repairServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	repo := &fakeRepairRepository{}
	items := &fakeItemRepository{}
	svc := repair.NewService(gdb, repo, items, trail.NopRecorder{})

	return &repairServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		items:   items,
	}
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

func TestRepairService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	itemID := uuid.New()

	t.Run("success marks the item defective", func(t *testing.T) {
		deps := setupRepairServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.items.findByIDFn = func(ctx context.Context, id string) (*item.Item, error) {
			return &item.Item{ID: itemID, Status: item.StatusActive}, nil
		}

		var itemStatus string
		deps.items.updateStatusFn = func(ctx context.Context, id, status string) error {
			assert.Equal(t, itemID.String(), id)
			itemStatus = status
			return nil
		}
		deps.repo.createFn = func(ctx context.Context, rp *repair.Repair) error {
			assert.Equal(t, repair.StatusOngoing, rp.Status)
			assert.Equal(t, itemID, rp.ItemID)
			assert.Equal(t, "cracked screen", rp.Problem)
			assert.Equal(t, uuid.MustParse(actorID), rp.ReportBy)
			return nil
		}

		resp, err := deps.service.Create(ctx, actorID, repair.CreateRepairRequest{
			ItemID:  itemID.String(),
			Problem: "cracked screen",
		})

		assert.NoError(t, err)
		assert.Equal(t, repair.StatusOngoing, resp.Status)
		assert.Equal(t, item.StatusDefective, itemStatus)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("deleted item reads as not found", func(t *testing.T) {
		deps := setupRepairServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.items.findByIDFn = func(ctx context.Context, id string) (*item.Item, error) {
			return &item.Item{ID: itemID, Status: item.StatusDeleted}, nil
		}

		_, err := deps.service.Create(ctx, actorID, repair.CreateRepairRequest{
			ItemID:  itemID.String(),
			Problem: "dead battery",
		})

		assert.ErrorIs(t, err, itemerrors.ErrItemNotFound)
	})

	t.Run("second ongoing repair for the same item is refused", func(t *testing.T) {
		deps := setupRepairServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.items.findByIDFn = func(ctx context.Context, id string) (*item.Item, error) {
			return &item.Item{ID: itemID, Status: item.StatusDefective}, nil
		}
		deps.repo.countOngoingByItemFn = func(ctx context.Context, id string) (int64, error) {
			return 1, nil
		}

		created := false
		deps.repo.createFn = func(ctx context.Context, rp *repair.Repair) error {
			created = true
			return nil
		}

		_, err := deps.service.Create(ctx, actorID, repair.CreateRepairRequest{
			ItemID:  itemID.String(),
			Problem: "still broken",
		})

		assert.ErrorIs(t, err, repairerrors.ErrItemUnderRepair)
		assert.False(t, created)
	})
}

func TestRepairService_Complete(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	repairID := uuid.New()
	itemID := uuid.New()

	t.Run("complete restores the item", func(t *testing.T) {
		deps := setupRepairServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*repair.Repair, error) {
			return &repair.Repair{
				ID:     repairID,
				ItemID: itemID,
				Status: repair.StatusOngoing,
			}, nil
		}

		var completed *repair.Repair
		deps.repo.updateFn = func(ctx context.Context, rp *repair.Repair) error {
			completed = rp
			return nil
		}

		var itemStatus string
		deps.items.updateStatusFn = func(ctx context.Context, id, status string) error {
			itemStatus = status
			return nil
		}

		resp, err := deps.service.Complete(ctx, actorID, repairID.String(), repair.CompleteRepairRequest{
			Diagnosis: "replaced screen",
		})

		assert.NoError(t, err)
		assert.Equal(t, repair.StatusCompleted, resp.Status)
		assert.Equal(t, item.StatusActive, itemStatus)
		if assert.NotNil(t, completed) {
			assert.Equal(t, repair.StatusCompleted, completed.Status)
			if assert.NotNil(t, completed.Diagnosis) {
				assert.Equal(t, "replaced screen", *completed.Diagnosis)
			}
			if assert.NotNil(t, completed.CheckedBy) {
				assert.Equal(t, uuid.MustParse(actorID), *completed.CheckedBy)
			}
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("closed repair cannot complete again", func(t *testing.T) {
		deps := setupRepairServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*repair.Repair, error) {
			return &repair.Repair{ID: repairID, ItemID: itemID, Status: repair.StatusCompleted}, nil
		}

		_, err := deps.service.Complete(ctx, actorID, repairID.String(), repair.CompleteRepairRequest{
			Diagnosis: "noop",
		})

		assert.ErrorIs(t, err, repairerrors.ErrRepairNotOngoing)
	})
}

func TestRepairService_MarkDefective(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	repairID := uuid.New()
	itemID := uuid.New()

	t.Run("write-off keeps the item defective", func(t *testing.T) {
		deps := setupRepairServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*repair.Repair, error) {
			return &repair.Repair{ID: repairID, ItemID: itemID, Status: repair.StatusOngoing}, nil
		}

		itemTouched := false
		deps.items.updateStatusFn = func(ctx context.Context, id, status string) error {
			itemTouched = true
			return nil
		}

		resp, err := deps.service.MarkDefective(ctx, actorID, repairID.String(), "beyond repair")

		assert.NoError(t, err)
		assert.Equal(t, repair.StatusDefective, resp.Status)
		assert.False(t, itemTouched)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestRepairService_Delete(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	repairID := uuid.New()
	itemID := uuid.New()

	t.Run("deleting an ongoing repair releases the item", func(t *testing.T) {
		deps := setupRepairServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*repair.Repair, error) {
			return &repair.Repair{ID: repairID, ItemID: itemID, Status: repair.StatusOngoing}, nil
		}

		var deleted *repair.Repair
		deps.repo.updateFn = func(ctx context.Context, rp *repair.Repair) error {
			deleted = rp
			return nil
		}

		var itemStatus string
		deps.items.updateStatusFn = func(ctx context.Context, id, status string) error {
			itemStatus = status
			return nil
		}

		err := deps.service.Delete(ctx, actorID, repairID.String(), "filed by mistake")

		assert.NoError(t, err)
		assert.Equal(t, item.StatusActive, itemStatus)
		if assert.NotNil(t, deleted) {
			assert.Equal(t, repair.StatusDeleted, deleted.Status)
			if assert.NotNil(t, deleted.DeletedReason) {
				assert.Equal(t, "filed by mistake", *deleted.DeletedReason)
			}
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("deleting a closed repair leaves the item untouched", func(t *testing.T) {
		deps := setupRepairServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*repair.Repair, error) {
			return &repair.Repair{ID: repairID, ItemID: itemID, Status: repair.StatusCompleted}, nil
		}

		itemTouched := false
		deps.items.updateStatusFn = func(ctx context.Context, id, status string) error {
			itemTouched = true
			return nil
		}

		err := deps.service.Delete(ctx, actorID, repairID.String(), "archived")

		assert.NoError(t, err)
		assert.False(t, itemTouched)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestRepairService_RepairLifecycle(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	itemID := uuid.New()

	deps := setupRepairServiceTest(t)
	defer deps.db.Close()

	// report, rejected double report, complete, rejected double complete
	expectTx(t, deps.sqlMock, true)
	expectTx(t, deps.sqlMock, false)
	expectTx(t, deps.sqlMock, true)
	expectTx(t, deps.sqlMock, false)

	current := &item.Item{ID: itemID, ItemName: "ThinkPad X1", Status: item.StatusActive}
	deps.items.findByIDFn = func(ctx context.Context, id string) (*item.Item, error) {
		return current, nil
	}
	deps.items.updateStatusFn = func(ctx context.Context, id, status string) error {
		assert.Equal(t, itemID.String(), id)
		current.Status = status
		return nil
	}

	store := map[string]*repair.Repair{}
	deps.repo.createFn = func(ctx context.Context, rp *repair.Repair) error {
		copied := *rp
		store[rp.ID.String()] = &copied
		return nil
	}
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*repair.Repair, error) {
		rp, ok := store[id]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		copied := *rp
		return &copied, nil
	}
	deps.repo.updateFn = func(ctx context.Context, rp *repair.Repair) error {
		copied := *rp
		store[rp.ID.String()] = &copied
		return nil
	}
	deps.repo.countOngoingByItemFn = func(ctx context.Context, id string) (int64, error) {
		var n int64
		for _, rp := range store {
			if rp.ItemID.String() == id && rp.Status == repair.StatusOngoing {
				n++
			}
		}
		return n, nil
	}

	created, err := deps.service.Create(ctx, actorID, repair.CreateRepairRequest{
		ItemID:  itemID.String(),
		Problem: "dead fan",
	})
	assert.NoError(t, err)
	assert.Equal(t, repair.StatusOngoing, created.Status)
	assert.Equal(t, item.StatusDefective, current.Status)

	_, err = deps.service.Create(ctx, actorID, repair.CreateRepairRequest{
		ItemID:  itemID.String(),
		Problem: "dead fan again",
	})
	assert.ErrorIs(t, err, repairerrors.ErrItemUnderRepair)
	assert.Equal(t, item.StatusDefective, current.Status)

	completed, err := deps.service.Complete(ctx, actorID, created.ID, repair.CompleteRepairRequest{
		Diagnosis: "fan replaced",
	})
	assert.NoError(t, err)
	assert.Equal(t, repair.StatusCompleted, completed.Status)
	assert.Equal(t, item.StatusActive, current.Status)
	if assert.NotNil(t, completed.Diagnosis) {
		assert.Equal(t, "fan replaced", *completed.Diagnosis)
	}

	_, err = deps.service.Complete(ctx, actorID, created.ID, repair.CompleteRepairRequest{
		Diagnosis: "fan replaced twice",
	})
	assert.ErrorIs(t, err, repairerrors.ErrRepairNotOngoing)
	assert.Equal(t, item.StatusActive, current.Status)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
