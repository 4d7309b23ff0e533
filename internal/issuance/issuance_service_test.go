package issuance_test

import (
	"context"
	"database/sql"
	"testing"

	"noassets/internal/area"
	"noassets/internal/issuance"
	issuanceerrors "noassets/internal/issuance/errors"
	"noassets/internal/item"
	itemerrors "noassets/internal/item/errors"
	"noassets/internal/trail"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeIssuanceRepository struct {
	withTxFn           func(tx *gorm.DB) issuance.Repository
	createFn           func(ctx context.Context, is *issuance.Issuance) error
	findAllFn          func(ctx context.Context) ([]issuance.Issuance, error)
	findByIDFn         func(ctx context.Context, id string) (*issuance.Issuance, error)
	findActiveByItemFn func(ctx context.Context, itemID string) (*issuance.Issuance, error)
	updateFn           func(ctx context.Context, is *issuance.Issuance) error
}

func (f *fakeIssuanceRepository) WithTx(tx *gorm.DB) issuance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeIssuanceRepository) Create(ctx context.Context, is *issuance.Issuance) error {
	if f.createFn != nil {
		return f.createFn(ctx, is)
	}
	return nil
}

func (f *fakeIssuanceRepository) FindAll(ctx context.Context) ([]issuance.Issuance, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeIssuanceRepository) FindByID(ctx context.Context, id string) (*issuance.Issuance, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeIssuanceRepository) FindActiveByItem(ctx context.Context, itemID string) (*issuance.Issuance, error) {
	if f.findActiveByItemFn != nil {
		return f.findActiveByItemFn(ctx, itemID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeIssuanceRepository) Update(ctx context.Context, is *issuance.Issuance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, is)
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

type issuanceServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service issuance.Service
	repo    *fakeIssuanceRepository
	items   *fakeItemRepository
	areas   *fakeAreaRepository
}

func setupIssuanceServiceTest(t *testing.T) *issuanceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	repo := &fakeIssuanceRepository{}
	items := &fakeItemRepository{}
	areas := &fakeAreaRepository{}
	svc := issuance.NewService(gdb, repo, items, areas, trail.NopRecorder{})

	return &issuanceServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
		items:   items,
		areas:   areas,
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

func activeItem(id uuid.UUID) *item.Item {
	return &item.Item{
		ID:       id,
		ItemName: "ThinkPad X1",
		SerialNo: "SN-001",
		Status:   item.StatusActive,
	}
}

func activeArea(id uuid.UUID) *area.Area {
	return &area.Area{
		ID:     id,
		Area:   "Server Room",
		Status: "ACTIVE",
	}
}

func TestIssuanceService_Create(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	itemID := uuid.New()
	roomID := uuid.New()

	t.Run("success assigns the item", func(t *testing.T) {
		deps := setupIssuanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.items.findByIDFn = func(ctx context.Context, id string) (*item.Item, error) {
			assert.Equal(t, itemID.String(), id)
			return activeItem(itemID), nil
		}
		deps.areas.findByIDFn = func(ctx context.Context, id string) (*area.Area, error) {
			assert.Equal(t, roomID.String(), id)
			return activeArea(roomID), nil
		}

		var statusUpdate string
		deps.items.updateStatusFn = func(ctx context.Context, id, status string) error {
			assert.Equal(t, itemID.String(), id)
			statusUpdate = status
			return nil
		}
		deps.repo.createFn = func(ctx context.Context, is *issuance.Issuance) error {
			assert.Equal(t, issuance.StatusActive, is.Status)
			assert.Equal(t, itemID, is.ItemID)
			assert.Equal(t, roomID, is.RoomID)
			assert.Equal(t, uuid.MustParse(actorID), is.AssignedBy)
			return nil
		}

		resp, err := deps.service.Create(ctx, actorID, issuance.CreateIssuanceRequest{
			ItemID: itemID.String(),
			RoomID: roomID.String(),
		})

		assert.NoError(t, err)
		assert.Equal(t, issuance.StatusActive, resp.Status)
		assert.Equal(t, item.StatusAssigned, statusUpdate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("item not active creates no record", func(t *testing.T) {
		deps := setupIssuanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		assigned := activeItem(itemID)
		assigned.Status = item.StatusAssigned
		deps.items.findByIDFn = func(ctx context.Context, id string) (*item.Item, error) {
			return assigned, nil
		}

		created := false
		deps.repo.createFn = func(ctx context.Context, is *issuance.Issuance) error {
			created = true
			return nil
		}

		_, err := deps.service.Create(ctx, actorID, issuance.CreateIssuanceRequest{
			ItemID: itemID.String(),
			RoomID: roomID.String(),
		})

		assert.ErrorIs(t, err, itemerrors.ErrItemNotActive)
		assert.False(t, created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("deleted item reads as not found", func(t *testing.T) {
		deps := setupIssuanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deleted := activeItem(itemID)
		deleted.Status = item.StatusDeleted
		deps.items.findByIDFn = func(ctx context.Context, id string) (*item.Item, error) {
			return deleted, nil
		}

		_, err := deps.service.Create(ctx, actorID, issuance.CreateIssuanceRequest{
			ItemID: itemID.String(),
			RoomID: roomID.String(),
		})

		assert.ErrorIs(t, err, itemerrors.ErrItemNotFound)
	})
}

func TestIssuanceService_ChangeStatus(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	issuanceID := uuid.New()
	itemID := uuid.New()
	roomID := uuid.New()
	newRoomID := uuid.New()

	openIssuance := func() *issuance.Issuance {
		return &issuance.Issuance{
			ID:     issuanceID,
			ItemID: itemID,
			RoomID: roomID,
			Status: issuance.StatusActive,
		}
	}

	t.Run("surrender releases the item", func(t *testing.T) {
		deps := setupIssuanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*issuance.Issuance, error) {
			return openIssuance(), nil
		}

		var updatedStatus, itemStatus string
		deps.repo.updateFn = func(ctx context.Context, is *issuance.Issuance) error {
			updatedStatus = is.Status
			assert.NotNil(t, is.UpdatedBy)
			return nil
		}
		deps.items.updateStatusFn = func(ctx context.Context, id, status string) error {
			assert.Equal(t, itemID.String(), id)
			itemStatus = status
			return nil
		}

		resp, err := deps.service.ChangeStatus(ctx, actorID, issuanceID.String(), issuance.ChangeStatusRequest{
			Status: issuance.StatusSurrendered,
		})

		assert.NoError(t, err)
		assert.Equal(t, issuance.StatusSurrendered, resp.Status)
		assert.Equal(t, issuance.StatusSurrendered, updatedStatus)
		assert.Equal(t, item.StatusActive, itemStatus)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("transfer opens a successor and keeps the item assigned", func(t *testing.T) {
		deps := setupIssuanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*issuance.Issuance, error) {
			return openIssuance(), nil
		}
		deps.areas.findByIDFn = func(ctx context.Context, id string) (*area.Area, error) {
			assert.Equal(t, newRoomID.String(), id)
			return activeArea(newRoomID), nil
		}

		var successor *issuance.Issuance
		deps.repo.createFn = func(ctx context.Context, is *issuance.Issuance) error {
			successor = is
			return nil
		}

		itemTouched := false
		deps.items.updateStatusFn = func(ctx context.Context, id, status string) error {
			itemTouched = true
			return nil
		}

		resp, err := deps.service.ChangeStatus(ctx, actorID, issuanceID.String(), issuance.ChangeStatusRequest{
			Status: issuance.StatusTransferred,
			RoomID: newRoomID.String(),
		})

		assert.NoError(t, err)
		assert.Equal(t, issuance.StatusTransferred, resp.Status)
		assert.False(t, itemTouched)
		if assert.NotNil(t, successor) {
			assert.Equal(t, issuance.StatusActive, successor.Status)
			assert.Equal(t, itemID, successor.ItemID)
			assert.Equal(t, newRoomID, successor.RoomID)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("transfer without destination room fails", func(t *testing.T) {
		deps := setupIssuanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*issuance.Issuance, error) {
			return openIssuance(), nil
		}

		_, err := deps.service.ChangeStatus(ctx, actorID, issuanceID.String(), issuance.ChangeStatusRequest{
			Status: issuance.StatusTransferred,
		})

		assert.ErrorIs(t, err, issuanceerrors.ErrTransferRoomRequired)
	})

	t.Run("closed issuance cannot transition again", func(t *testing.T) {
		deps := setupIssuanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		closed := openIssuance()
		closed.Status = issuance.StatusSurrendered
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*issuance.Issuance, error) {
			return closed, nil
		}

		_, err := deps.service.ChangeStatus(ctx, actorID, issuanceID.String(), issuance.ChangeStatusRequest{
			Status: issuance.StatusSurrendered,
		})

		assert.ErrorIs(t, err, issuanceerrors.ErrIssuanceNotActive)
	})
}

func TestIssuanceService_Delete(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	issuanceID := uuid.New()
	itemID := uuid.New()

	t.Run("delete releases the item and stores the reason", func(t *testing.T) {
		deps := setupIssuanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*issuance.Issuance, error) {
			return &issuance.Issuance{
				ID:     issuanceID,
				ItemID: itemID,
				Status: issuance.StatusActive,
			}, nil
		}

		var deleted *issuance.Issuance
		deps.repo.updateFn = func(ctx context.Context, is *issuance.Issuance) error {
			deleted = is
			return nil
		}

		var itemStatus string
		deps.items.updateStatusFn = func(ctx context.Context, id, status string) error {
			itemStatus = status
			return nil
		}

		err := deps.service.Delete(ctx, actorID, issuanceID.String(), "wrong room")

		assert.NoError(t, err)
		assert.Equal(t, item.StatusActive, itemStatus)
		if assert.NotNil(t, deleted) {
			assert.Equal(t, issuance.StatusDeleted, deleted.Status)
			if assert.NotNil(t, deleted.DeletedReason) {
				assert.Equal(t, "wrong room", *deleted.DeletedReason)
			}
			assert.NotNil(t, deleted.DeletedAt)
			assert.NotNil(t, deleted.DeletedBy)
		}
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("missing issuance", func(t *testing.T) {
		deps := setupIssuanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		err := deps.service.Delete(ctx, actorID, uuid.New().String(), "cleanup")

		assert.ErrorIs(t, err, issuanceerrors.ErrIssuanceNotFound)
	})
}

func TestIssuanceService_AssignmentLifecycle(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	itemID := uuid.New()
	roomID := uuid.New()

	deps := setupIssuanceServiceTest(t)
	defer deps.db.Close()

	// issue, rejected double issue, surrender, rejected double surrender
	expectTx(t, deps.sqlMock, true)
	expectTx(t, deps.sqlMock, false)
	expectTx(t, deps.sqlMock, true)
	expectTx(t, deps.sqlMock, false)

	current := activeItem(itemID)
	deps.items.findByIDFn = func(ctx context.Context, id string) (*item.Item, error) {
		return current, nil
	}
	deps.items.updateStatusFn = func(ctx context.Context, id, status string) error {
		assert.Equal(t, itemID.String(), id)
		current.Status = status
		return nil
	}
	deps.areas.findByIDFn = func(ctx context.Context, id string) (*area.Area, error) {
		return activeArea(roomID), nil
	}

	store := map[string]*issuance.Issuance{}
	deps.repo.createFn = func(ctx context.Context, is *issuance.Issuance) error {
		copied := *is
		store[is.ID.String()] = &copied
		return nil
	}
	deps.repo.findByIDFn = func(ctx context.Context, id string) (*issuance.Issuance, error) {
		is, ok := store[id]
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
		copied := *is
		return &copied, nil
	}
	deps.repo.updateFn = func(ctx context.Context, is *issuance.Issuance) error {
		copied := *is
		store[is.ID.String()] = &copied
		return nil
	}

	created, err := deps.service.Create(ctx, actorID, issuance.CreateIssuanceRequest{
		ItemID: itemID.String(),
		RoomID: roomID.String(),
	})
	assert.NoError(t, err)
	assert.Equal(t, issuance.StatusActive, created.Status)
	assert.Equal(t, item.StatusAssigned, current.Status)

	_, err = deps.service.Create(ctx, actorID, issuance.CreateIssuanceRequest{
		ItemID: itemID.String(),
		RoomID: roomID.String(),
	})
	assert.ErrorIs(t, err, itemerrors.ErrItemNotActive)
	assert.Equal(t, item.StatusAssigned, current.Status)

	surrendered, err := deps.service.ChangeStatus(ctx, actorID, created.ID, issuance.ChangeStatusRequest{
		Status: issuance.StatusSurrendered,
	})
	assert.NoError(t, err)
	assert.Equal(t, issuance.StatusSurrendered, surrendered.Status)
	assert.Equal(t, item.StatusActive, current.Status)
	closed, ok := store[created.ID]
	if assert.True(t, ok) {
		assert.Equal(t, issuance.StatusSurrendered, closed.Status)
	}

	_, err = deps.service.ChangeStatus(ctx, actorID, created.ID, issuance.ChangeStatusRequest{
		Status: issuance.StatusSurrendered,
	})
	assert.ErrorIs(t, err, issuanceerrors.ErrIssuanceNotActive)
	assert.Equal(t, item.StatusActive, current.Status)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
