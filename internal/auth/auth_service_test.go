package auth_test

import (
	"context"
	"testing"

	"noassets/internal/auth"
	autherrors "noassets/internal/auth/errors"
	"noassets/internal/trail"
	"noassets/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	withTxFn      func(tx *gorm.DB) user.Repository
	createFn      func(ctx context.Context, u *user.User) error
	findAllFn     func(ctx context.Context) ([]user.User, error)
	findByIDFn    func(ctx context.Context, id string) (*user.User, error)
	findByEmailFn func(ctx context.Context, email string) (*user.User, error)
	updateFn      func(ctx context.Context, u *user.User) error
}

func (f *fakeUserRepository) WithTx(tx *gorm.DB) user.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

func activeUserWithPassword(t *testing.T, password string) *user.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &user.User{
		ID:        uuid.New(),
		Email:     "admin@noassets.local",
		Password:  string(hashed),
		Firstname: "Ada",
		Lastname:  "Admin",
		Role:      user.RoleAdmin,
		Status:    "ACTIVE",
	}
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("success issues both tokens", func(t *testing.T) {
		u := activeUserWithPassword(t, "hunter22")
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				assert.Equal(t, u.Email, email)
				return u, nil
			},
		}
		svc := auth.NewService(repo, trail.NopRecorder{})

		access, refresh, resp, err := svc.Login(ctx, u.Email, "hunter22")

		assert.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.Equal(t, u.ID.String(), resp.ID)
		assert.Equal(t, user.RoleAdmin, resp.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		u := activeUserWithPassword(t, "hunter22")
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return u, nil
			},
		}
		svc := auth.NewService(repo, trail.NopRecorder{})

		_, _, _, err := svc.Login(ctx, u.Email, "wrong")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := auth.NewService(repo, trail.NopRecorder{})

		_, _, _, err := svc.Login(ctx, "ghost@noassets.local", "hunter22")

		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("deleted user cannot log in", func(t *testing.T) {
		u := activeUserWithPassword(t, "hunter22")
		u.Status = "DELETED"
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return u, nil
			},
		}
		svc := auth.NewService(repo, trail.NopRecorder{})

		_, _, _, err := svc.Login(ctx, u.Email, "hunter22")

		assert.ErrorIs(t, err, autherrors.ErrUserNotActive)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	ctx := context.Background()
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("round trip from login", func(t *testing.T) {
		u := activeUserWithPassword(t, "hunter22")
		repo := &fakeUserRepository{
			findByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
				return u, nil
			},
			findByIDFn: func(ctx context.Context, id string) (*user.User, error) {
				assert.Equal(t, u.ID.String(), id)
				return u, nil
			},
		}
		svc := auth.NewService(repo, trail.NopRecorder{})

		_, refresh, _, err := svc.Login(ctx, u.Email, "hunter22")
		assert.NoError(t, err)

		newAccess, newRefresh, resp, err := svc.RefreshToken(ctx, refresh)

		assert.NoError(t, err)
		assert.NotEmpty(t, newAccess)
		assert.NotEmpty(t, newRefresh)
		assert.Equal(t, u.ID.String(), resp.ID)
	})

	t.Run("garbage token", func(t *testing.T) {
		repo := &fakeUserRepository{}
		svc := auth.NewService(repo, trail.NopRecorder{})

		_, _, _, err := svc.RefreshToken(ctx, "not-a-jwt")

		assert.ErrorIs(t, err, autherrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	t.Run("defaults role to USER and hashes the password", func(t *testing.T) {
		var created *user.User
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, u *user.User) error {
				created = u
				return nil
			},
		}
		svc := auth.NewService(repo, trail.NopRecorder{})

		resp, err := svc.Register(ctx, actorID, auth.RegisterRequest{
			Email:     "new@noassets.local",
			Firstname: "New",
			Lastname:  "User",
			Password:  "secret123",
		})

		assert.NoError(t, err)
		assert.Equal(t, user.RoleUser, resp.Role)
		if assert.NotNil(t, created) {
			assert.NotEqual(t, "secret123", created.Password)
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("secret123")))
			assert.Equal(t, "ACTIVE", created.Status)
			if assert.NotNil(t, created.CreatedBy) {
				assert.Equal(t, uuid.MustParse(actorID), *created.CreatedBy)
			}
		}
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		repo := &fakeUserRepository{
			createFn: func(ctx context.Context, u *user.User) error {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_user_email"}
			},
		}
		svc := auth.NewService(repo, trail.NopRecorder{})

		_, err := svc.Register(ctx, actorID, auth.RegisterRequest{
			Email:     "dup@noassets.local",
			Firstname: "Dup",
			Lastname:  "User",
			Password:  "secret123",
		})

		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})
}
