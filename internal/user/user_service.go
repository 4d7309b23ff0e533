package user

import (
	"context"
	"errors"
	"time"

	"noassets/internal/events"
	"noassets/internal/shared/record"
	"noassets/internal/trail"
	usererrors "noassets/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateUserRequest) (UserResponse, error)
	ChangePassword(ctx context.Context, actorID, id string, hashedPassword string) error
	Delete(ctx context.Context, actorID, id, reason string) error

	// VerifyActive backs the auth middleware: it resolves a user id to its
	// current role and fails when the account is missing or not ACTIVE.
	VerifyActive(ctx context.Context, userID string) (string, error)
}

type service struct {
	db       *gorm.DB
	repo     Repository
	recorder trail.Recorder
	logger   *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, recorder trail.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	if recorder == nil {
		recorder = trail.NopRecorder{}
	}
	return &service{db: db, repo: repo, recorder: recorder, logger: l}
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all users failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(users), nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.findExisting(ctx, id)
	if err != nil {
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateUserRequest) (UserResponse, error) {
	s.logger.Debug("update user requested",
		zap.String("user_id", id),
		zap.String("actor_id", actorID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	tx := s.db.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		s.logger.Error("update user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := s.findExistingWith(ctx, qtx, id)
	if err != nil {
		return UserResponse{}, err
	}

	u.Email = req.Email
	u.Firstname = req.Firstname
	u.Lastname = req.Lastname
	u.Role = req.Role
	u.Touch(actorUUID)

	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed", zap.Error(err))
		return UserResponse{}, mapRepositoryError(err)
	}

	s.recorder.Record(ctx, tx, events.ActionUpdate, "user", id, req)

	if err := tx.Commit().Error; err != nil {
		s.logger.Error("update user commit failed", zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("update user success", zap.String("user_id", id))
	return mapToResponse(*u), nil
}

func (s *service) ChangePassword(ctx context.Context, actorID, id string, hashedPassword string) error {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	tx := s.db.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := s.findExistingWith(ctx, qtx, id)
	if err != nil {
		return err
	}

	u.Password = hashedPassword
	u.Touch(actorUUID)

	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("change password persist failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.recorder.Record(ctx, tx, events.ActionUpdate, "user", id, map[string]string{"field": "password"})

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.logger.Info("change password success", zap.String("user_id", id))
	return nil
}

func (s *service) Delete(ctx context.Context, actorID, id, reason string) error {
	s.logger.Debug("delete user requested",
		zap.String("user_id", id),
		zap.String("actor_id", actorID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return usererrors.ErrInvalidUserID
	}

	tx := s.db.WithContext(ctx).Begin()
	if err := tx.Error; err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := s.findExistingWith(ctx, qtx, id)
	if err != nil {
		return err
	}

	u.Status = record.StatusDeleted
	u.SoftDelete(actorUUID, reason)

	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("delete user persist failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	s.recorder.Record(ctx, tx, events.ActionDelete, "user", id, map[string]string{"reason": reason})

	if err := tx.Commit().Error; err != nil {
		return err
	}

	s.logger.Info("delete user success", zap.String("user_id", id))
	return nil
}

func (s *service) VerifyActive(ctx context.Context, userID string) (string, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return "", usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", usererrors.ErrUserNotFound
		}
		return "", err
	}
	if u.Status != record.StatusActive {
		return "", usererrors.ErrUserDeleted
	}
	return u.Role, nil
}

func (s *service) findExisting(ctx context.Context, id string) (*User, error) {
	return s.findExistingWith(ctx, s.repo, id)
}

func (s *service) findExistingWith(ctx context.Context, repo Repository, id string) (*User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, usererrors.ErrInvalidUserID
	}
	u, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usererrors.ErrUserNotFound
		}
		return nil, err
	}
	if u.Status == record.StatusDeleted {
		return nil, usererrors.ErrUserNotFound
	}
	return u, nil
}

func mapToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(users []User) []UserResponse {
	res := make([]UserResponse, len(users))
	for i, u := range users {
		res[i] = mapToResponse(u)
	}
	return res
}
