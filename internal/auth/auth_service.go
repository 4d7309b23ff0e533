package auth

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	autherrors "noassets/internal/auth/errors"
	"noassets/internal/events"
	"noassets/internal/shared/record"
	"noassets/internal/trail"
	"noassets/internal/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, resp AuthResponse, err error)
	RefreshToken(ctx context.Context, refreshToken string) (newAccessToken, newRefreshToken string, resp AuthResponse, err error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
	Register(ctx context.Context, actorID string, req RegisterRequest) (AuthResponse, error)
	Logout(ctx context.Context, userID string)
}

type service struct {
	users    user.Repository
	recorder trail.Recorder
	logger   *zap.Logger
}

func NewService(users user.Repository, recorder trail.Recorder, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	if recorder == nil {
		recorder = trail.NopRecorder{}
	}
	return &service{users: users, recorder: recorder, logger: l}
}

func (s *service) Login(ctx context.Context, email, password string) (string, string, AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}
	if u.Status != record.StatusActive {
		return "", "", AuthResponse{}, autherrors.ErrUserNotActive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidCredentials
	}

	accessToken, err := s.generateToken(u.ID.String(), u.Role, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(u.ID.String(), u.Role, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	s.recorder.Record(ctx, nil, events.ActionLogin, "user", u.ID.String(), map[string]string{"email": u.Email})
	s.logger.Info("login success", zap.String("user_id", u.ID.String()))

	return accessToken, refreshToken, mapToResponse(u), nil
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, string, AuthResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return "", "", AuthResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return "", "", AuthResponse{}, autherrors.ErrInvalidToken
	}

	if _, err := uuid.Parse(userIDStr); err != nil {
		return "", "", AuthResponse{}, autherrors.ErrInvalidUserID
	}

	u, err := s.users.FindByID(ctx, userIDStr)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrUserNotFound
	}
	if u.Status != record.StatusActive {
		return "", "", AuthResponse{}, autherrors.ErrUserNotActive
	}

	newAccessToken, err := s.generateToken(u.ID.String(), u.Role, time.Minute*15)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	newRefreshToken, err := s.generateToken(u.ID.String(), u.Role, time.Hour*24*7)
	if err != nil {
		return "", "", AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return newAccessToken, newRefreshToken, mapToResponse(u), nil
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := mapToResponse(u)
	return &resp, nil
}

func (s *service) Register(ctx context.Context, actorID string, req RegisterRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = user.RoleUser
	}

	u := &user.User{
		ID:        uuid.New(),
		Email:     req.Email,
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Password:  string(hashed),
		Role:      role,
		Status:    record.StatusActive,
	}
	if actorUUID, err := uuid.Parse(actorID); err == nil {
		u.CreatedBy = &actorUUID
	}

	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateEmail(err) {
			return AuthResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		return AuthResponse{}, err
	}

	s.recorder.Record(ctx, nil, events.ActionCreate, "user", u.ID.String(), map[string]string{"email": u.Email})
	s.logger.Info("register success", zap.String("user_id", u.ID.String()))

	return mapToResponse(u), nil
}

func (s *service) Logout(ctx context.Context, userID string) {
	s.recorder.Record(ctx, nil, events.ActionLogout, "user", userID, nil)
	s.logger.Info("logout", zap.String("user_id", userID))
}

func isDuplicateEmail(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == "uq_user_email"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key value") && strings.Contains(msg, "uq_user_email")
}

// reusable token generator
func (s *service) generateToken(userID, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToResponse(u *user.User) AuthResponse {
	return AuthResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Role:      u.Role,
	}
}
