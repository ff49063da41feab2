package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Leganyst/hotel-booking-platform/internal/apperr"
	"github.com/Leganyst/hotel-booking-platform/internal/config"
	"github.com/Leganyst/hotel-booking-platform/internal/model"
	"github.com/Leganyst/hotel-booking-platform/internal/repository"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AccessClaims — полезная нагрузка access-токена.
type AccessClaims struct {
	UserID       uint   `json:"uid"`
	Role         string `json:"role"`
	TokenVersion int    `json:"tv"`
	jwt.RegisteredClaims
}

type refreshClaims struct {
	TokenVersion int `json:"tv"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users  repository.UserRepository
	tokens repository.RefreshTokenRepository
	cfg    config.AuthConfig

	now func() time.Time
}

func NewAuthService(users repository.UserRepository, tokens repository.RefreshTokenRepository, cfg config.AuthConfig) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		cfg:    cfg,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *AuthService) Register(ctx context.Context, email, password, name string) (*model.User, error) {
	if email == "" {
		return nil, apperr.Validationf("email is required")
	}
	if len(password) < 8 {
		return nil, apperr.Validationf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         model.UserRoleGuest,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUnauthorized
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.ErrUnauthorized
	}

	return s.issuePair(ctx, user)
}

// Refresh обменивает refresh-токен на новую пару с ротацией:
// использованный токен отзывается и второй раз не принимается.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	var claims refreshClaims
	_, err := jwt.ParseWithClaims(refreshToken, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.RefreshSecret), nil
	})
	if err != nil {
		return nil, apperr.ErrUnauthorized
	}

	tokenID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, apperr.ErrUnauthorized
	}

	stored, err := s.tokens.GetByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUnauthorized
		}
		return nil, err
	}
	if stored.RevokedAt != nil || stored.TokenHash != hashToken(refreshToken) {
		return nil, apperr.ErrUnauthorized
	}
	if !stored.ExpiresAt.After(s.now()) {
		return nil, apperr.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.ErrUnauthorized
		}
		return nil, err
	}
	if claims.TokenVersion != user.TokenVersion {
		return nil, apperr.ErrUnauthorized
	}

	if err := s.tokens.Revoke(ctx, tokenID, s.now()); err != nil {
		return nil, err
	}
	return s.issuePair(ctx, user)
}

// SetRole назначает пользователю роль (админская операция).
// Версия токенов поднимается, чтобы access-токены со старой ролью
// не пережили смену прав дольше своего TTL.
func (s *AuthService) SetRole(ctx context.Context, userID uint, role string) (*model.User, error) {
	r := model.UserRole(role)
	if !r.Valid() {
		return nil, apperr.Validationf("unknown role %q", role)
	}

	if err := s.users.SetRole(ctx, userID, r); err != nil {
		return nil, err
	}
	if err := s.users.BumpTokenVersion(ctx, userID); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

// PurgeExpired удаляет истёкшие refresh-токены. Вызывается на старте;
// отозванные, но не истёкшие строки остаются до истечения срока.
func (s *AuthService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.tokens.DeleteExpired(ctx, s.now())
}

// Logout отзывает все refresh-токены пользователя и поднимает
// версию токенов, чтобы отклонять уже выданные.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	if err := s.tokens.RevokeAllForUser(ctx, userID, s.now()); err != nil {
		return err
	}
	return s.users.BumpTokenVersion(ctx, userID)
}

// ParseAccess проверяет access-токен и возвращает его claims.
func (s *AuthService) ParseAccess(tokenStr string) (*AccessClaims, error) {
	var claims AccessClaims
	_, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.AccessSecret), nil
	})
	if err != nil {
		return nil, apperr.ErrUnauthorized
	}
	return &claims, nil
}

func (s *AuthService) issuePair(ctx context.Context, user *model.User) (*TokenPair, error) {
	now := s.now()

	access := jwt.NewWithClaims(jwt.SigningMethodHS256, AccessClaims{
		UserID:       user.ID,
		Role:         string(user.Role),
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTTL)),
		},
	})
	accessStr, err := access.SignedString([]byte(s.cfg.AccessSecret))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	tokenID := uuid.New()
	refreshExpiry := now.Add(s.cfg.RefreshTTL)
	refresh := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims{
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID.String(),
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(refreshExpiry),
		},
	})
	refreshStr, err := refresh.SignedString([]byte(s.cfg.RefreshSecret))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	record := &model.RefreshToken{
		ID:        tokenID,
		UserID:    user.ID,
		TokenHash: hashToken(refreshStr),
		ExpiresAt: refreshExpiry,
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessStr, RefreshToken: refreshStr}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
