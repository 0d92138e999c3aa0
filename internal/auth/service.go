package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/daybook/internal/constants"
	apperrors "github.com/julianstephens/daybook/internal/errors"
	"github.com/julianstephens/daybook/internal/logger"
	"github.com/julianstephens/daybook/internal/models"
	"github.com/julianstephens/daybook/internal/validation"
)

// UserStore is the part of the row store the identity service needs
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUser(ctx context.Context, id string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	UpdatePasswordHash(ctx context.Context, userID, hash string, at time.Time) error
	SaveResetToken(ctx context.Context, token models.ResetToken) error
	ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time) (models.ResetToken, error)
}

// Session is a signed-in user and their token
type Session struct {
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Service handles registration, sign-in and password resets
type Service struct {
	store  UserStore
	tokens *Tokens
	Now    func() time.Time
}

func NewService(store UserStore, tokens *Tokens) *Service {
	return &Service{store: store, tokens: tokens, Now: time.Now}
}

var errBadCredentials = apperrors.Unauthorized("invalid email or password")

// Register creates an account and signs it in
func (s *Service) Register(ctx context.Context, email, password string) (Session, error) {
	email, err := validation.Email(email)
	if err != nil {
		return Session{}, err
	}
	if err := validation.Password(password); err != nil {
		return Session{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Now().UTC()
	user := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return Session{}, err
	}
	logger.Info("User registered", "user_id", user.ID)

	return s.issue(user)
}

// SignIn checks credentials and returns a new session
func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	email, err := validation.Email(email)
	if err != nil {
		return Session{}, errBadCredentials
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return Session{}, errBadCredentials
	}
	if err != nil {
		return Session{}, err
	}

	ok, err := CheckPassword(user.PasswordHash, password)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		logger.Debug("Sign-in rejected", "user_id", user.ID)
		return Session{}, errBadCredentials
	}
	return s.issue(user)
}

// Verify resolves a session token to its user
func (s *Service) Verify(ctx context.Context, token string) (models.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return models.User{}, err
	}
	user, err := s.store.GetUser(ctx, claims.Subject)
	if errors.Is(err, apperrors.ErrNotFound) {
		return models.User{}, apperrors.Unauthorized("invalid session")
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// RequestPasswordReset creates a single-use reset token for email.
// Unknown emails return an empty token and no error so callers cannot
// tell which accounts exist.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email, err := validation.Email(email)
	if err != nil {
		return "", err
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	raw := make([]byte, constants.ResetTokenSize)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)

	err = s.store.SaveResetToken(ctx, models.ResetToken{
		TokenHash: hashToken(token),
		UserID:    user.ID,
		ExpiresAt: s.Now().UTC().Add(constants.ResetTokenTTL),
	})
	if err != nil {
		return "", err
	}
	logger.Info("Password reset requested", "user_id", user.ID)
	return token, nil
}

// ResetPassword consumes a reset token and sets a new password
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	if err := validation.Password(password); err != nil {
		return err
	}

	now := s.Now().UTC()
	reset, err := s.store.ConsumeResetToken(ctx, hashToken(token), now)
	if err != nil {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.store.UpdatePasswordHash(ctx, reset.UserID, hash, now); err != nil {
		return err
	}
	logger.Info("Password reset", "user_id", reset.UserID)
	return nil
}

func (s *Service) issue(user models.User) (Session, error) {
	token, expires, err := s.tokens.Issue(user)
	if err != nil {
		return Session{}, err
	}
	return Session{User: user, Token: token, ExpiresAt: expires}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
