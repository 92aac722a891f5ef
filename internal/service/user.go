package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"secondbrain/internal/domain"
	"secondbrain/internal/storage"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 32
	minPasswordLength = 8
)

// UserService registers accounts and issues session tokens.
type UserService struct {
	store  storage.UserStore
	tokens *TokenManager
	log    logrus.FieldLogger
}

func NewUserService(store storage.UserStore, tokens *TokenManager, logger logrus.FieldLogger) *UserService {
	return &UserService{
		store:  store,
		tokens: tokens,
		log:    logger.WithField("component", "user_service"),
	}
}

func (s *UserService) Register(ctx context.Context, username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: username and password", domain.ErrMissingField)
	}
	if len(username) < minUsernameLength || len(username) > maxUsernameLength {
		return domain.User{}, fmt.Errorf("%w: username must be %d to %d characters", domain.ErrValidation, minUsernameLength, maxUsernameLength)
	}
	if len(password) < minPasswordLength {
		return domain.User{}, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to hash password: %w", err)
	}
	return s.store.CreateUser(ctx, domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
	})
}

// Login returns a session token. Unknown users and wrong passwords are both
// domain.ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.ErrUnauthorized
	}
	if err != nil {
		return "", err
	}
	if u.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		s.log.WithField("username", username).Info("Rejected login")
		return "", domain.ErrUnauthorized
	}
	return s.tokens.Generate(u.ID, u.Username)
}

// Authenticate returns the user a session token was issued to.
func (s *UserService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}
	u, err := s.store.GetUser(ctx, claims.UserID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.User{}, domain.ErrUnauthorized
	}
	return u, err
}

// EnsureTelegramUser returns the account bound to a Telegram user, creating a
// password-less one on first contact.
func (s *UserService) EnsureTelegramUser(ctx context.Context, telegramID int64) (domain.User, error) {
	u, err := s.store.GetUserByTelegramID(ctx, telegramID)
	if err == nil || !errors.Is(err, domain.ErrNotFound) {
		return u, err
	}

	u, err = s.store.CreateUser(ctx, domain.User{
		ID:         uuid.NewString(),
		Username:   "tg_" + strconv.FormatInt(telegramID, 10),
		TelegramID: telegramID,
	})
	if errors.Is(err, domain.ErrUsernameTaken) {
		// Lost a race with another message from the same user.
		return s.store.GetUserByTelegramID(ctx, telegramID)
	}
	return u, err
}
