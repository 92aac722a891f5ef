package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"secondbrain/internal/domain"
)

// userRecord is the stored form of a user. domain.User hides the password
// hash from JSON, so it cannot be persisted directly.
type userRecord struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	TelegramID   int64     `json:"telegramId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toUserRecord(u domain.User) userRecord {
	return userRecord(u)
}

func (rec userRecord) user() domain.User {
	return domain.User(rec)
}

func (r *BadgerRepository) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	now := r.now()
	u.CreatedAt, u.UpdatedAt = now, now

	err := r.update(ctx, func(txn *badger.Txn) error {
		_, err := getString(txn, usernameKey(u.Username))
		if err == nil {
			return domain.ErrUsernameTaken
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		if err := setJSON(txn, userKey(u.ID), toUserRecord(u)); err != nil {
			return err
		}
		if u.TelegramID != 0 {
			if err := setString(txn, telegramKey(u.TelegramID), u.ID); err != nil {
				return err
			}
		}
		return setString(txn, usernameKey(u.Username), u.ID)
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to create user %s: %w", u.Username, err)
	}
	r.log.WithField("username", u.Username).Info("User created")
	return u, nil
}

func (r *BadgerRepository) GetUser(ctx context.Context, id string) (domain.User, error) {
	var rec userRecord
	err := r.view(ctx, func(txn *badger.Txn) error {
		return getJSON(txn, userKey(id), &rec)
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return rec.user(), nil
}

func (r *BadgerRepository) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getUserByIndex(ctx, usernameKey(username))
}

func (r *BadgerRepository) GetUserByTelegramID(ctx context.Context, telegramID int64) (domain.User, error) {
	return r.getUserByIndex(ctx, telegramKey(telegramID))
}

func (r *BadgerRepository) getUserByIndex(ctx context.Context, key []byte) (domain.User, error) {
	var rec userRecord
	err := r.view(ctx, func(txn *badger.Txn) error {
		id, err := getString(txn, key)
		if err != nil {
			return err
		}
		return getJSON(txn, userKey(id), &rec)
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to look up user: %w", err)
	}
	return rec.user(), nil
}
