// Package redis provides Redis-based adapters for the vault API.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/lockboxhq/vault-api/internal/domain/auth"
	"github.com/lockboxhq/vault-api/internal/domain/model"
	apperrors "github.com/lockboxhq/vault-api/internal/errors"
	"github.com/redis/go-redis/v9"
)

// AccountStore persists account records in Redis, keyed by the external
// identity id. The store's value is the login merge policy; Redis is only the
// key-value collaborator underneath. Concurrent upserts for the same id are
// last-write-wins; there is no compare-and-set guard.
type AccountStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewAccountStore creates an account store with the default key prefix.
func NewAccountStore(client redis.UniversalClient) *AccountStore {
	return &AccountStore{
		client: client,
		prefix: "account:",
		now:    time.Now,
	}
}

// NewAccountStoreWithPrefix creates an account store with a custom key prefix.
func NewAccountStoreWithPrefix(client redis.UniversalClient, prefix string) *AccountStore {
	return &AccountStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// FindByID returns the account for the given identity id.
func (s *AccountStore) FindByID(ctx context.Context, id string) (model.Account, error) {
	if id == "" {
		return model.Account{}, apperrors.NotFound("account not found")
	}

	data, err := s.client.Get(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Account{}, apperrors.NotFoundf("account %s not found", id)
		}
		return model.Account{}, fmt.Errorf("redis get: %w", err)
	}

	var acct model.Account
	if unmarshalErr := json.Unmarshal([]byte(data), &acct); unmarshalErr != nil {
		return model.Account{}, fmt.Errorf("unmarshal account: %w", unmarshalErr)
	}
	return acct, nil
}

// Upsert inserts a default-initialized account for an unseen identity id, or
// refreshes only username/avatar on an existing record while carrying forward
// createdAt and the security-sensitive fields.
func (s *AccountStore) Upsert(ctx context.Context, profile domainauth.Profile) (model.Account, error) {
	if profile.ID == "" {
		return model.Account{}, apperrors.Validation("profile id is required")
	}

	var existing *model.Account
	current, err := s.FindByID(ctx, profile.ID)
	switch {
	case err == nil:
		existing = &current
	case apperrors.IsNotFound(err):
		// first login for this id
	default:
		return model.Account{}, err
	}

	merged := model.AccountFromLogin(existing, profile, s.now())
	if saveErr := s.save(ctx, merged); saveErr != nil {
		return model.Account{}, saveErr
	}
	return merged, nil
}

// SetMasterPassword updates the account's master password.
func (s *AccountStore) SetMasterPassword(ctx context.Context, id, masterPassword string) error {
	acct, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	acct.MasterPassword = masterPassword
	return s.save(ctx, acct)
}

// SetTwoFactor updates the account's two-factor settings.
func (s *AccountStore) SetTwoFactor(ctx context.Context, id string, settings model.TwoFactorSettings) error {
	acct, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	acct.TwoFactorEnabled = settings.Enabled
	acct.TwoFactorSecret = settings.Secret
	return s.save(ctx, acct)
}

func (s *AccountStore) save(ctx context.Context, acct model.Account) error {
	data, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}
	// Accounts are durable; no TTL.
	if setErr := s.client.Set(ctx, s.prefix+acct.ID, data, 0).Err(); setErr != nil {
		return fmt.Errorf("redis set: %w", setErr)
	}
	return nil
}
