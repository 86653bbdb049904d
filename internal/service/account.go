package service

import (
	"context"
	"fmt"

	"github.com/lockboxhq/vault-api/internal/domain/model"
	apperrors "github.com/lockboxhq/vault-api/internal/errors"
	"github.com/lockboxhq/vault-api/internal/ports"
)

// AccountService exposes the account settings flow: reading the current
// account and explicitly changing the security-sensitive fields that the
// login upsert never touches.
type AccountService struct {
	accounts ports.AccountStore
}

// NewAccountService constructs a new AccountService.
func NewAccountService(accounts ports.AccountStore) *AccountService {
	return &AccountService{accounts: accounts}
}

// Get returns the account for the given identity id.
func (s *AccountService) Get(ctx context.Context, id string) (model.Account, error) {
	if id == "" {
		return model.Account{}, apperrors.Validation("account id is required")
	}
	acct, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		return model.Account{}, fmt.Errorf("find account: %w", err)
	}
	return acct, nil
}

// SetMasterPassword updates the account's master password.
func (s *AccountService) SetMasterPassword(ctx context.Context, id, masterPassword string) error {
	if id == "" {
		return apperrors.Validation("account id is required")
	}
	if masterPassword == "" {
		return apperrors.ValidationField("masterPassword", "master password is required")
	}
	if err := s.accounts.SetMasterPassword(ctx, id, masterPassword); err != nil {
		return fmt.Errorf("set master password: %w", err)
	}
	return nil
}

// SetTwoFactor updates the account's two-factor settings. Enabling requires
// secret material; disabling clears it.
func (s *AccountService) SetTwoFactor(ctx context.Context, id string, settings model.TwoFactorSettings) error {
	if id == "" {
		return apperrors.Validation("account id is required")
	}
	if settings.Enabled && settings.Secret == "" {
		return apperrors.ValidationField("secret", "two-factor secret is required")
	}
	if !settings.Enabled {
		settings.Secret = ""
	}
	if err := s.accounts.SetTwoFactor(ctx, id, settings); err != nil {
		return fmt.Errorf("set two-factor: %w", err)
	}
	return nil
}
