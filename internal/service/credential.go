package service

import (
	"context"
	"fmt"

	"github.com/lockboxhq/vault-api/internal/domain/model"
	apperrors "github.com/lockboxhq/vault-api/internal/errors"
)

// CredentialRepository is the persistence contract for vault entries.
type CredentialRepository interface {
	Create(ctx context.Context, accountID string, req *model.CreateCredentialRequest) (*model.Credential, error)
	GetByID(ctx context.Context, accountID, id string) (*model.Credential, error)
	ListByAccount(ctx context.Context, accountID string) ([]*model.Credential, error)
	Update(ctx context.Context, accountID, id string, req model.UpdateCredentialRequest) (*model.Credential, error)
	Delete(ctx context.Context, accountID, id string) error
}

// CredentialService provides vault entry operations scoped to the
// authenticated account.
type CredentialService struct {
	repo CredentialRepository
}

// NewCredentialService constructs a new CredentialService.
func NewCredentialService(repo CredentialRepository) *CredentialService {
	return &CredentialService{repo: repo}
}

// Create adds a vault entry for the account.
func (s *CredentialService) Create(
	ctx context.Context,
	accountID string,
	req *model.CreateCredentialRequest,
) (*model.Credential, error) {
	if accountID == "" {
		return nil, apperrors.Validation("account id is required")
	}
	cred, err := s.repo.Create(ctx, accountID, req)
	if err != nil {
		return nil, fmt.Errorf("create credential: %w", err)
	}
	return cred, nil
}

// Get returns a single vault entry owned by the account.
func (s *CredentialService) Get(ctx context.Context, accountID, id string) (*model.Credential, error) {
	if accountID == "" || id == "" {
		return nil, apperrors.Validation("account id and credential id are required")
	}
	cred, err := s.repo.GetByID(ctx, accountID, id)
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}
	return cred, nil
}

// List returns the account's vault entries in insertion order.
func (s *CredentialService) List(ctx context.Context, accountID string) ([]*model.Credential, error) {
	if accountID == "" {
		return nil, apperrors.Validation("account id is required")
	}
	creds, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	return creds, nil
}

// Update applies a partial update to an entry owned by the account.
func (s *CredentialService) Update(
	ctx context.Context,
	accountID string,
	id string,
	req model.UpdateCredentialRequest,
) (*model.Credential, error) {
	if accountID == "" || id == "" {
		return nil, apperrors.Validation("account id and credential id are required")
	}
	cred, err := s.repo.Update(ctx, accountID, id, req)
	if err != nil {
		return nil, fmt.Errorf("update credential: %w", err)
	}
	return cred, nil
}

// Delete removes an entry owned by the account.
func (s *CredentialService) Delete(ctx context.Context, accountID, id string) error {
	if accountID == "" || id == "" {
		return apperrors.Validation("account id and credential id are required")
	}
	if err := s.repo.Delete(ctx, accountID, id); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
