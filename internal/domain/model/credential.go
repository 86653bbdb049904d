package model

import (
	"strings"
	"time"

	apperrors "github.com/lockboxhq/vault-api/internal/errors"
)

// Credential is a stored vault entry owned by an account. Password material
// is stored as provided; field-level encryption is a collaborator concern.
type Credential struct {
	ID        string    `json:"id"         db:"id"`
	AccountID string    `json:"-"          db:"account_id"`
	Name      string    `json:"name"       db:"name"`
	SiteURL   string    `json:"siteUrl"    db:"site_url"`
	Username  string    `json:"username"   db:"username"`
	Password  string    `json:"password"   db:"password"`
	Notes     string    `json:"notes"      db:"notes"`
	CreatedAt time.Time `json:"createdAt"  db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt"  db:"updated_at"`
}

// CreateCredentialRequest carries input for creating a vault entry.
type CreateCredentialRequest struct {
	Name     string `json:"name"`
	SiteURL  string `json:"siteUrl"`
	Username string `json:"username"`
	Password string `json:"password"`
	Notes    string `json:"notes"`
}

// Validate checks required fields on a create request.
func (r *CreateCredentialRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperrors.ValidationField("name", "name is required")
	}
	if r.Password == "" {
		return apperrors.ValidationField("password", "password is required")
	}
	return nil
}

// UpdateCredentialRequest carries partial updates for a vault entry.
// Nil fields are left unchanged.
type UpdateCredentialRequest struct {
	Name     *string `json:"name"`
	SiteURL  *string `json:"siteUrl"`
	Username *string `json:"username"`
	Password *string `json:"password"`
	Notes    *string `json:"notes"`
}

// Validate checks that provided fields are acceptable and that the request
// changes at least one field.
func (r *UpdateCredentialRequest) Validate() error {
	if r.Name == nil && r.SiteURL == nil && r.Username == nil && r.Password == nil && r.Notes == nil {
		return apperrors.Validation("no fields to update")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return apperrors.ValidationField("name", "name cannot be empty")
	}
	if r.Password != nil && *r.Password == "" {
		return apperrors.ValidationField("password", "password cannot be empty")
	}
	return nil
}
