package model

import (
	"time"

	domainauth "github.com/lockboxhq/vault-api/internal/domain/auth"
)

// Account is the durable record linking an external identity to vault
// metadata and settings. It is keyed by the identity provider's user id.
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`

	// CreatedAt is set at first login and never overwritten thereafter.
	CreatedAt time.Time `json:"createdAt"`

	// Security-sensitive settings, preserved across logins. Only the
	// settings flow mutates them.
	TwoFactorEnabled bool   `json:"twoFactorEnabled"`
	TwoFactorSecret  string `json:"twoFactorSecret"`
	MasterPassword   string `json:"masterPassword"`
}

// TwoFactorSettings groups the two-factor fields changed by the settings flow.
type TwoFactorSettings struct {
	Enabled bool   `json:"enabled"`
	Secret  string `json:"secret"`
}

// AccountFromLogin applies the login merge policy: a nil existing account
// yields a default-initialized record; otherwise only the display fields are
// refreshed while createdAt and the security-sensitive fields carry forward.
func AccountFromLogin(existing *Account, profile domainauth.Profile, now time.Time) Account {
	acct := Account{
		ID:        profile.ID,
		Username:  profile.Username,
		Avatar:    profile.Avatar,
		CreatedAt: now.UTC(),
	}
	if existing == nil {
		return acct
	}

	if !existing.CreatedAt.IsZero() {
		acct.CreatedAt = existing.CreatedAt
	}
	acct.TwoFactorEnabled = existing.TwoFactorEnabled
	acct.TwoFactorSecret = existing.TwoFactorSecret
	acct.MasterPassword = existing.MasterPassword
	return acct
}
