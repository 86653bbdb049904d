// Package auth contains domain-level types for authentication and session tokens.
// It is pure and free of framework/adapter concerns.
package auth

// Profile represents the identity returned by the external identity provider.
// Adapters map provider-specific response shapes into this struct.
type Profile struct {
	// ID is the provider's stable, unique user identifier.
	ID string `json:"id"`
	// Username is the provider display name; refreshed on every login.
	Username string `json:"username"`
	// Avatar is the provider avatar reference; refreshed on every login.
	Avatar string `json:"avatar"`
}

// Claims is the session token claim set. The token payload carries exactly
// these fields; the token is stateless and verified by signature alone.
type Claims struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// ClaimsFromProfile builds the session claim set for a freshly authenticated profile.
func ClaimsFromProfile(p Profile) Claims {
	return Claims{
		ID:       p.ID,
		Username: p.Username,
		Avatar:   p.Avatar,
	}
}
