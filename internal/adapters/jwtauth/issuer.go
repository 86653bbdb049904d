// Package jwtauth implements the session token issuer on HS256 JWTs.
// Tokens are stateless; there is no server-side session storage and no
// revocation list. Expiry is optional and disabled when TTL is zero.
package jwtauth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	domainauth "github.com/lockboxhq/vault-api/internal/domain/auth"
)

var (
	// ErrMalformed is returned when the token is structurally invalid.
	ErrMalformed = errors.New("token is malformed")
	// ErrInvalidSignature is returned when the signature does not verify
	// against the server secret (tampered token or secret mismatch).
	ErrInvalidSignature = errors.New("token signature is invalid")
	// ErrExpired is returned when a TTL-bearing token has expired.
	ErrExpired = errors.New("token is expired")
)

// sessionClaims is the wire shape of the token payload: exactly
// {id, username, avatar}, plus exp only when a TTL is configured.
type sessionClaims struct {
	jwt.RegisteredClaims
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// Issuer mints and verifies session tokens with a server-held secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Config controls token issuance.
type Config struct {
	// Secret is the HMAC signing secret. Required.
	Secret []byte
	// TTL bounds token validity. Zero disables the expiry claim entirely;
	// tokens then stay valid until the signing secret rotates.
	TTL time.Duration
}

// NewIssuer constructs an Issuer from Config.
func NewIssuer(cfg Config) (*Issuer, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("jwtauth: signing secret is required")
	}
	return &Issuer{
		secret: cfg.Secret,
		ttl:    cfg.TTL,
		now:    time.Now,
	}, nil
}

// Issue signs the claim set and returns the compact token string.
func (i *Issuer) Issue(claims domainauth.Claims) (string, error) {
	sc := sessionClaims{
		ID:       claims.ID,
		Username: claims.Username,
		Avatar:   claims.Avatar,
	}
	if i.ttl > 0 {
		sc.ExpiresAt = jwt.NewNumericDate(i.now().Add(i.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sc)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify checks the token signature and returns the embedded claims.
// Structural problems map to ErrMalformed; signature mismatch (including a
// token signed with a different method or secret) maps to ErrInvalidSignature.
func (i *Issuer) Verify(tokenString string) (domainauth.Claims, error) {
	var sc sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &sc,
		func(_ *jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return domainauth.Claims{}, classifyParseError(err)
	}
	if !token.Valid {
		return domainauth.Claims{}, ErrInvalidSignature
	}

	return domainauth.Claims{
		ID:       sc.ID,
		Username: sc.Username,
		Avatar:   sc.Avatar,
	}, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return errors.Join(ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return errors.Join(ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return errors.Join(ErrInvalidSignature, err)
	default:
		return errors.Join(ErrInvalidSignature, err)
	}
}
