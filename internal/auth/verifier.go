package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"andaman_market/internal/domain"
)

// Claims is the accepted token payload. Role travels as a custom claim next
// to the registered set.
type Claims struct {
	UserID int64  `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Verifier validates HS256 bearer tokens signed with the deployment's
// shared secret. Validation is pure: no I/O, no side effects.
type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// Verify checks signature, expiry and issuer, and maps the claims to a
// minimal Identity. Every failure collapses into ErrUnauthenticated so the
// response cannot reveal whether a credential was missing, malformed or
// merely expired.
func (v *Verifier) Verify(token string) (domain.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" || len(v.secret) == 0 {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	if v.issuer != "" && claims.Issuer != v.issuer {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	if claims.UserID <= 0 {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	role := domain.Role(claims.Role)
	switch role {
	case domain.RoleGuest, domain.RoleCustomer, domain.RoleVendor, domain.RoleAdmin:
	default:
		role = domain.RoleGuest
	}
	return domain.Identity{UserID: claims.UserID, Role: role}, nil
}

// Mint signs a token for the given identity. Used by the auth service at
// login time and by tests; the API server itself only verifies.
func (v *Verifier) Mint(id domain.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: id.UserID,
		Role:   string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}
