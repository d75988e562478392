// Package jwttoken signs visitor IDs so cookie values cannot be forged to
// read another visitor's storage.
package jwttoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "leadengine/pkg/domain"
	dErrors "leadengine/pkg/domain-errors"
)

// Claims carries the visitor ID as the subject.
type Claims struct {
	jwt.RegisteredClaims
}

// VisitorTokenService issues and validates visitor tokens.
type VisitorTokenService struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	now        func() time.Time
}

// NewVisitorTokenService creates a service. ttl matches the cookie lifetime.
func NewVisitorTokenService(signingKey, issuer string, ttl time.Duration) *VisitorTokenService {
	return &VisitorTokenService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Encode signs a visitor ID.
func (s *VisitorTokenService) Encode(visitorID id.VisitorID) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   visitorID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(s.signingKey)
}

// Decode validates a token and returns the visitor it was issued to.
func (s *VisitorTokenService) Decode(tokenString string) (id.VisitorID, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return id.VisitorID{}, dErrors.New(dErrors.CodeInvalidInput, "visitor token has expired")
		}
		return id.VisitorID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid visitor token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return id.VisitorID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid visitor token")
	}
	return id.ParseVisitorID(claims.Subject)
}
