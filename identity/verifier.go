// Package identity verifies tokens minted by the external identity provider.
// Credential handling (passwords, passkeys, refresh) stays entirely with the
// provider; this side only checks the signature and issuer and extracts the
// subject.
package identity

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid identity token")

type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{secret: []byte(secret), issuer: issuer}
}

// Identity is what the provider asserts about the caller.
type Identity struct {
	UID      string
	Username string
}

func (v *Verifier) Verify(tokenStr string) (*Identity, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	name, _ := claims["email"].(string)
	if name == "" {
		name, _ = claims["name"].(string)
	}
	if name == "" {
		name = sub
	}
	return &Identity{UID: sub, Username: name}, nil
}
