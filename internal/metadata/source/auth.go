package source

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// BearerToken is an optional credential some authenticated metadata mirrors
// require (private HTTP index sources, for instance). kopi never validates
// the token's signature; that's the server's job. It only parses the claims
// far enough to warn the user before issuing a request with a token that
// has already expired, rather than surfacing a generic 401 deep in a retry
// loop.
type BearerToken struct {
	Raw string
}

// ExpiresSoon reports whether the token's exp claim is in the past or
// within within, without verifying the token's signature.
func (b BearerToken) ExpiresSoon(within time.Duration) (bool, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	_, _, err := parser.ParseUnverified(b.Raw, claims)
	if err != nil {
		return false, fmt.Errorf("parsing bearer token claims: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false, fmt.Errorf("reading exp claim: %w", err)
	}
	if exp == nil {
		return false, nil
	}
	return time.Until(exp.Time) < within, nil
}
