package auth

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v4"
	domainAuth "github.com/phenixmation/payables/internal/domain/auth"
	ierr "github.com/phenixmation/payables/internal/errors"
)

// subjectClaims are tried in order to find who a token belongs to
var subjectClaims = []string{"sub", "user_id", "userId", "email"}

// ReadClaims decodes the claims of a JWT session token without verifying its
// signature. Only the invoice API holds the key, so the result is a hint used
// to drop stale tokens early, never a proof of identity.
func ReadClaims(token string) (*domainAuth.Claims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Session token is not a JWT").
			Mark(ierr.ErrValidation)
	}

	out := &domainAuth.Claims{}
	for _, key := range subjectClaims {
		if v, ok := claims[key].(string); ok && v != "" {
			out.Subject = v
			break
		}
	}
	if exp, ok := numericClaim(claims["exp"]); ok {
		out.ExpiresAt = time.Unix(exp, 0)
	}
	return out, nil
}

// IsExpired reports whether token is a JWT whose exp is past at now.
// Opaque tokens are never considered expired.
func IsExpired(token string, now time.Time) bool {
	claims, err := ReadClaims(token)
	if err != nil {
		return false
	}
	return claims.Expired(now)
}

func numericClaim(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}
