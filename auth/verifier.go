// Package auth verifies bearer tokens issued by an external identity
// provider and hashes user passwords.
package auth

import (
	"context"
	"errors"
	"strings"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Identity is the verified claim set attached to a gated request.
type Identity struct {
	UID    string
	Email  string
	Claims map[string]any
}

type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
