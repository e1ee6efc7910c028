package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiresAt reports the expiry of the current access token, read from
// its registered claims without signature verification — the client only
// schedules refreshes with it, the server remains the authority. Returns
// false when there is no token or it carries no parsable expiry.
func (m *SessionManager) TokenExpiresAt() (time.Time, bool) {
	token := m.currentToken()
	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// NeedsRefresh reports whether the current token expires within leeway.
// Tokens without a known expiry never report true; they stay valid until the
// backend says otherwise.
func (m *SessionManager) NeedsRefresh(leeway time.Duration) bool {
	expiresAt, ok := m.TokenExpiresAt()
	if !ok {
		return false
	}
	return time.Until(expiresAt) <= leeway
}
