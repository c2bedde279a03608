// Package auth issues and verifies the two token kinds the API uses:
// session tokens carrying {profile id, username, roles} and short-lived
// registration-verification tokens carrying only the profile id.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MuzaffarOrtiqov/vybe-api/internal/models"
)

// ErrInvalidToken covers signature, expiry and claim failures alike so the
// caller cannot tell which check rejected the token.
var ErrInvalidToken = errors.New("invalid or expired token")

const (
	purposeSession = "session"
	purposeRegVer  = "reg-ver"
)

type Claims struct {
	jwt.RegisteredClaims
	ProfileID string        `json:"pid"`
	Username  string        `json:"username,omitempty"`
	Roles     []models.Role `json:"roles,omitempty"`
	Purpose   string        `json:"purpose"`
}

type Manager struct {
	secret     []byte
	sessionTTL time.Duration
	regVerTTL  time.Duration
}

func NewManager(secret string, sessionTTL, regVerTTL time.Duration) *Manager {
	return &Manager{secret: []byte(secret), sessionTTL: sessionTTL, regVerTTL: regVerTTL}
}

// IssueSession mints the token embedded in every login response.
func (m *Manager) IssueSession(profileID, username string, roles []models.Role) (string, error) {
	return m.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		ProfileID: profileID,
		Username:  username,
		Roles:     roles,
		Purpose:   purposeSession,
	})
}

// IssueRegistrationVerification mints the token sent in the verification link.
func (m *Manager) IssueRegistrationVerification(profileID string) (string, error) {
	return m.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.regVerTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		ProfileID: profileID,
		Purpose:   purposeRegVer,
	})
}

func (m *Manager) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// VerifySession validates a session token and returns its claims.
func (m *Manager) VerifySession(tokenStr string) (*Claims, error) {
	return m.verify(tokenStr, purposeSession)
}

// VerifyRegistration validates a registration-verification token and returns
// the profile id it was minted for.
func (m *Manager) VerifyRegistration(tokenStr string) (string, error) {
	claims, err := m.verify(tokenStr, purposeRegVer)
	if err != nil {
		return "", err
	}
	return claims.ProfileID, nil
}

func (m *Manager) verify(tokenStr, purpose string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.Purpose != purpose || claims.ProfileID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HasRole reports whether the claim set carries the given role.
func (c *Claims) HasRole(role models.Role) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}
