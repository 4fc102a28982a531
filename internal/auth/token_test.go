package auth

import (
	"testing"

	"github.com/pragyanai/demotrack/internal/config"
	"github.com/pragyanai/demotrack/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(ttlMinutes int) *TokenIssuer {
	return NewTokenIssuer(&config.AuthConfig{
		JWTSecret:       "test-secret",
		TokenTTLMinutes: ttlMinutes,
	})
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := newTestIssuer(60)

	user := &UserContext{
		UserName: "asha.k",
		FullName: "Asha Kumari",
		College:  "PES University",
		Branch:   "CSE",
		Role:     domain.RoleLead,
	}

	token, err := issuer.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := issuer.Validate(token)
	require.NoError(t, err)

	assert.Equal(t, user.UserName, got.UserName)
	assert.Equal(t, user.FullName, got.FullName)
	assert.Equal(t, user.College, got.College)
	assert.Equal(t, user.Branch, got.Branch)
	assert.Equal(t, domain.RoleLead, got.Role)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer := newTestIssuer(-1)

	token, err := issuer.Issue(&UserContext{UserName: "asha.k", Role: domain.RoleStudent})
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	issuer := newTestIssuer(60)
	other := NewTokenIssuer(&config.AuthConfig{JWTSecret: "other-secret", TokenTTLMinutes: 60})

	token, err := issuer.Issue(&UserContext{UserName: "asha.k", Role: domain.RoleStudent})
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenIssuer_UnknownRoleRejected(t *testing.T) {
	issuer := newTestIssuer(60)

	token, err := issuer.Issue(&UserContext{UserName: "asha.k", Role: domain.Role("Superuser")})
	require.NoError(t, err)

	_, err = issuer.Validate(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenIssuer_Garbage(t *testing.T) {
	issuer := newTestIssuer(60)

	_, err := issuer.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
