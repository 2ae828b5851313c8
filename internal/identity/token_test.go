package identity

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/foodshare/backend/internal/domainerr"
)

func TestTokenService_IssueVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	p := Principal{ID: "ngo-1", Name: "Helping Hands", Role: RoleNgo, Email: "hh@example.com", Phone: "555"}

	token, err := svc.Issue(p)
	require.NoError(t, err)

	got, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestTokenService_Verify(t *testing.T) {
	issuedAt := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenService("test-secret", DefaultTokenTTL)
	issuer.now = func() time.Time { return issuedAt }

	valid, err := issuer.Issue(Principal{ID: "donor-1", Role: RoleDonor})
	require.NoError(t, err)

	foreign, err := NewTokenService("other-secret", time.Hour).Issue(Principal{ID: "donor-1", Role: RoleDonor})
	require.NoError(t, err)

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:           "x",
		Role:             "admin",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		at      time.Time
		wantMsg string
	}{
		{name: "within window", token: valid, at: issuedAt.Add(2 * time.Hour)},
		{name: "expired after three hours", token: valid, at: issuedAt.Add(3*time.Hour + time.Second), wantMsg: "token has expired"},
		{name: "wrong key", token: foreign, at: issuedAt, wantMsg: "invalid token"},
		{name: "garbage", token: "not-a-jwt", at: issuedAt, wantMsg: "invalid token"},
		{name: "unknown role", token: badRole, at: issuedAt, wantMsg: "invalid token claims"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verifier := NewTokenService("test-secret", DefaultTokenTTL)
			verifier.now = func() time.Time { return tc.at }

			p, err := verifier.Verify(tc.token)
			if tc.wantMsg == "" {
				require.NoError(t, err)
				assert.Equal(t, "donor-1", p.ID)
				return
			}
			de, ok := domainerr.As(err)
			require.True(t, ok)
			assert.Equal(t, domainerr.CodeUnauthorized, de.Code)
			assert.Equal(t, tc.wantMsg, de.Message)
		})
	}
}

func TestPrincipal_AsRole(t *testing.T) {
	tests := []struct {
		principal Principal
		want      Role
	}{
		{Principal{ID: "1", Role: RoleDonor}, Donor{ID: "1"}},
		{Principal{ID: "2", Name: "Helping Hands", Role: RoleNgo}, Ngo{ID: "2", Name: "Helping Hands"}},
		{Principal{ID: "3", Role: RoleFarmer}, Farmer{ID: "3"}},
	}
	for _, tc := range tests {
		t.Run(tc.principal.Role, func(t *testing.T) {
			got, err := tc.principal.AsRole()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := Principal{Role: "admin"}.AsRole()
	assert.True(t, domainerr.HasCode(err, domainerr.CodeUnauthorized))
}
