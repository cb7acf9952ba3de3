package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	userentity "github.com/rentfold/service-core/internal/user/entity"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc, err := NewService(Config{Secret: "test-secret", TTL: time.Hour})
	require.NoError(t, err)

	u := &userentity.User{ID: 7, FullName: "Ayesha Khan", Role: userentity.RoleTenant}
	tok, err := svc.Issue(u)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	sess, err := svc.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, 7, sess.UserID)
	require.Equal(t, userentity.RoleTenant, sess.Role)
}

func TestVerifyGarbage(t *testing.T) {
	svc, err := NewService(Config{Secret: "test-secret", TTL: time.Hour})
	require.NoError(t, err)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(tok)
		require.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	signer, err := NewService(Config{Secret: "secret-one", TTL: time.Hour})
	require.NoError(t, err)
	verifier, err := NewService(Config{Secret: "secret-two", TTL: time.Hour})
	require.NoError(t, err)

	tok, err := signer.Issue(&userentity.User{ID: 3, Role: userentity.RoleAdmin})
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRandomSecretIsPerProcess(t *testing.T) {
	a, err := NewService(Config{})
	require.NoError(t, err)
	b, err := NewService(Config{})
	require.NoError(t, err)

	tok, err := a.Issue(&userentity.User{ID: 1, Role: userentity.RoleAdmin})
	require.NoError(t, err)

	_, err = a.Verify(tok)
	require.NoError(t, err)
	_, err = b.Verify(tok)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNonPositiveTTLFallsBack(t *testing.T) {
	svc, err := NewService(Config{Secret: "test-secret", TTL: -time.Minute})
	require.NoError(t, err)
	// a non-positive TTL falls back to the default, so the token is valid
	tok, err := svc.Issue(&userentity.User{ID: 2, Role: userentity.RoleLandlord})
	require.NoError(t, err)
	_, err = svc.Verify(tok)
	require.NoError(t, err)
}
