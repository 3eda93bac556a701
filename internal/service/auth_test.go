package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskbloc/taskbloc-go/internal/crypto"
	"github.com/taskbloc/taskbloc-go/internal/repository"
)

func setupDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := repository.NewDB("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestAuthService(t *testing.T, name string, allowLegacy bool) (*AuthService, *sql.DB) {
	t.Helper()
	db := setupDB(t, name)
	svc := NewAuthService(repository.NewUserRepository(db), "test-secret", time.Hour, allowLegacy)
	return svc, db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService(t, "auth1", false)
	ctx := context.Background()

	session, err := svc.Register(ctx, " A@B.com ", "abc12345", "Ana")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", session.Email)
	require.Equal(t, "Ana", session.Name)
	require.NotEmpty(t, session.Token)

	claims, err := crypto.ValidateToken(session.Token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", claims.Email)

	session, err = svc.Login(ctx, "a@b.com", "abc12345")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", session.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t, "auth2", false)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "abc12345", "Ana")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "a@b.com", "xyz98765", "Otro")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService(t, "auth3", false)
	ctx := context.Background()

	_, err := svc.Register(ctx, "not-an-email", "abc12345", "")
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(ctx, "", "abc12345", "")
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(ctx, "a@b.com", "short1", "")
	require.ErrorIs(t, err, ErrWeakPassword)

	_, err = svc.Register(ctx, "a@b.com", "abcdefgh", "")
	require.ErrorIs(t, err, ErrWeakPassword)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t, "auth4", false)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "abc12345", "Ana")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@b.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestAuthService(t, "auth5", false)

	_, err := svc.Login(context.Background(), "nobody@b.com", "abc12345")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginLegacyPlaintext(t *testing.T) {
	ctx := context.Background()

	// A pre-hash row stores the password itself.
	insertLegacyRow := func(t *testing.T, db *sql.DB) {
		_, err := db.Exec(
			`INSERT INTO usuarios (correo, contrasena, nombre) VALUES (?, ?, ?)`,
			"legacy@b.com", "oldpass99", "Legacy",
		)
		require.NoError(t, err)
	}

	t.Run("flag off rejects", func(t *testing.T) {
		svc, db := newTestAuthService(t, "auth6a", false)
		insertLegacyRow(t, db)

		_, err := svc.Login(ctx, "legacy@b.com", "oldpass99")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("flag on accepts exact match", func(t *testing.T) {
		svc, db := newTestAuthService(t, "auth6b", true)
		insertLegacyRow(t, db)

		session, err := svc.Login(ctx, "legacy@b.com", "oldpass99")
		require.NoError(t, err)
		require.Equal(t, "legacy@b.com", session.Email)

		_, err = svc.Login(ctx, "legacy@b.com", "different")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLoginThrottled(t *testing.T) {
	svc, _ := newTestAuthService(t, "auth7", false)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "abc12345", "Ana")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := svc.Login(ctx, "a@b.com", "wrong")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err = svc.Login(ctx, "a@b.com", "wrong")
	require.ErrorIs(t, err, ErrTooManyAttempts)

	// A different account is unaffected.
	_, err = svc.Login(ctx, "other@b.com", "whatever1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifySession(t *testing.T) {
	svc, _ := newTestAuthService(t, "auth9", false)
	ctx := context.Background()

	session, err := svc.Register(ctx, "a@b.com", "abc12345", "Ana")
	require.NoError(t, err)

	email, err := svc.VerifySession(session.Token)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", email)

	_, err = svc.VerifySession("not-a-token")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// A token minted under a different secret must not verify.
	forged, err := crypto.GenerateToken("a@b.com", "other-secret", time.Hour)
	require.NoError(t, err)
	_, err = svc.VerifySession(forged)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	svc, _ := newTestAuthService(t, "auth8", false)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@b.com", "abc12345", "Ana")
	require.NoError(t, err)

	user, err := svc.Profile(ctx, "A@B.COM")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", user.Email)
	require.Equal(t, "Ana", user.Name)
	require.Empty(t, user.Credential)
}
