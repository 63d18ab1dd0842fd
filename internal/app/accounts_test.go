package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutique_hotel/internal/app"
	"boutique_hotel/internal/domain"
)

func newAccounts(selfPromote bool) (*app.AccountService, *memStore) {
	st := newMemStore()
	return app.NewAccountService(st, plainHasher{}, fakeSessions{}, selfPromote), st
}

func TestSignup_Validation(t *testing.T) {
	s, _ := newAccounts(false)
	ctx := context.Background()

	cases := []struct {
		name, email, pw, msg string
	}{
		{"", "a@example.com", "secret1", "All fields are required"},
		{"Ana", "  ", "secret1", "All fields are required"},
		{"Ana", "a@example.com", "", "All fields are required"},
		{"Ana", "a@example.com", "12345", "Password must be at least 6 characters"},
	}
	for _, c := range cases {
		_, err := s.Signup(ctx, c.name, c.email, c.pw)
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, c.msg, err.Error())
	}
}

func TestSignup_DuplicateEmailAndNormalization(t *testing.T) {
	s, st := newAccounts(false)
	ctx := context.Background()

	a, err := s.Signup(ctx, " Ana ", " Ana@Example.com ", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", a.Email)
	assert.Equal(t, "Ana", a.Name)
	assert.Equal(t, "hashed:secret1", st.accounts[a.ID].PasswordHash)
	assert.False(t, a.IsAdmin)

	_, err = s.Signup(ctx, "Other", "ANA@example.com", "secret2")
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "Email already registered", err.Error())
}

func TestSignup_Unconfigured(t *testing.T) {
	s := app.NewAccountService(nil, plainHasher{}, fakeSessions{}, false)
	ctx := context.Background()

	// bad input still reports 400-class errors
	_, err := s.Signup(ctx, "", "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.Signup(ctx, "Ana", "a@example.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.False(t, s.IsAdmin(ctx, "anyone"))
}

func TestLogin(t *testing.T) {
	s, _ := newAccounts(false)
	ctx := context.Background()
	a, err := s.Signup(ctx, "Ana", "a@example.com", "secret1")
	require.NoError(t, err)

	tok, got, err := s.Login(ctx, "A@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "token-for-"+a.ID, tok)
	assert.Equal(t, a.ID, got.ID)

	_, _, err = s.Login(ctx, "a@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, _, err = s.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, _, err = s.Login(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestResolveAdmin(t *testing.T) {
	s, st := newAccounts(false)
	ctx := context.Background()
	user, _ := s.Signup(ctx, "User", "u@example.com", "secret1")
	boss, _ := s.Signup(ctx, "Boss", "b@example.com", "secret1")
	require.NoError(t, st.SetAdmin(ctx, boss.ID, true))

	_, err := s.ResolveAdmin(ctx, "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = s.ResolveAdmin(ctx, "deleted-account")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = s.ResolveAdmin(ctx, user.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	adm, err := s.ResolveAdmin(ctx, boss.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Admin{ID: boss.ID, Name: "Boss", Email: "b@example.com"}, adm)

	assert.True(t, s.IsAdmin(ctx, boss.ID))
	assert.False(t, s.IsAdmin(ctx, user.ID))
	assert.False(t, s.IsAdmin(ctx, ""))
}

func TestPromoteSelf_Gated(t *testing.T) {
	ctx := context.Background()

	off, _ := newAccounts(false)
	u, _ := off.Signup(ctx, "U", "u@example.com", "secret1")
	assert.ErrorIs(t, off.PromoteSelf(ctx, u.ID), domain.ErrDisabled)
	// the gate answers before any session lookup
	assert.ErrorIs(t, off.PromoteSelf(ctx, ""), domain.ErrDisabled)
	assert.False(t, off.IsAdmin(ctx, u.ID))

	on, _ := newAccounts(true)
	u, _ = on.Signup(ctx, "U", "u@example.com", "secret1")
	assert.ErrorIs(t, on.PromoteSelf(ctx, ""), domain.ErrUnauthorized)
	require.NoError(t, on.PromoteSelf(ctx, u.ID))
	assert.True(t, on.IsAdmin(ctx, u.ID))
}

func TestSetAdminByEmailAndListAdmins(t *testing.T) {
	s, _ := newAccounts(false)
	ctx := context.Background()
	_, _ = s.Signup(ctx, "Zed", "z@example.com", "secret1")
	_, _ = s.Signup(ctx, "Amy", "amy@example.com", "secret1")

	a, err := s.SetAdminByEmail(ctx, "AMY@example.com", true)
	require.NoError(t, err)
	assert.True(t, a.IsAdmin)
	_, err = s.SetAdminByEmail(ctx, "z@example.com", true)
	require.NoError(t, err)

	admins, err := s.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 2)
	assert.Equal(t, "Amy", admins[0].Name)

	_, err = s.SetAdminByEmail(ctx, "z@example.com", false)
	require.NoError(t, err)
	admins, _ = s.ListAdmins(ctx)
	assert.Len(t, admins, 1)

	_, err = s.SetAdminByEmail(ctx, "ghost@example.com", true)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
