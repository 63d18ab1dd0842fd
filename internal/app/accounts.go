package app

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"boutique_hotel/internal/domain"
)

const minPasswordLen = 6

type AccountService struct {
	store         domain.AccountRepository // nil when persistence is not configured
	hasher        domain.PasswordHasher
	sessions      domain.SessionIssuer
	selfPromotion bool
}

func NewAccountService(store domain.AccountRepository, h domain.PasswordHasher, s domain.SessionIssuer, allowSelfPromotion bool) *AccountService {
	return &AccountService{store: store, hasher: h, sessions: s, selfPromotion: allowSelfPromotion}
}

func (s *AccountService) ready() error {
	if s.store == nil {
		return domain.ErrUnavailable
	}
	return nil
}

func normalizeEmail(e string) string { return strings.ToLower(strings.TrimSpace(e)) }

// Signup validates input before touching the store, so a missing database
// still yields 400 for bad input.
func (s *AccountService) Signup(ctx context.Context, name, email, password string) (domain.Account, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return domain.Account{}, domain.Invalid("All fields are required")
	}
	if len(password) < minPasswordLen {
		return domain.Account{}, domain.Invalid("Password must be at least 6 characters")
	}
	if err := s.ready(); err != nil {
		return domain.Account{}, err
	}

	if _, err := s.store.AccountByEmail(ctx, email); err == nil {
		return domain.Account{}, domain.Conflict("Email already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return domain.Account{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.Account{}, err
	}
	a, err := s.store.CreateAccount(ctx, email, hash, name)
	if errors.Is(err, domain.ErrConflict) {
		// lost a race with a concurrent signup
		return domain.Account{}, domain.Conflict("Email already registered")
	}
	return a, err
}

// Login returns a signed session token. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, domain.Account, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", domain.Account{}, domain.Invalid("Email and password are required")
	}
	if err := s.ready(); err != nil {
		return "", domain.Account{}, err
	}
	a, err := s.store.AccountByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return "", domain.Account{}, domain.ErrUnauthorized
	}
	if err != nil {
		return "", domain.Account{}, err
	}
	ok, err := s.hasher.Verify(password, a.PasswordHash)
	if err != nil {
		log.Warn().Err(err).Str("account", a.ID).Msg("stored password hash unreadable")
		return "", domain.Account{}, domain.ErrUnauthorized
	}
	if !ok {
		return "", domain.Account{}, domain.ErrUnauthorized
	}
	tok, err := s.sessions.Issue(a.ID, a.Email)
	if err != nil {
		return "", domain.Account{}, err
	}
	return tok, a, nil
}

// Me loads the account behind a session subject. A subject that no longer
// resolves counts as no session.
func (s *AccountService) Me(ctx context.Context, accountID string) (domain.Account, error) {
	if accountID == "" {
		return domain.Account{}, domain.ErrUnauthorized
	}
	if err := s.ready(); err != nil {
		return domain.Account{}, err
	}
	a, err := s.store.AccountByID(ctx, accountID)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Account{}, domain.ErrUnauthorized
	}
	return a, err
}

// IsAdmin never fails: any problem reads as "not an admin".
func (s *AccountService) IsAdmin(ctx context.Context, accountID string) bool {
	if accountID == "" || s.store == nil {
		return false
	}
	a, err := s.store.AccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			log.Warn().Err(err).Msg("admin check failed")
		}
		return false
	}
	return a.IsAdmin
}

// ResolveAdmin turns a session subject into the admin capability:
// ErrUnauthorized without a session, ErrForbidden for non-admins.
func (s *AccountService) ResolveAdmin(ctx context.Context, accountID string) (domain.Admin, error) {
	a, err := s.Me(ctx, accountID)
	if err != nil {
		return domain.Admin{}, err
	}
	if !a.IsAdmin {
		return domain.Admin{}, domain.ErrForbidden
	}
	return domain.Admin{ID: a.ID, Name: a.Name, Email: a.Email}, nil
}

// PromoteSelf grants the admin flag to the caller. Disabled unless
// ALLOW_SELF_PROMOTION is set.
func (s *AccountService) PromoteSelf(ctx context.Context, accountID string) error {
	if !s.selfPromotion {
		return domain.ErrDisabled
	}
	a, err := s.Me(ctx, accountID)
	if err != nil {
		return err
	}
	log.Warn().Str("account", a.ID).Str("email", a.Email).Msg("self-promotion to admin")
	return s.store.SetAdmin(ctx, a.ID, true)
}

// SetAdminByEmail is the operator path (CLI).
func (s *AccountService) SetAdminByEmail(ctx context.Context, email string, admin bool) (domain.Account, error) {
	if err := s.ready(); err != nil {
		return domain.Account{}, err
	}
	a, err := s.store.AccountByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return domain.Account{}, err
	}
	if err := s.store.SetAdmin(ctx, a.ID, admin); err != nil {
		return domain.Account{}, err
	}
	a.IsAdmin = admin
	return a, nil
}

func (s *AccountService) ListAdmins(ctx context.Context) ([]domain.Person, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.store.ListAdmins(ctx)
}
