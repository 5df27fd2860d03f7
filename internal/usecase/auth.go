package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/tinoe0404/eTuckshop-sub000/internal/domain/errors"
	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/repository"
	pkgAuth "github.com/tinoe0404/eTuckshop-sub000/internal/pkg/auth"
)

// AuthUseCase handles customer lifecycle and token management. Customers are
// keyed by phone number and secured with a 4-digit PIN; the same credentials
// serve the chat flow and the conventional API.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PINHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PINHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a new customer and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, phone, name, pin string) (*model.User, string, error) {
	usr, err := u.RegisterCustomer(ctx, phone, name, pin)
	if err != nil {
		return nil, "", err
	}
	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// RegisterCustomer creates a new customer without issuing a token, for the
// chat registration flow where the session itself carries authentication.
func (u *AuthUseCase) RegisterCustomer(ctx context.Context, phone, name, pin string) (*model.User, error) {
	phone = strings.TrimSpace(phone)
	name = strings.TrimSpace(name)
	if phone == "" || len(name) < 2 || !ValidPIN(pin) {
		return nil, domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(pin)
	if err != nil {
		return nil, err
	}

	usr, err := u.users.Create(ctx, phone, name, hash)
	if err != nil {
		return nil, err
	}
	return usr, nil
}

// Authenticate validates credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, phone, pin string) (*model.User, string, error) {
	usr, err := u.AuthenticateCustomer(ctx, phone, pin)
	if err != nil {
		return nil, "", err
	}
	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// AuthenticateCustomer validates phone/PIN without issuing a token.
func (u *AuthUseCase) AuthenticateCustomer(ctx context.Context, phone, pin string) (*model.User, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || !ValidPIN(pin) {
		return nil, domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := u.hasher.Compare(usr.PINHash, pin); err != nil {
		return nil, domainErrors.ErrInvalidCredentials
	}
	return usr, nil
}

// CustomerByPhone fetches a customer by channel address.
func (u *AuthUseCase) CustomerByPhone(ctx context.Context, phone string) (*model.User, error) {
	return u.users.GetByPhone(ctx, strings.TrimSpace(phone))
}

// ParseToken extracts the user ID from the provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches a customer by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// ValidPIN reports whether the PIN is exactly four digits.
func ValidPIN(pin string) bool {
	if len(pin) != 4 {
		return false
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
