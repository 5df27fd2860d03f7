package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainErrors "github.com/tinoe0404/eTuckshop-sub000/internal/domain/errors"
	pkgAuth "github.com/tinoe0404/eTuckshop-sub000/internal/pkg/auth"
	testhelpers "github.com/tinoe0404/eTuckshop-sub000/internal/test"
	"github.com/tinoe0404/eTuckshop-sub000/internal/usecase"
)

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(userID int64) (string, error) {
			return fmt.Sprintf("token-%d", userID), nil
		},
		ParseFn: func(token string) (int64, error) {
			var id int64
			if _, err := fmt.Sscanf(token, "token-%d", &id); err != nil {
				return 0, pkgAuth.ErrInvalidToken
			}
			return id, nil
		},
	}
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := usecase.NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	user, token, err := uc.Register(ctx, "27820000001", "Alice", "1234")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user to have ID assigned")
	}
	if token != "token-1" {
		t.Fatalf("unexpected token %q", token)
	}
	stored, err := repo.GetByPhone(ctx, "27820000001")
	if err != nil {
		t.Fatalf("expected user in repository: %v", err)
	}
	if stored.PINHash != "hash:1234" {
		t.Fatalf("pin hash not stored: %v", stored.PINHash)
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := usecase.NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, err := uc.RegisterCustomer(ctx, "27820000001", "Bob", "1234"); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, err := uc.RegisterCustomer(ctx, "27820000001", "Bob", "1234"); !errors.Is(err, domainErrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthUseCaseRegisterValidation(t *testing.T) {
	uc := usecase.NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())
	ctx := context.Background()

	cases := []struct {
		phone, name, pin string
	}{
		{"", "Alice", "1234"},
		{"27820000001", "A", "1234"},
		{"27820000001", "Alice", "123"},
		{"27820000001", "Alice", "12345"},
		{"27820000001", "Alice", "12a4"},
	}
	for _, tc := range cases {
		if _, err := uc.RegisterCustomer(ctx, tc.phone, tc.name, tc.pin); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			t.Fatalf("RegisterCustomer(%q, %q, %q) = %v, want ErrInvalidCredentials", tc.phone, tc.name, tc.pin, err)
		}
	}
}

func TestAuthUseCaseAuthenticateCustomer(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := usecase.NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub())

	ctx := context.Background()
	if _, err := uc.RegisterCustomer(ctx, "27820000001", "Carol", "4321"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := uc.AuthenticateCustomer(ctx, "27820000001", "1111"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}

	// Unknown phone reads the same as a bad PIN.
	if _, err := uc.AuthenticateCustomer(ctx, "27829999999", "4321"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown phone, got %v", err)
	}

	user, err := uc.AuthenticateCustomer(ctx, "27820000001", "4321")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if user.Name != "Carol" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	uc := usecase.NewAuthUseCase(testhelpers.NewUserRepositoryStub(), testhelpers.HasherStub{}, newStrategyStub())

	id, err := uc.ParseToken("token-42")
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}

	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestValidPIN(t *testing.T) {
	valid := []string{"0000", "1234", "9999"}
	invalid := []string{"", "123", "12345", "12a4", "١٢٣٤", "12 4"}

	for _, pin := range valid {
		if !usecase.ValidPIN(pin) {
			t.Errorf("usecase.ValidPIN(%q) = false, want true", pin)
		}
	}
	for _, pin := range invalid {
		if usecase.ValidPIN(pin) {
			t.Errorf("usecase.ValidPIN(%q) = true, want false", pin)
		}
	}
}
