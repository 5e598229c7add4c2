package services

import (
	"context"
	"errors"
	"testing"

	"flyaway/internal/models/db_models"
	"flyaway/internal/models/request_models"
	"flyaway/pkg/utils"
)

type accountFixture struct {
	users   *fakeUserRepo
	files   *fakeStore
	service AccountServiceInterface
}

func newAccountFixture() *accountFixture {
	users := newFakeUserRepo()
	files := newFakeStore()
	return &accountFixture{
		users:   users,
		files:   files,
		service: NewAccountService(users, files),
	}
}

func TestRegisterAndLogin(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	user, err := f.service.Register(ctx, request_models.RegisterRequest{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Provider != db_models.ProviderLocal {
		t.Errorf("provider = %s, want local", user.Provider)
	}

	if _, err := f.service.Register(ctx, request_models.RegisterRequest{
		Name:     "Ana Again",
		Email:    "ana@example.com",
		Password: "other456",
	}); !errors.Is(err, utils.ErrEmailAlreadyExists) {
		t.Fatalf("duplicate register: got %v, want ErrEmailAlreadyExists", err)
	}

	token, err := f.service.Login(ctx, request_models.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	if _, err := f.service.Login(ctx, request_models.LoginRequest{Email: "ana@example.com", Password: "wrong"}); !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Fatalf("wrong password: got %v, want ErrInvalidCredentials", err)
	}
	if _, err := f.service.Login(ctx, request_models.LoginRequest{Email: "ghost@example.com", Password: "secret123"}); !errors.Is(err, utils.ErrUserNotFound) {
		t.Fatalf("unknown email: got %v, want ErrUserNotFound", err)
	}
}

func TestGoogleLoginIsIdempotent(t *testing.T) {
	f := newAccountFixture()
	ctx := context.Background()

	if _, err := f.service.LoginWithGoogle(ctx, request_models.GoogleLoginRequest{Email: "ana@example.com", Name: "Ana"}); err != nil {
		t.Fatalf("LoginWithGoogle: %v", err)
	}
	if _, err := f.service.LoginWithGoogle(ctx, request_models.GoogleLoginRequest{Email: "ana@example.com", Name: "Ana"}); err != nil {
		t.Fatalf("second LoginWithGoogle: %v", err)
	}
	if len(f.users.users) != 1 {
		t.Fatalf("expected one provisioned account, got %d", len(f.users.users))
	}

	user, _ := f.users.FindByEmail(ctx, "ana@example.com")
	if user.Provider != db_models.ProviderGoogle {
		t.Errorf("provider = %s, want google", user.Provider)
	}
	if user.PasswordHash != nil {
		t.Error("OAuth account should carry no password hash")
	}

	// No local credential means no password login.
	if _, err := f.service.Login(ctx, request_models.LoginRequest{Email: "ana@example.com", Password: "anything"}); !errors.Is(err, utils.ErrInvalidCredentials) {
		t.Fatalf("password login on OAuth account: got %v, want ErrInvalidCredentials", err)
	}
}

func TestUpdateProfilePatchesFields(t *testing.T) {
	f := newAccountFixture()
	user := f.users.add("Ana", "ana@example.com")
	ctx := context.Background()

	bio := "Collects passport stamps."
	updated, err := f.service.UpdateProfile(ctx, user.ID.String(), request_models.UpdateProfileRequest{Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.Name != "Ana" {
		t.Errorf("name changed unexpectedly: %s", updated.Name)
	}
	if updated.Bio == nil || *updated.Bio != bio {
		t.Errorf("bio = %v, want %q", updated.Bio, bio)
	}
}

func TestSetAvatarReplacesOldFile(t *testing.T) {
	f := newAccountFixture()
	user := f.users.add("Ana", "ana@example.com")
	ctx := context.Background()

	first, err := f.service.SetAvatar(ctx, user.ID.String(), []byte("png"), "one.png")
	if err != nil {
		t.Fatalf("SetAvatar: %v", err)
	}

	second, err := f.service.SetAvatar(ctx, user.ID.String(), []byte("png"), "two.png")
	if err != nil {
		t.Fatalf("SetAvatar: %v", err)
	}
	if *first.AvatarURL == *second.AvatarURL {
		t.Fatal("avatar ref did not change")
	}
	if len(f.files.deleted) != 1 || f.files.deleted[0] != *first.AvatarURL {
		t.Fatalf("old avatar not cleaned up: %v", f.files.deleted)
	}
}
