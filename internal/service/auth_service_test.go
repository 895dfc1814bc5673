package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rasoi-next/internal/config"
	"github.com/rasoi-next/internal/constants"
	"github.com/rasoi-next/internal/models"
	"github.com/rasoi-next/internal/repository"
)

func newAuthTestConfig() *config.Config {
	return &config.Config{
		JWT:     config.JWTConfig{SecretKey: "admin-secret", ExpireHours: 2},
		UserJWT: config.JWTConfig{SecretKey: "user-secret", ExpireHours: 24},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireLower: true, RequireNumber: true},
		},
	}
}

func TestUserRegisterLoginAndChangePassword(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewUserAuthService(newAuthTestConfig(), repository.NewUserRepository(db))
	ctx := context.Background()

	user, token, _, err := svc.Register(ctx, RegisterInput{Email: " Asha@Example.com ", Password: "masala123", Phone: "9876543210"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "asha@example.com" || user.DisplayName != "asha" || token == "" {
		t.Fatalf("unexpected user: %+v", user)
	}
	claims, err := svc.ParseUserJWT(token)
	if err != nil || claims.UserID != user.ID {
		t.Fatalf("parse token failed: %v %+v", err, claims)
	}

	if _, _, _, err := svc.Register(ctx, RegisterInput{Email: "asha@example.com", Password: "masala123"}); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected email exists, got %v", err)
	}
	if _, _, _, err := svc.Register(ctx, RegisterInput{Email: "ravi@example.com", Password: "short"}); !errors.Is(err, ErrWeakPassword) || !errors.Is(err, ErrValidation) {
		t.Fatalf("expected weak password, got %v", err)
	}
	if _, _, _, err := svc.Register(ctx, RegisterInput{Email: "not-an-email", Password: "masala123"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if _, _, _, err := svc.Login(ctx, "asha@example.com", "wrong-pass1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "ASHA@example.com", "masala123"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.ChangePassword(ctx, user.ID, "masala123", "tandoor456"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	reloaded, err := svc.GetUser(user.ID)
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if reloaded.TokenVersion != 1 || reloaded.TokenInvalidBefore == nil {
		t.Fatalf("token version should bump: %+v", reloaded)
	}
	if !IsTokenRevoked(claims.TokenVersion, claims.IssuedAt, reloaded.TokenVersion, 0) {
		t.Fatalf("old token should be revoked")
	}
	if _, _, _, err := svc.Login(ctx, "asha@example.com", "tandoor456"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestUserLoginRejectsDisabled(t *testing.T) {
	db := openServiceTestDB(t)
	repo := repository.NewUserRepository(db)
	svc := NewUserAuthService(newAuthTestConfig(), repo)
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, RegisterInput{Email: "meera@example.com", Password: "masala123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	user.Status = constants.UserStatusDisabled
	if err := repo.Update(user); err != nil {
		t.Fatalf("disable user failed: %v", err)
	}
	if _, _, _, err := svc.Login(ctx, "meera@example.com", "masala123"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected disabled, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewUserAuthService(newAuthTestConfig(), repository.NewUserRepository(db))
	user, _, _, err := svc.Register(context.Background(), RegisterInput{Email: "kiran@example.com", Password: "masala123"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	name := "Kiran"
	address := "12 MG Road, Bengaluru"
	locale := "zh-CN"
	updated, err := svc.UpdateProfile(user.ID, UpdateProfileInput{DisplayName: &name, DefaultAddress: &address, Locale: &locale})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.DisplayName != "Kiran" || updated.DefaultAddress != address || updated.Locale != "zh-CN" {
		t.Fatalf("unexpected profile: %+v", updated)
	}

	bad := "fr-FR"
	if _, err := svc.UpdateProfile(user.ID, UpdateProfileInput{Locale: &bad}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAdminLoginAndChangePassword(t *testing.T) {
	db := openServiceTestDB(t)
	repo := repository.NewAdminRepository(db)
	hash, err := HashPassword("owner1234")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if err := repo.Create(&models.Admin{Username: "owner", PasswordHash: hash, IsSuper: true}); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	svc := NewAuthService(newAuthTestConfig(), repo)
	ctx := context.Background()

	if _, _, _, err := svc.Login(ctx, "owner", "nope"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	admin, token, _, err := svc.Login(ctx, "owner", "owner1234")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if admin.LastLoginAt == nil {
		t.Fatalf("last login should be set")
	}
	claims, err := svc.ParseJWT(token)
	if err != nil || claims.AdminID != admin.ID || claims.Username != "owner" {
		t.Fatalf("parse token failed: %v %+v", err, claims)
	}
	if _, err := NewUserAuthService(newAuthTestConfig(), nil).ParseUserJWT(token); err == nil {
		t.Fatalf("admin token must not parse with user secret")
	}

	if err := svc.ChangePassword(ctx, admin.ID, "wrong", "kitchen789"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if err := svc.ChangePassword(ctx, admin.ID, "owner1234", "kitchen789"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	state, err := svc.ResolveAdminAuthState(ctx, admin.ID)
	if err != nil {
		t.Fatalf("resolve state failed: %v", err)
	}
	if !IsTokenRevoked(claims.TokenVersion, claims.IssuedAt, state.TokenVersion, state.TokenInvalidBefore) {
		t.Fatalf("old admin token should be revoked")
	}
}

func TestCaptchaDisabledPassesThrough(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Provider: "none", AdminLogin: true})
	if err := svc.Verify(constants.CaptchaSceneAdminLogin, CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled captcha should pass: %v", err)
	}
	if _, err := svc.GenerateImageChallenge(); !errors.Is(err, ErrCaptchaConfigInvalid) {
		t.Fatalf("expected config invalid, got %v", err)
	}
}

func TestCaptchaImageRequiresCode(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Provider: "image", AdminLogin: true})
	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("unexpected challenge: %+v", challenge)
	}
	if err := svc.Verify(constants.CaptchaSceneAdminLogin, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("expected captcha required, got %v", err)
	}
	if err := svc.Verify(constants.CaptchaSceneAdminLogin, CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: "zzzzzzz"}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("expected captcha invalid, got %v", err)
	}
}
