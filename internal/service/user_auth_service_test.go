package service

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopcart-api/internal/config"
	"github.com/shopcart-api/internal/constants"
	"github.com/shopcart-api/internal/models"
	"github.com/shopcart-api/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var userAuthTestDBSeq int64

func newUserAuthTestService(t *testing.T) (*UserAuthService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:user_auth_%d?mode=memory&cache=shared", atomic.AddInt64(&userAuthTestDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	cfg := &config.Config{
		UserJWT: config.JWTConfig{
			SecretKey:   "test-secret-key-for-user-auth-service",
			ExpireHours: 1,
		},
	}
	return NewUserAuthService(cfg, repository.NewUserRepository(db)), db
}

func TestRegister_CreatesUserAndToken(t *testing.T) {
	svc, db := newUserAuthTestService(t)

	user, token, expiresAt, err := svc.Register("alice@example.com", "s3cret-pass", "Alice")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == 0 || token == "" || expiresAt.IsZero() {
		t.Fatalf("incomplete register result: user=%+v token=%q", user, token)
	}
	if user.PasswordHash == "s3cret-pass" || user.PasswordHash == "" {
		t.Fatal("expected password stored as hash")
	}
	if user.Status != constants.UserStatusActive {
		t.Fatalf("expected active status, got %s", user.Status)
	}

	var stored models.User
	if err := db.Where("email = ?", "alice@example.com").First(&stored).Error; err != nil {
		t.Fatalf("load user failed: %v", err)
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRegister_NormalizesEmail(t *testing.T) {
	svc, _ := newUserAuthTestService(t)

	user, _, _, err := svc.Register("  Bob@Example.COM ", "s3cret-pass", "Bob")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Email != "bob@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newUserAuthTestService(t)

	if _, _, _, err := svc.Register("not-an-email", "s3cret-pass", ""); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}
	if _, _, _, err := svc.Register("carol@example.com", "123", ""); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	if _, _, _, err := svc.Register("carol@example.com", "s3cret-pass", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, _, err := svc.Register("carol@example.com", "another-pass", ""); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	svc, _ := newUserAuthTestService(t)

	if _, _, _, err := svc.Register("dave@example.com", "s3cret-pass", "Dave"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, token, _, err := svc.Login("dave@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected token issued")
	}
	if user.LastLoginAt == nil {
		t.Fatal("expected last_login_at recorded")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _ := newUserAuthTestService(t)

	if _, _, _, err := svc.Register("erin@example.com", "s3cret-pass", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, _, err := svc.Login("erin@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, _, err := svc.Login("unknown@example.com", "s3cret-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_DisabledUser(t *testing.T) {
	svc, db := newUserAuthTestService(t)

	user, _, _, err := svc.Register("frank@example.com", "s3cret-pass", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}

	if _, _, _, err := svc.Login("frank@example.com", "s3cret-pass"); !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected ErrUserDisabled, got %v", err)
	}
}

func TestParseUserJWT_RejectsTampered(t *testing.T) {
	svc, _ := newUserAuthTestService(t)

	_, token, _, err := svc.Register("grace@example.com", "s3cret-pass", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.ParseUserJWT(token + "x"); err == nil {
		t.Fatal("expected tampered token rejected")
	}
	if _, err := svc.ParseUserJWT("not-a-token"); err == nil {
		t.Fatal("expected malformed token rejected")
	}
}
