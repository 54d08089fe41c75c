// internal/domain/user/service_test.go
package user

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-api/internal/config"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func userTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&User{}))

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenExpiry = time.Hour
	cfg.Security.BcryptCost = bcrypt.MinCost

	return NewService(db, cfg)
}

func register(t *testing.T, svc *Service, name, email string) *User {
	t.Helper()

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "secret1",
	})
	require.NoError(t, err)
	return resp.User
}

func TestRegisterAndLogin(t *testing.T) {
	svc := userTestService(t)

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.False(t, resp.User.IsAdmin)

	_, err = svc.Register(context.Background(), &RegisterRequest{
		Name:     "Someone Else",
		Email:    "asha@example.com",
		Password: "secret1",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	logged, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "asha@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, logged.User.ID)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "asha@example.com",
		Password: "wrong-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUser(t *testing.T) {
	svc := userTestService(t)
	created := register(t, svc, "Asha Rao", "asha@example.com")

	u, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", u.Name)
	assert.Equal(t, "asha@example.com", u.Email)

	_, err = svc.Get(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRole(t *testing.T) {
	svc := userTestService(t)
	created := register(t, svc, "Vikram Nair", "vikram@example.com")
	require.False(t, created.IsAdmin)

	promoted, err := svc.UpdateRole(context.Background(), created.ID, true)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)

	demoted, err := svc.UpdateRole(context.Background(), created.ID, false)
	require.NoError(t, err)
	assert.False(t, demoted.IsAdmin)

	_, err = svc.UpdateRole(context.Background(), 9999, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	svc := userTestService(t)
	created := register(t, svc, "Asha Rao", "asha@example.com")

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID), ErrNotFound)
}
