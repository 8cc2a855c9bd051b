package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"profico-inventory/internal/authz"
	"profico-inventory/internal/dto"
	"profico-inventory/internal/entities"
	"profico-inventory/pkg/utils"
)

func TestCreateUserHashesPassword(t *testing.T) {
	userRepo := newFakeUserRepo(&entities.User{ID: 1, Email: "admin@profico.local", Role: authz.RoleAdmin})
	svc := NewUserService(userRepo, zap.NewNop())
	ctx := utils.WithActor(context.Background(), 1, authz.RoleAdmin)

	created, err := svc.CreateUser(ctx, dto.CreateUserDTO{
		Fio:      "Новый Сотрудник",
		Email:    "new@profico.local",
		Password: "password123",
		Role:     "user",
	})
	require.NoError(t, err)

	assert.NotEqual(t, "password123", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("password123")))
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo(&entities.User{ID: 1, Email: "admin@profico.local", Role: authz.RoleAdmin})
	svc := NewUserService(userRepo, zap.NewNop())
	ctx := utils.WithActor(context.Background(), 1, authz.RoleAdmin)

	_, err := svc.CreateUser(ctx, dto.CreateUserDTO{
		Fio:      "Дубль",
		Email:    "admin@profico.local",
		Password: "password123",
		Role:     "user",
	})
	assert.Equal(t, 422, httpCode(t, err))
}

func TestCreateUserForbiddenForTeamLead(t *testing.T) {
	userRepo := newFakeUserRepo(&entities.User{ID: 2, Email: "lead@profico.local", Role: authz.RoleTeamLead})
	svc := NewUserService(userRepo, zap.NewNop())
	ctx := utils.WithActor(context.Background(), 2, authz.RoleTeamLead)

	_, err := svc.CreateUser(ctx, dto.CreateUserDTO{
		Fio:      "Кто-то",
		Email:    "x@profico.local",
		Password: "password123",
		Role:     "user",
	})
	assert.Equal(t, 403, httpCode(t, err))
}

func TestSelfDemotionRejected(t *testing.T) {
	userRepo := newFakeUserRepo(&entities.User{ID: 1, Email: "admin@profico.local", Role: authz.RoleAdmin})
	svc := NewUserService(userRepo, zap.NewNop())
	ctx := utils.WithActor(context.Background(), 1, authz.RoleAdmin)

	_, err := svc.UpdateUserRole(ctx, 1, dto.UpdateUserRoleDTO{Role: "user"})
	assert.Equal(t, 409, httpCode(t, err))
	assert.Equal(t, authz.RoleAdmin, userRepo.users[1].Role)
}

func TestUpdateUserRole(t *testing.T) {
	userRepo := newFakeUserRepo(
		&entities.User{ID: 1, Email: "admin@profico.local", Role: authz.RoleAdmin},
		&entities.User{ID: 3, Email: "user@profico.local", Role: authz.RoleUser},
	)
	svc := NewUserService(userRepo, zap.NewNop())
	ctx := utils.WithActor(context.Background(), 1, authz.RoleAdmin)

	updated, err := svc.UpdateUserRole(ctx, 3, dto.UpdateUserRoleDTO{Role: "team_lead"})
	require.NoError(t, err)
	assert.Equal(t, authz.RoleTeamLead, updated.Role)
}
