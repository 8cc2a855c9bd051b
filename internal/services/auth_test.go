package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"profico-inventory/internal/authz"
	"profico-inventory/internal/dto"
	"profico-inventory/internal/entities"
	"profico-inventory/pkg/service"
	"profico-inventory/pkg/utils"
)

func newAuthFixture(t *testing.T) (AuthServiceInterface, *fakeUserRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := newFakeUserRepo(&entities.User{
		ID:       1,
		Fio:      "Администратор",
		Email:    "admin@profico.local",
		Password: string(hash),
		Role:     authz.RoleAdmin,
	})
	jwtSvc := service.NewJWTService("test-secret-key", time.Minute, time.Hour)
	return NewAuthService(userRepo, jwtSvc, zap.NewNop()), userRepo
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newAuthFixture(t)

	res, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "admin@profico.local",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, "admin", res.User.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "admin@profico.local",
		Password: "wrong",
	})
	assert.Equal(t, 401, httpCode(t, err))
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "ghost@profico.local",
		Password: "secret123",
	})
	// Тот же 401, что и при неверном пароле.
	assert.Equal(t, 401, httpCode(t, err))
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	res, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "admin@profico.local",
		Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), dto.RefreshTokenDTO{RefreshToken: res.AccessToken})
	assert.Equal(t, 401, httpCode(t, err))
}

func TestRefreshIssuesNewPair(t *testing.T) {
	svc, userRepo := newAuthFixture(t)

	res, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "admin@profico.local",
		Password: "secret123",
	})
	require.NoError(t, err)

	// Роль сменилась после выпуска токена - новая пара несёт актуальную.
	userRepo.users[1].Role = authz.RoleTeamLead

	refreshed, err := svc.Refresh(context.Background(), dto.RefreshTokenDTO{RefreshToken: res.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "team_lead", refreshed.User.Role)
}

func TestMe(t *testing.T) {
	svc, _ := newAuthFixture(t)

	ctx := utils.WithActor(context.Background(), 1, authz.RoleAdmin)
	me, err := svc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin@profico.local", me.Email)

	_, err = svc.Me(context.Background())
	assert.Equal(t, 401, httpCode(t, err))
}
