package service

import (
	"context"
	"testing"
	"time"

	"hostel_booking/internal/apperrors"
	"hostel_booking/internal/domain"
	"hostel_booking/internal/repository"
	"hostel_booking/internal/testutil"
	"hostel_booking/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuth(t *testing.T) (AuthService, *gorm.DB) {
	t.Helper()
	gdb := testutil.NewDB(t)
	rdb, _ := testutil.NewRedis(t)
	svc := NewAuthService(repository.NewUserRepository(gdb), utils.NewSessionStore(rdb), "test-secret", time.Hour)
	svc.(*authService).cost = bcrypt.MinCost
	return svc, gdb
}

func TestRegister(t *testing.T) {
	svc, gdb := newAuth(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Username: "Alice", Email: "Alice@Example.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "supersecret", user.Password)
	assert.False(t, user.IsAdmin)

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Email: "other@example.com", Password: "supersecret"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.As(err).Code)
	assert.Equal(t, "Username already exists", apperrors.As(err).Message)

	_, err = svc.Register(ctx, RegisterInput{Username: "bob", Email: "alice@example.com", Password: "supersecret"})
	require.Error(t, err)
	assert.Equal(t, "Email already registered", apperrors.As(err).Message)

	var count int64
	require.NoError(t, gdb.Model(&domain.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()

	tests := []struct {
		name string
		in   RegisterInput
	}{
		{name: "short password", in: RegisterInput{Username: "carol", Email: "carol@example.com", Password: "short"}},
		{name: "bad email", in: RegisterInput{Username: "carol", Email: "not-an-email", Password: "supersecret"}},
		{name: "short username", in: RegisterInput{Username: "ab", Email: "carol@example.com", Password: "supersecret"}},
		{name: "symbols in username", in: RegisterInput{Username: "carol!", Email: "carol@example.com", Password: "supersecret"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.in)
			assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation), "got %v", err)
		})
	}
}

func TestAuthenticateAndLogout(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Username: "dave", Email: "dave@example.com", Password: "supersecret"})
	require.NoError(t, err)

	session, err := svc.Authenticate(ctx, "dave", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	user, err := svc.CurrentUser(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, "dave", user.Username)

	require.NoError(t, svc.Logout(ctx, session.Token))
	_, err = svc.CurrentUser(ctx, session.Token)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}

func TestAuthenticateGenericFailure(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Username: "erin", Email: "erin@example.com", Password: "supersecret"})
	require.NoError(t, err)

	_, wrongPassword := svc.Authenticate(ctx, "erin", "wrongpassword")
	_, unknownUser := svc.Authenticate(ctx, "nobody", "supersecret")

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.Equal(t, apperrors.As(wrongPassword).Message, apperrors.As(unknownUser).Message)
	assert.Equal(t, "Invalid username or password", apperrors.As(unknownUser).Message)
	assert.Equal(t, 401, apperrors.As(unknownUser).HTTPStatus)
}

func TestCurrentUserRejectsGarbage(t *testing.T) {
	svc, _ := newAuth(t)
	_, err := svc.CurrentUser(context.Background(), "not-a-token")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}

func TestCurrentUserWithoutSession(t *testing.T) {
	svc, gdb := newAuth(t)
	user := testutil.CreateUser(t, gdb, "frank", false)

	// valid signature but never registered as a session
	token, _, err := utils.GenerateJWT(user.ID, "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = svc.CurrentUser(context.Background(), token)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}
