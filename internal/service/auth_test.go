package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/lifewood/adminhub/config"
	domainauth "github.com/lifewood/adminhub/internal/domain/auth"
	apperrors "github.com/lifewood/adminhub/internal/errors"
	"github.com/lifewood/adminhub/internal/mocks"
)

const testAdminEmail = "admin@lifewood.com"

func newAuthService(t *testing.T) (*AuthService, *mocks.MockSessionStore, *mocks.MockRateLimiter) {
	t.Helper()
	ctrl := gomock.NewController(t)
	sessions := mocks.NewMockSessionStore(ctrl)
	limiter := mocks.NewMockRateLimiter(ctrl)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAuthService(AuthServiceOptions{
		Sessions: sessions,
		Limiter:  limiter,
		Config: config.AuthConfig{
			AdminEmail:        testAdminEmail,
			AdminPasswordHash: string(hash),
			SessionTTL:        12 * time.Hour,
		},
	})
	return svc, sessions, limiter
}

func TestAuthService_SignIn_Success(t *testing.T) {
	svc, sessions, limiter := newAuthService(t)

	limiter.EXPECT().Allow(gomock.Any(), testAdminEmail).Return(true, nil)
	limiter.EXPECT().Reset(gomock.Any(), testAdminEmail).Return(nil)
	sessions.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)

	session, err := svc.SignIn(context.Background(), SignInInput{
		Email:    " Admin@Lifewood.com ",
		Password: "correct-password",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, testAdminEmail, session.Email)
	assert.Equal(t, domainauth.RoleAdmin, session.Role)
	assert.True(t, session.ExpiresAt.After(time.Now()))
}

func TestAuthService_SignIn_InvalidEmailFormat(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, err := svc.SignIn(context.Background(), SignInInput{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthentication(err))
	assert.Contains(t, err.Error(), msgInvalidEmail)
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	svc, _, limiter := newAuthService(t)

	limiter.EXPECT().Allow(gomock.Any(), testAdminEmail).Return(true, nil)

	_, err := svc.SignIn(context.Background(), SignInInput{
		Email:    testAdminEmail,
		Password: "wrong",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthentication(err))
	assert.Contains(t, err.Error(), msgInvalidCredentials)
}

func TestAuthService_SignIn_UnknownEmailSameMessage(t *testing.T) {
	svc, _, limiter := newAuthService(t)

	limiter.EXPECT().Allow(gomock.Any(), "other@lifewood.com").Return(true, nil)

	_, err := svc.SignIn(context.Background(), SignInInput{
		Email:    "other@lifewood.com",
		Password: "correct-password",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), msgInvalidCredentials,
		"wrong email and wrong password must be indistinguishable")
}

func TestAuthService_SignIn_RateLimited(t *testing.T) {
	svc, _, limiter := newAuthService(t)

	limiter.EXPECT().Allow(gomock.Any(), testAdminEmail).Return(false, nil)

	_, err := svc.SignIn(context.Background(), SignInInput{
		Email:    testAdminEmail,
		Password: "correct-password",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), msgTooManyAttempts)
}

func TestAuthService_GetSession_Valid(t *testing.T) {
	svc, sessions, _ := newAuthService(t)

	stored := domainauth.Session{
		ID:        "sess-1",
		Email:     testAdminEmail,
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	sessions.EXPECT().Get(gomock.Any(), "sess-1").Return(stored, nil)

	got, err := svc.GetSession(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
}

func TestAuthService_GetSession_ExpiredIsCleanedUp(t *testing.T) {
	svc, sessions, _ := newAuthService(t)

	stored := domainauth.Session{
		ID:        "sess-1",
		Email:     testAdminEmail,
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	sessions.EXPECT().Get(gomock.Any(), "sess-1").Return(stored, nil)
	sessions.EXPECT().Delete(gomock.Any(), "sess-1").Return(nil)

	_, err := svc.GetSession(context.Background(), "sess-1")
	assert.ErrorIs(t, err, errSessionExpired)
}

func TestAuthService_GetSession_WrongIdentityRejected(t *testing.T) {
	svc, sessions, _ := newAuthService(t)

	stored := domainauth.Session{
		ID:        "sess-1",
		Email:     "someone-else@lifewood.com",
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	sessions.EXPECT().Get(gomock.Any(), "sess-1").Return(stored, nil)

	_, err := svc.GetSession(context.Background(), "sess-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestAuthService_Logout(t *testing.T) {
	svc, sessions, _ := newAuthService(t)

	sessions.EXPECT().Delete(gomock.Any(), "sess-1").Return(nil)
	assert.NoError(t, svc.Logout(context.Background(), "sess-1"))

	// No session, nothing to do.
	assert.NoError(t, svc.Logout(context.Background(), ""))
}
