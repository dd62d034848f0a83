package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/dokon/app/models"
	"github.com/shashiranjanraj/dokon/internal/api"
	"github.com/shashiranjanraj/dokon/pkg/testkit"
)

func TestLoginStoresUserAndToken(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "POST", Path: "/auth/login", Body: map[string]any{
			"user":  map[string]any{"id": 5, "email": "jo@example.com", "name": "Jo", "role": "user"},
			"token": "tok-abc",
		}},
	)

	user, err := s.Session.Login(context.Background(), models.LoginInput{
		Email:    "jo@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(5), user.ID)
	assert.True(t, s.Session.IsAuthenticated())
	assert.False(t, s.Session.IsAdmin())
	assert.Equal(t, "tok-abc", s.Session.Token())
}

func TestLoginRejectedCredentials(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "POST", Path: "/auth/login", Status: 401,
			Body: map[string]any{"message": "invalid credentials"}},
	)

	user, err := s.Session.Login(context.Background(), models.LoginInput{
		Email:    "jo@example.com",
		Password: "wrong-pass",
	})
	require.Error(t, err)
	assert.Nil(t, user)
	assert.True(t, api.IsAuth(err))
	assert.False(t, s.Session.IsAuthenticated())
	assert.Equal(t, "invalid credentials", s.Session.Err())
}

func TestLoginLocalValidationSkipsNetwork(t *testing.T) {
	s, mt := newTestStores()

	_, err := s.Session.Login(context.Background(), models.LoginInput{
		Email:    "not-an-email",
		Password: "",
	})
	require.Error(t, err)
	assert.True(t, api.IsValidation(err))
	mt.AssertNoCalls(t)
}

func TestRegisterSignsIn(t *testing.T) {
	s, mt := newTestStores(
		testkit.Step{Method: "POST", Path: "/auth/register", Body: map[string]any{
			"user":  map[string]any{"id": 9, "email": "new@example.com", "name": "New", "role": "user"},
			"token": "tok-new",
		}},
	)

	user, err := s.Session.Register(context.Background(), models.RegisterInput{
		Email:    "new@example.com",
		Password: "longenough",
		Name:     "New",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), user.ID)
	assert.True(t, s.Session.IsAuthenticated())
	mt.AssertAllCalled(t)
}

func TestRefreshRecoversSession(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "GET", Path: "/users/me", Body: map[string]any{
			"user": map[string]any{"id": 5, "email": "jo@example.com", "name": "Jo", "role": "admin"},
		}},
	)
	s.Session.RestoreToken("persisted-token")

	user := s.Session.Refresh(context.Background())
	require.NotNil(t, user)
	assert.True(t, s.Session.IsAdmin())
}

func TestRefreshFailureClearsSessionSilently(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "POST", Path: "/auth/login", Body: map[string]any{
			"user":  map[string]any{"id": 5, "email": "jo@example.com", "name": "Jo", "role": "user"},
			"token": "tok-abc",
		}},
		testkit.Step{Method: "GET", Path: "/users/me", Status: 401,
			Body: map[string]any{"message": "token expired"}},
	)
	ctx := context.Background()

	_, err := s.Session.Login(ctx, models.LoginInput{Email: "jo@example.com", Password: "hunter22"})
	require.NoError(t, err)

	user := s.Session.Refresh(ctx)
	assert.Nil(t, user, "refresh never surfaces errors")
	assert.False(t, s.Session.IsAuthenticated())
	assert.Empty(t, s.Session.Token(), "failed refresh drops the token")
}

func TestLogoutClearsSessionEvenWhenRemoteFails(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "POST", Path: "/auth/login", Body: map[string]any{
			"user":  map[string]any{"id": 5, "email": "jo@example.com", "name": "Jo", "role": "user"},
			"token": "tok-abc",
		}},
		testkit.Step{Method: "POST", Path: "/auth/logout", Status: 500,
			Body: map[string]any{"message": "backend down"}},
	)
	ctx := context.Background()

	_, err := s.Session.Login(ctx, models.LoginInput{Email: "jo@example.com", Password: "hunter22"})
	require.NoError(t, err)

	s.Session.Logout(ctx)
	assert.False(t, s.Session.IsAuthenticated())
	assert.Empty(t, s.Session.Token())
}

func TestUpdateProfileReplacesUser(t *testing.T) {
	s, _ := newTestStores(
		testkit.Step{Method: "POST", Path: "/auth/login", Body: map[string]any{
			"user":  map[string]any{"id": 5, "email": "jo@example.com", "name": "Jo", "role": "user"},
			"token": "tok-abc",
		}},
		testkit.Step{Method: "PUT", Path: "/users/me", Body: map[string]any{
			"user": map[string]any{"id": 5, "email": "jo@example.com", "name": "Joanna", "role": "user"},
		}},
	)
	ctx := context.Background()

	_, err := s.Session.Login(ctx, models.LoginInput{Email: "jo@example.com", Password: "hunter22"})
	require.NoError(t, err)

	user, err := s.Session.UpdateProfile(ctx, models.ProfileInput{Name: "Joanna"})
	require.NoError(t, err)
	assert.Equal(t, "Joanna", user.Name)
	assert.Equal(t, "Joanna", s.Session.User().Name)
}
