package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"querydesk/internal/api"
	"querydesk/internal/credstore"
	"querydesk/pkg/querytypes"
)

type fakeGateway struct {
	registerFn    func(ctx context.Context, req querytypes.RegisterRequest) (*querytypes.User, error)
	loginFn       func(ctx context.Context, username, password string) (string, error)
	currentUserFn func(ctx context.Context) (*querytypes.User, error)

	registerCalls    int
	loginCalls       int
	currentUserCalls int
}

func (f *fakeGateway) Register(ctx context.Context, req querytypes.RegisterRequest) (*querytypes.User, error) {
	f.registerCalls++
	return f.registerFn(ctx, req)
}

func (f *fakeGateway) Login(ctx context.Context, username, password string) (string, error) {
	f.loginCalls++
	return f.loginFn(ctx, username, password)
}

func (f *fakeGateway) CurrentUser(ctx context.Context) (*querytypes.User, error) {
	f.currentUserCalls++
	return f.currentUserFn(ctx)
}

func alice() *querytypes.User {
	return &querytypes.User{
		UserID:    "u-1",
		Email:     "alice@example.com",
		Username:  "alice",
		FullName:  "Alice Example",
		IsActive:  true,
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewController_InitialStateWithoutCredential(t *testing.T) {
	ctrl := NewController(&fakeGateway{}, credstore.NewMemoryStore(""))
	assert.Equal(t, StateUnauthenticated, ctrl.State())
}

func TestNewController_InitialStateWithCredential(t *testing.T) {
	ctrl := NewController(&fakeGateway{}, credstore.NewMemoryStore("tok"))
	assert.Equal(t, StateResolving, ctrl.State())
}

func TestController_ResolveSuccess(t *testing.T) {
	gw := &fakeGateway{
		currentUserFn: func(context.Context) (*querytypes.User, error) {
			return alice(), nil
		},
	}
	ctrl := NewController(gw, credstore.NewMemoryStore("tok"))

	ctrl.Resolve(context.Background())

	assert.Equal(t, StateAuthenticated, ctrl.State())
	user, err := ctrl.RequireUser()
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestController_ResolveFailureDiscardsCredential(t *testing.T) {
	gw := &fakeGateway{
		currentUserFn: func(context.Context) (*querytypes.User, error) {
			return nil, &api.Error{Message: "Invalid credentials"}
		},
	}
	creds := credstore.NewMemoryStore("stale-token")
	ctrl := NewController(gw, creds)

	ctrl.Resolve(context.Background())

	assert.Equal(t, StateUnauthenticated, ctrl.State())
	assert.Nil(t, ctrl.CurrentUser())
	_, ok := creds.Token()
	assert.False(t, ok, "stale credential should be discarded")
}

func TestController_ResolveIsNoOpOutsideResolvingState(t *testing.T) {
	gw := &fakeGateway{
		currentUserFn: func(context.Context) (*querytypes.User, error) {
			return alice(), nil
		},
	}
	ctrl := NewController(gw, credstore.NewMemoryStore(""))

	ctrl.Resolve(context.Background())

	assert.Equal(t, StateUnauthenticated, ctrl.State())
	assert.Zero(t, gw.currentUserCalls)
}

func TestController_LoginSuccess(t *testing.T) {
	gw := &fakeGateway{
		loginFn: func(_ context.Context, username, password string) (string, error) {
			assert.Equal(t, "alice", username)
			assert.Equal(t, "secret", password)
			return "tok-alice", nil
		},
		currentUserFn: func(context.Context) (*querytypes.User, error) {
			return alice(), nil
		},
	}
	creds := credstore.NewMemoryStore("")
	ctrl := NewController(gw, creds)

	err := ctrl.Login(context.Background(), "alice", "secret")
	require.NoError(t, err)

	assert.Equal(t, StateAuthenticated, ctrl.State())
	assert.Equal(t, "alice", ctrl.CurrentUser().Username)
	token, ok := creds.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-alice", token)
}

func TestController_LoginFailure(t *testing.T) {
	gw := &fakeGateway{
		loginFn: func(context.Context, string, string) (string, error) {
			return "", &api.Error{Message: "Invalid credentials"}
		},
	}
	creds := credstore.NewMemoryStore("")
	ctrl := NewController(gw, creds)

	err := ctrl.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid credentials")

	assert.Equal(t, StateUnauthenticated, ctrl.State())
	_, ok := creds.Token()
	assert.False(t, ok)
}

func TestController_LoginProfileFetchFailureRollsBackCredential(t *testing.T) {
	gw := &fakeGateway{
		loginFn: func(context.Context, string, string) (string, error) {
			return "tok-alice", nil
		},
		currentUserFn: func(context.Context) (*querytypes.User, error) {
			return nil, &api.Error{Message: "profile unavailable"}
		},
	}
	creds := credstore.NewMemoryStore("")
	ctrl := NewController(gw, creds)

	err := ctrl.Login(context.Background(), "alice", "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile unavailable")

	assert.Equal(t, StateUnauthenticated, ctrl.State())
	assert.Nil(t, ctrl.CurrentUser())
	_, ok := creds.Token()
	assert.False(t, ok, "credential should be rolled back when profile fetch fails")
}

func TestController_RegisterLogsIn(t *testing.T) {
	gw := &fakeGateway{
		registerFn: func(_ context.Context, req querytypes.RegisterRequest) (*querytypes.User, error) {
			assert.Equal(t, "alice", req.Username)
			return alice(), nil
		},
		loginFn: func(context.Context, string, string) (string, error) {
			return "tok-alice", nil
		},
		currentUserFn: func(context.Context) (*querytypes.User, error) {
			return alice(), nil
		},
	}
	ctrl := NewController(gw, credstore.NewMemoryStore(""))

	err := ctrl.Register(context.Background(), querytypes.RegisterRequest{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "secret",
		FullName: "Alice Example",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, gw.registerCalls)
	assert.Equal(t, 1, gw.loginCalls)
	assert.Equal(t, StateAuthenticated, ctrl.State())
}

func TestController_RegisterSurfacesLoginFailure(t *testing.T) {
	gw := &fakeGateway{
		registerFn: func(context.Context, querytypes.RegisterRequest) (*querytypes.User, error) {
			return alice(), nil
		},
		loginFn: func(context.Context, string, string) (string, error) {
			return "", &api.Error{Message: "account pending activation"}
		},
	}
	ctrl := NewController(gw, credstore.NewMemoryStore(""))

	err := ctrl.Register(context.Background(), querytypes.RegisterRequest{Username: "alice", Password: "secret"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "account pending activation")
	assert.Equal(t, StateUnauthenticated, ctrl.State())
}

func TestController_RegisterFailureSkipsLogin(t *testing.T) {
	gw := &fakeGateway{
		registerFn: func(context.Context, querytypes.RegisterRequest) (*querytypes.User, error) {
			return nil, &api.Error{Message: "username taken"}
		},
	}
	ctrl := NewController(gw, credstore.NewMemoryStore(""))

	err := ctrl.Register(context.Background(), querytypes.RegisterRequest{Username: "alice", Password: "secret"})
	require.Error(t, err)
	assert.Zero(t, gw.loginCalls)
}

func TestController_LogoutIsIdempotent(t *testing.T) {
	gw := &fakeGateway{
		currentUserFn: func(context.Context) (*querytypes.User, error) {
			return alice(), nil
		},
	}
	creds := credstore.NewMemoryStore("tok")
	ctrl := NewController(gw, creds)
	ctrl.Resolve(context.Background())
	require.Equal(t, StateAuthenticated, ctrl.State())

	ctrl.Logout()
	assert.Equal(t, StateUnauthenticated, ctrl.State())
	assert.Nil(t, ctrl.CurrentUser())
	_, ok := creds.Token()
	assert.False(t, ok)

	// Logging out twice in a row is equivalent to once
	ctrl.Logout()
	assert.Equal(t, StateUnauthenticated, ctrl.State())

	_, err := ctrl.RequireUser()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
