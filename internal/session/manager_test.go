package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelhive/pixelhive-cli/internal/api"
	"github.com/pixelhive/pixelhive-cli/internal/notify"
	"github.com/pixelhive/pixelhive-cli/pkg/models"
)

// fakeAuth scripts backend behavior per operation and counts calls.
type fakeAuth struct {
	profileRes api.Result[api.AuthData]
	loginRes   api.Result[api.AuthData]
	logoutRes  api.Result[api.Envelope]
	signupRes  api.Result[api.Envelope]

	profileCalls int
	logoutCalls  int
}

func (f *fakeAuth) Profile(ctx context.Context) api.Result[api.AuthData] {
	f.profileCalls++
	return f.profileRes
}

func (f *fakeAuth) Login(ctx context.Context, creds models.Credentials) api.Result[api.AuthData] {
	return f.loginRes
}

func (f *fakeAuth) Logout(ctx context.Context) api.Result[api.Envelope] {
	f.logoutCalls++
	return f.logoutRes
}

func (f *fakeAuth) Signup(ctx context.Context, data models.SignupData) api.Result[api.Envelope] {
	return f.signupRes
}

func authedProfile() api.Result[api.AuthData] {
	return api.Result[api.AuthData]{
		Success: true,
		Status:  200,
		Data: api.AuthData{
			Envelope: api.Envelope{Success: true},
			User:     &models.UserProfile{ID: "1", Name: "A", Email: "a@b.com"},
		},
	}
}

func transportFailure[T any]() api.Result[T] {
	return api.Result[T]{Success: false, Status: 500, Error: "connection refused"}
}

// checkInvariant asserts user-non-nil iff authenticated.
func checkInvariant(t *testing.T, s Snapshot) {
	t.Helper()
	assert.Equal(t, s.User != nil, s.IsAuthenticated,
		"user must be non-nil exactly when authenticated: %+v", s)
}

func TestResolveSuccess(t *testing.T) {
	auth := &fakeAuth{profileRes: authedProfile()}
	m := NewManager(auth, nil, nil)

	assert.True(t, m.Current().Loading, "manager starts in the loading state")

	s := m.Resolve(context.Background())
	checkInvariant(t, s)
	assert.True(t, s.IsAuthenticated)
	assert.False(t, s.Loading)
	require.NotNil(t, s.User)
	assert.Equal(t, "a@b.com", s.User.Email)
}

func TestResolveFailsClosed(t *testing.T) {
	cases := []struct {
		name string
		res  api.Result[api.AuthData]
	}{
		{"transport error", transportFailure[api.AuthData]()},
		{"unauthorized", api.Result[api.AuthData]{Success: false, Status: 401, Data: api.AuthData{Envelope: api.Envelope{Message: "not authenticated"}}}},
		{"2xx without profile", api.Result[api.AuthData]{Success: true, Status: 200, Data: api.AuthData{Envelope: api.Envelope{Success: true}}}},
		{"2xx with success false", api.Result[api.AuthData]{Success: true, Status: 200, Data: api.AuthData{User: &models.UserProfile{ID: "1"}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := NewManager(&fakeAuth{profileRes: tc.res}, nil, nil)
			s := m.Resolve(context.Background())
			checkInvariant(t, s)
			assert.False(t, s.IsAuthenticated)
			assert.Nil(t, s.User)
			assert.False(t, s.Loading, "loading must settle even on failure")
		})
	}
}

func TestResolveRunsOnce(t *testing.T) {
	auth := &fakeAuth{profileRes: authedProfile()}
	m := NewManager(auth, nil, nil)

	m.Resolve(context.Background())
	m.Resolve(context.Background())

	assert.Equal(t, 1, auth.profileCalls, "resolution is single-flight per process")
}

func TestLoginFailureLeavesSessionUnchanged(t *testing.T) {
	auth := &fakeAuth{
		profileRes: authedProfile(),
		loginRes: api.Result[api.AuthData]{
			Success: false,
			Status:  401,
			Data:    api.AuthData{Envelope: api.Envelope{Message: "Invalid credentials"}},
		},
	}
	m := NewManager(auth, nil, nil)
	before := m.Resolve(context.Background())

	res := m.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "wrong"})

	assert.False(t, res.Success)
	assert.Equal(t, "Invalid credentials", res.Error)

	after := m.Current()
	checkInvariant(t, after)
	assert.Equal(t, before, after, "failed login must not touch the session")
}

func TestLoginTransportFailureUsesGenericMessage(t *testing.T) {
	m := NewManager(&fakeAuth{loginRes: transportFailure[api.AuthData]()}, nil, nil)

	res := m.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "pw"})

	assert.False(t, res.Success)
	assert.Equal(t, "Network error. Please try again.", res.Error)
	checkInvariant(t, m.Current())
}

func TestLoginSuccess(t *testing.T) {
	bus := notify.NewBus(4)
	m := NewManager(&fakeAuth{loginRes: authedProfile()}, bus, nil)

	res := m.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "pw"})

	require.True(t, res.Success)
	s := m.Current()
	checkInvariant(t, s)
	assert.True(t, s.IsAuthenticated)
	assert.False(t, s.Loading)
	require.NotNil(t, s.User)
	assert.Equal(t, "1", s.User.ID)

	events := bus.Drain()
	require.Len(t, events, 1)
	assert.Equal(t, notify.KindSuccess, events[0].Kind)
}

func TestLogoutClearsSessionEvenWhenBackendFails(t *testing.T) {
	auth := &fakeAuth{
		profileRes: authedProfile(),
		logoutRes:  transportFailure[api.Envelope](),
	}
	m := NewManager(auth, nil, nil)
	m.Resolve(context.Background())
	require.True(t, m.Current().IsAuthenticated)

	cleared := 0
	m.OnClear(func() { cleared++ })

	res := m.Logout(context.Background())
	assert.True(t, res.Success, "logout is always successful from the client's perspective")

	s := m.Current()
	checkInvariant(t, s)
	assert.False(t, s.IsAuthenticated)
	assert.Nil(t, s.User)
	assert.Equal(t, 1, cleared)

	// Idempotent: a second logout lands in the same state.
	m.Logout(context.Background())
	assert.Equal(t, s, m.Current())
	assert.Equal(t, 2, auth.logoutCalls)
}

func TestSignupDoesNotMutateSession(t *testing.T) {
	auth := &fakeAuth{
		profileRes: api.Result[api.AuthData]{Success: false, Status: 401},
		signupRes:  api.Result[api.Envelope]{Success: true, Status: 201, Data: api.Envelope{Status: "success"}},
	}
	m := NewManager(auth, nil, nil)
	m.Resolve(context.Background())

	res := m.Signup(context.Background(), models.SignupData{Name: "Ada", Email: "a@b.com", Password: "secret1"})

	assert.True(t, res.Success)
	s := m.Current()
	checkInvariant(t, s)
	assert.False(t, s.IsAuthenticated, "signup does not imply login")
}

func TestSignupErrorForwardsBackendMessage(t *testing.T) {
	auth := &fakeAuth{
		signupRes: api.Result[api.Envelope]{
			Success: false,
			Status:  409,
			Data:    api.Envelope{Message: "Email already registered"},
		},
	}
	m := NewManager(auth, nil, nil)

	res := m.Signup(context.Background(), models.SignupData{Name: "Ada", Email: "a@b.com", Password: "secret1"})

	assert.False(t, res.Success)
	assert.Equal(t, "Email already registered", res.Error)
}
