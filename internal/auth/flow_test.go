package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kaamwala/kaamwala_be/internal/account"
	"github.com/kaamwala/kaamwala_be/internal/models"
	"github.com/kaamwala/kaamwala_be/internal/nav"
	"github.com/kaamwala/kaamwala_be/internal/realtime"
	"github.com/kaamwala/kaamwala_be/internal/session"
	"github.com/kaamwala/kaamwala_be/internal/store"
	"github.com/kaamwala/kaamwala_be/internal/utils"
)

func init() {
	utils.PasswordCost = bcrypt.MinCost
}

type MockAccounts struct {
	mock.Mock
}

func (m *MockAccounts) Login(ctx context.Context, cred account.Credentials) (models.Session, error) {
	args := m.Called(ctx, cred)
	return args.Get(0).(models.Session), args.Error(1)
}

func (m *MockAccounts) Signup(ctx context.Context, in account.NewUser) (models.User, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockAccounts) RegisterWorker(ctx context.Context, in account.NewWorker) (models.Worker, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.Worker), args.Error(1)
}

type fixture struct {
	flow   *Flow
	store  *store.MemoryStore
	events *[]string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	st := store.NewMemoryStore()
	hub := realtime.NewHub()
	events := []string{}
	hub.Subscribe(func(ev realtime.AuthEvent) { events = append(events, ev.ClientID) })
	return fixture{
		flow:   NewFlow(account.NewSimulated(st, 0, 0), session.NewManager(st, hub)),
		store:  st,
		events: &events,
	}
}

func aliSignup() SignupInput {
	return SignupInput{
		Name:            "Ali",
		Email:           "ali@test.com",
		Phone:           "03001234567",
		Password:        "abcdef",
		ConfirmPassword: "abcdef",
		Terms:           true,
	}
}

func TestSignupThenLogin(t *testing.T) {
	ctx := context.Background()
	fx := newFixture(t)

	res, err := fx.flow.Signup(ctx, "c1", aliSignup())
	require.NoError(t, err)
	assert.Equal(t, nav.Home, res.Redirect)
	require.NotNil(t, res.Session)
	assert.Equal(t, models.RoleUser, res.Session.Role)

	users, err := fx.store.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	sess, err := fx.store.Session(ctx, "c1")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, models.RoleUser, sess.Role)
	assert.True(t, sess.LoggedIn)

	_, err = fx.flow.Logout(ctx, "c1")
	require.NoError(t, err)

	res, err = fx.flow.Login(ctx, "c1", LoginInput{Role: "customer", Email: "ali@test.com", Password: "abcdef"})
	require.NoError(t, err)
	assert.Equal(t, nav.Home, res.Redirect)
	assert.Equal(t, []string{"c1", "c1", "c1"}, *fx.events)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Should keep the session when the password is wrong", func(t *testing.T) {
		fx := newFixture(t)
		_, err := fx.flow.Signup(ctx, "c1", aliSignup())
		require.NoError(t, err)
		before, _ := fx.store.Session(ctx, "c1")

		_, err = fx.flow.Login(ctx, "c1", LoginInput{Role: "user", Email: "ali@test.com", Password: "nope!!"})

		fe, ok := account.FieldErrors(err)
		require.True(t, ok)
		assert.Equal(t, account.MsgIncorrectPassword, fe.First("password"))

		after, _ := fx.store.Session(ctx, "c1")
		assert.Equal(t, before, after)
		assert.Len(t, *fx.events, 1, "only the signup notified")
	})

	t.Run("Should validate the identifier before calling the service", func(t *testing.T) {
		accounts := &MockAccounts{}
		flow := NewFlow(accounts, session.NewManager(store.NewMemoryStore(), realtime.NewHub()))

		_, err := flow.Login(ctx, "c1", LoginInput{Role: "user", Email: "not-an-email", Password: ""})
		fe, ok := account.FieldErrors(err)
		require.True(t, ok)
		assert.NotEmpty(t, fe.First("email"))
		assert.Equal(t, "Password is required", fe.First("password"))

		_, err = flow.Login(ctx, "c1", LoginInput{Role: "worker", CNIC: "123", Password: "x"})
		fe, _ = account.FieldErrors(err)
		assert.NotEmpty(t, fe.First("cnic"))

		_, err = flow.Login(ctx, "c1", LoginInput{Role: "worker", Password: "x"})
		fe, _ = account.FieldErrors(err)
		assert.Equal(t, "CNIC is required", fe.First("cnic"))

		accounts.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})

	t.Run("Should send workers to their profile", func(t *testing.T) {
		accounts := &MockAccounts{}
		st := store.NewMemoryStore()
		flow := NewFlow(accounts, session.NewManager(st, realtime.NewHub()))

		accounts.On("Login", mock.Anything, account.Credentials{
			Role: models.RoleWorker, CNIC: "12345-1234567-1", Password: "secret1",
		}).Return(models.Session{Role: models.RoleWorker, FullName: "Bilal"}, nil)

		res, err := flow.Login(ctx, "c1", LoginInput{Role: "worker", CNIC: "12345-1234567-1", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, nav.WorkerProfile, res.Redirect)

		sess, _ := st.Session(ctx, "c1")
		require.NotNil(t, sess)
		assert.Equal(t, models.RoleWorker, sess.Role)
		assert.True(t, sess.LoggedIn)
		accounts.AssertExpectations(t)
	})

	t.Run("Should reject an unknown role", func(t *testing.T) {
		fx := newFixture(t)
		_, err := fx.flow.Login(ctx, "c1", LoginInput{Role: "admin", Email: "a@b.co", Password: "x"})
		fe, ok := account.FieldErrors(err)
		require.True(t, ok)
		assert.True(t, fe.Has("role"))
	})

	t.Run("Should report a missing account on the email field", func(t *testing.T) {
		fx := newFixture(t)
		_, err := fx.flow.Login(ctx, "c1", LoginInput{Email: "ghost@test.com", Password: "abcdef"})
		fe, ok := account.FieldErrors(err)
		require.True(t, ok)
		assert.Equal(t, account.MsgUserNotFound, fe.First("email"))
	})
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("Should report every invalid field", func(t *testing.T) {
		fx := newFixture(t)
		_, err := fx.flow.Signup(ctx, "c1", SignupInput{Name: "  ", Email: "bad", Password: "abc", ConfirmPassword: "abd"})

		fe, ok := account.FieldErrors(err)
		require.True(t, ok)
		assert.Equal(t, "Full name is required", fe.First("name"))
		assert.Equal(t, "Please enter a valid email", fe.First("email"))
		assert.Equal(t, "Phone number is required", fe.First("phone"))
		assert.Equal(t, "Password must be at least 6 characters", fe.First("password"))
		assert.Equal(t, "Passwords do not match", fe.First("confirmPassword"))
		assert.Equal(t, "You must agree to the terms", fe.First("terms"))

		users, _ := fx.store.Users(ctx)
		assert.Empty(t, users)
	})

	t.Run("Should reject a password bcrypt cannot hash", func(t *testing.T) {
		fx := newFixture(t)
		in := aliSignup()
		in.Password = strings.Repeat("a", 80)
		in.ConfirmPassword = in.Password

		_, err := fx.flow.Signup(ctx, "c1", in)

		fe, ok := account.FieldErrors(err)
		require.True(t, ok)
		assert.Equal(t, "Password must be at most 72 characters", fe.First("password"))
		users, _ := fx.store.Users(ctx)
		assert.Empty(t, users)
	})

	t.Run("Should reject an existing email", func(t *testing.T) {
		fx := newFixture(t)
		_, err := fx.flow.Signup(ctx, "c1", aliSignup())
		require.NoError(t, err)

		_, err = fx.flow.Signup(ctx, "c2", aliSignup())
		fe, ok := account.FieldErrors(err)
		require.True(t, ok)
		assert.Equal(t, account.MsgAccountExists, fe.First("email"))

		sess, _ := fx.store.Session(ctx, "c2")
		assert.Nil(t, sess)
	})

	t.Run("Should redirect worker signups to the wizard", func(t *testing.T) {
		fx := newFixture(t)
		res, err := fx.flow.Signup(ctx, "c1", SignupInput{Role: "worker"})
		require.NoError(t, err)
		assert.Equal(t, nav.BecomeWorker, res.Redirect)
		assert.Nil(t, res.Session)
		assert.Empty(t, *fx.events)
	})
}
