package session

import (
	"context"
	"testing"

	"github.com/abubakar20-02/Flight-Management-System/internal/gateway"
	"github.com/abubakar20-02/Flight-Management-System/internal/gateway/mocks"
	"github.com/abubakar20-02/Flight-Management-System/internal/identity"
	"github.com/abubakar20-02/Flight-Management-System/internal/models"
	"github.com/abubakar20-02/Flight-Management-System/internal/validation"
	"github.com/abubakar20-02/Flight-Management-System/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*Router, *mocks.MockAPI, *identity.Store) {
	t.Helper()
	store, err := identity.NewStore(context.Background(), identity.NewMemoryStorage())
	require.NoError(t, err)
	api := new(mocks.MockAPI)
	return NewRouter(store, api, logger.Discard()), api, store
}

func validTraveler() models.Traveler {
	return models.Traveler{
		Username:        "jsmith",
		FirstName:       "John",
		Surname:         "Smith",
		HomeAddress:     "1 High St",
		WorkAddress:     "2 Low St",
		HomePhoneNumber: "0111",
		WorkPhoneNumber: "0222",
		Password:        "secret",
		ConfirmPassword: "secret",
	}
}

func TestLogin_AdminCredentialsSkipGateway(t *testing.T) {
	router, api, store := newTestRouter(t)

	tr, err := router.Login(context.Background(), models.Credentials{Username: "admin", Password: "admin"})
	require.NoError(t, err)

	assert.Equal(t, identity.RoleAdmin, tr.To.Role())
	assert.Equal(t, LandingAdmin, tr.Landing)
	assert.True(t, tr.From.IsAnonymous())
	assert.Equal(t, identity.Admin(), store.Get())
	api.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestLogin_AdminUsernameWrongPasswordGoesRemote(t *testing.T) {
	router, api, store := newTestRouter(t)
	creds := models.Credentials{Username: "admin", Password: "nope"}
	api.On("Login", mock.Anything, creds).
		Return(nil, &gateway.RemoteRejection{Status: 401, Message: "Username or password incorrect"})

	_, err := router.Login(context.Background(), creds)
	require.Error(t, err)
	assert.Equal(t, "Username or password incorrect", err.Error())
	assert.True(t, store.Get().IsAnonymous())
	api.AssertExpectations(t)
}

func TestLogin_TravelerStoresUsername(t *testing.T) {
	router, api, store := newTestRouter(t)
	creds := models.Credentials{Username: "jsmith", Password: "pw"}
	api.On("Login", mock.Anything, creds).Return(&models.LoginResponse{
		MessageResponse: models.MessageResponse{Message: "Login successful"},
		Username:        "jsmith",
	}, nil)

	tr, err := router.Login(context.Background(), creds)
	require.NoError(t, err)

	assert.Equal(t, LandingTraveler, tr.Landing)
	assert.Equal(t, "Login successful", tr.Message)
	id, ok := store.Get().PassengerID()
	assert.True(t, ok)
	assert.Equal(t, "jsmith", id)
}

func TestLogin_EmptyUsernameInResponse(t *testing.T) {
	router, api, store := newTestRouter(t)
	api.On("Login", mock.Anything, mock.Anything).Return(&models.LoginResponse{}, nil)

	_, err := router.Login(context.Background(), models.Credentials{Username: "x", Password: "y"})
	var failure *gateway.TransportFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, gateway.FallbackLogin, err.Error())
	assert.True(t, store.Get().IsAnonymous())
}

func TestLogin_WhileSignedIn(t *testing.T) {
	router, api, store := newTestRouter(t)
	require.NoError(t, store.Put(context.Background(), identity.Traveler("jsmith")))

	_, err := router.Login(context.Background(), models.Credentials{Username: "admin", Password: "admin"})
	assert.ErrorIs(t, err, ErrAlreadySignedIn)
	assert.Equal(t, "already signed in as traveler(jsmith)", err.Error())
	assert.Equal(t, identity.RoleTraveler, store.Get().Role())
	api.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestSignup_WhileSignedIn(t *testing.T) {
	router, api, store := newTestRouter(t)
	require.NoError(t, store.Put(context.Background(), identity.Admin()))

	_, err := router.Signup(context.Background(), validTraveler())
	assert.ErrorIs(t, err, ErrAlreadySignedIn)
	assert.Equal(t, "already signed in as admin", err.Error())
	api.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestSignup_PasswordMismatchIsLocal(t *testing.T) {
	router, api, store := newTestRouter(t)
	traveler := validTraveler()
	traveler.ConfirmPassword = "other"

	_, err := router.Signup(context.Background(), traveler)
	require.Error(t, err)
	assert.ErrorIs(t, err, validation.ErrValidation)
	assert.Equal(t, "Passwords do not match", err.Error())
	assert.True(t, store.Get().IsAnonymous())
	api.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestSignup_MissingFieldIsLocal(t *testing.T) {
	router, api, _ := newTestRouter(t)
	traveler := validTraveler()
	traveler.Surname = ""

	_, err := router.Signup(context.Background(), traveler)
	assert.ErrorIs(t, err, validation.ErrValidation)
	assert.Equal(t, "Surname is required", err.Error())
	api.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
}

func TestSignup_StoresReturnedID(t *testing.T) {
	router, api, store := newTestRouter(t)
	traveler := validTraveler()
	api.On("Signup", mock.Anything, traveler).Return(&models.Receipt{
		Message: "Passenger and contact added successfully",
		ID:      "17",
	}, nil)

	tr, err := router.Signup(context.Background(), traveler)
	require.NoError(t, err)
	assert.Equal(t, LandingTraveler, tr.Landing)
	assert.Equal(t, identity.Traveler("17"), store.Get())
	api.AssertExpectations(t)
}

func TestSignup_RemoteRejectionKeepsAnonymous(t *testing.T) {
	router, api, store := newTestRouter(t)
	api.On("Signup", mock.Anything, mock.Anything).
		Return(nil, &gateway.RemoteRejection{Status: 500, Message: "UNIQUE constraint failed: passenger.username"})

	_, err := router.Signup(context.Background(), validTraveler())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE")
	assert.True(t, store.Get().IsAnonymous())
}

func TestSignup_NoIDUsesFallback(t *testing.T) {
	router, api, store := newTestRouter(t)
	api.On("Signup", mock.Anything, mock.Anything).Return(&models.Receipt{Message: "ok"}, nil)

	_, err := router.Signup(context.Background(), validTraveler())
	require.Error(t, err)
	assert.Equal(t, "An error occurred", err.Error())
	assert.True(t, store.Get().IsAnonymous())
}

func TestEnter(t *testing.T) {
	tests := []struct {
		name    string
		session identity.Session
		want    Landing
	}{
		{"anonymous stays", identity.Anonymous(), LandingEntry},
		{"traveler redirected", identity.Traveler("jsmith"), LandingTraveler},
		{"admin redirected", identity.Admin(), LandingAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _, store := newTestRouter(t)
			require.NoError(t, store.Put(context.Background(), tt.session))

			tr := router.Enter()
			assert.Equal(t, tt.want, tr.Landing)
			assert.Equal(t, tt.want != LandingEntry, tr.Redirected())
			assert.Equal(t, tt.session, tr.To)
		})
	}
}

func TestLogout(t *testing.T) {
	router, _, store := newTestRouter(t)
	require.NoError(t, store.Put(context.Background(), identity.Admin()))

	tr, err := router.Logout(context.Background())
	require.NoError(t, err)
	assert.Equal(t, identity.Admin(), tr.From)
	assert.True(t, tr.To.IsAnonymous())
	assert.Equal(t, LandingEntry, tr.Landing)
	assert.True(t, store.Get().IsAnonymous())
	assert.Equal(t, LandingEntry, router.Enter().Landing)
}

func TestRequire(t *testing.T) {
	router, _, store := newTestRouter(t)

	_, err := router.Require(identity.RoleAdmin)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, store.Put(context.Background(), identity.Traveler("jsmith")))
	s, err := router.Require(identity.RoleTraveler, identity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, identity.RoleTraveler, s.Role())

	_, err = router.Require(identity.RoleAdmin)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Contains(t, err.Error(), "requires admin")
}
