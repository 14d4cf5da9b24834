package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abubakar20-02/Flight-Management-System/internal/gateway"
	"github.com/abubakar20-02/Flight-Management-System/internal/identity"
	"github.com/abubakar20-02/Flight-Management-System/internal/models"
	"github.com/abubakar20-02/Flight-Management-System/internal/validation"
	"github.com/abubakar20-02/Flight-Management-System/pkg/logger"
)

var (
	ErrAlreadySignedIn = errors.New("already signed in")
	ErrForbidden       = errors.New("not available for this session")
)

// Reserved administrator credentials, checked before any network call.
const (
	adminUsername = "admin"
	adminPassword = "admin"
)

// Landing is the screen a session arrives on.
type Landing string

const (
	LandingEntry    Landing = "entry"
	LandingTraveler Landing = "traveler-dashboard"
	LandingAdmin    Landing = "admin-dashboard"
)

// LandingFor returns the home screen of a session's role.
func LandingFor(s identity.Session) Landing {
	switch s.Role() {
	case identity.RoleAdmin:
		return LandingAdmin
	case identity.RoleTraveler:
		return LandingTraveler
	default:
		return LandingEntry
	}
}

// Transition describes a move between session states.
type Transition struct {
	From    identity.Session
	To      identity.Session
	Landing Landing
	Message string
}

// Redirected reports whether the transition leaves the entry screen.
func (t Transition) Redirected() bool { return t.Landing != LandingEntry }

// Router is the only writer of the identity store.
type Router struct {
	store  *identity.Store
	api    gateway.API
	logger *logger.Logger

	login  *gateway.Guard
	signup *gateway.Guard
}

func NewRouter(store *identity.Store, api gateway.API, log *logger.Logger) *Router {
	return &Router{
		store:  store,
		api:    api,
		logger: log,
		login:  gateway.NewGuard(),
		signup: gateway.NewGuard(),
	}
}

// Current returns the live session.
func (r *Router) Current() identity.Session { return r.store.Get() }

// Enter resolves where the entry screen sends the current session.
func (r *Router) Enter() Transition {
	s := r.store.Get()
	return Transition{From: s, To: s, Landing: LandingFor(s)}
}

// Require returns the current session if its role is one of roles.
func (r *Router) Require(roles ...identity.Role) (identity.Session, error) {
	s := r.store.Get()
	for _, role := range roles {
		if s.Role() == role {
			return s, nil
		}
	}

	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = role.String()
	}
	return s, fmt.Errorf("%w: requires %s, signed in as %s", ErrForbidden, strings.Join(names, " or "), s.Role())
}

// Login signs in with creds. The reserved admin pair never reaches the API.
func (r *Router) Login(ctx context.Context, creds models.Credentials) (Transition, error) {
	from := r.store.Get()
	if !from.IsAnonymous() {
		return Transition{}, fmt.Errorf("%w as %s", ErrAlreadySignedIn, from)
	}

	var t Transition
	err := r.login.Do(func() error {
		s, message, err := r.authenticate(ctx, creds)
		if err != nil {
			return err
		}
		if err := r.store.Put(ctx, s); err != nil {
			return err
		}
		t = Transition{From: from, To: s, Landing: LandingFor(s), Message: message}
		return nil
	})
	if err != nil {
		r.logger.Info("Login for %q failed: %v", creds.Username, err)
		return Transition{}, err
	}

	r.logger.Info("Signed in as %s", t.To)
	return t, nil
}

func (r *Router) authenticate(ctx context.Context, creds models.Credentials) (identity.Session, string, error) {
	if creds.Username == adminUsername && creds.Password == adminPassword {
		return identity.Admin(), "Login successful", nil
	}

	resp, err := r.api.Login(ctx, creds)
	if err != nil {
		return identity.Anonymous(), "", err
	}

	s := identity.Traveler(resp.Username)
	if s.IsAnonymous() {
		return s, "", &gateway.TransportFailure{
			Fallback: gateway.FallbackLogin,
			Err:      errors.New("login response carried no username"),
		}
	}
	return s, resp.Message, nil
}

// Signup registers a traveler and signs them in with the id the API returns.
func (r *Router) Signup(ctx context.Context, traveler models.Traveler) (Transition, error) {
	from := r.store.Get()
	if !from.IsAnonymous() {
		return Transition{}, fmt.Errorf("%w as %s", ErrAlreadySignedIn, from)
	}

	if err := validation.Validate(traveler); err != nil {
		return Transition{}, err
	}

	var t Transition
	err := r.signup.Do(func() error {
		receipt, err := r.api.Signup(ctx, traveler)
		if err != nil {
			return err
		}

		s := identity.Traveler(receipt.ID.String())
		if s.IsAnonymous() {
			return &gateway.TransportFailure{
				Fallback: traveler.Fallback(),
				Err:      errors.New("signup response carried no id"),
			}
		}
		if err := r.store.Put(ctx, s); err != nil {
			return err
		}
		t = Transition{From: from, To: s, Landing: LandingFor(s), Message: receipt.Message}
		return nil
	})
	if err != nil {
		r.logger.Info("Signup for %q failed: %v", traveler.Username, err)
		return Transition{}, err
	}

	r.logger.Info("Registered and signed in as %s", t.To)
	return t, nil
}

// Logout forgets the identity and returns to the entry screen.
func (r *Router) Logout(ctx context.Context) (Transition, error) {
	from := r.store.Get()
	err := r.store.Clear(ctx)
	if err != nil {
		r.logger.Warn("Failed to erase stored identity: %v", err)
	}
	r.logger.Info("Signed out %s", from)
	return Transition{From: from, To: identity.Anonymous(), Landing: LandingEntry, Message: "Logged out"}, err
}
