// Package session owns the current-user identity and the credential
// lifecycle. The controller is a three-state machine (unauthenticated,
// resolving, authenticated); every transition is a single attempt with no
// retries and no background refresh.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"querydesk/internal/credstore"
	"querydesk/internal/logger"
	"querydesk/pkg/querytypes"
)

// ErrNotAuthenticated is returned by RequireUser when no user is resolved.
var ErrNotAuthenticated = errors.New("not authenticated")

// State is the session controller's lifecycle state.
type State int

// Session states. The controller starts in StateResolving when a credential
// exists at startup, otherwise StateUnauthenticated.
const (
	StateUnauthenticated State = iota
	StateResolving
	StateAuthenticated
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateResolving:
		return "resolving"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Gateway is the slice of the API surface the controller depends on.
// *api.Client satisfies it.
type Gateway interface {
	Register(ctx context.Context, req querytypes.RegisterRequest) (*querytypes.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	CurrentUser(ctx context.Context) (*querytypes.User, error)
}

// Controller manages authentication state. Safe for concurrent use; network
// calls run outside the lock so accessors never block on the backend.
type Controller struct {
	mu      sync.Mutex
	state   State
	user    *querytypes.User
	creds   credstore.Store
	gateway Gateway
	log     *log.Logger
}

// NewController creates a session controller. Initial state is resolving if
// a credential is already stored, else unauthenticated.
func NewController(gateway Gateway, creds credstore.Store) *Controller {
	state := StateUnauthenticated
	if _, ok := creds.Token(); ok {
		state = StateResolving
	}
	return &Controller{
		state:   state,
		creds:   creds,
		gateway: gateway,
		log:     logger.NewStyledLogger("Session"),
	}
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentUser returns the resolved user, or nil when not authenticated.
func (c *Controller) CurrentUser() *querytypes.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// RequireUser returns the resolved user or ErrNotAuthenticated.
func (c *Controller) RequireUser() (*querytypes.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateAuthenticated || c.user == nil {
		return nil, ErrNotAuthenticated
	}
	return c.user, nil
}

// Resolve performs the startup transition: a stored credential is exchanged
// for a user profile, and any failure discards the credential. Stale and
// malformed tokens are treated identically. Calling Resolve in any state but
// resolving is a no-op.
func (c *Controller) Resolve(ctx context.Context) {
	c.mu.Lock()
	if c.state != StateResolving {
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	user, err := c.gateway.CurrentUser(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.log.Warn("Stored credential rejected, discarding", "error", err)
		if clearErr := c.creds.Clear(); clearErr != nil {
			c.log.Error("Failed to clear credential", "error", clearErr)
		}
		c.transition(StateUnauthenticated, "profile resolution failed")
		c.user = nil
		return
	}
	c.user = user
	c.transition(StateAuthenticated, "profile resolved")
}

// Login exchanges credentials for a token, stores it, and resolves the
// profile. A login whose profile fetch fails is reported as a login failure
// and the freshly stored credential is rolled back, so the controller never
// holds a credential it could not resolve.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	token, err := c.gateway.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := c.creds.Save(token); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	user, err := c.gateway.CurrentUser(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if clearErr := c.creds.Clear(); clearErr != nil {
			c.log.Error("Failed to roll back credential", "error", clearErr)
		}
		c.transition(StateUnauthenticated, "post-login profile fetch failed")
		c.user = nil
		return fmt.Errorf("login failed: %w", err)
	}
	c.user = user
	c.transition(StateAuthenticated, "login succeeded")
	return nil
}

// Register creates an account and then performs the full login transition
// with the same credentials. A registration success followed by a login
// failure surfaces the login failure.
func (c *Controller) Register(ctx context.Context, req querytypes.RegisterRequest) error {
	if _, err := c.gateway.Register(ctx, req); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	return c.Login(ctx, req.Username, req.Password)
}

// Logout discards the credential and clears the user. Idempotent.
func (c *Controller) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.creds.Clear(); err != nil {
		c.log.Error("Failed to clear credential", "error", err)
	}
	c.user = nil
	c.transition(StateUnauthenticated, "logout")
}

// transition must be called with the lock held.
func (c *Controller) transition(to State, reason string) {
	if c.state != to {
		logger.SessionTransition(c.state.String(), to.String(), reason)
	}
	c.state = to
}
