package session

import (
	"context"
	"sync"

	"github.com/leadgrid/console/pkg/logger"
	"github.com/leadgrid/console/pkg/permission"
)

// Manager owns the session credential lifecycle and drives the permission
// store. It is the only component that touches the raw token; everything
// else queries the derived permission set.
type Manager struct {
	api      AuthAPI
	storage  CredentialStorage
	store    *permission.Store
	log      logger.LogManager
	onLogout func()

	mu    sync.Mutex
	token string
	user  User
}

// ManagerConfig wires a Manager.
type ManagerConfig struct {
	API     AuthAPI
	Storage CredentialStorage
	Store   *permission.Store
	Log     logger.LogManager

	// OnLogout runs exactly once per Logout call, after session state is
	// cleared. The console uses it to navigate away from protected views.
	OnLogout func()
}

// NewManager creates a Manager. If a persisted credential exists it is
// decoded eagerly to restore user identity, but the permission store is
// NOT repopulated from persisted state: only Login feeds the store, so a
// restart holds no effective permissions until the session re-validates.
func NewManager(ctx context.Context, cfg ManagerConfig) *Manager {
	m := &Manager{
		api:      cfg.API,
		storage:  cfg.Storage,
		store:    cfg.Store,
		log:      cfg.Log,
		onLogout: cfg.OnLogout,
	}
	if m.store == nil {
		m.store = permission.NewStore()
	}
	if m.log == nil {
		m.log = logger.NewNop()
	}

	if m.storage != nil {
		token, err := m.storage.Load(ctx)
		switch {
		case err != nil:
			m.log.WarnF("session: load persisted credential: %v", err)
		case token != "":
			m.token = token
			m.user = DecodeToken(token, m.log)
			// Identity is restored but the permission store stays
			// empty until the next explicit login.
			m.log.WarnF("session: restored persisted credential for %q; permission store not repopulated until login", m.user.Subject)
		}
	}

	return m
}

// Store returns the permission store driven by this manager.
func (m *Manager) Store() *permission.Store { return m.store }

// Token returns the in-memory bearer token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// CurrentUser returns the identity decoded from the active credential.
func (m *Manager) CurrentUser() User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Login sends credentials to the authentication endpoint. On a payload
// carrying a token it persists the token, decodes it and replaces the
// permission store contents. Transport errors propagate unchanged and
// leave the store untouched, so any existing permissions stay
// authoritative until an explicit logout.
func (m *Manager) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	resp, err := m.api.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	if resp.Token == "" {
		m.log.WarnF("session: login response carried no token; permission state unchanged")
		return resp, nil
	}

	if m.storage != nil {
		if err := m.storage.Save(ctx, resp.Token); err != nil {
			// The in-memory session still works; only restart recovery
			// is degraded.
			m.log.WarnF("session: persist credential: %v", err)
		}
	}

	user := DecodeToken(resp.Token, m.log)

	m.mu.Lock()
	m.token = resp.Token
	m.user = user
	m.mu.Unlock()

	m.store.Replace(user.Permissions)
	m.log.InfoF("session: login for %q granted %d permissions", user.Subject, len(user.Permissions))
	return resp, nil
}

// Logout clears the in-memory credential and user info, deletes the
// persisted token, empties the permission store, and invokes the logout
// hook exactly once.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.token = ""
	m.user = User{}
	m.mu.Unlock()

	if m.storage != nil {
		if err := m.storage.Clear(ctx); err != nil {
			m.log.WarnF("session: clear persisted credential: %v", err)
		}
	}

	m.store.Replace(nil)

	if m.onLogout != nil {
		m.onLogout()
	}
}
