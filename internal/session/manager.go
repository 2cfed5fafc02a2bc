package session

import (
	"context"
	"strings"

	"swiftpost/internal/apiclient"
	"swiftpost/internal/logger"
	"swiftpost/internal/model"
	"swiftpost/internal/storage"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RecordKey is the storage key of the session record
const RecordKey = "session"

// ErrNoSession is returned when an operation needs a signed-in user
var ErrNoSession = errors.New("no active session")

// Credentials is the login payload of the remote API
type Credentials struct {
	NombreUsuario string `json:"nombre_usuario" binding:"required"`
	Contrasena    string `json:"contraseña" binding:"required"`
}

// Record is the persisted session. Token, user id and serialized user are
// written together in one storage entry so they can never disagree.
type Record struct {
	Token    string `json:"auth_token"`
	UserID   string `json:"user_id"`
	UserData string `json:"user_data"`
}

func (r Record) valid() bool {
	return r.Token != "" && r.UserID != ""
}

// Manager owns the operator session: the persisted record and the current-user cell
type Manager struct {
	store     storage.Storage
	client    *apiclient.Client
	navigator Navigator
	log       *logger.Logger
	current   *Cell[*model.Usuario]
}

// NewManager builds the manager and restores a previously persisted user, if any
func NewManager(ctx context.Context, store storage.Storage, client *apiclient.Client, navigator Navigator, log *logger.Logger) *Manager {
	if navigator == nil {
		navigator = NopNavigator{}
	}
	m := &Manager{
		store:     store,
		client:    client,
		navigator: navigator,
		log:       log,
		current:   NewCell[*model.Usuario](nil),
	}
	m.loadFromStorage(ctx)
	return m
}

// Login posts the credentials and, on success, persists and publishes the returned user.
// Rejected credentials leave storage and the current user untouched.
// The caller must treat an inactive user as a failed login and call Logout.
func (m *Manager) Login(ctx context.Context, creds Credentials) (*model.Usuario, error) {
	var user model.Usuario
	if err := m.client.Post(ctx, "/auth/login", creds, nil, &user); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := json.Marshal(&user)
	if err != nil {
		return nil, errors.Wrap(err, "encode user")
	}
	// the API has no separate token; the user id doubles as bearer token
	rec := Record{Token: user.IDUsuario, UserID: user.IDUsuario, UserData: string(data)}
	if m.store.Available() {
		if err := m.writeRecord(ctx, rec); err != nil {
			return nil, err
		}
	}

	m.current.Set(&user)
	m.log.Infow("operator signed in", "user_id", user.IDUsuario, "user", user.NombreUsuario)
	return &user, nil
}

// Logout clears the persisted session, resets the current user and sends the UI to sign-in
func (m *Manager) Logout(ctx context.Context) {
	m.clear(ctx)
	m.navigator.Navigate(SignInPath, nil)
}

func (m *Manager) clear(ctx context.Context) {
	if m.store.Available() {
		if err := m.store.Delete(context.WithoutCancel(ctx), RecordKey); err != nil {
			m.log.Errorw("failed to clear session record", "error", err)
		}
	}
	m.current.Set(nil)
}

// IsAuthenticated reports whether a token and a user id are persisted
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	if !m.store.Available() {
		return false
	}
	rec, ok, err := m.readRecord(ctx)
	return err == nil && ok && rec.valid()
}

// Interactive reports whether a real storage backend is configured
func (m *Manager) Interactive() bool {
	return m.store.Available()
}

// CurrentUser returns the cached user, reloading it from storage when the cache is empty.
// A corrupt record forces a logout.
func (m *Manager) CurrentUser(ctx context.Context) *model.Usuario {
	if u := m.current.Get(); u != nil {
		return u
	}
	return m.loadFromStorage(ctx)
}

// HasRole compares the current user's role name case-insensitively
func (m *Manager) HasRole(ctx context.Context, name string) bool {
	role := m.CurrentUser(ctx).RoleName()
	return role != "" && strings.EqualFold(role, name)
}

// Credentials returns the bearer token and user id for outgoing requests
func (m *Manager) Credentials(ctx context.Context) (token, userID string, ok bool) {
	if !m.store.Available() {
		return "", "", false
	}
	rec, found, err := m.readRecord(ctx)
	if err != nil || !found || rec.Token == "" {
		return "", "", false
	}
	return rec.Token, rec.UserID, true
}

// Subscribe streams current-user changes, starting with the present value
func (m *Manager) Subscribe() (<-chan *model.Usuario, func()) {
	return m.current.Subscribe()
}

func (m *Manager) loadFromStorage(ctx context.Context) *model.Usuario {
	if !m.store.Available() {
		return nil
	}
	rec, ok, err := m.readRecord(ctx)
	if err != nil {
		m.log.Errorw("corrupt session record, signing out", "error", err)
		m.Logout(ctx)
		return nil
	}
	if !ok || rec.UserData == "" {
		return nil
	}

	var user model.Usuario
	if err := json.Unmarshal([]byte(rec.UserData), &user); err != nil {
		m.log.Errorw("corrupt user data, signing out", "error", err)
		m.Logout(ctx)
		return nil
	}
	m.current.Set(&user)
	return &user
}

func (m *Manager) readRecord(ctx context.Context) (Record, bool, error) {
	raw, ok, err := m.store.Get(ctx, RecordKey)
	if err != nil || !ok {
		return Record{}, false, err
	}
	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Record{}, false, errors.Wrap(err, "decode session record")
	}
	return rec, true, nil
}

func (m *Manager) writeRecord(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Wrap(err, "encode session record")
	}
	return m.store.Set(ctx, RecordKey, string(data))
}
