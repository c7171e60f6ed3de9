package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Fubuki233/WebAppDev-Ca-sub001/domain/access"
)

// Session is the per-request view of a stored session. A zero ID means none exists.
type Session struct {
	ID   string
	Data Data
}

func (s *Session) Identity() access.Identity {
	if s == nil || s.ID == "" {
		return access.Anonymous()
	}
	return s.Data.Identity()
}

// Options control the session cookie.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Manager ties the cookie to the store.
type Manager struct {
	store Store
	opts  Options
}

func NewManager(store Store, opts Options) *Manager {
	return &Manager{store: store, opts: opts}
}

// Load reads the session named by the request cookie. Missing or expired
// sessions yield an empty Session, not an error.
func (m *Manager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(m.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return &Session{}, nil
	}

	data, found, err := m.store.Get(ctx, cookie.Value)
	if err != nil {
		return nil, err
	}
	if !found {
		return &Session{}, nil
	}
	return &Session{ID: cookie.Value, Data: data}, nil
}

// Start binds identity to a fresh session id, discarding prev if set.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, prev *Session, identity access.Identity) (*Session, error) {
	if prev != nil && prev.ID != "" {
		if err := m.store.Delete(ctx, prev.ID); err != nil {
			return nil, err
		}
	}

	s := &Session{ID: uuid.NewString(), Data: DataFor(identity)}
	if err := m.store.Save(ctx, s.ID, s.Data); err != nil {
		return nil, err
	}
	m.setCookie(w, s.ID, int(m.opts.TTL.Seconds()))
	return s, nil
}

// Destroy removes the session and clears the cookie. Safe on empty sessions.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, s *Session) error {
	m.setCookie(w, "", -1)
	if s == nil || s.ID == "" {
		return nil
	}
	id := s.ID
	s.ID, s.Data = "", Data{}
	return m.store.Delete(ctx, id)
}

func (m *Manager) setCookie(w http.ResponseWriter, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
