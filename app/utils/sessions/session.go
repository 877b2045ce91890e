package sessions

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionCookieName = "shopstreet-session"

	userIDSessionKey  = "userID"
	cartKeySessionKey = "cartKey"
)

// SessionStore keeps the two identity keys of a browser session: the logged
// in user id, and the anonymous cart key used before login.
type SessionStore interface {
	GetUserID(r *http.Request) string
	SetUserID(w http.ResponseWriter, r *http.Request, userID string) error
	ClearUserID(w http.ResponseWriter, r *http.Request) error

	// EnsureCartKey returns the session's cart key, establishing one as a
	// side effect when the session has none yet.
	EnsureCartKey(w http.ResponseWriter, r *http.Request) (string, error)
	PeekCartKey(r *http.Request) string
}

type CookieSessionStore struct {
	store *sessions.CookieStore
}

func NewCookieSessionStore(secure bool, keyPairs ...[]byte) *CookieSessionStore {
	store := sessions.NewCookieStore(keyPairs...)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(30 * 24 * time.Hour / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieSessionStore{store: store}
}

func (c *CookieSessionStore) getSession(r *http.Request) *sessions.Session {
	// Get returns a fresh session when decoding fails; a stale or
	// tampered cookie degrades to an anonymous session.
	session, _ := c.store.Get(r, sessionCookieName)
	return session
}

func (c *CookieSessionStore) GetUserID(r *http.Request) string {
	session := c.getSession(r)
	userID, _ := session.Values[userIDSessionKey].(string)
	return userID
}

func (c *CookieSessionStore) SetUserID(w http.ResponseWriter, r *http.Request, userID string) error {
	session := c.getSession(r)
	session.Values[userIDSessionKey] = userID
	return session.Save(r, w)
}

func (c *CookieSessionStore) ClearUserID(w http.ResponseWriter, r *http.Request) error {
	session := c.getSession(r)
	delete(session.Values, userIDSessionKey)
	return session.Save(r, w)
}

func (c *CookieSessionStore) EnsureCartKey(w http.ResponseWriter, r *http.Request) (string, error) {
	session := c.getSession(r)
	if key, ok := session.Values[cartKeySessionKey].(string); ok && key != "" {
		return key, nil
	}
	key := uuid.New().String()
	session.Values[cartKeySessionKey] = key
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return key, nil
}

func (c *CookieSessionStore) PeekCartKey(r *http.Request) string {
	session := c.getSession(r)
	key, _ := session.Values[cartKeySessionKey].(string)
	return key
}
