package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

// CookieSessionName is the gorilla session that holds the session user in
// the web UI.
const CookieSessionName = "unisocial-session"

// CookieBackend stores values in a gorilla session, saving the cookie on
// every write. It is bound to one request/response pair.
type CookieBackend struct {
	sess *sessions.Session
	r    *http.Request
	w    http.ResponseWriter
}

// NewCookieBackend wraps a session obtained for the current request.
func NewCookieBackend(sess *sessions.Session, r *http.Request, w http.ResponseWriter) *CookieBackend {
	return &CookieBackend{sess: sess, r: r, w: w}
}

func (b *CookieBackend) Get(key string) ([]byte, bool, error) {
	v, ok := b.sess.Values[key]
	if !ok {
		return nil, false, nil
	}
	s, ok := v.(string)
	if !ok {
		// Not something this package wrote; surface it as undecodable.
		return []byte{0}, true, nil
	}
	return []byte(s), true, nil
}

func (b *CookieBackend) Set(key string, value []byte) error {
	b.sess.Values[key] = string(value)
	return b.sess.Save(b.r, b.w)
}

func (b *CookieBackend) Remove(key string) error {
	if _, ok := b.sess.Values[key]; !ok {
		return nil
	}
	delete(b.sess.Values, key)
	return b.sess.Save(b.r, b.w)
}
