package web

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
)

// cookieStore adapts one request's cookie session to session.Store.
//
// Writes are buffered on the session and sent by flush, which must run before the response body.
type cookieStore struct {
	sess   *sessions.Session
	maxAge int
	dirty  bool
}

func (c *cookieStore) Get(_ context.Context, key string) (string, error) {
	value, _ := c.sess.Values[key].(string)
	return value, nil
}

func (c *cookieStore) Set(_ context.Context, key, value string) error {
	c.sess.Values[key] = value
	c.sess.Options.MaxAge = c.maxAge
	c.dirty = true
	return nil
}

// Delete removes key. Once the session is empty the cookie is expired.
func (c *cookieStore) Delete(_ context.Context, key string) error {
	delete(c.sess.Values, key)
	if len(c.sess.Values) == 0 {
		c.sess.Options.MaxAge = -1
	}
	c.dirty = true
	return nil
}

// addFlash queues a message for the next page that reads flashes.
func (c *cookieStore) addFlash(msg string) {
	c.sess.AddFlash(msg)
	c.dirty = true
}

// flashes pops queued messages.
func (c *cookieStore) flashes() []string {
	values := c.sess.Flashes()
	if len(values) == 0 {
		return nil
	}
	c.dirty = true
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// flush writes the cookie when the session changed.
func (c *cookieStore) flush(w http.ResponseWriter, r *http.Request) error {
	if !c.dirty {
		return nil
	}
	c.dirty = false
	return c.sess.Save(r, w)
}
