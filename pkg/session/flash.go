package session

import (
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/ghuser/recipelog/pkg/notify"
)

// Name is the cookie name of the application session.
const Name = "recipelog_session"

const noticesKey = "notices"

func init() {
	gob.Register(notify.Notice{})
}

// Flash queues notices on the session so they render on the next page load.
type Flash struct {
	store sessions.Store
}

// NewFlash wraps store.
func NewFlash(store sessions.Store) *Flash {
	return &Flash{store: store}
}

// Add appends n to the pending notices and saves the session.
func (f *Flash) Add(w http.ResponseWriter, r *http.Request, n notify.Notice) error {
	sess, err := f.store.Get(r, Name)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	sess.AddFlash(n, noticesKey)
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Pop returns and clears the pending notices. Values of any other type are
// discarded.
func (f *Flash) Pop(w http.ResponseWriter, r *http.Request) ([]notify.Notice, error) {
	sess, err := f.store.Get(r, Name)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	raw := sess.Flashes(noticesKey)
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]notify.Notice, 0, len(raw))
	for _, v := range raw {
		if n, ok := v.(notify.Notice); ok {
			out = append(out, n)
		}
	}
	if err := sess.Save(r, w); err != nil {
		return out, fmt.Errorf("save session: %w", err)
	}
	return out, nil
}
