package webserver

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
)

const sessionName = "minitill"

const (
	keySessionID  = "sid"
	keyAdmin      = "admin"
	keyLastAction = "last_action_ms"
)

// sessionID returns the stable id for this browser session, assigning one
// on first contact. The cart registry is keyed by this id.
func sessionID(c echo.Context) string {
	sess, _ := session.Get(sessionName, c)
	if sid, ok := sess.Values[keySessionID].(string); ok && sid != "" {
		return sid
	}
	sid := uuid.NewString()
	sess.Values[keySessionID] = sid
	_ = sess.Save(c.Request(), c.Response())
	return sid
}

func isAdmin(c echo.Context) bool {
	sess, _ := session.Get(sessionName, c)
	admin, _ := sess.Values[keyAdmin].(bool)
	return admin
}

func setAdmin(c echo.Context, admin bool) {
	sess, _ := session.Get(sessionName, c)
	sess.Values[keyAdmin] = admin
	_ = sess.Save(c.Request(), c.Response())
}

// debounced reports whether this action arrived within the configured
// window of the previous one and should be dropped as a duplicate click.
// The timestamp is refreshed either way. Usability safeguard, not a lock.
func debounced(c echo.Context, window time.Duration) bool {
	sess, _ := session.Get(sessionName, c)
	now := time.Now().UnixMilli()
	last := cast.ToInt64(sess.Values[keyLastAction])
	sess.Values[keyLastAction] = now
	_ = sess.Save(c.Request(), c.Response())
	return last > 0 && now-last < window.Milliseconds()
}

func addFlash(c echo.Context, kind, msg string) {
	sess, _ := session.Get(sessionName, c)
	sess.AddFlash(msg, kind)
	_ = sess.Save(c.Request(), c.Response())
}

// takeFlashes drains the session's pending messages of one kind.
func takeFlashes(c echo.Context, kind string) []string {
	sess, _ := session.Get(sessionName, c)
	raw := sess.Flashes(kind)
	if len(raw) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	var out []string
	for _, f := range raw {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
