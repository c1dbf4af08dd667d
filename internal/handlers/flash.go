package handlers

import (
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/nfrund/unisocial/internal/notify"
)

const (
	flashSessionName = "flash-session"
	flashKeyToast    = "toast"
)

// AddFlashes queues toasts for the next page render, typically across a
// redirect.
func AddFlashes(c echo.Context, toasts ...notify.Toast) {
	if len(toasts) == 0 {
		return
	}
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return
	}
	for _, t := range toasts {
		sess.AddFlash(string(t.Kind)+":"+t.Message, flashKeyToast)
	}
	_ = sess.Save(c.Request(), c.Response())
}

// Flashes retrieves and clears the queued toasts, oldest first.
func Flashes(c echo.Context) []notify.Toast {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return nil
	}
	raw := sess.Flashes(flashKeyToast)
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(c.Request(), c.Response())

	toasts := make([]notify.Toast, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		kind, msg, found := strings.Cut(s, ":")
		if !found {
			toasts = append(toasts, notify.Info(s))
			continue
		}
		toasts = append(toasts, notify.Toast{Kind: notify.Kind(kind), Message: msg})
	}
	return toasts
}
