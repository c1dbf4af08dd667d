// Package notify carries transient user-facing notifications (toasts) from
// the managers to the UI.
package notify

import (
	"context"
	"sync"
)

// Kind is the toast severity.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// Toast is a transient, auto-dismissing notification.
type Toast struct {
	Message string `json:"message"`
	Kind    Kind   `json:"kind"`
}

// Icon returns the glyph shown next to the message.
func (t Toast) Icon() string {
	switch t.Kind {
	case KindSuccess:
		return "✓"
	case KindError:
		return "✕"
	case KindWarning:
		return "!"
	default:
		return "i"
	}
}

func Success(msg string) Toast { return Toast{Message: msg, Kind: KindSuccess} }
func Error(msg string) Toast   { return Toast{Message: msg, Kind: KindError} }
func Warning(msg string) Toast { return Toast{Message: msg, Kind: KindWarning} }
func Info(msg string) Toast    { return Toast{Message: msg, Kind: KindInfo} }

// Notifier delivers toasts. Implementations must be safe for concurrent use.
type Notifier interface {
	Notify(ctx context.Context, t Toast)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, t Toast)

func (f NotifierFunc) Notify(ctx context.Context, t Toast) { f(ctx, t) }

// Discard drops every toast.
var Discard Notifier = NotifierFunc(func(context.Context, Toast) {})

// Recorder keeps toasts in memory. The web UI uses one per request to collect
// toasts for the flash, tests use it to assert on them.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Notify(_ context.Context, t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, t)
}

// Toasts returns a copy of what has been recorded.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Last returns the most recent toast, if any.
func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}

// Drain returns the recorded toasts and forgets them.
func (r *Recorder) Drain() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.toasts
	r.toasts = nil
	return out
}
