// Package notify implements the transient toast queue. Toasts are created
// on demand, become visible after a short delay so the UI can animate them
// in, and remove themselves after a fixed display duration. Several toasts
// may be live at once, each with an independent timer.
package notify

import (
	"time"

	"github.com/google/uuid"

	"mediswift/internal/config"
	"mediswift/internal/logging"
)

// Severity classifies a toast.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Icon returns the single-rune marker rendered before the message.
func (s Severity) Icon() string {
	switch s {
	case SeveritySuccess:
		return "✓"
	case SeverityError:
		return "✕"
	case SeverityWarning:
		return "⚠"
	default:
		return "ℹ"
	}
}

// Toast is one queued notification.
type Toast struct {
	ID        string
	Message   string
	Severity  Severity
	CreatedAt time.Time
	// VisibleAt is when the toast transitions to its shown state.
	VisibleAt time.Time
	// ExpiresAt is when the toast auto-dismisses.
	ExpiresAt time.Time
}

// Visible reports whether the toast has finished its show delay at now.
func (t Toast) Visible(now time.Time) bool {
	return !now.Before(t.VisibleAt)
}

// Center owns the live toast queue, ordered by creation.
type Center struct {
	cfg    config.NotifyConfig
	toasts []Toast
	now    func() time.Time
}

// NewCenter builds a toast center with the given timings.
func NewCenter(cfg config.NotifyConfig) *Center {
	return &Center{cfg: cfg, now: time.Now}
}

// SetClock overrides the time source, for tests.
func (c *Center) SetClock(now func() time.Time) { c.now = now }

// Push enqueues a toast and returns it.
func (c *Center) Push(message string, severity Severity) Toast {
	now := c.now()
	t := Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		VisibleAt: now.Add(c.cfg.ShowDelay()),
		ExpiresAt: now.Add(c.cfg.ShowDelay() + c.cfg.DisplayDuration() + c.cfg.FadeDuration()),
	}
	c.toasts = append(c.toasts, t)
	logging.Notify("Toast [%s] %s", severity, message)
	return t
}

// Active returns the toasts that are still live at now, oldest first.
func (c *Center) Active() []Toast {
	now := c.now()
	out := make([]Toast, 0, len(c.toasts))
	for _, t := range c.toasts {
		if now.Before(t.ExpiresAt) {
			out = append(out, t)
		}
	}
	return out
}

// Expire drops every toast whose lifetime has passed and reports how many
// were removed.
func (c *Center) Expire() int {
	now := c.now()
	kept := c.toasts[:0]
	removed := 0
	for _, t := range c.toasts {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		} else {
			removed++
		}
	}
	c.toasts = kept
	return removed
}

// Dismiss removes the toast with the given id. Unknown ids are a no-op:
// the container may have been cleared while a timer was in flight.
func (c *Center) Dismiss(id string) {
	for i, t := range c.toasts {
		if t.ID == id {
			c.toasts = append(c.toasts[:i], c.toasts[i+1:]...)
			return
		}
	}
}

// ClearAll drops every queued toast.
func (c *Center) ClearAll() {
	c.toasts = nil
}

// NextExpiry returns the soonest expiry among live toasts, for scheduling
// the next UI tick. ok is false when the queue is empty.
func (c *Center) NextExpiry() (time.Time, bool) {
	var soonest time.Time
	found := false
	for _, t := range c.toasts {
		if !found || t.ExpiresAt.Before(soonest) {
			soonest = t.ExpiresAt
			found = true
		}
	}
	return soonest, found
}
