package notify

import (
	"testing"
	"time"

	"mediswift/internal/config"
)

func testCenter() (*Center, *time.Time) {
	cfg := config.NotifyConfig{ShowDelayMs: 10, DisplayDurationMs: 3000, FadeDurationMs: 300}
	c := NewCenter(cfg)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	c.SetClock(func() time.Time { return now })
	return c, &now
}

func TestPushAndActiveOrder(t *testing.T) {
	c, _ := testCenter()
	first := c.Push("first", SeverityInfo)
	second := c.Push("second", SeveritySuccess)

	active := c.Active()
	if len(active) != 2 {
		t.Fatalf("active = %d toasts, want 2", len(active))
	}
	if active[0].ID != first.ID || active[1].ID != second.ID {
		t.Error("active toasts not in creation order")
	}
}

func TestToastVisibilityDelay(t *testing.T) {
	c, now := testCenter()
	tst := c.Push("hello", SeverityInfo)

	if tst.Visible(*now) {
		t.Error("toast visible before the show delay elapsed")
	}
	if !tst.Visible(now.Add(10 * time.Millisecond)) {
		t.Error("toast not visible after the show delay")
	}
}

func TestExpireDropsOnlyFinishedToasts(t *testing.T) {
	c, now := testCenter()
	c.Push("early", SeverityInfo)

	*now = now.Add(2 * time.Second)
	c.Push("late", SeverityInfo)

	// 1.4s later the early toast (3.31s lifetime) has expired, the late
	// one has not.
	*now = now.Add(1400 * time.Millisecond)
	removed := c.Expire()
	if removed != 1 {
		t.Fatalf("Expire removed %d, want 1", removed)
	}
	active := c.Active()
	if len(active) != 1 || active[0].Message != "late" {
		t.Errorf("surviving toasts = %+v", active)
	}
}

func TestDismissUnknownIDIsNoOp(t *testing.T) {
	c, _ := testCenter()
	c.Push("keep", SeverityInfo)
	c.Dismiss("not-an-id")
	if len(c.Active()) != 1 {
		t.Error("dismissing an unknown id changed the queue")
	}
}

func TestDismissRemovesToast(t *testing.T) {
	c, _ := testCenter()
	tst := c.Push("bye", SeverityWarning)
	c.Dismiss(tst.ID)
	if len(c.Active()) != 0 {
		t.Error("dismissed toast still active")
	}
}

func TestClearAll(t *testing.T) {
	c, _ := testCenter()
	c.Push("a", SeverityInfo)
	c.Push("b", SeverityError)
	c.ClearAll()
	if len(c.Active()) != 0 {
		t.Error("ClearAll left toasts behind")
	}
	if _, ok := c.NextExpiry(); ok {
		t.Error("NextExpiry reported a time for an empty queue")
	}
}

func TestNextExpiryIsSoonest(t *testing.T) {
	c, now := testCenter()
	first := c.Push("first", SeverityInfo)
	*now = now.Add(time.Second)
	c.Push("second", SeverityInfo)

	next, ok := c.NextExpiry()
	if !ok {
		t.Fatal("NextExpiry reported empty queue")
	}
	if !next.Equal(first.ExpiresAt) {
		t.Errorf("NextExpiry = %v, want the first toast's expiry %v", next, first.ExpiresAt)
	}
}

func TestSeverityIcons(t *testing.T) {
	cases := map[Severity]string{
		SeveritySuccess: "✓",
		SeverityError:   "✕",
		SeverityWarning: "⚠",
		SeverityInfo:    "ℹ",
	}
	for sev, want := range cases {
		if got := sev.Icon(); got != want {
			t.Errorf("%s icon = %q, want %q", sev, got, want)
		}
	}
}
