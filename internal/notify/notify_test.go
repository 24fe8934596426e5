package notify

import (
	"testing"
	"time"
)

func TestNotifyFanout(t *testing.T) {
	c := NewCenter()
	id1, ch1 := c.Subscribe()
	id2, ch2 := c.Subscribe()
	defer c.Unsubscribe(id1)
	defer c.Unsubscribe(id2)

	c.Notify(LevelSuccess, "記録を保存しました")

	for _, ch := range []<-chan Toast{ch1, ch2} {
		select {
		case toast := <-ch:
			if toast.Level != LevelSuccess || toast.Message != "記録を保存しました" {
				t.Errorf("unexpected toast: %+v", toast)
			}
			if toast.Copyable {
				t.Error("success toasts must not be copyable")
			}
			if toast.TTLMs != (3 * time.Second).Milliseconds() {
				t.Errorf("unexpected ttl %d", toast.TTLMs)
			}
		default:
			t.Fatal("subscriber did not receive the toast")
		}
	}
}

func TestErrorToastsLiveLongerAndAreCopyable(t *testing.T) {
	c := NewCenter()
	id, ch := c.Subscribe()
	defer c.Unsubscribe(id)

	c.Notify(LevelError, "analysis failed: HTTP 500")

	toast := <-ch
	if !toast.Copyable {
		t.Error("error toasts must be copyable")
	}
	if toast.TTLMs != (8 * time.Second).Milliseconds() {
		t.Errorf("unexpected ttl %d", toast.TTLMs)
	}
	if toast.ID == "" {
		t.Error("expected non-empty toast id")
	}
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	c := NewCenter()
	id, _ := c.Subscribe()
	defer c.Unsubscribe(id)

	// Fill well past the buffer; Notify must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			c.Notify(LevelInfo, "ping")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify blocked on a slow subscriber")
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	c := NewCenter()
	id, ch := c.Subscribe()
	c.Unsubscribe(id)
	if _, ok := <-ch; ok {
		t.Error("expected closed channel after unsubscribe")
	}
	// Double unsubscribe is a no-op.
	c.Unsubscribe(id)
}
