package app

import (
	"testing"

	"github.com/juniorcleaning/cleaning-app/models"
)

func TestSessionResolvesOnFirstPublish(t *testing.T) {
	p := NewSessionProvider()
	if !p.Resolving() {
		t.Fatal("provider should be resolving before the first publish")
	}

	p.Publish(nil)

	if p.Resolving() {
		t.Error("first publish must complete the resolving period")
	}
	if p.Current() != nil {
		t.Error("current identity should be nil after a signed-out publish")
	}
}

func TestSessionNotifiesOncePerChange(t *testing.T) {
	p := NewSessionProvider()
	var calls []*models.Identity
	p.Subscribe(func(id *models.Identity) {
		calls = append(calls, id)
	})

	alice := ident("u1", "Alice")
	p.Publish(alice)
	p.Publish(alice) // same identity, must be dropped
	p.Publish(nil)
	p.Publish(nil) // still signed out, must be dropped

	if len(calls) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(calls))
	}
	if calls[0] == nil || calls[0].ID != "u1" {
		t.Errorf("first notification = %+v, want alice", calls[0])
	}
	if calls[1] != nil {
		t.Errorf("second notification = %+v, want nil", calls[1])
	}
}

func TestSessionUnsubscribeStopsNotifications(t *testing.T) {
	p := NewSessionProvider()
	var calls int
	unsubscribe := p.Subscribe(func(*models.Identity) {
		calls++
	})

	p.Publish(ident("u1", "Alice"))
	unsubscribe()
	p.Publish(nil)

	if calls != 1 {
		t.Errorf("expected 1 notification after unsubscribe, got %d", calls)
	}
}

func TestSessionIdentitySwitch(t *testing.T) {
	p := NewSessionProvider()
	var calls []*models.Identity
	p.Subscribe(func(id *models.Identity) {
		calls = append(calls, id)
	})

	p.Publish(ident("u1", "Alice"))
	p.Publish(ident("u2", "Bob"))

	if len(calls) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(calls))
	}
	if p.Current().ID != "u2" {
		t.Errorf("current = %q, want u2", p.Current().ID)
	}
}
