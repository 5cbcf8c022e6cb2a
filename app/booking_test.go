package app

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/juniorcleaning/cleaning-app/models"
)

func completeProfileDocs(userID string) *fakeDocs {
	docs := newFakeDocs()
	docs.profiles[userID] = &models.ProfileDoc{
		UserID: userID, Name: "Alice", Address: "Road 1", Phone: "123",
		Language: models.DefaultLanguage,
	}
	return docs
}

func TestBookingStartsInSetupWhenFieldsMissing(t *testing.T) {
	docs := newFakeDocs()
	docs.profiles["u1"] = &models.ProfileDoc{UserID: "u1", Name: "Alice"} // no address/phone
	store := newBoundStore(docs, ident("u1", "Alice"))

	f := NewBookingFlow(store, "u1", "http://unused.invalid", nil)

	if f.Phase() != PhaseSetup {
		t.Errorf("phase = %q, want setup with missing fields", f.Phase())
	}
	name, _, _ := f.SetupFields()
	if name != "Alice" {
		t.Errorf("setup name = %q, want seeded from profile", name)
	}
}

func TestBookingStartsInSchedulingWhenComplete(t *testing.T) {
	store := newBoundStore(completeProfileDocs("u1"), ident("u1", "Alice"))
	f := NewBookingFlow(store, "u1", "http://unused.invalid", nil)

	if f.Phase() != PhaseScheduling {
		t.Errorf("phase = %q, want scheduling with complete profile", f.Phase())
	}
	if f.Hours() != DefaultHours {
		t.Errorf("hours = %d, want default %d", f.Hours(), DefaultHours)
	}
}

func TestSubmitSetupSavesAndTransitions(t *testing.T) {
	docs := newFakeDocs()
	docs.profiles["u1"] = &models.ProfileDoc{UserID: "u1"}
	store := newBoundStore(docs, ident("u1", ""))
	f := NewBookingFlow(store, "u1", "http://unused.invalid", nil)

	f.SubmitSetup(context.Background(), "A", "B", "C")

	if f.Phase() != PhaseScheduling {
		t.Errorf("phase = %q, setup submit must transition unconditionally", f.Phase())
	}
	merges := docs.mergeCalls()
	if len(merges) != 1 {
		t.Fatalf("expected 1 save, got %d", len(merges))
	}
	want := map[string]interface{}{"name": "A", "address": "B", "phone": "C"}
	if len(merges[0]) != len(want) {
		t.Errorf("save carried extra fields: %v", merges[0])
	}
	for k, v := range want {
		if merges[0][k] != v {
			t.Errorf("save[%q] = %v, want %v", k, merges[0][k], v)
		}
	}
	p, _ := store.Profile()
	if p.Name != "A" || p.Address != "B" || p.Phone != "C" {
		t.Errorf("profile not updated locally: %+v", p)
	}
}

func TestSetupTransitionSurvivesRemoteFailure(t *testing.T) {
	docs := newFakeDocs()
	docs.profiles["u1"] = &models.ProfileDoc{UserID: "u1"}
	store := newBoundStore(docs, ident("u1", ""))
	docs.mergeErr = io.ErrUnexpectedEOF
	f := NewBookingFlow(store, "u1", "http://unused.invalid", nil)

	f.SubmitSetup(context.Background(), "A", "B", "C")

	if f.Phase() != PhaseScheduling {
		t.Error("transition is optimistic, save outcome must not matter")
	}
}

func TestHoursClamping(t *testing.T) {
	store := newBoundStore(completeProfileDocs("u1"), ident("u1", "Alice"))
	f := NewBookingFlow(store, "u1", "http://unused.invalid", nil)

	cases := []struct{ in, want int }{
		{0, MinHours}, {1, 1}, {8, 8}, {9, MaxHours}, {-3, MinHours}, {4, 4},
	}
	for _, c := range cases {
		f.SetHours(c.in)
		if f.Hours() != c.want {
			t.Errorf("SetHours(%d): hours = %d, want %d", c.in, f.Hours(), c.want)
		}
	}
}

func TestSubmitRequiresDate(t *testing.T) {
	store := newBoundStore(completeProfileDocs("u1"), ident("u1", "Alice"))
	f := NewBookingFlow(store, "u1", "http://unused.invalid", nil)

	if f.CanSubmit() {
		t.Error("submit must be blocked while the date is empty")
	}
	if err := f.Submit(context.Background()); err != ErrBookingNotReady {
		t.Errorf("Submit without date = %v, want ErrBookingNotReady", err)
	}

	f.SetDate("2025-06-01")
	if !f.CanSubmit() {
		t.Error("submit should be possible once a date is set")
	}
}

func TestSubmitPostsWebhookOnce(t *testing.T) {
	var mu sync.Mutex
	var bodies []map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		bodies = append(bodies, body)
		mu.Unlock()
	}))
	defer srv.Close()

	store := newBoundStore(completeProfileDocs("u1"), ident("u1", "Alice"))
	f := NewBookingFlow(store, "u1", srv.URL, srv.Client())
	f.SetDate("2025-06-01")
	f.SetHours(4)

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(bodies) != 1 {
		t.Fatalf("expected exactly 1 POST, got %d", len(bodies))
	}
	body := bodies[0]
	want := map[string]interface{}{
		"name": "Alice", "address": "Road 1", "phone": "123",
		"hours": "4", "date": "2025-06-01", "userId": "u1",
	}
	for k, v := range want {
		if body[k] != v {
			t.Errorf("body[%q] = %v, want %v", k, body[k], v)
		}
	}
	if !f.Done() {
		t.Error("flow should be done after the send")
	}
	if f.Sending() {
		t.Error("sending flag stuck after the send")
	}
}

func TestSubmitIsDoneEvenOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := newBoundStore(completeProfileDocs("u1"), ident("u1", "Alice"))
	f := NewBookingFlow(store, "u1", srv.URL, srv.Client())
	f.SetDate("2025-06-01")

	if err := f.Submit(context.Background()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !f.Done() {
		t.Error("the response status is not branched on; the flow is done")
	}
}

func TestSubmitRejectedWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	arrived := make(chan struct{})
	var calls int
	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		arrived <- struct{}{}
		<-release
	}))
	defer srv.Close()

	store := newBoundStore(completeProfileDocs("u1"), ident("u1", "Alice"))
	f := NewBookingFlow(store, "u1", srv.URL, srv.Client())
	f.SetDate("2025-06-01")

	done := make(chan struct{})
	go func() {
		f.Submit(context.Background())
		close(done)
	}()
	<-arrived

	if f.CanSubmit() {
		t.Error("submit must be blocked while a send is in flight")
	}
	if err := f.Submit(context.Background()); err != ErrBookingNotReady {
		t.Errorf("second Submit = %v, want ErrBookingNotReady", err)
	}

	close(release)
	<-done

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("expected 1 webhook call, got %d", calls)
	}
}

func TestRefreshReseedsAfterProfileChange(t *testing.T) {
	docs := newFakeDocs()
	docs.profiles["u1"] = &models.ProfileDoc{UserID: "u1"}
	store := newBoundStore(docs, ident("u1", ""))
	f := NewBookingFlow(store, "u1", "http://unused.invalid", nil)

	if f.Phase() != PhaseSetup {
		t.Fatalf("phase = %q, want setup", f.Phase())
	}

	store.Save(context.Background(), map[string]interface{}{
		"name": "Alice", "address": "Road 1", "phone": "123",
	})
	f.Refresh()

	if f.Phase() != PhaseScheduling {
		t.Errorf("phase = %q after profile completed externally", f.Phase())
	}
	name, address, phone := f.SetupFields()
	if name != "Alice" || address != "Road 1" || phone != "123" {
		t.Errorf("setup fields not reseeded: %q %q %q", name, address, phone)
	}
}
