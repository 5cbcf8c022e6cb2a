package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/juniorcleaning/cleaning-app/models"
)

type fakeAccounts struct {
	mu      sync.Mutex
	byID    map[string]*models.Account
	byEmail map[string]*models.Account
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{
		byID:    make(map[string]*models.Account),
		byEmail: make(map[string]*models.Account),
	}
}

func (f *fakeAccounts) ByID(ctx context.Context, id string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *acc
	return &out, nil
}

func (f *fakeAccounts) ByEmail(ctx context.Context, email string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.byEmail[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	out := *acc
	return &out, nil
}

func (f *fakeAccounts) Create(ctx context.Context, acc *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *acc
	f.byID[acc.ID] = &stored
	f.byEmail[acc.Email] = &stored
	return nil
}

func (f *fakeAccounts) UpdateDisplayName(ctx context.Context, id, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.byID[id]
	if !ok {
		return models.ErrNotFound
	}
	acc.DisplayName = name
	return nil
}

func newTestService() (*Service, *fakeAccounts) {
	accounts := newFakeAccounts()
	svc := NewService(accounts)
	svc.Mail = func(to, subject, body string) error { return nil }
	return svc, accounts
}

func TestRegisterCreatesAccount(t *testing.T) {
	svc, accounts := newTestService()

	identity, token, err := svc.Register(context.Background(), "alice@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if identity.Email != "alice@example.com" {
		t.Errorf("email = %q", identity.Email)
	}
	if identity.DisplayName != "alice" {
		t.Errorf("display name = %q, want the email local part", identity.DisplayName)
	}

	acc, err := accounts.ByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("account not stored: %v", err)
	}
	if acc.Provider != "password" {
		t.Errorf("provider = %q", acc.Provider)
	}
	if acc.PasswordHash == "" || acc.PasswordHash == "hunter2" {
		t.Error("password must be stored hashed")
	}

	userID, jti, exp, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if userID != acc.ID {
		t.Errorf("token user = %q, want %q", userID, acc.ID)
	}
	if jti == "" {
		t.Error("token must carry a jti for revocation")
	}
	if remaining := time.Until(exp); remaining < 23*time.Hour || remaining > 25*time.Hour {
		t.Errorf("token expiry off: %v remaining", remaining)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	if _, _, err := svc.Register(context.Background(), "alice@example.com", "hunter2"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "alice@example.com", "other"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterRequiresFields(t *testing.T) {
	svc, _ := newTestService()
	if _, _, err := svc.Register(context.Background(), "", "hunter2"); !errors.Is(err, ErrMissingFields) {
		t.Errorf("missing email: err = %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "alice@example.com", ""); !errors.Is(err, ErrMissingFields) {
		t.Errorf("missing password: err = %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	svc.Register(context.Background(), "alice@example.com", "hunter2")

	identity, token, err := svc.Login(context.Background(), "alice@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if identity.Email != "alice@example.com" || token == "" {
		t.Errorf("unexpected login result: %+v", identity)
	}

	if _, _, err := svc.Login(context.Background(), "alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "bob@example.com", "hunter2"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v", err)
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	svc, _ := newTestService()
	if _, _, _, err := svc.ParseToken("not.a.token"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestEventsOnSignInAndOut(t *testing.T) {
	svc, _ := newTestService()
	var mu sync.Mutex
	var events []Event
	unsubscribe := svc.Subscribe(func(ev Event) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})

	identity, _, err := svc.Register(context.Background(), "alice@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	svc.SignOut(identity.ID)

	mu.Lock()
	if len(events) != 2 {
		mu.Unlock()
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Identity == nil || events[0].Identity.ID != identity.ID {
		t.Errorf("sign-in event = %+v", events[0])
	}
	if events[1].Identity != nil || events[1].UserID != identity.ID {
		t.Errorf("sign-out event = %+v", events[1])
	}
	mu.Unlock()

	unsubscribe()
	svc.SignOut(identity.ID)
	mu.Lock()
	if len(events) != 2 {
		t.Error("unsubscribed observer was still notified")
	}
	mu.Unlock()
}

func TestWelcomeMailOnRegister(t *testing.T) {
	svc, _ := newTestService()
	sent := make(chan string, 1)
	svc.Mail = func(to, subject, body string) error {
		sent <- to
		return nil
	}

	svc.Register(context.Background(), "alice@example.com", "hunter2")

	select {
	case to := <-sent:
		if to != "alice@example.com" {
			t.Errorf("welcome mail sent to %q", to)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no welcome mail sent")
	}
}

func TestGoogleSignInCreatesAccountOnFirstContact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token":"tok","token_type":"Bearer","expires_in":3600}`)
		case "/userinfo":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"sub":"g-123","email":"alice@gmail.com","name":"Alice G","picture":"https://img.example/a.png"}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	svc, accounts := newTestService()
	svc.Google = &GoogleProvider{
		Config: &oauth2.Config{
			ClientID:     "cid",
			ClientSecret: "secret",
			Endpoint: oauth2.Endpoint{
				AuthURL:  srv.URL + "/auth",
				TokenURL: srv.URL + "/token",
			},
		},
		UserInfoURL: srv.URL + "/userinfo",
	}

	identity, token, err := svc.GoogleSignIn(context.Background(), "code-1")
	if err != nil {
		t.Fatalf("GoogleSignIn: %v", err)
	}
	if identity.DisplayName != "Alice G" || identity.PhotoURL != "https://img.example/a.png" {
		t.Errorf("identity = %+v", identity)
	}
	if token == "" {
		t.Error("no token issued")
	}

	acc, err := accounts.ByEmail(context.Background(), "alice@gmail.com")
	if err != nil {
		t.Fatalf("google account not created: %v", err)
	}
	if acc.Provider != "google" {
		t.Errorf("provider = %q", acc.Provider)
	}

	// Second sign-in reuses the existing account.
	again, _, err := svc.GoogleSignIn(context.Background(), "code-2")
	if err != nil {
		t.Fatalf("second GoogleSignIn: %v", err)
	}
	if again.ID != identity.ID {
		t.Error("second sign-in minted a new account")
	}
}

func TestUpdateDisplayName(t *testing.T) {
	svc, accounts := newTestService()
	identity, _, _ := svc.Register(context.Background(), "alice@example.com", "hunter2")

	if err := svc.UpdateDisplayName(context.Background(), identity.ID, "Alice B"); err != nil {
		t.Fatalf("UpdateDisplayName: %v", err)
	}
	acc, _ := accounts.ByID(context.Background(), identity.ID)
	if acc.DisplayName != "Alice B" {
		t.Errorf("display name = %q", acc.DisplayName)
	}

	resolved, err := svc.IdentityByID(context.Background(), identity.ID)
	if err != nil {
		t.Fatalf("IdentityByID: %v", err)
	}
	if resolved.DisplayName != "Alice B" {
		t.Errorf("resolved display name = %q", resolved.DisplayName)
	}

	if !strings.HasPrefix(resolved.Email, "alice@") {
		t.Errorf("email = %q", resolved.Email)
	}
}
