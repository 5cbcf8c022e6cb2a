package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/juniorcleaning/cleaning-app/models"
	"github.com/juniorcleaning/cleaning-app/utils"
)

var (
	ErrMissingFields      = errors.New("email and password are required")
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AccountStore is the persistence the auth service needs.
type AccountStore interface {
	ByID(ctx context.Context, id string) (*models.Account, error)
	ByEmail(ctx context.Context, email string) (*models.Account, error)
	Create(ctx context.Context, acc *models.Account) error
	UpdateDisplayName(ctx context.Context, id, name string) error
}

// Event is an identity-change notification. Identity is nil on sign-out.
type Event struct {
	UserID   string
	Identity *models.Identity
}

// Service implements the auth provider contract: credential and federated
// sign-in, sign-out, display-name updates, token issue/parse, and
// identity-change notifications for the session layer.
type Service struct {
	Accounts AccountStore
	Google   *GoogleProvider
	TokenTTL time.Duration

	// Mail sends the welcome message; replaced in tests.
	Mail func(to, subject, body string) error

	secret []byte

	mu   sync.Mutex
	subs map[int]func(Event)
	next int
}

func NewService(accounts AccountStore) *Service {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return &Service{
		Accounts: accounts,
		TokenTTL: 24 * time.Hour,
		Mail:     utils.SendEmail,
		secret:   []byte(secret),
		subs:     make(map[int]func(Event)),
	}
}

// Subscribe registers an observer for identity changes and returns its
// unsubscribe func.
func (s *Service) Subscribe(fn func(Event)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Service) notify(ev Event) {
	s.mu.Lock()
	fns := make([]func(Event), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// Register creates a new password account. The display name defaults to
// the part of the email before the @, same as the client always has.
func (s *Service) Register(ctx context.Context, email, password string) (*models.Identity, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}
	if _, err := s.Accounts.ByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	acc := &models.Account{
		ID:           utils.GenerateUUID(),
		Email:        email,
		PasswordHash: string(hashed),
		DisplayName:  strings.SplitN(email, "@", 2)[0],
		Provider:     "password",
	}
	if err := s.Accounts.Create(ctx, acc); err != nil {
		return nil, "", err
	}

	go s.sendWelcome(acc)

	return s.signIn(acc)
}

// Login authenticates a password account.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Identity, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrMissingFields
	}
	acc, err := s.Accounts.ByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}
	return s.signIn(acc)
}

// GoogleSignIn exchanges an authorization code and signs the Google user
// in, creating the account on first contact.
func (s *Service) GoogleSignIn(ctx context.Context, code string) (*models.Identity, string, error) {
	if s.Google == nil {
		return nil, "", errors.New("google sign-in is not configured")
	}
	gu, err := s.Google.Exchange(ctx, code)
	if err != nil {
		return nil, "", err
	}

	acc, err := s.Accounts.ByEmail(ctx, gu.Email)
	if errors.Is(err, models.ErrNotFound) {
		acc = &models.Account{
			ID:          utils.GenerateUUID(),
			Email:       gu.Email,
			DisplayName: gu.Name,
			PhotoURL:    gu.Picture,
			Provider:    "google",
		}
		if cerr := s.Accounts.Create(ctx, acc); cerr != nil {
			return nil, "", cerr
		}
	} else if err != nil {
		return nil, "", err
	}
	return s.signIn(acc)
}

// SignOut notifies subscribers that the identity is gone. Token
// revocation itself is handled at the transport layer.
func (s *Service) SignOut(userID string) {
	s.notify(Event{UserID: userID})
}

// UpdateDisplayName changes the account's display name.
func (s *Service) UpdateDisplayName(ctx context.Context, userID, name string) error {
	return s.Accounts.UpdateDisplayName(ctx, userID, name)
}

// IdentityByID resolves an identity from its account record.
func (s *Service) IdentityByID(ctx context.Context, userID string) (*models.Identity, error) {
	acc, err := s.Accounts.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return acc.Identity(), nil
}

func (s *Service) signIn(acc *models.Account) (*models.Identity, string, error) {
	token, err := s.IssueToken(acc)
	if err != nil {
		return nil, "", err
	}
	identity := acc.Identity()
	s.notify(Event{UserID: acc.ID, Identity: identity})
	return identity, token, nil
}

// IssueToken signs a 24 hour access token for the account.
func (s *Service) IssueToken(acc *models.Account) (string, error) {
	claims := jwt.MapClaims{
		"id":    acc.ID,
		"email": acc.Email,
		"jti":   utils.GenerateUUID(),
		"exp":   time.Now().Add(s.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ParseToken validates a token and returns its user id, token id and
// expiry, used by logout to revoke the exact token presented.
func (s *Service) ParseToken(tokenString string) (userID, jti string, exp time.Time, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", "", time.Time{}, ErrInvalidCredentials
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", time.Time{}, ErrInvalidCredentials
	}
	userID, _ = claims["id"].(string)
	jti, _ = claims["jti"].(string)
	if sec, ok := claims["exp"].(float64); ok {
		exp = time.Unix(int64(sec), 0)
	}
	return userID, jti, exp, nil
}

func (s *Service) sendWelcome(acc *models.Account) {
	subject := "Velkommen til Junior Cleaning"
	body := fmt.Sprintf(`
		<p>Hej %s,</p>
		<p>Din konto er oprettet. Du kan nu booke rengøring direkte fra appen.</p>
		<p>Venlig hilsen,</p>
		<p>Junior Cleaning</p>
	`, acc.DisplayName)
	if err := s.Mail(acc.Email, subject, body); err != nil {
		log.Printf("Failed to send welcome email to %s: %v", acc.Email, err)
	}
}
