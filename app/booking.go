package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/juniorcleaning/cleaning-app/models"
)

// DefaultWebhookURL is where booking requests are delivered.
const DefaultWebhookURL = "https://hook.eu2.make.com/wlrvmxwpe8f9junjaqw6622pmtn3t7vi"

const (
	MinHours     = 1
	MaxHours     = 8
	DefaultHours = 2
)

// BookingPhase is the booking flow state.
type BookingPhase string

const (
	// PhaseSetup collects name/address/phone before anything can be booked.
	PhaseSetup BookingPhase = "setup"
	// PhaseScheduling collects the preferred date and hours.
	PhaseScheduling BookingPhase = "scheduling"
)

// ErrBookingNotReady is returned when a send is attempted without a date
// or while a previous send is still in flight.
var ErrBookingNotReady = errors.New("booking is not ready to send")

// BookingFlow drives the two-phase booking form. The setup phase persists
// contact details through the profile store; the scheduling phase sends a
// single request to the booking webhook and is done.
type BookingFlow struct {
	store      *ProfileStore
	userID     string
	webhookURL string
	client     *http.Client

	mu      sync.Mutex
	phase   BookingPhase
	name    string
	address string
	phone   string
	date    string
	hours   int
	sending bool
	done    bool
}

func NewBookingFlow(store *ProfileStore, userID, webhookURL string, client *http.Client) *BookingFlow {
	if webhookURL == "" {
		webhookURL = DefaultWebhookURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	f := &BookingFlow{
		store:      store,
		userID:     userID,
		webhookURL: webhookURL,
		client:     client,
		phase:      PhaseSetup,
		hours:      DefaultHours,
	}
	f.Refresh()
	return f
}

// Refresh re-derives the phase from the current profile and re-seeds the
// setup fields. Called whenever the profile changes underneath the flow.
func (f *BookingFlow) Refresh() {
	profile, ok := f.store.Profile()
	f.mu.Lock()
	defer f.mu.Unlock()
	if ok && profile.SetupComplete() {
		f.phase = PhaseScheduling
	} else {
		f.phase = PhaseSetup
	}
	f.name = profile.Name
	f.address = profile.Address
	f.phone = profile.Phone
}

func (f *BookingFlow) Phase() BookingPhase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// SetupFields returns the seeded name, address and phone.
func (f *BookingFlow) SetupFields() (string, string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.name, f.address, f.phone
}

// SubmitSetup persists the contact details and moves on to scheduling.
// The transition is unconditional; the save outcome is not re-checked.
func (f *BookingFlow) SubmitSetup(ctx context.Context, name, address, phone string) {
	f.store.Save(ctx, map[string]interface{}{
		"name":    name,
		"address": address,
		"phone":   phone,
	})
	f.mu.Lock()
	f.phase = PhaseScheduling
	f.name = name
	f.address = address
	f.phone = phone
	f.mu.Unlock()
}

func (f *BookingFlow) SetDate(date string) {
	f.mu.Lock()
	f.date = date
	f.mu.Unlock()
}

func (f *BookingFlow) Date() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.date
}

// SetHours clamps into the 1..8 range the slider allows.
func (f *BookingFlow) SetHours(hours int) {
	if hours < MinHours {
		hours = MinHours
	}
	if hours > MaxHours {
		hours = MaxHours
	}
	f.mu.Lock()
	f.hours = hours
	f.mu.Unlock()
}

func (f *BookingFlow) Hours() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hours
}

// CanSubmit reports whether a send would be accepted right now.
func (f *BookingFlow) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.date != "" && !f.sending
}

func (f *BookingFlow) Sending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sending
}

func (f *BookingFlow) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

// Submit builds the booking request from the current profile plus the
// scheduling form and posts it to the webhook once. The flow counts as
// done whether or not the call succeeded; a failed delivery only shows up
// in the server log.
func (f *BookingFlow) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.date == "" || f.sending {
		f.mu.Unlock()
		return ErrBookingNotReady
	}
	f.sending = true
	date := f.date
	hours := f.hours
	f.mu.Unlock()

	profile, _ := f.store.Profile()
	body := models.BookingRequest{
		Name:    profile.Name,
		Address: profile.Address,
		Phone:   profile.Phone,
		Hours:   strconv.Itoa(hours),
		Date:    date,
		UserID:  f.userID,
	}
	payload, err := json.Marshal(body)
	if err == nil {
		req, rerr := http.NewRequestWithContext(ctx, http.MethodPost, f.webhookURL, bytes.NewReader(payload))
		if rerr == nil {
			req.Header.Set("Content-Type", "application/json")
			resp, derr := f.client.Do(req)
			if derr != nil {
				log.Printf("booking webhook for %s failed: %v", f.userID, derr)
			} else {
				io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
			}
		}
	}

	f.mu.Lock()
	f.sending = false
	f.done = true
	f.mu.Unlock()
	return nil
}
