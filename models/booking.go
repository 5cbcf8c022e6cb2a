package models

// BookingRequest is the transient payload sent to the booking webhook.
// It is built from the current profile plus the scheduling form and is
// never persisted. Hours travels as a string, which is what the webhook
// has always received.
type BookingRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Hours   string `json:"hours"`
	Date    string `json:"date"`
	UserID  string `json:"userId"`
}
