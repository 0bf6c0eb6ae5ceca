// Package domain defines user subscriptions and their notification preferences
package domain

import (
	"regexp"
	"strings"
	"time"

	"wildwatch/internal/core/frequency"
	perr "wildwatch/internal/platform/errors"
)

// Notifications are the per-channel opt-ins
type Notifications struct {
	PopNotifications bool `json:"popNotifications"`
	SMSAlerts        bool `json:"smsAlerts"`
	WhatsAppAlerts   bool `json:"whatsappAlerts"`
}

// Any reports whether at least one channel is on
func (n Notifications) Any() bool { return n.PopNotifications || n.SMSAlerts || n.WhatsAppAlerts }

// User is one subscription
type User struct {
	ID             string        `json:"id"`
	Username       string        `json:"username"`
	Name           string        `json:"name"`
	Surname        string        `json:"surname"`
	Email          string        `json:"email"`
	PhoneNumber    string        `json:"phoneNumber"`
	Notifications  Notifications `json:"notifications"`
	AlertFrequency int           `json:"alertFrequency"`
	IsSubscribed   bool          `json:"isSubscribed"`
	LastNotifiedAt *time.Time    `json:"lastNotifiedAt,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// NewUser is the insert shape; AlertFrequency is already in minutes
type NewUser struct {
	Username       string
	Name           string
	Surname        string
	Email          string
	PhoneNumber    string
	Notifications  Notifications
	AlertFrequency int
}

var (
	emailPattern = regexp.MustCompile(`.+@.+\..+`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// Normalize trims every text field
func (n NewUser) Normalize() NewUser {
	n.Username = strings.TrimSpace(n.Username)
	n.Name = strings.TrimSpace(n.Name)
	n.Surname = strings.TrimSpace(n.Surname)
	n.Email = strings.TrimSpace(n.Email)
	n.PhoneNumber = strings.TrimSpace(n.PhoneNumber)
	return n
}

// Validate checks required fields, the email and phone patterns and the frequency set
func (n NewUser) Validate() error {
	var missing []string
	for _, f := range []struct{ name, v string }{
		{"username", n.Username},
		{"name", n.Name},
		{"surname", n.Surname},
		{"email", n.Email},
		{"phoneNumber", n.PhoneNumber},
	} {
		if f.v == "" {
			missing = append(missing, f.name)
		}
	}
	switch {
	case len(missing) > 0:
		return perr.WithFields(perr.Validationf("missing required fields"), missing...)
	case !emailPattern.MatchString(n.Email):
		return perr.WithField(perr.Validationf("Please fill a valid email address"), "email")
	case !phonePattern.MatchString(n.PhoneNumber):
		return perr.WithField(perr.Validationf("Please fill a valid phone number"), "phoneNumber")
	case !frequency.Valid(n.AlertFrequency):
		return perr.WithField(perr.Validationf("alertFrequency must be one of 2, 5, 10, 30, 60 minutes"), "alertFrequency")
	}
	return nil
}

// Settings is the notification preferences view of a user
type Settings struct {
	Notifications  Notifications `json:"notifications"`
	AlertFrequency int           `json:"alertFrequency"`
}

// SettingsUpdate patches preferences; nil fields are left unchanged
type SettingsUpdate struct {
	Notifications  *Notifications
	AlertFrequency *int
}

// Unsubscribe identifies the user by username or phone number
type Unsubscribe struct {
	Username    string
	PhoneNumber string
	DeleteData  bool
}

// UnsubscribeResult reports what happened
type UnsubscribeResult struct {
	DeleteData bool `json:"deleteData"`
}

// ListFilter narrows user listings
type ListFilter struct {
	// AnyChannel keeps users with at least one channel on
	AnyChannel bool
	// SubscribedOnly drops users who unsubscribed
	SubscribedOnly bool
}
