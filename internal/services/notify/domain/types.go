// Package domain defines the notification events carried on the bus
package domain

import (
	"fmt"
	"math"
	"time"
)

// Channel names a delivery route
type Channel string

// Channels
const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelPush     Channel = "push"
)

// DetectionOccurred is published once per stored detection
type DetectionOccurred struct {
	DetectionID   string    `json:"detectionId"`
	ClassName     string    `json:"className"`
	Confidence    float64   `json:"confidence"`
	FormattedTime string    `json:"formattedTime"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Delivery is one message for one channel
type Delivery struct {
	Channel     Channel `json:"channel"`
	DetectionID string  `json:"detectionId"`
	UserID      string  `json:"userId,omitempty"`
	To          string  `json:"to,omitempty"`
	Title       string  `json:"title,omitempty"`
	Body        string  `json:"body"`
}

// AlertTitle heads push notifications
const AlertTitle = "Wildlife Detection Alert"

// AlertText renders the alert sent to subscribers
func AlertText(ev DetectionOccurred) string {
	return fmt.Sprintf("%s: %s detected at %s with %d%% confidence.",
		AlertTitle, ev.ClassName, ev.FormattedTime, int(math.Round(ev.Confidence*100)))
}
