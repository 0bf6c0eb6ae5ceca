// Package twilio is a small Twilio Messages API client with send pacing and a circuit breaker
package twilio

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"wildwatch/internal/platform/config"
	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/platform/logger"
	"wildwatch/internal/platform/metrics"
	pstrings "wildwatch/internal/platform/strings"

	json "github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const (
	baseURLDefault     = "https://api.twilio.com"
	defaultTimeout     = 10 * time.Second
	defaultRPS         = 1.0
	defaultBurst       = 5
	defaultTripAfter   = 5
	defaultOpenTimeout = 30 * time.Second

	whatsappPrefix = "whatsapp:"
)

// Options configures the Client
type Options struct {
	BaseURL string
	Timeout time.Duration

	AccountSID     string
	AuthToken      string
	PhoneNumber    string
	WhatsAppNumber string

	// RPS and Burst pace outbound sends across all callers
	RPS   float64
	Burst int

	// TripAfter consecutive transient failures open the breaker for OpenTimeout
	TripAfter   uint32
	OpenTimeout time.Duration
}

// OptionsFromEnv reads TWILIO_* variables; missing credentials leave the client unconfigured
func OptionsFromEnv() Options {
	c := config.New().Prefix("TWILIO_")
	return Options{
		BaseURL:        c.MayURL("BASE_URL", baseURLDefault).String(),
		Timeout:        c.MayDuration("TIMEOUT", defaultTimeout),
		AccountSID:     c.MayString("ACCOUNT_SID", ""),
		AuthToken:      c.MayString("AUTH_TOKEN", ""),
		PhoneNumber:    c.MayString("PHONE_NUMBER", ""),
		WhatsAppNumber: c.MayString("WHATSAPP_NUMBER", ""),
		RPS:            c.MayFloat64("RPS", defaultRPS),
		Burst:          c.MayInt("BURST", defaultBurst),
		TripAfter:      uint32(c.MayInt("BREAKER_TRIP_AFTER", defaultTripAfter)),
		OpenTimeout:    c.MayDuration("BREAKER_OPEN_TIMEOUT", defaultOpenTimeout),
	}
}

// Message is the accepted-message receipt
type Message struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// Status describes the configuration without exposing secrets
type Status struct {
	IsConfigured       bool    `json:"isConfigured"`
	PhoneNumber        *string `json:"phoneNumber"`
	WhatsAppConfigured bool    `json:"whatsappConfigured"`
}

// Client sends SMS and WhatsApp messages through Twilio
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[Message]
	log     logger.Logger
}

// NewClient creates a new Client with sane defaults
func NewClient(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = baseURLDefault
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.RPS <= 0 {
		o.RPS = defaultRPS
	}
	if o.Burst <= 0 {
		o.Burst = defaultBurst
	}
	if o.TripAfter == 0 {
		o.TripAfter = defaultTripAfter
	}
	if o.OpenTimeout <= 0 {
		o.OpenTimeout = defaultOpenTimeout
	}

	c := &Client{
		http:    &http.Client{Timeout: o.Timeout},
		opts:    o,
		limiter: rate.NewLimiter(rate.Limit(o.RPS), o.Burst),
		log:     *logger.Named("twilio"),
	}
	c.breaker = gobreaker.NewCircuitBreaker[Message](gobreaker.Settings{
		Name:        "twilio",
		MaxRequests: 1,
		Timeout:     o.OpenTimeout,
		ReadyToTrip: func(cnt gobreaker.Counts) bool {
			return cnt.ConsecutiveFailures >= o.TripAfter
		},
		// rejected messages say nothing about provider health
		IsSuccessful: func(err error) bool { return err == nil || IsPermanent(err) },
		OnStateChange: func(name string, from, to gobreaker.State) {
			metrics.BreakerState.WithLabelValues(name).Set(float64(to))
			c.log.Warn().Str("from", from.String()).Str("to", to.String()).Msg("twilio breaker state changed")
		},
	})
	metrics.BreakerState.WithLabelValues("twilio").Set(float64(gobreaker.StateClosed))
	return c
}

// SetTransport replaces the HTTP transport, e.g. for an egress proxy
func (c *Client) SetTransport(rt http.RoundTripper) { c.http.Transport = rt }

// IsConfigured reports whether SMS can be sent
func (c *Client) IsConfigured() bool {
	return c.opts.AccountSID != "" && c.opts.AuthToken != "" && c.opts.PhoneNumber != ""
}

// WhatsAppConfigured reports whether WhatsApp can be sent
func (c *Client) WhatsAppConfigured() bool {
	return c.opts.AccountSID != "" && c.opts.AuthToken != "" && c.opts.WhatsAppNumber != ""
}

// Status reports configuration with the sender number elided
func (c *Client) Status() Status {
	st := Status{IsConfigured: c.IsConfigured(), WhatsAppConfigured: c.WhatsAppConfigured()}
	if c.opts.PhoneNumber != "" {
		masked := pstrings.Elide(c.opts.PhoneNumber, 3, 4)
		st.PhoneNumber = &masked
	}
	return st
}

// SendSMS sends body to the E.164 number to
func (c *Client) SendSMS(ctx context.Context, to, body string) (Message, error) {
	if !c.IsConfigured() {
		return Message{}, perr.Upstreamf("Twilio is not properly configured")
	}
	return c.send(ctx, "sms", c.opts.PhoneNumber, to, body)
}

// SendWhatsApp sends body over WhatsApp; numbers gain the whatsapp: prefix when missing
func (c *Client) SendWhatsApp(ctx context.Context, to, body string) (Message, error) {
	if !c.WhatsAppConfigured() {
		return Message{}, perr.Upstreamf("Twilio WhatsApp is not properly configured")
	}
	return c.send(ctx, "whatsapp", withWhatsApp(c.opts.WhatsAppNumber), withWhatsApp(to), body)
}

func withWhatsApp(n string) string {
	n = strings.TrimSpace(n)
	if strings.HasPrefix(n, whatsappPrefix) {
		return n
	}
	return whatsappPrefix + n
}

func (c *Client) send(ctx context.Context, channel, from, to, body string) (Message, error) {
	if strings.TrimSpace(to) == "" || strings.TrimSpace(body) == "" {
		return Message{}, perr.WithFields(perr.Validationf("phoneNumber and message are required"), "phoneNumber", "message")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return Message{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "twilio send cancelled")
	}

	msg, err := c.breaker.Execute(func() (Message, error) { return c.post(ctx, from, to, body) })
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return Message{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "twilio temporarily unavailable")
	case err != nil:
		c.log.Warn().Err(err).Str("channel", channel).Str("to", pstrings.Mask(to, 4)).Msg("twilio send failed")
		return Message{}, err
	}
	c.log.Debug().Str("channel", channel).Str("sid", msg.SID).Str("status", msg.Status).Msg("twilio message accepted")
	return msg, nil
}

func (c *Client) post(ctx context.Context, from, to, body string) (Message, error) {
	form := url.Values{}
	form.Set("From", from)
	form.Set("To", to)
	form.Set("Body", body)

	endpoint := c.opts.BaseURL + "/2010-04-01/Accounts/" + url.PathEscape(c.opts.AccountSID) + "/Messages.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return Message{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "twilio new request failed")
	}
	req.SetBasicAuth(c.opts.AccountSID, c.opts.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Message{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "twilio do failed")
	}
	defer func() { _ = drainAndClose(resp.Body) }()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		var m Message
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&m); err != nil {
			return Message{}, perr.Wrap(err, perr.ErrorCodeJSON, "twilio decode response")
		}
		return m, nil
	}
	return Message{}, statusError(resp)
}
