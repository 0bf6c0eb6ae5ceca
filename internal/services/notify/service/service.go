// Package service fans detections out to subscribers and delivers each channel independently
package service

import (
	"context"
	"time"

	"wildwatch/internal/adapters/events"
	"wildwatch/internal/adapters/messaging/twilio"
	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/platform/logger"
	"wildwatch/internal/platform/metrics"
	ptime "wildwatch/internal/platform/time"
	detdom "wildwatch/internal/services/detections/domain"
	dom "wildwatch/internal/services/notify/domain"
	subdom "wildwatch/internal/services/subscribers/domain"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Bus publishes JSON payloads by topic
type Bus interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Recipients lists users and claims the right to alert them
type Recipients interface {
	List(ctx context.Context, f subdom.ListFilter) ([]subdom.User, error)
	Claim(ctx context.Context, u subdom.User, now time.Time) (bool, error)
}

// Messenger sends SMS and WhatsApp
type Messenger interface {
	IsConfigured() bool
	WhatsAppConfigured() bool
	SendSMS(ctx context.Context, to, body string) (twilio.Message, error)
	SendWhatsApp(ctx context.Context, to, body string) (twilio.Message, error)
}

// Pusher sends pop-up notifications
type Pusher interface {
	IsConfigured() bool
	Send(ctx context.Context, title, body string) error
}

// Service is the notify pipeline
type Service struct {
	bus   Bus
	users Recipients
	msg   Messenger
	push  Pusher
	clock ptime.Clock
	log   logger.Logger
}

// New constructs the pipeline; every collaborator is required
func New(bus Bus, users Recipients, msg Messenger, push Pusher, clock ptime.Clock) *Service {
	if bus == nil || users == nil || msg == nil || push == nil {
		panic("notify.service: nil collaborator")
	}
	if clock == nil {
		clock = ptime.System{}
	}
	return &Service{bus: bus, users: users, msg: msg, push: push, clock: clock, log: *logger.Named("notify")}
}

var _ detdom.Publisher = (*Service)(nil)

// PublishDetection implements the detections Publisher port
func (s *Service) PublishDetection(ctx context.Context, r detdom.Record) error {
	return s.bus.Publish(ctx, events.TopicDetectionOccurred, dom.DetectionOccurred{
		DetectionID:   r.DetectionID,
		ClassName:     r.ClassName,
		Confidence:    r.Confidence,
		FormattedTime: r.FormattedTime,
		OccurredAt:    r.CreatedAt,
	})
}

func topicFor(c dom.Channel) string {
	switch c {
	case dom.ChannelSMS:
		return events.TopicNotifySMS
	case dom.ChannelWhatsApp:
		return events.TopicNotifyWhatsApp
	default:
		return events.TopicNotifyPush
	}
}

// FanOut claims the gate for every subscribed user with a channel on and queues one delivery per channel.
// Push goes to shared service URLs, so a detection yields at most one push delivery
func (s *Service) FanOut(ctx context.Context, ev dom.DetectionOccurred) error {
	users, err := s.users.List(ctx, subdom.ListFilter{AnyChannel: true, SubscribedOnly: true})
	if err != nil {
		return perr.WithOp(err, "notify.fanout")
	}
	now := s.clock.Now()
	text := dom.AlertText(ev)
	log := logger.C(ctx)

	var out []dom.Delivery
	wantPush := false
	for _, u := range users {
		ok, err := s.users.Claim(ctx, u, now)
		if err != nil {
			log.Warn().Err(err).Str("user_id", u.ID).Msg("gate claim failed")
			continue
		}
		if !ok {
			log.Debug().Str("user_id", u.ID).Int("alert_frequency", u.AlertFrequency).Msg("notification throttled")
			continue
		}
		if u.Notifications.SMSAlerts {
			out = append(out, dom.Delivery{Channel: dom.ChannelSMS, DetectionID: ev.DetectionID, UserID: u.ID, To: u.PhoneNumber, Body: text})
		}
		if u.Notifications.WhatsAppAlerts {
			out = append(out, dom.Delivery{Channel: dom.ChannelWhatsApp, DetectionID: ev.DetectionID, UserID: u.ID, To: u.PhoneNumber, Body: text})
		}
		wantPush = wantPush || u.Notifications.PopNotifications
	}
	if wantPush {
		out = append(out, dom.Delivery{Channel: dom.ChannelPush, DetectionID: ev.DetectionID, Title: dom.AlertTitle, Body: text})
	}

	for _, d := range out {
		if err := s.bus.Publish(ctx, topicFor(d.Channel), d); err != nil {
			// claims are already stamped; a lost delivery is logged rather than re-fanned
			log.Error().Err(err).Str("channel", string(d.Channel)).Str("user_id", d.UserID).Msg("queue delivery failed")
		}
	}
	log.Info().Int("candidates", len(users)).Int("deliveries", len(out)).Msg("detection fanned out")
	return nil
}

// Deliver sends one delivery. A nil return acks the message: success, an unconfigured provider,
// or a rejection retrying cannot fix. Transient failures return an error so the router retries
func (s *Service) Deliver(ctx context.Context, d dom.Delivery) error {
	log := logger.C(ctx).With().Str("channel", string(d.Channel)).Str("user_id", d.UserID).Logger()

	var err error
	switch d.Channel {
	case dom.ChannelSMS:
		if !s.msg.IsConfigured() {
			return s.skip(&log, d, "Twilio is not properly configured")
		}
		_, err = s.msg.SendSMS(ctx, d.To, d.Body)
	case dom.ChannelWhatsApp:
		if !s.msg.WhatsAppConfigured() {
			return s.skip(&log, d, "Twilio WhatsApp is not properly configured")
		}
		_, err = s.msg.SendWhatsApp(ctx, d.To, d.Body)
	case dom.ChannelPush:
		if !s.push.IsConfigured() {
			return s.skip(&log, d, "push notifications are not configured")
		}
		err = s.push.Send(ctx, d.Title, d.Body)
	default:
		return s.skip(&log, d, "unknown channel")
	}

	switch {
	case err == nil:
		metrics.NotificationsSent.WithLabelValues(string(d.Channel), "sent").Inc()
		log.Info().Msg("notification sent")
		return nil
	case twilio.IsPermanent(err) || perr.IsCode(err, perr.ErrorCodeValidation):
		metrics.NotificationsSent.WithLabelValues(string(d.Channel), "rejected").Inc()
		log.Warn().Err(err).Msg("notification rejected by provider")
		return nil
	default:
		metrics.NotificationsSent.WithLabelValues(string(d.Channel), "retry").Inc()
		return perr.WithOp(err, "notify.deliver")
	}
}

func (s *Service) skip(log *logger.Logger, d dom.Delivery, reason string) error {
	metrics.NotificationsSent.WithLabelValues(string(d.Channel), "skipped").Inc()
	log.Info().Str("reason", reason).Msg("notification skipped")
	return nil
}

// Handler names
const (
	HandlerFanOut   = "notify.fanout"
	HandlerSMS      = "notify.deliver.sms"
	HandlerWhatsApp = "notify.deliver.whatsapp"
	HandlerPush     = "notify.deliver.push"
)

// Register adds the fan-out and per-channel consumers to r
func (s *Service) Register(r *message.Router, sub message.Subscriber) {
	r.AddConsumerHandler(HandlerFanOut, events.TopicDetectionOccurred, sub, func(msg *message.Message) error {
		ev, err := events.Decode[dom.DetectionOccurred](msg)
		if err != nil {
			s.log.Error().Err(err).Str("message_uuid", msg.UUID).Msg("dropping undecodable detection event")
			return nil
		}
		ctx := logger.WithDetection(events.Context(msg), ev.DetectionID)
		return s.FanOut(ctx, ev)
	})

	deliver := func(msg *message.Message) error {
		d, err := events.Decode[dom.Delivery](msg)
		if err != nil {
			s.log.Error().Err(err).Str("message_uuid", msg.UUID).Msg("dropping undecodable delivery")
			return nil
		}
		ctx := logger.WithDetection(events.Context(msg), d.DetectionID)
		return s.Deliver(ctx, d)
	}
	r.AddConsumerHandler(HandlerSMS, events.TopicNotifySMS, sub, deliver)
	r.AddConsumerHandler(HandlerWhatsApp, events.TopicNotifyWhatsApp, sub, deliver)
	r.AddConsumerHandler(HandlerPush, events.TopicNotifyPush, sub, deliver)
}
