// Package events is the in-process pub/sub the notify pipeline runs on
package events

import (
	"context"
	"time"

	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/platform/logger"
	pnet "wildwatch/internal/platform/net"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Topics
const (
	TopicDetectionOccurred = "detections.occurred"
	TopicNotifySMS         = "notify.sms"
	TopicNotifyWhatsApp    = "notify.whatsapp"
	TopicNotifyPush        = "notify.push"
)

// metadata keys carried on every message
const (
	metaRequestID   = "request_id"
	metaPublishedAt = "published_at"
)

// Options configures the Bus
type Options struct {
	// Buffer is the per-subscriber output channel size
	Buffer int64
	Log    *logger.Logger
}

// Bus wraps a gochannel pub/sub with JSON payload helpers
type Bus struct {
	ps     *gochannel.GoChannel
	logger watermill.LoggerAdapter
}

// New creates a Bus; publishing never waits for subscriber acks
func New(o Options) *Bus {
	if o.Buffer <= 0 {
		o.Buffer = 256
	}
	wl := logger.NewWatermill(o.Log)
	return &Bus{
		ps: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer:            o.Buffer,
			BlockPublishUntilSubscriberAck: false,
		}, wl),
		logger: wl,
	}
}

// Publisher exposes the raw watermill publisher
func (b *Bus) Publisher() message.Publisher { return b.ps }

// Subscriber exposes the raw watermill subscriber
func (b *Bus) Subscriber() message.Subscriber { return b.ps }

// Logger is the watermill logger the bus was built with
func (b *Bus) Logger() watermill.LoggerAdapter { return b.logger }

// Publish JSON encodes payload and publishes it on topic
func (b *Bus) Publish(ctx context.Context, topic string, payload any) error {
	msg, err := NewMessage(ctx, payload)
	if err != nil {
		return err
	}
	if err := b.ps.Publish(topic, msg); err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "publish %s", topic)
	}
	return nil
}

// Close stops the pub/sub and its subscriptions
func (b *Bus) Close() error { return b.ps.Close() }

// NewMessage builds a message with a fresh uuid and the request id from ctx
func NewMessage(ctx context.Context, payload any) (*message.Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "encode event")
	}
	msg := message.NewMessage(uuid.NewString(), raw)
	if rid := pnet.RequestID(ctx); rid != "" {
		msg.Metadata.Set(metaRequestID, rid)
	}
	msg.Metadata.Set(metaPublishedAt, time.Now().UTC().Format(time.RFC3339Nano))
	return msg, nil
}

// Decode unmarshals a message payload into T
func Decode[T any](msg *message.Message) (T, error) {
	var v T
	if err := json.Unmarshal(msg.Payload, &v); err != nil {
		return v, perr.Wrap(err, perr.ErrorCodeJSON, "decode event")
	}
	return v, nil
}

// Context returns the message context carrying the originating request id for logging
func Context(msg *message.Message) context.Context {
	return logger.WithRequest(msg.Context(), msg.Metadata.Get(metaRequestID))
}
