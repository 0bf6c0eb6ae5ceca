package module

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"wildwatch/internal/modkit"
	"wildwatch/internal/platform/config"
	kit "wildwatch/internal/platform/testkit"
	detdom "wildwatch/internal/services/detections/domain"
	subdom "wildwatch/internal/services/subscribers/domain"
)

type noUsers struct{}

func (noUsers) Get(context.Context, string) (subdom.User, error) { return subdom.User{}, nil }
func (noUsers) List(context.Context, subdom.ListFilter) ([]subdom.User, error) {
	return nil, nil
}
func (noUsers) Settings(context.Context, string) (subdom.Settings, error) {
	return subdom.Settings{}, nil
}
func (noUsers) UpdateSettings(context.Context, string, subdom.SettingsUpdate) (subdom.User, error) {
	return subdom.User{}, nil
}
func (noUsers) Claim(context.Context, subdom.User, time.Time) (bool, error) { return false, nil }

func TestDisabledHasNoPublisher(t *testing.T) {
	t.Setenv("NOTIFY_ENABLED", "false")
	m := New(modkit.Deps{Cfg: config.New()}, noUsers{}, noUsers{})
	if p := m.Ports().(Ports); p.Publisher != nil || p.Twilio == nil {
		t.Fatalf("ports = %+v", p)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Run(ctx); err != nil {
		t.Fatalf("Run = %v", err)
	}
	select {
	case <-m.Ready():
	default:
		t.Fatalf("disabled pipeline should be ready at once")
	}
}

type countingUsers struct {
	noUsers
	lists atomic.Int32
}

func (c *countingUsers) List(context.Context, subdom.ListFilter) ([]subdom.User, error) {
	c.lists.Add(1)
	return nil, nil
}

func TestPublishRightAfterReadyIsConsumed(t *testing.T) {
	t.Setenv("NOTIFY_ENABLED", "true")
	users := &countingUsers{}
	m := New(modkit.Deps{Cfg: config.New()}, users, users)

	ctx, cancel := context.WithCancel(kit.Context(t, 5*time.Second))
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	select {
	case <-m.Ready():
	case <-time.After(3 * time.Second):
		t.Fatalf("pipeline never became ready")
	}

	pub := m.Ports().(Ports).Publisher
	if err := pub.PublishDetection(context.Background(), detdom.Record{DetectionID: "d1", ClassName: "Leopard"}); err != nil {
		t.Fatalf("PublishDetection: %v", err)
	}
	kit.Eventually(t, 3*time.Second, func() bool { return users.lists.Load() == 1 }, "first detection should reach the fan-out")

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run = %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	t.Setenv("NOTIFY_ENABLED", "true")
	m := New(modkit.Deps{Cfg: config.New()}, noUsers{}, noUsers{})
	if m.Ports().(Ports).Publisher == nil {
		t.Fatalf("enabled module should export a publisher")
	}

	ctx, cancel := context.WithCancel(kit.Context(t, 5*time.Second))
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("Run did not stop")
	}
}
