package domain

import (
	"context"
	"time"
)

// RegistrationPort creates and retires subscriptions
type RegistrationPort interface {
	Create(ctx context.Context, in NewUser) (User, error)
	Unsubscribe(ctx context.Context, in Unsubscribe) (UnsubscribeResult, error)
}

// DirectoryPort reads and edits subscriptions
type DirectoryPort interface {
	Get(ctx context.Context, id string) (User, error)
	List(ctx context.Context, f ListFilter) ([]User, error)
	Settings(ctx context.Context, id string) (Settings, error)
	UpdateSettings(ctx context.Context, id string, in SettingsUpdate) (User, error)
}

// GatePort claims the right to notify a user now
type GatePort interface {
	Claim(ctx context.Context, u User, now time.Time) (bool, error)
}
