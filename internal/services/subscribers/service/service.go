// Package service implements subscription management and the notification gate
package service

import (
	"context"
	"strings"
	"time"

	"wildwatch/internal/core/frequency"
	"wildwatch/internal/core/gate"
	"wildwatch/internal/modkit/repokit"
	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/platform/logger"
	"wildwatch/internal/platform/metrics"
	dom "wildwatch/internal/services/subscribers/domain"
	"wildwatch/internal/services/subscribers/repo"

	"github.com/google/uuid"
)

// Service implements the subscribers ports
type Service struct {
	db     repokit.TxRunner
	binder repokit.Binder[repo.Repo]
	repo   repo.Repo
}

var (
	_ dom.RegistrationPort = (*Service)(nil)
	_ dom.DirectoryPort    = (*Service)(nil)
	_ dom.GatePort         = (*Service)(nil)
)

// New constructs the service over db using binder
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Service {
	if db == nil {
		panic("subscribers.service: nil TxRunner")
	}
	if binder == nil {
		panic("subscribers.service: nil binder")
	}
	return &Service{db: db, binder: binder, repo: binder.Bind(db)}
}

func conflict(field string) error {
	msg := "Email already exists"
	if field == "username" {
		msg = "Username already exists"
	}
	return perr.WithField(perr.Conflictf("%s", msg), field)
}

// Create registers a subscribed user. Uniqueness is checked up front and enforced again by the store
func (s *Service) Create(ctx context.Context, in dom.NewUser) (dom.User, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return dom.User{}, err
	}

	var out dom.User
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		field, err := r.TakenField(ctx, in.Username, in.Email)
		if err != nil {
			return err
		}
		if field != "" {
			return conflict(field)
		}
		out, err = r.Create(ctx, in)
		return err
	})
	if perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		e, _ := perr.As(err)
		return dom.User{}, conflict(e.Field())
	}
	if err != nil {
		return dom.User{}, perr.WithOp(err, "subscribers.create")
	}
	logger.C(ctx).Info().Str("user_id", out.ID).Int("alert_frequency", out.AlertFrequency).Msg("user subscribed")
	return out, nil
}

// Unsubscribe matches by username or phone number, then deletes or flags the user
func (s *Service) Unsubscribe(ctx context.Context, in dom.Unsubscribe) (dom.UnsubscribeResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	if in.Username == "" && in.PhoneNumber == "" {
		return dom.UnsubscribeResult{}, perr.WithFields(
			perr.Validationf("username or phoneNumber is required"), "username", "phoneNumber")
	}

	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		u, err := r.FindByUsernameOrPhone(ctx, in.Username, in.PhoneNumber)
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			var supplied []string
			if in.Username != "" {
				supplied = append(supplied, "username")
			}
			if in.PhoneNumber != "" {
				supplied = append(supplied, "phoneNumber")
			}
			return perr.WithFields(perr.NotFoundf("Authentication failed"), supplied...)
		}
		if err != nil {
			return err
		}
		if in.DeleteData {
			return r.Delete(ctx, u.ID)
		}
		return r.SetSubscribed(ctx, u.ID, false)
	})
	if err != nil {
		return dom.UnsubscribeResult{}, perr.WithOp(err, "subscribers.unsubscribe")
	}
	return dom.UnsubscribeResult{DeleteData: in.DeleteData}, nil
}

// Get returns one user; malformed ids are simply not found
func (s *Service) Get(ctx context.Context, id string) (dom.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return dom.User{}, perr.NotFoundf("User not found")
	}
	return s.repo.Get(ctx, id)
}

// List returns users matching f, oldest first
func (s *Service) List(ctx context.Context, f dom.ListFilter) ([]dom.User, error) {
	out, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, perr.WithOp(err, "subscribers.list")
	}
	return out, nil
}

// Settings returns a user's notification preferences
func (s *Service) Settings(ctx context.Context, id string) (dom.Settings, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return dom.Settings{}, err
	}
	return dom.Settings{Notifications: u.Notifications, AlertFrequency: u.AlertFrequency}, nil
}

// UpdateSettings patches preferences and returns the updated user
func (s *Service) UpdateSettings(ctx context.Context, id string, in dom.SettingsUpdate) (dom.User, error) {
	if in.AlertFrequency != nil && !frequency.Valid(*in.AlertFrequency) {
		return dom.User{}, perr.WithField(perr.Validationf("alertFrequency must be one of 2, 5, 10, 30, 60 minutes"), "alertFrequency")
	}
	if _, err := uuid.Parse(id); err != nil {
		return dom.User{}, perr.NotFoundf("User not found")
	}

	var out dom.User
	err := repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		cur, err := r.Get(ctx, id)
		if err != nil {
			return err
		}
		n, freq := cur.Notifications, cur.AlertFrequency
		if in.Notifications != nil {
			n = *in.Notifications
		}
		if in.AlertFrequency != nil {
			freq = *in.AlertFrequency
		}
		out, err = r.UpdateSettings(ctx, id, n, freq)
		return err
	})
	if err != nil {
		return dom.User{}, perr.WithOp(err, "subscribers.update_settings")
	}
	return out, nil
}

// Claim applies the notification gate for u at now and persists the send time when allowed
func (s *Service) Claim(ctx context.Context, u dom.User, now time.Time) (bool, error) {
	// the stored row is authoritative; this only skips a write that cannot succeed
	if !gate.ShouldNotify(u.AlertFrequency, u.LastNotifiedAt, now) {
		metrics.GateDecisions.WithLabelValues(gate.Throttled).Inc()
		return false, nil
	}
	ok, err := s.repo.Claim(ctx, u.ID, now)
	if err != nil {
		return false, perr.WithOp(err, "subscribers.claim")
	}
	decision := gate.Allowed
	if !ok {
		decision = gate.Throttled
	}
	metrics.GateDecisions.WithLabelValues(decision).Inc()
	return ok, nil
}
