// Package repo provides the users repository implementation
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"wildwatch/internal/modkit/repokit"
	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/platform/store"
	"wildwatch/internal/services/subscribers/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Repo] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Repo { return &pg{q: q} }

// Repo is the subscription store
type Repo interface {
	Create(ctx context.Context, in domain.NewUser) (domain.User, error)
	// TakenField returns "username" or "email" when either is already registered, "" otherwise
	TakenField(ctx context.Context, username, email string) (string, error)
	Get(ctx context.Context, id string) (domain.User, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.User, error)
	// FindByUsernameOrPhone matches either non-empty identifier; oldest match wins
	FindByUsernameOrPhone(ctx context.Context, username, phone string) (domain.User, error)
	Delete(ctx context.Context, id string) error
	SetSubscribed(ctx context.Context, id string, subscribed bool) error
	UpdateSettings(ctx context.Context, id string, n domain.Notifications, freq int) (domain.User, error)
	// Claim stamps last_notified_at = now only if the user's own alert_frequency window has elapsed
	Claim(ctx context.Context, id string, now time.Time) (bool, error)
}

const userCols = `id::text, username, name, surname, email, phone_number,
	pop_notifications, sms_alerts, whatsapp_alerts, alert_frequency, is_subscribed,
	last_notified_at, created_at, updated_at`

func scanUser(r store.Row) (domain.User, error) {
	var u domain.User
	err := r.Scan(&u.ID, &u.Username, &u.Name, &u.Surname, &u.Email, &u.PhoneNumber,
		&u.Notifications.PopNotifications, &u.Notifications.SMSAlerts, &u.Notifications.WhatsAppAlerts,
		&u.AlertFrequency, &u.IsSubscribed, &u.LastNotifiedAt, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func lookupErr(err error, msg string) error {
	if store.IsNoRows(err) {
		return perr.NotFoundf("User not found")
	}
	return perr.FromPostgresWithField(err, msg)
}

// Create implements Repo
func (s *pg) Create(ctx context.Context, in domain.NewUser) (domain.User, error) {
	u, err := store.One(ctx, s.q, scanUser, `
		INSERT INTO users (username, name, surname, email, phone_number,
			pop_notifications, sms_alerts, whatsapp_alerts, alert_frequency, is_subscribed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, true)
		RETURNING `+userCols,
		in.Username, in.Name, in.Surname, in.Email, in.PhoneNumber,
		in.Notifications.PopNotifications, in.Notifications.SMSAlerts, in.Notifications.WhatsAppAlerts,
		in.AlertFrequency,
	)
	if err != nil {
		return domain.User{}, perr.FromPostgresWithField(err, "insert user")
	}
	return u, nil
}

// TakenField implements Repo
func (s *pg) TakenField(ctx context.Context, username, email string) (string, error) {
	field, err := store.Scalar[string](ctx, s.q, `
		SELECT CASE WHEN username = $1 THEN 'username' ELSE 'email' END
		FROM users WHERE username = $1 OR email = $2
		ORDER BY (username = $1) DESC
		LIMIT 1`, username, email)
	if store.IsNoRows(err) {
		return "", nil
	}
	if err != nil {
		return "", perr.FromPostgres(err, "check user uniqueness")
	}
	return field, nil
}

// Get implements Repo
func (s *pg) Get(ctx context.Context, id string) (domain.User, error) {
	u, err := store.One(ctx, s.q, scanUser, `SELECT `+userCols+` FROM users WHERE id = $1::uuid`, id)
	if err != nil {
		return domain.User{}, lookupErr(err, "get user")
	}
	return u, nil
}

// List implements Repo
func (s *pg) List(ctx context.Context, f domain.ListFilter) ([]domain.User, error) {
	var conds []string
	if f.AnyChannel {
		conds = append(conds, `(pop_notifications OR sms_alerts OR whatsapp_alerts)`)
	}
	if f.SubscribedOnly {
		conds = append(conds, `is_subscribed`)
	}
	sql := `SELECT ` + userCols + ` FROM users`
	if len(conds) > 0 {
		sql += ` WHERE ` + strings.Join(conds, " AND ")
	}
	sql += ` ORDER BY created_at, id`
	out, err := store.Many(ctx, s.q, scanUser, sql)
	if err != nil {
		return nil, perr.FromPostgres(err, "list users")
	}
	return out, nil
}

// FindByUsernameOrPhone implements Repo
func (s *pg) FindByUsernameOrPhone(ctx context.Context, username, phone string) (domain.User, error) {
	u, err := store.One(ctx, s.q, scanUser, `
		SELECT `+userCols+` FROM users
		WHERE ($1 <> '' AND username = $1) OR ($2 <> '' AND phone_number = $2)
		ORDER BY created_at, id
		LIMIT 1`, username, phone)
	if err != nil {
		return domain.User{}, lookupErr(err, "find user")
	}
	return u, nil
}

// Delete implements Repo
func (s *pg) Delete(ctx context.Context, id string) error {
	err := store.ExecOne(ctx, s.q, `DELETE FROM users WHERE id = $1::uuid`, id)
	if errors.Is(err, store.ErrNoRowsAffected) {
		return perr.NotFoundf("User not found")
	}
	return perr.FromPostgres(err, "delete user")
}

// SetSubscribed implements Repo
func (s *pg) SetSubscribed(ctx context.Context, id string, subscribed bool) error {
	err := store.ExecOne(ctx, s.q,
		`UPDATE users SET is_subscribed = $2, updated_at = now() WHERE id = $1::uuid`, id, subscribed)
	if errors.Is(err, store.ErrNoRowsAffected) {
		return perr.NotFoundf("User not found")
	}
	return perr.FromPostgres(err, "update subscription")
}

// UpdateSettings implements Repo
func (s *pg) UpdateSettings(ctx context.Context, id string, n domain.Notifications, freq int) (domain.User, error) {
	u, err := store.One(ctx, s.q, scanUser, `
		UPDATE users
		SET pop_notifications = $2, sms_alerts = $3, whatsapp_alerts = $4, alert_frequency = $5, updated_at = now()
		WHERE id = $1::uuid
		RETURNING `+userCols,
		id, n.PopNotifications, n.SMSAlerts, n.WhatsAppAlerts, freq)
	if err != nil {
		return domain.User{}, lookupErr(err, "update notification settings")
	}
	return u, nil
}

// Claim implements Repo. One statement decides and stamps, so concurrent claimers cannot both win
func (s *pg) Claim(ctx context.Context, id string, now time.Time) (bool, error) {
	err := store.ExecOne(ctx, s.q, `
		UPDATE users SET last_notified_at = $2
		WHERE id = $1::uuid
		  AND is_subscribed
		  AND (last_notified_at IS NULL
		       OR last_notified_at <= $2::timestamptz - make_interval(mins => alert_frequency))`,
		id, now)
	switch {
	case errors.Is(err, store.ErrNoRowsAffected):
		return false, nil
	case err != nil:
		return false, perr.FromPostgres(err, "claim notification")
	}
	return true, nil
}
