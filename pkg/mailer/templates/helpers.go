package templates

import (
	"time"

	"github.com/oksasatya/agrosphere-api/config"
)

// Option pattern
type Option func(*EmailData)

func WithIP(ip string) Option { return func(d *EmailData) { d.IP = ip } }

func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04 MST") }
}

func WithExpiresIn(now time.Time, dur time.Duration) Option {
	return func(d *EmailData) {
		utc := now.Add(dur).UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04 MST")
		d.ValidMinutes = int(dur.Minutes())
	}
}

// NewBaseEmailData fills branding fields from config, then applies options.
func NewBaseEmailData(cfg *config.Config, typ, email string, opts ...Option) EmailData {
	d := EmailData{
		Email:          email,
		RecipientEmail: email,
		Type:           typ,
		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		AppName:        cfg.AppName,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewPasswordRecoveryData(cfg *config.Config, email, code string, opts ...Option) map[string]any {
	d := NewBaseEmailData(cfg, PasswordRecovery, email, opts...)
	d.Code = code
	return ToMap(d)
}
