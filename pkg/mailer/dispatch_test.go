package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/agrosphere-api/config"
	mailtpl "github.com/oksasatya/agrosphere-api/pkg/mailer/templates"
)

type fakeSender struct {
	to, subject, text, html string
	err                     error
	calls                   int
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	f.calls++
	f.to, f.subject, f.text, f.html = to, subject, text, html
	return f.err
}

func TestDeliverPasswordRecovery(t *testing.T) {
	cfg := &config.Config{AppName: "AgroSphere", CompanyName: "AgroSphere Inc.", CompanyAddress: "123 Green Valley Road"}
	now := time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)
	job := &EmailJob{
		To:       "a@x.com",
		Template: mailtpl.PasswordRecovery,
		Data:     mailtpl.NewPasswordRecoveryData(cfg, "a@x.com", "042137", mailtpl.WithExpiresIn(now, 5*time.Minute)),
	}
	s := &fakeSender{}
	require.NoError(t, Deliver(context.Background(), s, job))

	assert.Equal(t, 1, s.calls)
	assert.Equal(t, "a@x.com", s.to)
	assert.Equal(t, "AGROSPHERE PASSWORD RECOVERY", s.subject)
	assert.Contains(t, s.text, "042137")
	assert.Contains(t, s.text, "5 minutes")
	assert.Contains(t, s.html, "042137")
	assert.Contains(t, s.html, "123 Green Valley Road")
	assert.Contains(t, s.html, "02 January 2025, 03:09 UTC")
}

func TestDeliverPlainBody(t *testing.T) {
	s := &fakeSender{}
	err := Deliver(context.Background(), s, &EmailJob{To: "a@x.com", Subject: "hi", Text: "body"})
	require.NoError(t, err)
	assert.Equal(t, "hi", s.subject)
	assert.Equal(t, "body", s.text)
}

func TestDeliverRejectsBadJobs(t *testing.T) {
	cases := map[string]*EmailJob{
		"no recipient":     {Template: mailtpl.PasswordRecovery},
		"no body":          {To: "a@x.com", Subject: "hi"},
		"unknown template": {To: "a@x.com", Template: "nope"},
	}
	for name, job := range cases {
		t.Run(name, func(t *testing.T) {
			s := &fakeSender{}
			err := Deliver(context.Background(), s, job)
			assert.ErrorIs(t, err, ErrBadJob)
			assert.Zero(t, s.calls)
		})
	}
}

func TestDeliverPropagatesSendError(t *testing.T) {
	s := &fakeSender{err: errors.New("boom")}
	err := Deliver(context.Background(), s, &EmailJob{To: "a@x.com", Subject: "hi", Text: "body"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrBadJob))
}
