package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mailtpl "github.com/oksasatya/agrosphere-api/pkg/mailer/templates"
)

// ErrBadJob marks a job that can never be delivered and must not be retried.
var ErrBadJob = errors.New("invalid email job")

// Compose renders the job into subject, text and html bodies.
func Compose(job *EmailJob) (subject, text, html string, err error) {
	if strings.TrimSpace(job.To) == "" {
		return "", "", "", fmt.Errorf("%w: missing recipient", ErrBadJob)
	}
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return "", "", "", fmt.Errorf("%w: no template and no body", ErrBadJob)
		}
		return job.Subject, job.Text, job.HTML, nil
	}
	ensureRecipient(job)
	subject, text, html, err = mailtpl.Render(job.Template, job.Data)
	if err != nil {
		return "", "", "", fmt.Errorf("%w: render %s: %v", ErrBadJob, job.Template, err)
	}
	if job.Subject != "" {
		subject = job.Subject
	}
	return subject, text, html, nil
}

// Deliver composes and sends one job.
func Deliver(ctx context.Context, s Sender, job *EmailJob) error {
	subject, text, html, err := Compose(job)
	if err != nil {
		return err
	}
	return s.Send(ctx, job.To, subject, text, html)
}

func ensureRecipient(job *EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	for _, k := range []string{"Email", "RecipientEmail"} {
		if v, ok := job.Data[k]; !ok || fmt.Sprintf("%v", v) == "" {
			job.Data[k] = job.To
		}
	}
}
