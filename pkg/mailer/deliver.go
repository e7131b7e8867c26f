package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/vibhive/pkg/mailer/templates"
)

// Sender delivers one rendered message. *Mailgun implements it.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

var ErrInvalidJob = errors.New("invalid email job")

// Deliver renders job when it names a template and hands it to s.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	if strings.TrimSpace(job.To) == "" {
		return fmt.Errorf("%w: missing recipient", ErrInvalidJob)
	}
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		var err error
		subject, text, html, err = templates.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidJob, err)
		}
		subject = strings.TrimSpace(subject)
	}
	if subject == "" || (text == "" && html == "") {
		return fmt.Errorf("%w: empty message", ErrInvalidJob)
	}
	return s.Send(ctx, job.To, subject, text, html)
}
