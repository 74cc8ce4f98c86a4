package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/haoyu-chen-me/seawolf-dine/internal/components/assert"
	"github.com/haoyu-chen-me/seawolf-dine/internal/document"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("seawolf-dine/notify")

type Config struct {
	// SmtpAddr is host:port of the smtp server.
	SmtpAddr string   `json:"smtp_addr"`
	Username string   `json:"username"`
	Password string   `json:"password"`
	From     string   `json:"from"`
	To       []string `json:"to"`
}

func (c Config) Enabled() bool {
	return c.SmtpAddr != "" && len(c.To) > 0
}

// Outcome is the final status of a vendor in a run.
type Outcome struct {
	Vendor   string
	Location string
	Status   document.Status
	Message  string
}

func failed(status document.Status) bool {
	return status == document.StatusFetchError || status == document.StatusPartialError
}

// Compose builds the failure report of a run, ok is false when nothing failed.
func Compose(outcomes []Outcome, at time.Time) (subject, body string, ok bool) {
	var failures []Outcome
	for _, o := range outcomes {
		if failed(o.Status) {
			failures = append(failures, o)
		}
	}
	if len(failures) == 0 {
		return "", "", false
	}

	subject = fmt.Sprintf(
		"[seawolf-dine] %d of %d vendors failed on %s",
		len(failures),
		len(outcomes),
		at.Format(time.DateOnly),
	)

	var b strings.Builder
	fmt.Fprintf(&b, "Scrape finished at %s.\n\n", at.Format("2006-01-02 15:04:05 MST"))
	for _, o := range failures {
		fmt.Fprintf(&b, "%s (%s): %s\n", o.Location, o.Vendor, o.Status)
		if o.Message != "" {
			fmt.Fprintf(&b, "    %s\n", o.Message)
		}
	}
	return subject, b.String(), true
}

type Mailer struct {
	config Config
}

func NewMailer(config Config) Mailer {
	assert.NotEmpty("smtp_addr", config.SmtpAddr)
	return Mailer{config: config}
}

func (m Mailer) Send(ctx context.Context, subject, body string) error {
	_, span := tracer.Start(ctx, "Send")
	defer span.End()

	mail := email.NewEmail()
	mail.From = fmt.Sprintf("seawolf-dine <%s>", m.config.From)
	mail.To = m.config.To
	mail.Subject = subject
	mail.Text = []byte(body)

	var auth smtp.Auth
	if m.config.Username != "" {
		host, _, err := net.SplitHostPort(m.config.SmtpAddr)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "invalid smtp address")
			return fmt.Errorf("smtp addr: %w", err)
		}
		auth = smtp.PlainAuth("", m.config.Username, m.config.Password, host)
	}

	err := mail.Send(m.config.SmtpAddr, auth)
	if err != nil && auth != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
		err = mail.Send(m.config.SmtpAddr, nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return err
	}
	return nil
}
