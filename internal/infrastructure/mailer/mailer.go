// Package mailer sends templated HTML email over SMTP.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	gomail "gopkg.in/mail.v2"

	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/core/ports"
	"github.com/classicrowndev/cc-hotel-backend-sub000/internal/infrastructure/breaker"
)

//go:embed "templates"
var FS embed.FS

const defaultDialTimeout = 10 * time.Second

// Config captures the SMTP settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	Timeout  time.Duration
}

// Mailer implements ports.Mailer.
type Mailer struct {
	from     string
	fromName string
	tmpl     *template.Template
	cb       *gobreaker.CircuitBreaker
	send     func(m ...*gomail.Message) error
}

// New parses the embedded templates and prepares an SMTP dialer. No
// connection is opened until the first Send.
func New(cfg Config, log zerolog.Logger) (*Mailer, error) {
	tmpl, err := template.New("").ParseFS(FS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.Timeout = cfg.Timeout
	if d.Timeout <= 0 {
		d.Timeout = defaultDialTimeout
	}

	return &Mailer{
		from:     cfg.From,
		fromName: cfg.FromName,
		tmpl:     tmpl,
		cb:       breaker.New(breaker.Mailer, log),
		send:     d.DialAndSend,
	}, nil
}

// Send renders msg.Template with msg.Data and delivers it.
func (m *Mailer) Send(ctx context.Context, msg ports.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := m.render(msg.Template, msg.Data)
	if err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", m.from, m.fromName)
	if msg.Name != "" {
		gm.SetAddressHeader("To", msg.To, msg.Name)
	} else {
		gm.SetHeader("To", msg.To)
	}
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", body)

	_, err = m.cb.Execute(func() (interface{}, error) {
		return nil, m.send(gm)
	})
	if err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}

func (m *Mailer) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := m.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
