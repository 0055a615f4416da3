package mailer

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"gopkg.in/mail.v2"
)

type SMTPMailer struct {
	dialer    *mail.Dialer
	fromEmail string
	backoff   time.Duration
}

func NewSMTPMailer(host string, port int, username, password, fromEmail string) (*SMTPMailer, error) {
	if host == "" {
		return nil, errors.New("smtp host is required")
	}
	if fromEmail == "" {
		return nil, errors.New("from email is required")
	}

	return &SMTPMailer{
		dialer:    mail.NewDialer(host, port, username, password),
		fromEmail: fromEmail,
		backoff:   time.Second,
	}, nil
}

// Send renders the "subject" and "body" blocks of templateFile with data and delivers
// the message, retrying with exponential backoff. The int is an HTTP-like status for
// logging.
func (m *SMTPMailer) Send(templateFile, username, email string, data any) (int, error) {
	subject, body, err := render(templateFile, data)
	if err != nil {
		return -1, err
	}

	message := mail.NewMessage()
	message.SetAddressHeader("From", m.fromEmail, FromName)
	message.SetAddressHeader("To", email, username)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", body)

	var retryErr error
	for i := 0; i < maxRetries; i++ {
		if retryErr = m.dialer.DialAndSend(message); retryErr == nil {
			return http.StatusOK, nil
		}
		time.Sleep(m.backoff * time.Duration(1<<i))
	}

	return -1, fmt.Errorf("failed to send email after %d attempts, error: %w", maxRetries, retryErr)
}

func render(templateFile string, data any) (string, string, error) {
	tmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return "", "", err
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return "", "", err
	}

	body := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(body, "body", data); err != nil {
		return "", "", err
	}

	return subject.String(), body.String(), nil
}
