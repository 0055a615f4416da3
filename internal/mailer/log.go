package mailer

import (
	"net/http"

	"go.uber.org/zap"
)

// LogMailer renders mails and logs them instead of delivering. Used when no SMTP
// server is configured, e.g. in development.
type LogMailer struct {
	logger *zap.SugaredLogger
}

func NewLogMailer(logger *zap.SugaredLogger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(templateFile, username, email string, data any) (int, error) {
	subject, body, err := render(templateFile, data)
	if err != nil {
		return -1, err
	}
	m.logger.Infow("mail not sent (no smtp)", "to", email, "username", username, "subject", subject, "body", body)
	return http.StatusOK, nil
}
