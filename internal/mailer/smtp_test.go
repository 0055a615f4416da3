package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRenderResetPassword(t *testing.T) {
	subject, body, err := render(ResetPasswordTemplate, struct {
		Username string
		ResetURL string
	}{
		Username: "luna",
		ResetURL: "https://patitas.example/reset-password?token=abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "Restablecé tu contraseña de Patitas Urbanas", subject)
	assert.Contains(t, body, "Hola luna")
	assert.Contains(t, body, `href="https://patitas.example/reset-password?token=abc"`)
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, err := render("missing.tmpl", nil)
	assert.Error(t, err)
}

func TestNewSMTPMailerValidates(t *testing.T) {
	_, err := NewSMTPMailer("", 587, "u", "p", "no-reply@patitas.example")
	assert.Error(t, err)

	_, err = NewSMTPMailer("smtp.example", 587, "u", "p", "")
	assert.Error(t, err)

	m, err := NewSMTPMailer("smtp.example", 587, "u", "p", "no-reply@patitas.example")
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestLogMailer(t *testing.T) {
	m := NewLogMailer(zap.NewNop().Sugar())

	status, err := m.Send(ResetPasswordTemplate, "luna", "luna@example.com", map[string]string{
		"Username": "luna",
		"ResetURL": "https://patitas.example/r",
	})
	require.NoError(t, err)
	assert.Equal(t, 200, status)
}
