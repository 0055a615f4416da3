package mailer

import "embed"

const (
	FromName              = "Patitas Urbanas"
	maxRetries            = 3
	ResetPasswordTemplate = "reset_password.tmpl"
)

//go:embed "templates"
var FS embed.FS

type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}
