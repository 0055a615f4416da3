package users

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound          = errors.New("resource not found")
	ErrConflict          = errors.New("resource already exists")
	ErrDuplicateEmail    = errors.New("a user with that email already exists")
	QueryTimeoutDuration = time.Second * 5
)

type User struct {
	ID                   int64      `json:"id"`
	Alias                string     `json:"alias"`
	Email                string     `json:"email"`
	Password             password   `json:"-"`
	RefreshToken         string     `json:"-"`
	ResetPasswordToken   string     `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// password keeps the plaintext only for the lifetime of the request that set it.
type password struct {
	text *string
	hash []byte
}

func (p *password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.text = &text
	p.hash = hash

	return nil
}

func (p *password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}

// ResetExpired reports whether the pending reset token is missing or past its expiry.
func (u *User) ResetExpired(now time.Time) bool {
	return u.ResetPasswordExpires == nil || now.After(*u.ResetPasswordExpires)
}
