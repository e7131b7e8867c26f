package templates

import (
	"strings"
	"time"
)

// Brand is the sender identity rendered into every email.
type Brand struct {
	CompanyName string
	AppName     string
	LogoURL     string
	SupportURL  string
	AppURL      string
}

// Option pattern
type Option func(*EmailData)

func WithIP(ip string) Option        { return func(d *EmailData) { d.IP = strings.TrimSpace(ip) } }
func WithUserAgent(ua string) Option { return func(d *EmailData) { d.UserAgent = ua } }
func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func NewBaseEmailData(b Brand, typ, name, username, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Username:       username,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,

		CompanyName: b.CompanyName,
		AppName:     b.AppName,
		LogoURL:     b.LogoURL,
		SupportURL:  b.SupportURL,
		AppURL:      b.AppURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewWelcomeData(b Brand, name, username, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(b, Welcome, name, username, email, opts...))
}

func NewPasswordChangedData(b Brand, name, username, email string, opts ...Option) map[string]any {
	opts = append([]Option{WithTime(time.Now())}, opts...)
	return ToMap(NewBaseEmailData(b, PasswordChanged, name, username, email, opts...))
}
