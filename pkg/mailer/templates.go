package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	TemplateVerification    = "verification"
	TemplateSignInAlert     = "signin_alert"
	TemplateEmailChanged    = "email_changed"
	TemplatePasswordChanged = "password_changed"
)

var subjects = map[string]string{
	TemplateVerification:    "Verify your account",
	TemplateSignInAlert:     "New sign-in to your account",
	TemplateEmailChanged:    "Your email address was changed",
	TemplatePasswordChanged: "Your password was changed",
}

type templateData struct {
	AppName          string
	Username         string
	Code             string
	ExpiresInMinutes int
	OldEmail         string
	NewEmail         string
	At               string
}

// Composer renders the account notification emails.
type Composer struct {
	appName   string
	templates map[string]*template.Template
}

// NewComposer parses every embedded template up front so a broken template
// fails startup instead of a send.
func NewComposer(appName string) (*Composer, error) {
	c := &Composer{appName: appName, templates: make(map[string]*template.Template, len(subjects))}
	for name := range subjects {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		c.templates[name] = tmpl
	}
	return c, nil
}

func (c *Composer) Verification(to, username, code string, expiry time.Duration) (Message, error) {
	return c.compose(TemplateVerification, to, templateData{
		Username:         username,
		Code:             code,
		ExpiresInMinutes: int(expiry / time.Minute),
	})
}

func (c *Composer) SignInAlert(to, username string, at time.Time) (Message, error) {
	return c.compose(TemplateSignInAlert, to, templateData{
		Username: username,
		At:       formatTime(at),
	})
}

func (c *Composer) EmailChanged(to, username, oldEmail, newEmail string, at time.Time) (Message, error) {
	return c.compose(TemplateEmailChanged, to, templateData{
		Username: username,
		OldEmail: oldEmail,
		NewEmail: newEmail,
		At:       formatTime(at),
	})
}

func (c *Composer) PasswordChanged(to, username string, at time.Time) (Message, error) {
	return c.compose(TemplatePasswordChanged, to, templateData{
		Username: username,
		At:       formatTime(at),
	})
}

func (c *Composer) compose(name, to string, data templateData) (Message, error) {
	tmpl, ok := c.templates[name]
	if !ok {
		return Message{}, fmt.Errorf("unknown template %s", name)
	}

	data.AppName = c.appName
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return Message{}, fmt.Errorf("render template %s: %w", name, err)
	}

	return Message{To: to, Subject: subjects[name], Body: buf.String()}, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05 MST")
}
