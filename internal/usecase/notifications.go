package usecase

import (
	"time"

	"answerq/pkg/mailer"

	"go.uber.org/zap"
)

// notifications renders account emails and hands them to the Notifier.
// Render failures are logged; nothing here can fail the calling operation.
type notifications struct {
	notifier Notifier
	composer *mailer.Composer
	log      *zap.Logger
}

func newNotifications(notifier Notifier, composer *mailer.Composer, log *zap.Logger) *notifications {
	return &notifications{
		notifier: notifier,
		composer: composer,
		log:      log.With(zap.String("component", "notifications")),
	}
}

func (n *notifications) send(kind, to string, msg mailer.Message, err error) {
	if err != nil {
		n.log.Error("Failed to render email", zap.Error(err), zap.String("kind", kind), zap.String("to", to))
		return
	}
	n.notifier.Dispatch(msg)
}

func (n *notifications) verification(to, username, code string, expiry time.Duration) {
	msg, err := n.composer.Verification(to, username, code, expiry)
	n.send(mailer.TemplateVerification, to, msg, err)
}

func (n *notifications) signInAlert(to, username string, at time.Time) {
	msg, err := n.composer.SignInAlert(to, username, at)
	n.send(mailer.TemplateSignInAlert, to, msg, err)
}

func (n *notifications) emailChanged(to, username, oldEmail, newEmail string, at time.Time) {
	msg, err := n.composer.EmailChanged(to, username, oldEmail, newEmail, at)
	n.send(mailer.TemplateEmailChanged, to, msg, err)
}

func (n *notifications) passwordChanged(to, username string, at time.Time) {
	msg, err := n.composer.PasswordChanged(to, username, at)
	n.send(mailer.TemplatePasswordChanged, to, msg, err)
}
