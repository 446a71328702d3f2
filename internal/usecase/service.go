package usecase

import (
	"time"

	"answerq/internal/data/repository"
	"answerq/pkg/apperr"
	"answerq/pkg/mailer"
	"answerq/pkg/utils"

	"go.uber.org/zap"
)

// Notifier queues an outgoing email. Implementations must not block the caller.
type Notifier interface {
	Dispatch(msg mailer.Message)
}

type Service struct {
	Auth       AuthService
	Profile    ProfileService
	Form       FormService
	Question   QuestionService
	Answer     AnswerService
	UserAnswer UserAnswerService
}

func NewService(
	repo *repository.Repository,
	notifier Notifier,
	composer *mailer.Composer,
	config *utils.Config,
	log *zap.Logger,
	opts ...Option,
) *Service {
	mail := newNotifications(notifier, composer, log)

	return &Service{
		Auth:       NewAuthService(repo.User, mail, config.Verification.Expiry, log, opts...),
		Profile:    NewProfileService(repo.User, mail, log, opts...),
		Form:       NewFormService(repo.Form, log),
		Question:   NewQuestionService(repo.Question, repo.Form, log),
		Answer:     NewAnswerService(repo.Answer, repo.Question, repo.Form, log),
		UserAnswer: NewUserAnswerService(repo.UserAnswer, repo.Form, repo.Question, repo.Answer, log),
	}
}

type options struct {
	now     func() time.Time
	newCode func() string
}

type Option func(*options)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithCodeGenerator replaces the verification code generator.
func WithCodeGenerator(gen func() string) Option {
	return func(o *options) { o.newCode = gen }
}

func buildOptions(opts []Option) options {
	o := options{
		now:     time.Now,
		newCode: utils.GenerateVerificationCode,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// validate runs the struct validator and returns the failures as apperr.FieldErrors.
func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperr.FieldErrors(errs)
	}
	return nil
}
