package adaptor

import (
	"answerq/internal/usecase"
	"answerq/pkg/token"

	"go.uber.org/zap"
)

type Handler struct {
	Auth       *AuthHandler
	User       *UserHandler
	Form       *FormHandler
	Question   *QuestionHandler
	Answer     *AnswerHandler
	UserAnswer *UserAnswerHandler
}

func NewHandler(service *usecase.Service, issuer token.Issuer, log *zap.Logger) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(service.Auth, issuer, log),
		User:       NewUserHandler(service.Profile, log),
		Form:       NewFormHandler(service.Form, log),
		Question:   NewQuestionHandler(service.Question, log),
		Answer:     NewAnswerHandler(service.Answer, log),
		UserAnswer: NewUserAnswerHandler(service.UserAnswer, log),
	}
}
