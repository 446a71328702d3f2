package repository

import (
	"answerq/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Form       FormRepository
	Question   QuestionRepository
	Answer     AnswerRepository
	UserAnswer UserAnswerRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Form:       NewFormRepository(db, log),
		Question:   NewQuestionRepository(db, log),
		Answer:     NewAnswerRepository(db, log),
		UserAnswer: NewUserAnswerRepository(db, log),
	}
}
