package wire

import (
	"answerq/internal/adaptor"
	"answerq/internal/data/entity"

	"github.com/go-chi/chi/v5"
)

func wireForm(r chi.Router, formHandler *adaptor.FormHandler) {
	r.Route("/forms", func(r chi.Router) {
		r.Get("/", formHandler.GetAll)             // GET /v1/forms?page=1&per_page=10
		r.Get("/user/{id}", formHandler.GetByUser) // GET /v1/forms/user/{user-id}
		r.Get("/{id}", formHandler.GetByID)
		r.Post("/", formHandler.Create)
		r.Put("/{id}", formHandler.Update)
		r.Delete("/{id}", formHandler.Delete)
	})
}

func wireQuestion(r chi.Router, questionHandler *adaptor.QuestionHandler) {
	r.Route("/question", func(r chi.Router) {
		r.Get("/", questionHandler.GetAll)
		r.Get("/by-form/{id}", questionHandler.GetByForm)
		r.Get("/{id}", questionHandler.GetByID)
		r.Post("/", questionHandler.Create)
		r.Put("/{id}", questionHandler.Update)
		r.Delete("/{id}", questionHandler.Delete)
	})
}

func wireAnswer(r chi.Router, answerHandler *adaptor.AnswerHandler) {
	r.Route("/answers", func(r chi.Router) {
		r.Get("/", answerHandler.GetAll)
		r.Get("/by-question/{id}", answerHandler.GetByQuestion)
		r.Get("/{id}", answerHandler.GetByID)
		r.Post("/", answerHandler.Create)
		r.Put("/{id}", answerHandler.Update)
		r.Delete("/{id}", answerHandler.Delete)
	})
}

func wireUserAnswer(r chi.Router, h *adaptor.UserAnswerHandler) {
	r.Route("/user-answers", func(r chi.Router) {
		r.Get("/", h.GetAll)
		r.Get("/{id}", h.GetByID)
		r.Get("/by-form/{id}", h.ListBy(func(f *entity.UserAnswerFilter, id int64) { f.FormID = id }))
		r.Get("/by-user/{id}", h.ListBy(func(f *entity.UserAnswerFilter, id int64) { f.UserID = id }))
		r.Get("/by-question/{id}", h.ListBy(func(f *entity.UserAnswerFilter, id int64) { f.QuestionID = id }))
		r.Get("/by-answer/{id}", h.ListBy(func(f *entity.UserAnswerFilter, id int64) { f.AnswerID = id }))
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}
