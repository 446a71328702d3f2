package adaptor

import (
	"net/http"

	"answerq/internal/dto/request"
	"answerq/internal/usecase"
	"answerq/pkg/utils"

	"go.uber.org/zap"
)

type QuestionHandler struct {
	service usecase.QuestionService
	log     *zap.Logger
}

func NewQuestionHandler(service usecase.QuestionService, log *zap.Logger) *QuestionHandler {
	return &QuestionHandler{
		service: service,
		log:     log.With(zap.String("handler", "question")),
	}
}

func (h *QuestionHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	questions, err := h.service.GetAll(r.Context(), request.PaginationFromQuery(r))
	if err != nil {
		writeError(w, h.log, err, "list questions")
		return
	}
	utils.ResponseSuccess(w, "Questions retrieved successfully", questions)
}

// GetByForm handles GET /v1/question/by-form/{id}
func (h *QuestionHandler) GetByForm(w http.ResponseWriter, r *http.Request) {
	formID, ok := pathID(w, r)
	if !ok {
		return
	}

	questions, err := h.service.GetByForm(r.Context(), formID, request.PaginationFromQuery(r))
	if err != nil {
		writeError(w, h.log, err, "list questions by form")
		return
	}
	utils.ResponseSuccess(w, "Questions retrieved successfully", questions)
}

func (h *QuestionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	question, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "get question")
		return
	}
	utils.ResponseSuccess(w, "Question retrieved successfully", question)
}

func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r, h.log)
	if !ok {
		return
	}

	var req request.CreateQuestionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	question, err := h.service.Create(r.Context(), caller, &req)
	if err != nil {
		writeError(w, h.log, err, "create question")
		return
	}
	utils.ResponseCreated(w, "Question created successfully", question)
}

func (h *QuestionHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r, h.log)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.UpdateQuestionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	question, err := h.service.Update(r.Context(), caller, id, &req)
	if err != nil {
		writeError(w, h.log, err, "update question")
		return
	}
	utils.ResponseSuccess(w, "Question updated successfully", question)
}

func (h *QuestionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r, h.log)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), caller, id); err != nil {
		writeError(w, h.log, err, "delete question")
		return
	}
	utils.ResponseNoContent(w)
}
