package adaptor

import (
	"net/http"

	"answerq/internal/dto/request"
	"answerq/internal/usecase"
	"answerq/pkg/utils"

	"go.uber.org/zap"
)

type AnswerHandler struct {
	service usecase.AnswerService
	log     *zap.Logger
}

func NewAnswerHandler(service usecase.AnswerService, log *zap.Logger) *AnswerHandler {
	return &AnswerHandler{
		service: service,
		log:     log.With(zap.String("handler", "answer")),
	}
}

func (h *AnswerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	answers, err := h.service.GetAll(r.Context(), request.PaginationFromQuery(r))
	if err != nil {
		writeError(w, h.log, err, "list answers")
		return
	}
	utils.ResponseSuccess(w, "Answers retrieved successfully", answers)
}

// GetByQuestion handles GET /v1/answers/by-question/{id}
func (h *AnswerHandler) GetByQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(w, r)
	if !ok {
		return
	}

	answers, err := h.service.GetByQuestion(r.Context(), questionID, request.PaginationFromQuery(r))
	if err != nil {
		writeError(w, h.log, err, "list answers by question")
		return
	}
	utils.ResponseSuccess(w, "Answers retrieved successfully", answers)
}

func (h *AnswerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	answer, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "get answer")
		return
	}
	utils.ResponseSuccess(w, "Answer retrieved successfully", answer)
}

func (h *AnswerHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r, h.log)
	if !ok {
		return
	}

	var req request.CreateAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	answer, err := h.service.Create(r.Context(), caller, &req)
	if err != nil {
		writeError(w, h.log, err, "create answer")
		return
	}
	utils.ResponseCreated(w, "Answer created successfully", answer)
}

func (h *AnswerHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r, h.log)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.UpdateAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	answer, err := h.service.Update(r.Context(), caller, id, &req)
	if err != nil {
		writeError(w, h.log, err, "update answer")
		return
	}
	utils.ResponseSuccess(w, "Answer updated successfully", answer)
}

func (h *AnswerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r, h.log)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), caller, id); err != nil {
		writeError(w, h.log, err, "delete answer")
		return
	}
	utils.ResponseNoContent(w)
}
