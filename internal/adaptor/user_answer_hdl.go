package adaptor

import (
	"net/http"

	"answerq/internal/data/entity"
	"answerq/internal/dto/request"
	"answerq/internal/usecase"
	"answerq/pkg/utils"

	"go.uber.org/zap"
)

type UserAnswerHandler struct {
	service usecase.UserAnswerService
	log     *zap.Logger
}

func NewUserAnswerHandler(service usecase.UserAnswerService, log *zap.Logger) *UserAnswerHandler {
	return &UserAnswerHandler{
		service: service,
		log:     log.With(zap.String("handler", "user_answer")),
	}
}

// GetAll handles GET /v1/user-answers
func (h *UserAnswerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, entity.UserAnswerFilter{})
}

// ListBy returns a handler for GET /v1/user-answers/by-<column>/{id}.
// set copies the path id into the matching filter field.
func (h *UserAnswerHandler) ListBy(set func(f *entity.UserAnswerFilter, id int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var filter entity.UserAnswerFilter
		set(&filter, id)
		h.list(w, r, filter)
	}
}

func (h *UserAnswerHandler) list(w http.ResponseWriter, r *http.Request, filter entity.UserAnswerFilter) {
	answers, err := h.service.List(r.Context(), filter, request.PaginationFromQuery(r))
	if err != nil {
		writeError(w, h.log, err, "list user answers")
		return
	}
	utils.ResponseSuccess(w, "User answers retrieved successfully", answers)
}

func (h *UserAnswerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ua, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "get user answer")
		return
	}
	utils.ResponseSuccess(w, "User answer retrieved successfully", ua)
}

// Create handles POST /v1/user-answers. The caller is recorded as the respondent.
func (h *UserAnswerHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r, h.log)
	if !ok {
		return
	}

	var req request.CreateUserAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ua, err := h.service.Create(r.Context(), caller, &req)
	if err != nil {
		writeError(w, h.log, err, "create user answer")
		return
	}
	utils.ResponseCreated(w, "User answer recorded successfully", ua)
}

func (h *UserAnswerHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r, h.log)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.UpdateUserAnswerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	ua, err := h.service.Update(r.Context(), caller, id, &req)
	if err != nil {
		writeError(w, h.log, err, "update user answer")
		return
	}
	utils.ResponseSuccess(w, "User answer updated successfully", ua)
}

func (h *UserAnswerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r, h.log)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), caller, id); err != nil {
		writeError(w, h.log, err, "delete user answer")
		return
	}
	utils.ResponseNoContent(w)
}
