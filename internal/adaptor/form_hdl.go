package adaptor

import (
	"net/http"

	"answerq/internal/dto/request"
	"answerq/internal/usecase"
	"answerq/pkg/utils"

	"go.uber.org/zap"
)

type FormHandler struct {
	service usecase.FormService
	log     *zap.Logger
}

func NewFormHandler(service usecase.FormService, log *zap.Logger) *FormHandler {
	return &FormHandler{
		service: service,
		log:     log.With(zap.String("handler", "form")),
	}
}

// GetAll handles GET /v1/forms
func (h *FormHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	forms, err := h.service.GetAll(r.Context(), request.PaginationFromQuery(r))
	if err != nil {
		writeError(w, h.log, err, "list forms")
		return
	}
	utils.ResponseSuccess(w, "Forms retrieved successfully", forms)
}

// GetByUser handles GET /v1/forms/user/{id}
func (h *FormHandler) GetByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r)
	if !ok {
		return
	}

	forms, err := h.service.GetByUser(r.Context(), userID, request.PaginationFromQuery(r))
	if err != nil {
		writeError(w, h.log, err, "list forms by user")
		return
	}
	utils.ResponseSuccess(w, "Forms retrieved successfully", forms)
}

// GetByID handles GET /v1/forms/{id}
func (h *FormHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	form, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "get form")
		return
	}
	utils.ResponseSuccess(w, "Form retrieved successfully", form)
}

// Create handles POST /v1/forms
func (h *FormHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r, h.log)
	if !ok {
		return
	}

	var req request.CreateFormRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	form, err := h.service.Create(r.Context(), caller, &req)
	if err != nil {
		writeError(w, h.log, err, "create form")
		return
	}
	utils.ResponseCreated(w, "Form created successfully", form)
}

// Update handles PUT /v1/forms/{id}
func (h *FormHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r, h.log)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.UpdateFormRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	form, err := h.service.Update(r.Context(), caller, id, &req)
	if err != nil {
		writeError(w, h.log, err, "update form")
		return
	}
	utils.ResponseSuccess(w, "Form updated successfully", form)
}

// Delete handles DELETE /v1/forms/{id}
func (h *FormHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r, h.log)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), caller, id); err != nil {
		writeError(w, h.log, err, "delete form")
		return
	}
	utils.ResponseNoContent(w)
}
