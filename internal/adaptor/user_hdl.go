package adaptor

import (
	"net/http"

	"answerq/internal/dto/request"
	"answerq/internal/dto/response"
	"answerq/internal/usecase"
	"answerq/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.ProfileService
	log     *zap.Logger
}

func NewUserHandler(service usecase.ProfileService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// self resolves {id} and checks it names the caller's own account.
func (h *UserHandler) self(w http.ResponseWriter, r *http.Request) (int64, bool) {
	caller, ok := callerID(w, r, h.log)
	if !ok {
		return 0, false
	}
	id, ok := pathID(w, r)
	if !ok {
		return 0, false
	}
	if id != caller {
		h.log.Warn("Account mismatch", zap.Int64("caller_id", caller), zap.Int64("target_id", id))
		utils.ResponseForbidden(w, "You can only modify your own account")
		return 0, false
	}
	return id, true
}

// ChangeEmail handles PUT /users/change-email/{id}
func (h *UserHandler) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := h.self(w, r)
	if !ok {
		return
	}

	// The service reports a confirmation mismatch before field validation.
	var req request.ChangeEmailRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.ChangeEmail(r.Context(), id, &req); err != nil {
		writeError(w, h.log, err, "change email")
		return
	}

	utils.ResponseSuccess(w, "Email changed. Verify the new address to sign in again.", nil)
}

// ChangePassword handles PUT /users/change-password/{id}
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := h.self(w, r)
	if !ok {
		return
	}

	var req request.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.ChangePassword(r.Context(), id, &req); err != nil {
		writeError(w, h.log, err, "change password")
		return
	}

	utils.ResponseSuccess(w, "Password changed successfully", nil)
}

// GetDetails handles GET /v1/users/user-details/{id}
func (h *UserHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetDetails(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err, "get user details")
		return
	}

	utils.ResponseSuccess(w, "User retrieved successfully", response.AccountToResponse(user))
}
