package adaptor

import (
	"errors"
	"net/http"

	"answerq/pkg/apperr"
	"answerq/pkg/utils"

	"go.uber.org/zap"
)

// writeError maps a service error onto the response envelope. Client errors
// are logged at warn, everything else at error.
func writeError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var fields apperr.FieldErrors
	if errors.As(err, &fields) {
		log.Warn(operation+" validation failed", zap.Any("fields", map[string]string(fields)))
		utils.ResponseBadRequest(w, "Validation failed", map[string]string(fields))
		return
	}

	switch {
	case errors.Is(err, apperr.ErrNotFound):
		utils.ResponseNotFound(w, "Resource not found")
	case errors.Is(err, apperr.ErrConflict):
		utils.ResponseConflict(w, "Email already in use")
	case errors.Is(err, apperr.ErrAlreadyVerified):
		utils.ResponseConflict(w, "Account is already verified")
	case errors.Is(err, apperr.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, "Invalid credentials")
	case errors.Is(err, apperr.ErrUnauthorized):
		utils.ResponseUnauthorized(w, "Authentication required")
	case errors.Is(err, apperr.ErrAccountNotVerified):
		utils.ResponseForbidden(w, "Account not verified")
	case errors.Is(err, apperr.ErrForbidden):
		utils.ResponseForbidden(w, "You are not allowed to modify this resource")
	case errors.Is(err, apperr.ErrExpired):
		utils.ResponseBadRequest(w, "Verification code has expired", nil)
	case errors.Is(err, apperr.ErrInvalidCode):
		utils.ResponseBadRequest(w, "Invalid verification code", nil)
	case errors.Is(err, apperr.ErrSameAsOld):
		utils.ResponseBadRequest(w, "New password must be different from the current password", nil)
	case errors.Is(err, apperr.ErrConfirmationMismatch):
		utils.ResponseBadRequest(w, "Confirmation does not match", nil)
	case errors.Is(err, apperr.ErrValidation):
		utils.ResponseBadRequest(w, "Validation failed", nil)
	case errors.Is(err, apperr.ErrTransient):
		log.Error(operation+" failed - store unavailable", zap.Error(err))
		utils.ResponseUnavailable(w, "Service temporarily unavailable")
		return
	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	log.Warn(operation+" failed", zap.Error(err))
}

// decodeAndValidate reads a JSON body into req and runs the struct
// validator. It writes the 400 response itself and reports false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := decodeJSON(r, req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}
	return true
}
