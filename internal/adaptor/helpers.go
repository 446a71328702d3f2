package adaptor

import (
	"encoding/json"
	"net/http"

	"answerq/pkg/apperr"
	"answerq/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// pathID parses the {id} URL param, writing a 400 when it is not a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid id", nil)
		return 0, false
	}
	return id, true
}

// callerID returns the authenticated account id, writing a 401 when absent.
func callerID(w http.ResponseWriter, r *http.Request, log *zap.Logger) (int64, bool) {
	id, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		writeError(w, log, apperr.ErrUnauthorized, "resolve caller")
		return 0, false
	}
	return id, true
}
