package adaptor

import (
	"net/http"

	"answerq/internal/dto/request"
	"answerq/internal/dto/response"
	"answerq/internal/usecase"
	"answerq/pkg/token"
	"answerq/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	issuer  token.Issuer
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, issuer token.Issuer, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		issuer:  issuer,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Signup handles POST /auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req request.SignupRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "signup")
		return
	}

	utils.ResponseCreated(w, "Signup successful. Check your email for the verification code.", response.AccountToResponse(user))
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeError(w, h.log, err, "login")
		return
	}

	signed, expiresIn, err := h.issuer.Issue(user.ID, user.Email)
	if err != nil {
		writeError(w, h.log, err, "issue token")
		return
	}

	utils.ResponseSuccess(w, "Login successful", response.LoginResponse{
		Token:     signed,
		ExpiresIn: expiresIn,
		Verified:  user.Enabled,
	})
}

// Verify handles POST /auth/verify
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.service.Verify(r.Context(), &req); err != nil {
		writeError(w, h.log, err, "verify")
		return
	}

	utils.ResponseSuccess(w, "Account verified successfully", nil)
}

// Resend handles POST /auth/resend. The address comes from ?email= or, when
// the query is empty, a JSON body.
func (h *AuthHandler) Resend(w http.ResponseWriter, r *http.Request) {
	req := request.ResendRequest{Email: r.URL.Query().Get("email")}
	if req.Email == "" {
		if !decodeAndValidate(w, r, &req) {
			return
		}
	}

	if err := h.service.ResendVerification(r.Context(), req.Email); err != nil {
		writeError(w, h.log, err, "resend verification")
		return
	}

	utils.ResponseSuccess(w, "Verification code sent", nil)
}
