package response

import (
	"time"

	"answerq/internal/data/entity"
)

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
	Verified  bool   `json:"verified"`
}

// AccountResponse never carries the password hash or the pending code.
type AccountResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Enabled     bool      `json:"enabled"`
	PendingCode bool      `json:"pendingVerification"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func AccountToResponse(user *entity.User) AccountResponse {
	return AccountResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Enabled:     user.Enabled,
		PendingCode: user.VerificationCode != nil,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
