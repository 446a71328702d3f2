package request

type ChangeEmailRequest struct {
	NewEmail        string `json:"newEmail" validate:"required,email,max=255"`
	ConfirmNewEmail string `json:"confirmNewEmail" validate:"required,eqfield=NewEmail"`
	Password        string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword        string `json:"oldPassword" validate:"required"`
	NewPassword        string `json:"newPassword" validate:"required,min=8,max=72"`
	ConfirmNewPassword string `json:"confirmNewPassword" validate:"required,eqfield=NewPassword"`
}
