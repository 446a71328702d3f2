package request

type CreateQuestionRequest struct {
	FormID   int64  `json:"form_id" validate:"required,min=1"`
	Content  string `json:"content" validate:"required"`
	Required bool   `json:"required"`
}

type UpdateQuestionRequest struct {
	Content  *string `json:"content,omitempty" validate:"omitempty,min=1"`
	Required *bool   `json:"required,omitempty"`
}
