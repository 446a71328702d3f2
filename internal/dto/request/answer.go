package request

type CreateAnswerRequest struct {
	QuestionID int64  `json:"question_id" validate:"required,min=1"`
	Content    string `json:"content" validate:"required"`
	IsCorrect  bool   `json:"is_correct"`
}

type UpdateAnswerRequest struct {
	Content   *string `json:"content,omitempty" validate:"omitempty,min=1"`
	IsCorrect *bool   `json:"is_correct,omitempty"`
}

// CreateUserAnswerRequest records the caller's response. AnswerID is omitted
// for free-text questions.
type CreateUserAnswerRequest struct {
	FormID     int64  `json:"form_id" validate:"required,min=1"`
	QuestionID int64  `json:"question_id" validate:"required,min=1"`
	AnswerID   *int64 `json:"answer_id,omitempty" validate:"omitempty,min=1"`
}

type UpdateUserAnswerRequest struct {
	AnswerID *int64 `json:"answer_id" validate:"omitempty,min=1"`
}
