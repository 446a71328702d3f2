package response

import (
	"time"

	"answerq/internal/data/entity"
)

type FormResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Enabled   bool      `json:"enabled"`
	Pin       *string   `json:"pin,omitempty"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type QuestionResponse struct {
	ID        int64     `json:"id"`
	FormID    int64     `json:"form_id"`
	Content   string    `json:"content"`
	Required  bool      `json:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AnswerResponse struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Content    string `json:"content"`
	IsCorrect  bool   `json:"is_correct"`
}

type UserAnswerResponse struct {
	ID         int64  `json:"id"`
	FormID     int64  `json:"form_id"`
	QuestionID int64  `json:"question_id"`
	AnswerID   *int64 `json:"answer_id"`
	UserID     int64  `json:"user_id"`
	AnsweredAt string `json:"answered_at"`
}

func FormToResponse(f *entity.Form) FormResponse {
	return FormResponse{
		ID:        f.ID,
		Name:      f.Name,
		Enabled:   f.Enabled,
		Pin:       f.Pin,
		UserID:    f.UserID,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func QuestionToResponse(q *entity.Question) QuestionResponse {
	return QuestionResponse{
		ID:        q.ID,
		FormID:    q.FormID,
		Content:   q.Content,
		Required:  q.Required,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

func AnswerToResponse(a *entity.Answer) AnswerResponse {
	return AnswerResponse{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		Content:    a.Content,
		IsCorrect:  a.IsCorrect,
	}
}

func UserAnswerToResponse(ua *entity.UserAnswer) UserAnswerResponse {
	return UserAnswerResponse{
		ID:         ua.ID,
		FormID:     ua.FormID,
		QuestionID: ua.QuestionID,
		AnswerID:   ua.AnswerID,
		UserID:     ua.UserID,
		AnsweredAt: ua.AnsweredAt.Format(time.DateOnly),
	}
}

// MapSlice converts entities with fn, always returning a non-nil slice.
func MapSlice[E any, R any](items []*E, fn func(*E) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
