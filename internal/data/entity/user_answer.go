package entity

import "time"

// UserAnswer records one response to one question. AnswerID is nil for free-text questions.
type UserAnswer struct {
	ID         int64     `db:"id"`
	FormID     int64     `db:"form_id"`
	QuestionID int64     `db:"question_id"`
	AnswerID   *int64    `db:"answer_id"`
	UserID     int64     `db:"user_id"`
	AnsweredAt time.Time `db:"answered_at"`
}

// UserAnswerFilter narrows a user answer listing. Zero fields are ignored.
type UserAnswerFilter struct {
	FormID     int64
	UserID     int64
	QuestionID int64
	AnswerID   int64
}
