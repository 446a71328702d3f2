package entity

type Answer struct {
	ID         int64  `db:"id"`
	QuestionID int64  `db:"question_id"`
	Content    string `db:"content"`
	IsCorrect  bool   `db:"is_correct"`
}
