package entity

type Question struct {
	Base
	FormID   int64  `db:"form_id"`
	Content  string `db:"content"`
	Required bool   `db:"required"`
}
