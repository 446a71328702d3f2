package entity

type Form struct {
	Base
	Name    string  `db:"name"`
	Enabled bool    `db:"enabled"`
	Pin     *string `db:"pin"`
	UserID  int64   `db:"user_id"`
}
