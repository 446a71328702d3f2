package entity

import "time"

// User is an account. Enabled stays false until the email is verified and
// flips back to false when the email changes.
type User struct {
	Base
	Username                  string     `db:"username"`
	Email                     string     `db:"email"`
	PasswordHash              string     `db:"password"`
	Enabled                   bool       `db:"enabled"`
	VerificationCode          *string    `db:"verification_code"`
	VerificationCodeExpiresAt *time.Time `db:"verification_code_expires_at"`
}

// SetPendingCode starts a verification cycle.
func (u *User) SetPendingCode(code string, expiresAt time.Time) {
	u.VerificationCode = &code
	u.VerificationCodeExpiresAt = &expiresAt
}

// MarkVerified enables the account and clears the pending code.
func (u *User) MarkVerified() {
	u.Enabled = true
	u.VerificationCode = nil
	u.VerificationCodeExpiresAt = nil
}

func (u *User) CodeExpired(now time.Time) bool {
	return u.VerificationCodeExpiresAt != nil && now.After(*u.VerificationCodeExpiresAt)
}

func (u *User) CodeMatches(code string) bool {
	return u.VerificationCode != nil && *u.VerificationCode == code
}
