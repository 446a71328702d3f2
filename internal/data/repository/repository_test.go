package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"answerq/internal/data/entity"
	"answerq/pkg/apperr"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var userCols = []string{
	"id", "username", "email", "password", "enabled",
	"verification_code", "verification_code_expires_at", "created_at", "updated_at",
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})
	return mock
}

func TestUserRepositoryCreate(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock, zap.NewNop())
	now := time.Now()

	user := &entity.User{Username: "alice", Email: "alice@x.com", PasswordHash: "hash"}
	user.SetPendingCode("123456", now.Add(15*time.Minute))

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "alice@x.com", "hash", false, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, now, user.CreatedAt)
}

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock, zap.NewNop())

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("alice", "alice@x.com", "hash", false, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &entity.User{Username: "alice", Email: "alice@x.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock, zap.NewNop())
	now := time.Now()
	code := "123456"
	expires := now.Add(15 * time.Minute)

	mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
		WithArgs("alice@x.com").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(1), "alice", "alice@x.com", "hash", false, &code, &expires, now, now))

	user, err := repo.FindByEmail(context.Background(), "alice@x.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	assert.False(t, user.Enabled)
	require.NotNil(t, user.VerificationCode)
	assert.Equal(t, "123456", *user.VerificationCode)
}

func TestUserRepositoryFindByIDVerified(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock, zap.NewNop())
	now := time.Now()

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(int64(1), "alice", "alice@x.com", "hash", true, nil, nil, now, now))

	user, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, user.Enabled)
	assert.Nil(t, user.VerificationCode)
	assert.Nil(t, user.VerificationCodeExpiresAt)
}

func TestUserRepositoryFindMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock, zap.NewNop())

	mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
		WithArgs("ghost@x.com").
		WillReturnRows(pgxmock.NewRows(userCols))

	user, err := repo.FindByEmail(context.Background(), "ghost@x.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepositoryTransientFailure(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock, zap.NewNop())

	mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
		WithArgs("alice@x.com").
		WillReturnError(context.DeadlineExceeded)

	_, err := repo.FindByEmail(context.Background(), "alice@x.com")
	assert.ErrorIs(t, err, apperr.ErrTransient)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestUserRepositoryUpdate(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock, zap.NewNop())
	now := time.Now()

	user := &entity.User{Base: entity.Base{ID: 1}, Username: "alice", Email: "alice@x.com", PasswordHash: "hash"}
	user.MarkVerified()

	mock.ExpectQuery(`UPDATE users`).
		WithArgs(int64(1), "alice", "alice@x.com", "hash", true, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))

	require.NoError(t, repo.Update(context.Background(), user))
	assert.Equal(t, now, user.UpdatedAt)
}

func TestUserRepositoryUpdateMissing(t *testing.T) {
	mock := newMock(t)
	repo := NewUserRepository(mock, zap.NewNop())

	mock.ExpectQuery(`UPDATE users`).
		WithArgs(int64(9), "", "", "", false, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}))

	err := repo.Update(context.Background(), &entity.User{Base: entity.Base{ID: 9}})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestFormRepositoryFindByUserID(t *testing.T) {
	mock := newMock(t)
	repo := NewFormRepository(mock, zap.NewNop())
	now := time.Now()

	cols := []string{"id", "name", "enabled", "pin", "user_id", "created_at", "updated_at"}
	mock.ExpectQuery(`SELECT .* FROM forms WHERE user_id = \$1 ORDER BY id LIMIT \$2 OFFSET \$3`).
		WithArgs(int64(3), 10, 0).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(int64(1), "Quiz", true, nil, int64(3), now, now).
			AddRow(int64(2), "Survey", false, nil, int64(3), now, now))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM forms WHERE user_id = $1`)).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	forms, err := repo.FindByUserID(context.Background(), 3, 10, 0)
	require.NoError(t, err)
	require.Len(t, forms, 2)
	assert.Equal(t, "Survey", forms[1].Name)

	total, err := repo.CountByUserID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestFormRepositoryDelete(t *testing.T) {
	mock := newMock(t)
	repo := NewFormRepository(mock, zap.NewNop())

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM forms WHERE id = $1`)).
		WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM forms WHERE id = $1`)).
		WithArgs(int64(2)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.NoError(t, repo.Delete(context.Background(), 1))
	assert.ErrorIs(t, repo.Delete(context.Background(), 2), apperr.ErrNotFound)
}

func TestQuestionRepositoryCreateUnknownForm(t *testing.T) {
	mock := newMock(t)
	repo := NewQuestionRepository(mock, zap.NewNop())

	mock.ExpectQuery(`INSERT INTO questions`).
		WithArgs(int64(99), "Why?", true).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "questions_form_id_fkey"})

	err := repo.Create(context.Background(), &entity.Question{FormID: 99, Content: "Why?", Required: true})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestAnswerRepositoryUpdate(t *testing.T) {
	mock := newMock(t)
	repo := NewAnswerRepository(mock, zap.NewNop())

	mock.ExpectExec(`UPDATE answers`).
		WithArgs(int64(4), int64(2), "Yes", true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.Update(context.Background(), &entity.Answer{ID: 4, QuestionID: 2, Content: "Yes", IsCorrect: true}))
}

func TestUserAnswerRepositoryFindFiltered(t *testing.T) {
	mock := newMock(t)
	repo := NewUserAnswerRepository(mock, zap.NewNop())
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	answerID := int64(8)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM user_answers WHERE form_id = $1 AND user_id = $2 ORDER BY id LIMIT $3 OFFSET $4`)).
		WithArgs(int64(1), int64(2), 10, 10).
		WillReturnRows(pgxmock.NewRows([]string{"id", "form_id", "question_id", "answer_id", "user_id", "answered_at"}).
			AddRow(int64(5), int64(1), int64(3), &answerID, int64(2), day))

	answers, err := repo.Find(context.Background(), entity.UserAnswerFilter{FormID: 1, UserID: 2}, 10, 10)
	require.NoError(t, err)
	require.Len(t, answers, 1)
	require.NotNil(t, answers[0].AnswerID)
	assert.Equal(t, int64(8), *answers[0].AnswerID)
	assert.Equal(t, day, answers[0].AnsweredAt)
}

func TestUserAnswerWhere(t *testing.T) {
	where, args := userAnswerWhere(entity.UserAnswerFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = userAnswerWhere(entity.UserAnswerFilter{QuestionID: 4, AnswerID: 9})
	assert.Equal(t, " WHERE question_id = $1 AND answer_id = $2", where)
	assert.Equal(t, []any{int64(4), int64(9)}, args)
}

func TestDBError(t *testing.T) {
	err := dbError("op", &pgconn.PgError{Code: "42601", Message: "syntax error"})
	assert.False(t, errors.Is(err, apperr.ErrTransient))
	assert.False(t, errors.Is(err, apperr.ErrConflict))

	err = dbError("op", errors.New("connection reset"))
	assert.ErrorIs(t, err, apperr.ErrTransient)
}
