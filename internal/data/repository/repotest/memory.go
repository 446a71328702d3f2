// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"answerq/internal/data/entity"
	"answerq/internal/data/repository"
	"answerq/pkg/apperr"
)

// table stores copies of rows keyed by id so callers only see changes they persist.
type table[T any] struct {
	mu   sync.Mutex
	rows map[int64]T
	next int64
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

func (t *table[T]) insert(row T) int64 {
	t.next++
	t.rows[t.next] = row
	return t.next
}

func (t *table[T]) filter(keep func(T) bool) []T {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var out []T
	for _, id := range ids {
		if keep == nil || keep(t.rows[id]) {
			out = append(out, t.rows[id])
		}
	}
	return out
}

func window[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

func (t *table[T]) remove(name string, id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return fmt.Errorf("delete %s %d: %w", name, id, apperr.ErrNotFound)
	}
	delete(t.rows, id)
	return nil
}

// Users is an in-memory repository.UserRepository. Set Err to make every call fail.
type Users struct {
	t   *table[entity.User]
	Err error
}

var _ repository.UserRepository = (*Users)(nil)

func NewUsers() *Users {
	return &Users{t: newTable[entity.User]()}
}

func (r *Users) Create(_ context.Context, user *entity.User) error {
	if r.Err != nil {
		return r.Err
	}
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	for _, u := range r.t.rows {
		if u.Email == user.Email {
			return fmt.Errorf("create user %s: %w", user.Email, apperr.ErrConflict)
		}
	}

	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	user.ID = r.t.next + 1
	r.t.insert(*user)
	return nil
}

func (r *Users) FindByID(_ context.Context, id int64) (*entity.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	u, ok := r.t.rows[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	for _, u := range r.t.rows {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *Users) Update(_ context.Context, user *entity.User) error {
	if r.Err != nil {
		return r.Err
	}
	r.t.mu.Lock()
	defer r.t.mu.Unlock()

	if _, ok := r.t.rows[user.ID]; !ok {
		return fmt.Errorf("update user %d: %w", user.ID, apperr.ErrNotFound)
	}
	for id, u := range r.t.rows {
		if id != user.ID && u.Email == user.Email {
			return fmt.Errorf("update user %d: %w", user.ID, apperr.ErrConflict)
		}
	}

	user.UpdatedAt = time.Now()
	r.t.rows[user.ID] = *user
	return nil
}

// Get returns the stored row for assertions.
func (r *Users) Get(id int64) (entity.User, bool) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	u, ok := r.t.rows[id]
	return u, ok
}

type Forms struct{ t *table[entity.Form] }

var _ repository.FormRepository = (*Forms)(nil)

func NewForms() *Forms { return &Forms{t: newTable[entity.Form]()} }

func (r *Forms) Create(_ context.Context, form *entity.Form) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	now := time.Now()
	form.CreatedAt, form.UpdatedAt = now, now
	form.ID = r.t.next + 1
	r.t.insert(*form)
	return nil
}

func (r *Forms) FindByID(_ context.Context, id int64) (*entity.Form, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	f, ok := r.t.rows[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (r *Forms) list(keep func(entity.Form) bool) []*entity.Form {
	var out []*entity.Form
	for _, f := range r.t.filter(keep) {
		out = append(out, &f)
	}
	return out
}

func (r *Forms) FindAll(_ context.Context, limit, offset int) ([]*entity.Form, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return window(r.list(nil), limit, offset), nil
}

func (r *Forms) CountAll(_ context.Context) (int64, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return int64(len(r.t.rows)), nil
}

func (r *Forms) FindByUserID(_ context.Context, userID int64, limit, offset int) ([]*entity.Form, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return window(r.list(func(f entity.Form) bool { return f.UserID == userID }), limit, offset), nil
}

func (r *Forms) CountByUserID(_ context.Context, userID int64) (int64, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return int64(len(r.t.filter(func(f entity.Form) bool { return f.UserID == userID }))), nil
}

func (r *Forms) Update(_ context.Context, form *entity.Form) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rows[form.ID]; !ok {
		return fmt.Errorf("update form %d: %w", form.ID, apperr.ErrNotFound)
	}
	form.UpdatedAt = time.Now()
	r.t.rows[form.ID] = *form
	return nil
}

func (r *Forms) Delete(_ context.Context, id int64) error { return r.t.remove("form", id) }

type Questions struct{ t *table[entity.Question] }

var _ repository.QuestionRepository = (*Questions)(nil)

func NewQuestions() *Questions { return &Questions{t: newTable[entity.Question]()} }

func (r *Questions) Create(_ context.Context, q *entity.Question) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	now := time.Now()
	q.CreatedAt, q.UpdatedAt = now, now
	q.ID = r.t.next + 1
	r.t.insert(*q)
	return nil
}

func (r *Questions) FindByID(_ context.Context, id int64) (*entity.Question, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	q, ok := r.t.rows[id]
	if !ok {
		return nil, nil
	}
	return &q, nil
}

func (r *Questions) list(keep func(entity.Question) bool) []*entity.Question {
	var out []*entity.Question
	for _, q := range r.t.filter(keep) {
		out = append(out, &q)
	}
	return out
}

func (r *Questions) FindAll(_ context.Context, limit, offset int) ([]*entity.Question, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return window(r.list(nil), limit, offset), nil
}

func (r *Questions) CountAll(_ context.Context) (int64, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return int64(len(r.t.rows)), nil
}

func (r *Questions) FindByFormID(_ context.Context, formID int64, limit, offset int) ([]*entity.Question, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return window(r.list(func(q entity.Question) bool { return q.FormID == formID }), limit, offset), nil
}

func (r *Questions) CountByFormID(_ context.Context, formID int64) (int64, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return int64(len(r.t.filter(func(q entity.Question) bool { return q.FormID == formID }))), nil
}

func (r *Questions) Update(_ context.Context, q *entity.Question) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rows[q.ID]; !ok {
		return fmt.Errorf("update question %d: %w", q.ID, apperr.ErrNotFound)
	}
	q.UpdatedAt = time.Now()
	r.t.rows[q.ID] = *q
	return nil
}

func (r *Questions) Delete(_ context.Context, id int64) error { return r.t.remove("question", id) }

type Answers struct{ t *table[entity.Answer] }

var _ repository.AnswerRepository = (*Answers)(nil)

func NewAnswers() *Answers { return &Answers{t: newTable[entity.Answer]()} }

func (r *Answers) Create(_ context.Context, a *entity.Answer) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	a.ID = r.t.next + 1
	r.t.insert(*a)
	return nil
}

func (r *Answers) FindByID(_ context.Context, id int64) (*entity.Answer, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	a, ok := r.t.rows[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *Answers) list(keep func(entity.Answer) bool) []*entity.Answer {
	var out []*entity.Answer
	for _, a := range r.t.filter(keep) {
		out = append(out, &a)
	}
	return out
}

func (r *Answers) FindAll(_ context.Context, limit, offset int) ([]*entity.Answer, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return window(r.list(nil), limit, offset), nil
}

func (r *Answers) CountAll(_ context.Context) (int64, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return int64(len(r.t.rows)), nil
}

func (r *Answers) FindByQuestionID(_ context.Context, questionID int64, limit, offset int) ([]*entity.Answer, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return window(r.list(func(a entity.Answer) bool { return a.QuestionID == questionID }), limit, offset), nil
}

func (r *Answers) CountByQuestionID(_ context.Context, questionID int64) (int64, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return int64(len(r.t.filter(func(a entity.Answer) bool { return a.QuestionID == questionID }))), nil
}

func (r *Answers) Update(_ context.Context, a *entity.Answer) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rows[a.ID]; !ok {
		return fmt.Errorf("update answer %d: %w", a.ID, apperr.ErrNotFound)
	}
	r.t.rows[a.ID] = *a
	return nil
}

func (r *Answers) Delete(_ context.Context, id int64) error { return r.t.remove("answer", id) }

type UserAnswers struct{ t *table[entity.UserAnswer] }

var _ repository.UserAnswerRepository = (*UserAnswers)(nil)

func NewUserAnswers() *UserAnswers { return &UserAnswers{t: newTable[entity.UserAnswer]()} }

func (r *UserAnswers) Create(_ context.Context, ua *entity.UserAnswer) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	ua.AnsweredAt = time.Now().UTC().Truncate(24 * time.Hour)
	ua.ID = r.t.next + 1
	r.t.insert(*ua)
	return nil
}

func (r *UserAnswers) FindByID(_ context.Context, id int64) (*entity.UserAnswer, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	ua, ok := r.t.rows[id]
	if !ok {
		return nil, nil
	}
	return &ua, nil
}

func matches(f entity.UserAnswerFilter) func(entity.UserAnswer) bool {
	return func(ua entity.UserAnswer) bool {
		if f.FormID != 0 && ua.FormID != f.FormID {
			return false
		}
		if f.UserID != 0 && ua.UserID != f.UserID {
			return false
		}
		if f.QuestionID != 0 && ua.QuestionID != f.QuestionID {
			return false
		}
		if f.AnswerID != 0 && (ua.AnswerID == nil || *ua.AnswerID != f.AnswerID) {
			return false
		}
		return true
	}
}

func (r *UserAnswers) Find(_ context.Context, filter entity.UserAnswerFilter, limit, offset int) ([]*entity.UserAnswer, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	var out []*entity.UserAnswer
	for _, ua := range r.t.filter(matches(filter)) {
		out = append(out, &ua)
	}
	return window(out, limit, offset), nil
}

func (r *UserAnswers) Count(_ context.Context, filter entity.UserAnswerFilter) (int64, error) {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	return int64(len(r.t.filter(matches(filter)))), nil
}

func (r *UserAnswers) Update(_ context.Context, ua *entity.UserAnswer) error {
	r.t.mu.Lock()
	defer r.t.mu.Unlock()
	if _, ok := r.t.rows[ua.ID]; !ok {
		return fmt.Errorf("update user answer %d: %w", ua.ID, apperr.ErrNotFound)
	}
	r.t.rows[ua.ID] = *ua
	return nil
}

func (r *UserAnswers) Delete(_ context.Context, id int64) error { return r.t.remove("user answer", id) }

// NewRepository wires fresh in-memory repositories into a repository.Repository.
func NewRepository() (*repository.Repository, *Users) {
	users := NewUsers()
	return &repository.Repository{
		User:       users,
		Form:       NewForms(),
		Question:   NewQuestions(),
		Answer:     NewAnswers(),
		UserAnswer: NewUserAnswers(),
	}, users
}
