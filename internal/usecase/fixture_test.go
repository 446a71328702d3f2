package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"answerq/internal/data/entity"
	"answerq/internal/data/repository"
	"answerq/internal/data/repository/repotest"
	"answerq/internal/dto/request"
	"answerq/pkg/mailer"
	"answerq/pkg/utils"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []mailer.Message
}

func (n *recordingNotifier) Dispatch(msg mailer.Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *recordingNotifier) sent() []mailer.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]mailer.Message(nil), n.msgs...)
}

func (n *recordingNotifier) reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = nil
}

type fixture struct {
	repo  *repository.Repository
	users *repotest.Users
	notes *recordingNotifier
	svc   *Service
	now   time.Time
	codes int
}

const verifyTTL = 15 * time.Minute

func newFixture(t *testing.T) *fixture {
	return newFixtureWith(t, nil)
}

// newFixtureWith builds the services over in-memory repositories. A nil
// notifier records messages in f.notes.
func newFixtureWith(t *testing.T, notifier Notifier) *fixture {
	t.Helper()

	composer, err := mailer.NewComposer("answerq")
	require.NoError(t, err)

	repo, users := repotest.NewRepository()
	f := &fixture{
		repo:  repo,
		users: users,
		notes: &recordingNotifier{},
		now:   time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	if notifier == nil {
		notifier = f.notes
	}

	config := &utils.Config{Verification: utils.VerificationConfig{Expiry: verifyTTL}}
	f.svc = NewService(repo, notifier, composer, config, zap.NewNop(),
		WithClock(func() time.Time { return f.now }),
		WithCodeGenerator(func() string {
			f.codes++
			return fmt.Sprintf("%06d", 100000+f.codes)
		}),
	)
	return f
}

func (f *fixture) lastCode() string {
	return fmt.Sprintf("%06d", 100000+f.codes)
}

func (f *fixture) signup(t *testing.T, username, email, password string) *entity.User {
	t.Helper()
	user, err := f.svc.Auth.Signup(context.Background(), &request.SignupRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user
}

func (f *fixture) signupVerified(t *testing.T, username, email, password string) *entity.User {
	t.Helper()
	user := f.signup(t, username, email, password)
	require.NoError(t, f.svc.Auth.Verify(context.Background(), &request.VerifyRequest{
		Email:            email,
		VerificationCode: f.lastCode(),
	}))
	f.notes.reset()
	stored, ok := f.users.Get(user.ID)
	require.True(t, ok)
	return &stored
}
