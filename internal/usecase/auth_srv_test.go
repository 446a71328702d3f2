package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"answerq/internal/dto/request"
	"answerq/pkg/apperr"
	"answerq/pkg/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSignupCreatesPendingAccount(t *testing.T) {
	f := newFixture(t)

	user := f.signup(t, "alice", "alice@x.com", "Secret123")

	stored, ok := f.users.Get(user.ID)
	require.True(t, ok)
	assert.False(t, stored.Enabled)
	require.NotNil(t, stored.VerificationCode)
	require.NotNil(t, stored.VerificationCodeExpiresAt)
	assert.Len(t, *stored.VerificationCode, 6)
	assert.Equal(t, f.now.Add(verifyTTL), *stored.VerificationCodeExpiresAt)
	assert.NotEqual(t, "Secret123", stored.PasswordHash)

	sent := f.notes.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "alice@x.com", sent[0].To)
	assert.Contains(t, sent[0].Body, *stored.VerificationCode)
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "alice", "alice@x.com", "Secret123")

	_, err := f.svc.Auth.Signup(context.Background(), &request.SignupRequest{
		Username: "alice2",
		Email:    "alice@x.com",
		Password: "Secret456",
	})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestSignupUsernameNotUnique(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "alice", "alice@x.com", "Secret123")
	f.signup(t, "alice", "alice2@x.com", "Secret123")
}

func TestSignupValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Auth.Signup(context.Background(), &request.SignupRequest{
		Username: "al",
		Email:    "not-an-email",
		Password: "",
	})
	require.ErrorIs(t, err, apperr.ErrValidation)

	var fields apperr.FieldErrors
	require.True(t, errors.As(err, &fields))
	assert.Contains(t, fields, "Email")
	assert.Contains(t, fields, "Username")
	assert.Contains(t, fields, "Password")
}

type failingSender struct{}

func (failingSender) Send(context.Context, mailer.Message) error {
	return fmt.Errorf("dial smtp: %w", apperr.ErrTransient)
}

func TestSignupSurvivesMailFailure(t *testing.T) {
	dispatcher := mailer.NewDispatcher(failingSender{}, time.Second, zap.NewNop())
	f := newFixtureWith(t, dispatcher)

	user := f.signup(t, "alice", "alice@x.com", "Secret123")
	dispatcher.Wait()

	_, ok := f.users.Get(user.ID)
	assert.True(t, ok)
}

func TestVerify(t *testing.T) {
	f := newFixture(t)
	user := f.signup(t, "alice", "alice@x.com", "Secret123")
	code := f.lastCode()
	ctx := context.Background()

	err := f.svc.Auth.Verify(ctx, &request.VerifyRequest{Email: "alice@x.com", VerificationCode: "000000"})
	assert.ErrorIs(t, err, apperr.ErrInvalidCode)

	require.NoError(t, f.svc.Auth.Verify(ctx, &request.VerifyRequest{Email: "alice@x.com", VerificationCode: code}))

	stored, _ := f.users.Get(user.ID)
	assert.True(t, stored.Enabled)
	assert.Nil(t, stored.VerificationCode)
	assert.Nil(t, stored.VerificationCodeExpiresAt)

	err = f.svc.Auth.Verify(ctx, &request.VerifyRequest{Email: "alice@x.com", VerificationCode: code})
	assert.ErrorIs(t, err, apperr.ErrInvalidCode)
}

func TestVerifyExpired(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "alice", "alice@x.com", "Secret123")

	f.now = f.now.Add(verifyTTL + time.Second)
	err := f.svc.Auth.Verify(context.Background(), &request.VerifyRequest{Email: "alice@x.com", VerificationCode: f.lastCode()})
	assert.ErrorIs(t, err, apperr.ErrExpired)
}

func TestVerifyAtExpiryBoundary(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "alice", "alice@x.com", "Secret123")

	f.now = f.now.Add(verifyTTL)
	err := f.svc.Auth.Verify(context.Background(), &request.VerifyRequest{Email: "alice@x.com", VerificationCode: f.lastCode()})
	assert.NoError(t, err)
}

func TestVerifyUnknownAccount(t *testing.T) {
	f := newFixture(t)
	err := f.svc.Auth.Verify(context.Background(), &request.VerifyRequest{Email: "ghost@x.com", VerificationCode: "123456"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestLoginUnverifiedIgnoresPassword(t *testing.T) {
	f := newFixture(t)
	f.signup(t, "alice", "alice@x.com", "Secret123")

	for _, password := range []string{"Secret123", "wrong-password"} {
		_, err := f.svc.Auth.Login(context.Background(), &request.LoginRequest{Email: "alice@x.com", Password: password})
		assert.ErrorIs(t, err, apperr.ErrAccountNotVerified)
	}
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	f.signupVerified(t, "alice", "alice@x.com", "Secret123")
	ctx := context.Background()

	_, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "alice@x.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, err = f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "ghost@x.com", Password: "Secret123"})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	user, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "alice@x.com", Password: "Secret123"})
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", user.Email)

	sent := f.notes.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "New sign-in to your account", sent[0].Subject)
}

func TestLoginStoreUnavailable(t *testing.T) {
	f := newFixture(t)
	f.users.Err = fmt.Errorf("find user: %w", apperr.ErrTransient)

	_, err := f.svc.Auth.Login(context.Background(), &request.LoginRequest{Email: "alice@x.com", Password: "Secret123"})
	assert.ErrorIs(t, err, apperr.ErrTransient)
}

func TestResendOnVerifiedAccount(t *testing.T) {
	f := newFixture(t)
	user := f.signupVerified(t, "alice", "alice@x.com", "Secret123")

	err := f.svc.Auth.ResendVerification(context.Background(), "alice@x.com")
	assert.ErrorIs(t, err, apperr.ErrAlreadyVerified)

	stored, _ := f.users.Get(user.ID)
	assert.Equal(t, *user, stored)
	assert.Empty(t, f.notes.sent())
}

func TestResendIssuesNewCode(t *testing.T) {
	f := newFixture(t)
	user := f.signup(t, "alice", "alice@x.com", "Secret123")
	first := f.lastCode()
	f.notes.reset()

	f.now = f.now.Add(20 * time.Minute)
	require.NoError(t, f.svc.Auth.ResendVerification(context.Background(), "alice@x.com"))

	stored, _ := f.users.Get(user.ID)
	require.NotNil(t, stored.VerificationCode)
	assert.NotEqual(t, first, *stored.VerificationCode)
	assert.Equal(t, f.now.Add(verifyTTL), *stored.VerificationCodeExpiresAt)
	require.Len(t, f.notes.sent(), 1)

	err := f.svc.Auth.Verify(context.Background(), &request.VerifyRequest{Email: "alice@x.com", VerificationCode: first})
	assert.ErrorIs(t, err, apperr.ErrInvalidCode)
	require.NoError(t, f.svc.Auth.Verify(context.Background(), &request.VerifyRequest{Email: "alice@x.com", VerificationCode: f.lastCode()}))
}

func TestResendUnknownAccount(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.svc.Auth.ResendVerification(context.Background(), "ghost@x.com"), apperr.ErrNotFound)
}
