package usecase

import (
	"context"
	"fmt"
	"time"

	"answerq/internal/data/entity"
	"answerq/internal/data/repository"
	"answerq/internal/dto/request"
	"answerq/pkg/apperr"
	"answerq/pkg/utils"

	"go.uber.org/zap"
)

// AuthService owns signup, login and the email verification cycle.
type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) (*entity.User, error)
	Login(ctx context.Context, req *request.LoginRequest) (*entity.User, error)
	Verify(ctx context.Context, req *request.VerifyRequest) error
	ResendVerification(ctx context.Context, email string) error
}

type authService struct {
	users     repository.UserRepository
	mail      *notifications
	verifyTTL time.Duration
	opts      options
	log       *zap.Logger
}

func NewAuthService(
	users repository.UserRepository,
	mail *notifications,
	verifyTTL time.Duration,
	log *zap.Logger,
	opts ...Option,
) AuthService {
	return &authService{
		users:     users,
		mail:      mail,
		verifyTTL: verifyTTL,
		opts:      buildOptions(opts),
		log:       log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*entity.User, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("signup %s: %w", req.Email, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("signup %s: %w", req.Email, apperr.ErrConflict)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("signup %s: hash password: %w", req.Email, err)
	}

	user := &entity.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Enabled:      false,
	}
	code := s.opts.newCode()
	user.SetPendingCode(code, s.opts.now().Add(s.verifyTTL))

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("signup %s: %w", req.Email, err)
	}

	s.log.Info("Account created", zap.Int64("user_id", user.ID), zap.String("email", user.Email))

	s.mail.verification(user.Email, user.Username, code, s.verifyTTL)

	return user, nil
}

// Login checks the enabled flag before the password, so an unverified
// account reports AccountNotVerified even with a wrong password.
func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*entity.User, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("login %s: %w", req.Email, err)
	}
	if user == nil {
		return nil, fmt.Errorf("login %s: account %w", req.Email, apperr.ErrNotFound)
	}

	if !user.Enabled {
		s.log.Warn("Login attempt on unverified account", zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("login %s: %w", req.Email, apperr.ErrAccountNotVerified)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("login %s: %w", req.Email, apperr.ErrInvalidCredentials)
	}

	s.log.Info("User logged in", zap.Int64("user_id", user.ID))

	s.mail.signInAlert(user.Email, user.Username, s.opts.now())

	return user, nil
}

func (s *authService) Verify(ctx context.Context, req *request.VerifyRequest) error {
	if err := validate(req); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("verify %s: %w", req.Email, err)
	}
	if user == nil {
		return fmt.Errorf("verify %s: account %w", req.Email, apperr.ErrNotFound)
	}

	if user.CodeExpired(s.opts.now()) {
		return fmt.Errorf("verify %s: %w", req.Email, apperr.ErrExpired)
	}
	// No pending code (already verified, or email changed) never matches.
	if !user.CodeMatches(req.VerificationCode) {
		return fmt.Errorf("verify %s: %w", req.Email, apperr.ErrInvalidCode)
	}

	user.MarkVerified()
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("verify %s: %w", req.Email, err)
	}

	s.log.Info("Account verified", zap.Int64("user_id", user.ID))
	return nil
}

func (s *authService) ResendVerification(ctx context.Context, email string) error {
	if err := validate(&request.ResendRequest{Email: email}); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("resend verification %s: %w", email, err)
	}
	if user == nil {
		return fmt.Errorf("resend verification %s: account %w", email, apperr.ErrNotFound)
	}
	if user.Enabled {
		return fmt.Errorf("resend verification %s: %w", email, apperr.ErrAlreadyVerified)
	}

	code := s.opts.newCode()
	user.SetPendingCode(code, s.opts.now().Add(s.verifyTTL))
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("resend verification %s: %w", email, err)
	}

	s.log.Info("Verification code reissued", zap.Int64("user_id", user.ID))

	s.mail.verification(user.Email, user.Username, code, s.verifyTTL)
	return nil
}
