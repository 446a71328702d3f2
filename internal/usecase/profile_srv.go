package usecase

import (
	"context"
	"fmt"

	"answerq/internal/data/entity"
	"answerq/internal/data/repository"
	"answerq/internal/dto/request"
	"answerq/pkg/apperr"
	"answerq/pkg/utils"

	"go.uber.org/zap"
)

type ProfileService interface {
	GetDetails(ctx context.Context, accountID int64) (*entity.User, error)
	ChangeEmail(ctx context.Context, accountID int64, req *request.ChangeEmailRequest) error
	ChangePassword(ctx context.Context, accountID int64, req *request.ChangePasswordRequest) error
}

type profileService struct {
	users repository.UserRepository
	mail  *notifications
	opts  options
	log   *zap.Logger
}

func NewProfileService(users repository.UserRepository, mail *notifications, log *zap.Logger, opts ...Option) ProfileService {
	return &profileService{
		users: users,
		mail:  mail,
		opts:  buildOptions(opts),
		log:   log.With(zap.String("service", "profile")),
	}
}

func (s *profileService) GetDetails(ctx context.Context, accountID int64) (*entity.User, error) {
	user, err := s.users.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("get account %d: %w", accountID, err)
	}
	if user == nil {
		return nil, fmt.Errorf("get account %d: %w", accountID, apperr.ErrNotFound)
	}
	return user, nil
}

// ChangeEmail disables the account until the new address is verified. It
// does not issue a new code; the owner requests one via resend.
func (s *profileService) ChangeEmail(ctx context.Context, accountID int64, req *request.ChangeEmailRequest) error {
	user, err := s.GetDetails(ctx, accountID)
	if err != nil {
		return err
	}

	if req.NewEmail != req.ConfirmNewEmail {
		return fmt.Errorf("change email %d: %w", accountID, apperr.ErrConfirmationMismatch)
	}
	if err := validate(req); err != nil {
		return err
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password on email change", zap.Int64("user_id", accountID))
		return fmt.Errorf("change email %d: %w", accountID, apperr.ErrInvalidCredentials)
	}

	owner, err := s.users.FindByEmail(ctx, req.NewEmail)
	if err != nil {
		return fmt.Errorf("change email %d: %w", accountID, err)
	}
	if owner != nil && owner.ID != user.ID {
		return fmt.Errorf("change email %d: %w", accountID, apperr.ErrConflict)
	}

	oldEmail := user.Email
	user.Email = req.NewEmail
	user.Enabled = false
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("change email %d: %w", accountID, err)
	}

	s.log.Info("Email changed", zap.Int64("user_id", accountID))

	now := s.opts.now()
	s.mail.emailChanged(oldEmail, user.Username, oldEmail, user.Email, now)
	s.mail.emailChanged(user.Email, user.Username, oldEmail, user.Email, now)
	return nil
}

func (s *profileService) ChangePassword(ctx context.Context, accountID int64, req *request.ChangePasswordRequest) error {
	user, err := s.GetDetails(ctx, accountID)
	if err != nil {
		return err
	}

	if req.NewPassword != req.ConfirmNewPassword {
		return fmt.Errorf("change password %d: %w", accountID, apperr.ErrConfirmationMismatch)
	}
	if err := validate(req); err != nil {
		return err
	}

	if !utils.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		s.log.Warn("Invalid password on password change", zap.Int64("user_id", accountID))
		return fmt.Errorf("change password %d: %w", accountID, apperr.ErrInvalidCredentials)
	}
	if utils.CheckPasswordHash(req.NewPassword, user.PasswordHash) {
		return fmt.Errorf("change password %d: %w", accountID, apperr.ErrSameAsOld)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("change password %d: hash password: %w", accountID, err)
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("change password %d: %w", accountID, err)
	}

	s.log.Info("Password changed", zap.Int64("user_id", accountID))

	s.mail.passwordChanged(user.Email, user.Username, s.opts.now())
	return nil
}
