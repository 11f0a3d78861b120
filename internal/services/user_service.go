package services

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/common"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/models"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/repositories"
)

type UserService interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, name string) (*models.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	SwitchOrganization(ctx context.Context, userID, organizationID uuid.UUID) (*models.Member, error)
}

type userService struct {
	userRepo repositories.UserRepository
	authzSvc AuthzService
}

func NewUserService(userRepo repositories.UserRepository, authzSvc AuthzService) UserService {
	return &userService{
		userRepo: userRepo,
		authzSvc: authzSvc,
	}
}

func (s *userService) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, name string) (*models.User, error) {
	if err := common.ValidateRequiredString(name, "name"); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, common.SecureErrorMessage("load user", err)
	}
	user.Name = name
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, common.SecureErrorMessage("update user", err)
	}
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return common.Invalidf("new_password", "password must be at least 8 characters")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return common.SecureErrorMessage("load user", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return common.Invalidf("current_password", "current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return common.SecureErrorMessage("hash password", err)
	}
	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return common.SecureErrorMessage("update user", err)
	}
	return nil
}

func (s *userService) SwitchOrganization(ctx context.Context, userID, organizationID uuid.UUID) (*models.Member, error) {
	return s.authzSvc.SwitchOrganization(ctx, userID, organizationID)
}
