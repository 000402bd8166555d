package services

import (
	"context"

	"github.com/masudmolla6/bistro-restaurant-server/app/models"
	"github.com/masudmolla6/bistro-restaurant-server/app/repositories"
	"github.com/masudmolla6/bistro-restaurant-server/pkg/logger"
)

// UserExistsMessage is reported when sign-in finds an existing user.
const UserExistsMessage = "User already Exist in the database"

type UserService struct {
	users repositories.UserRepository
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.All(ctx)
}

// Register records a first sign-in. A repeat for a known email writes
// nothing and reports insertedId null. New users always start as standard.
func (s *UserService) Register(ctx context.Context, name, email string) (models.InsertResult, error) {
	u := &models.User{Name: name, Email: email, Role: models.RoleStandard}

	inserted, err := s.users.InsertIfAbsent(ctx, u)
	if err != nil {
		return models.InsertResult{}, err
	}
	if !inserted {
		return models.InsertResult{Message: UserExistsMessage}, nil
	}

	logger.WithCtx(ctx).Info("user registered", "email", email)
	return models.Inserted(u.ID), nil
}

// Promote makes the user with hexID an admin.
func (s *UserService) Promote(ctx context.Context, hexID string) (models.UpdateResult, error) {
	id, err := models.ParseID(hexID)
	if err != nil {
		return models.UpdateResult{}, err
	}

	res, err := s.users.SetRole(ctx, id, models.RoleAdmin)
	if err == nil && res.ModifiedCount > 0 {
		logger.WithCtx(ctx).Warn("user promoted to admin", "user_id", hexID)
	}
	return res, err
}

func (s *UserService) Delete(ctx context.Context, hexID string) (models.DeleteResult, error) {
	id, err := models.ParseID(hexID)
	if err != nil {
		return models.DeleteResult{}, err
	}
	return s.users.Delete(ctx, id)
}
