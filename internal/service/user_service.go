package service

import (
	"context"
	"errors"

	"go-inventory-reorder/internal/model"
	"go-inventory-reorder/internal/repository"
)

var ErrUsernameExists = &model.ConflictError{Message: "username already exists"}

type UserService interface {
	CreateUser(ctx context.Context, req *CreateUserRequest, actor Actor) (*model.User, error)
	GetAllUsers(ctx context.Context) ([]model.UserResponse, error)
	// EnsureAdmin creates the bootstrap admin unless the username is taken.
	// It reports whether a user was created.
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
	ResetPassword(ctx context.Context, username, password string) error
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest, actor Actor) (*model.User, error) {
	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	user, err := model.NewUser(req.Username, req.Password, role)
	if err != nil {
		return nil, err
	}
	user.Stamp(actor.ID)

	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetAllUsers(ctx context.Context) ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]model.UserResponse, len(users))
	for i := range users {
		responses[i] = users[i].ToResponse()
	}
	return responses, nil
}

func (s *userService) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := s.userRepo.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return false, err
	}

	admin, err := model.NewUser(username, password, model.RoleAdmin)
	if err != nil {
		return false, err
	}
	admin.Stamp(SystemActor.ID)

	if err := s.userRepo.Create(ctx, admin); err != nil {
		return false, err
	}
	return true, nil
}

func (s *userService) ResetPassword(ctx context.Context, username, password string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := user.SetPassword(password); err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, user.Password)
}
