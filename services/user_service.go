package services

import (
	"context"
	"fmt"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/utils"
)

// UserProfile is the read model of an account; the password digest never
// leaves the service layer.
type UserProfile struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Phone        string `json:"phone"`
	Role         string `json:"role"`
	DateCreation string `json:"dateCreation"`
}

type UpdateProfileInput struct {
	Email     string
	FirstName string
	LastName  string
	Phone     string
}

type UserService struct {
	users  UserRepository
	applog *AppLogger
}

func NewUserService(users UserRepository, applog *AppLogger) *UserService {
	return &UserService{users: users, applog: applog}
}

func (s *UserService) Me(ctx context.Context, caller utils.Identity) (*UserProfile, error) {
	user, err := s.users.ByID(ctx, caller.UserID)
	if err != nil {
		return nil, storeError(err, "user")
	}
	return profile(user), nil
}

// UpdateMe edits the caller's own mutable fields. Email stays unique
// across accounts.
func (s *UserService) UpdateMe(ctx context.Context, caller utils.Identity, input UpdateProfileInput) (*UserProfile, error) {
	user, err := s.users.ByID(ctx, caller.UserID)
	if err != nil {
		return nil, storeError(err, "user")
	}

	if input.Email != user.Email {
		if taken, err := s.users.EmailExists(ctx, input.Email, user.ID); err != nil {
			return nil, s.fail(ctx, "User.UpdateMe", err)
		} else if taken {
			return nil, conflictf("email is already in use")
		}
	}

	user.Email = input.Email
	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Phone = input.Phone
	if err := s.users.Update(ctx, user); err != nil {
		return nil, s.fail(ctx, "User.UpdateMe", err)
	}

	s.applog.Information(ctx, fmt.Sprintf("User.UpdateMe success: id=%d", user.ID))
	return profile(user), nil
}

// List pages through all accounts, admin only (enforced at the route).
func (s *UserService) List(ctx context.Context, skip, take int) ([]UserProfile, error) {
	if take < 1 || take > 200 {
		take = 50
	}
	if skip < 0 {
		skip = 0
	}
	users, err := s.users.List(ctx, skip, take)
	if err != nil {
		return nil, s.fail(ctx, "User.List", err)
	}
	out := make([]UserProfile, 0, len(users))
	for i := range users {
		out = append(out, *profile(&users[i]))
	}
	return out, nil
}

func (s *UserService) fail(ctx context.Context, op string, err error) error {
	classified := storeError(err, "user")
	s.applog.Error(ctx, fmt.Sprintf("%s failed: %v", op, err))
	return classified
}

func profile(user *models.User) *UserProfile {
	p := &UserProfile{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Phone:        user.Phone,
		DateCreation: user.DateCreation.Format("2006-01-02T15:04:05Z07:00"),
	}
	if user.Role != nil {
		p.Role = user.Role.Name
	}
	return p
}
