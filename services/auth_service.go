package services

import (
	"context"
	"fmt"
	"time"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/utils"
)

type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type AuthService struct {
	users         UserRepository
	applog        *AppLogger
	jwtSecret     string
	tokenLifetime time.Duration
}

func NewAuthService(users UserRepository, applog *AppLogger, jwtSecret string, tokenLifetime time.Duration) *AuthService {
	return &AuthService{users: users, applog: applog, jwtSecret: jwtSecret, tokenLifetime: tokenLifetime}
}

// Register creates a user with the default "user" role. Username, email
// and phone pre-checks give friendly conflict messages; the unique indexes
// behind them are the real enforcement point.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	if taken, err := s.users.UsernameExists(ctx, input.Username); err != nil {
		return s.fail(ctx, "Auth.Register", err)
	} else if taken {
		return conflictf("username already exists")
	}
	if taken, err := s.users.EmailExists(ctx, input.Email, 0); err != nil {
		return s.fail(ctx, "Auth.Register", err)
	} else if taken {
		return conflictf("email already exists")
	}
	if taken, err := s.users.PhoneExists(ctx, input.Phone); err != nil {
		return s.fail(ctx, "Auth.Register", err)
	} else if taken {
		return conflictf("phone already exists")
	}

	role, err := s.users.RoleByName(ctx, models.RoleUser)
	if err != nil {
		return s.fail(ctx, "Auth.Register", err)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return err
	}

	user := &models.User{
		Username:     input.Username,
		PasswordHash: hash,
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		DateCreation: time.Now().UTC(),
		RoleID:       role.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return s.fail(ctx, "Auth.Register", err)
	}

	s.applog.Information(ctx, fmt.Sprintf("Auth.Register success: user=%s id=%d", user.Username, user.ID))
	return nil
}

// Login answers the same credentials-invalid error whether the username is
// unknown or the password wrong, so account existence never leaks.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		if classified := storeError(err, "user"); isTransient(classified) {
			return "", s.fail(ctx, "Auth.Login", err)
		}
		return "", &AuthenticationError{Message: "invalid username or password"}
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return "", &AuthenticationError{Message: "invalid username or password"}
	}

	roleName := models.RoleUser
	if user.Role != nil {
		roleName = user.Role.Name
	}
	token, err := utils.GenerateJWT(s.jwtSecret, utils.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Role:     roleName,
	}, s.tokenLifetime)
	if err != nil {
		return "", err
	}

	s.applog.Information(ctx, fmt.Sprintf("Auth.Login success: user=%s", user.Username))
	return token, nil
}

// ChangePassword requires proof of the current password and rejects a new
// password identical to the old one. On any rejection the stored digest is
// left untouched.
func (s *AuthService) ChangePassword(ctx context.Context, caller utils.Identity, currentPassword, newPassword string) error {
	user, err := s.users.ByID(ctx, caller.UserID)
	if err != nil {
		return s.fail(ctx, "Auth.ChangePassword", err)
	}
	if !utils.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return &AuthenticationError{Message: "current password is incorrect"}
	}
	if currentPassword == newPassword {
		return validationf("new password must differ from the current password")
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	if err := s.users.Update(ctx, user); err != nil {
		return s.fail(ctx, "Auth.ChangePassword", err)
	}

	s.applog.Information(ctx, fmt.Sprintf("Auth.ChangePassword success: user=%s", user.Username))
	return nil
}

func (s *AuthService) fail(ctx context.Context, op string, err error) error {
	classified := storeError(err, "user")
	s.applog.Error(ctx, fmt.Sprintf("%s failed: %v", op, err))
	return classified
}

func isTransient(err error) bool {
	_, ok := err.(*TransientStoreError)
	return ok
}
