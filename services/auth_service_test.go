package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/utils"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	svc := NewAuthService(users, NewAppLogger(&fakeLogRepo{}), "test-secret", time.Hour)
	return svc, users
}

func registerAna(t *testing.T, svc *AuthService) {
	t.Helper()
	require.NoError(t, svc.Register(context.Background(), RegisterInput{
		Username:  "ana",
		Email:     "ana@example.com",
		Password:  "secret1",
		FirstName: "Ana",
		LastName:  "Anic",
		Phone:     "+385911111111",
	}))
}

func TestRegisterAssignsUserRoleAndHashesPassword(t *testing.T) {
	svc, users := newAuthFixture(t)
	registerAna(t, svc)

	user, err := users.ByUsername(context.Background(), "ana")
	require.NoError(t, err)
	require.NotNil(t, user.Role)
	assert.Equal(t, models.RoleUser, user.Role.Name)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("secret1", user.PasswordHash))
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _ := newAuthFixture(t)
	registerAna(t, svc)

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"username", RegisterInput{Username: "ana", Email: "other@example.com", Password: "secret1", Phone: "+385922222222"}},
		{"email", RegisterInput{Username: "other", Email: "ana@example.com", Password: "secret1", Phone: "+385922222222"}},
		{"phone", RegisterInput{Username: "other", Email: "other@example.com", Password: "secret1", Phone: "+385911111111"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Register(context.Background(), tc.input)
			var conflict *ConflictError
			require.ErrorAs(t, err, &conflict)
		})
	}
}

func TestLoginIssuesTokenWithIdentityClaims(t *testing.T) {
	svc, users := newAuthFixture(t)
	registerAna(t, svc)

	token, err := svc.Login(context.Background(), "ana", "secret1")
	require.NoError(t, err)

	id, err := utils.ParseJWT("test-secret", token)
	require.NoError(t, err)
	user, _ := users.ByUsername(context.Background(), "ana")
	assert.Equal(t, user.ID, id.UserID)
	assert.Equal(t, "ana", id.Username)
	assert.Equal(t, models.RoleUser, id.Role)
}

func TestLoginUniformErrorForUnknownUserAndWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)
	registerAna(t, svc)

	_, errUnknown := svc.Login(context.Background(), "nobody", "secret1")
	_, errWrong := svc.Login(context.Background(), "ana", "wrong")

	var authn *AuthenticationError
	require.ErrorAs(t, errUnknown, &authn)
	unknownMsg := authn.Message
	require.ErrorAs(t, errWrong, &authn)
	assert.Equal(t, unknownMsg, authn.Message, "account existence must not leak")
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	svc, users := newAuthFixture(t)
	registerAna(t, svc)
	user, _ := users.ByUsername(context.Background(), "ana")
	caller := utils.Identity{UserID: user.ID, Username: "ana", Role: models.RoleUser}
	before := user.PasswordHash

	err := svc.ChangePassword(context.Background(), caller, "wrong", "newsecret")
	var authn *AuthenticationError
	require.ErrorAs(t, err, &authn)
	assert.Equal(t, before, users.users[user.ID].PasswordHash, "digest untouched on rejection")

	err = svc.ChangePassword(context.Background(), caller, "secret1", "secret1")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, before, users.users[user.ID].PasswordHash)

	require.NoError(t, svc.ChangePassword(context.Background(), caller, "secret1", "newsecret"))
	assert.True(t, utils.CheckPasswordHash("newsecret", users.users[user.ID].PasswordHash))
	assert.False(t, utils.CheckPasswordHash("secret1", users.users[user.ID].PasswordHash))
}
