package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
)

func TestAuthorizerRolePermissions(t *testing.T) {
	authz, err := NewAuthorizer()
	require.NoError(t, err)

	cases := []struct {
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{models.RoleAdmin, "foods", "write", true},
		{models.RoleAdmin, "orders", "read-all", true},
		{models.RoleAdmin, "orders", "feed", true},
		{models.RoleAdmin, "logs", "read", true},
		{models.RoleAdmin, "users", "list", true},
		{models.RoleUser, "foods", "write", false},
		{models.RoleUser, "orders", "read-all", false},
		{models.RoleUser, "logs", "read", false},
		{"", "foods", "write", false},
	}
	for _, tc := range cases {
		allowed, err := authz.Allowed(tc.role, tc.resource, tc.action)
		require.NoError(t, err)
		assert.Equal(t, tc.allowed, allowed, "%s %s %s", tc.role, tc.resource, tc.action)
	}
}
