package services

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
)

// RBAC model for route-level gates. Subjects are role names taken from the
// bearer token; ownership of individual orders is checked in the order
// service, not here.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// Authorizer answers "may this role perform this action on this resource".
type Authorizer struct {
	enforcer *casbin.Enforcer
}

func NewAuthorizer() (*Authorizer, error) {
	m, err := casbinmodel.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("parse rbac model: %w", err)
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("create enforcer: %w", err)
	}

	policies := [][]string{
		{models.RoleAdmin, "foods", "write"},
		{models.RoleAdmin, "categories", "write"},
		{models.RoleAdmin, "allergens", "write"},
		{models.RoleAdmin, "orders", "read-all"},
		{models.RoleAdmin, "orders", "feed"},
		{models.RoleAdmin, "logs", "read"},
		{models.RoleAdmin, "users", "list"},
	}
	for _, p := range policies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("add policy %v: %w", p, err)
		}
	}

	return &Authorizer{enforcer: enforcer}, nil
}

func (a *Authorizer) Allowed(role, resource, action string) (bool, error) {
	allowed, err := a.enforcer.Enforce(role, resource, action)
	if err != nil {
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}
