package infra

import (
	"fmt"

	"github.com/casbin/casbin/v2"
)

// NewEnforcer loads the RBAC model and the static role policy from disk.
// Roles are fixed (ADMIN, USER); there is no runtime policy mutation.
func NewEnforcer(modelPath, policyPath string) (*casbin.Enforcer, error) {
	e, err := casbin.NewEnforcer(modelPath, policyPath)
	if err != nil {
		return nil, fmt.Errorf("load rbac policy: %w", err)
	}
	return e, nil
}
