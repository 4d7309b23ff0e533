package rbac

import (
	"strings"
	"sync"

	"github.com/casbin/casbin/v2"
)

// EnforceRequest is what the middleware hands to the policy engine. The role
// comes from the verified token, so the subject is a role name, not a user id.
type EnforceRequest struct {
	Role     string
	Resource string
	Action   string
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.Mutex
}

func NewService(enforcer *casbin.Enforcer) Service {
	return &service{enforcer: enforcer}
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.enforcer.Enforce(
		strings.ToUpper(strings.TrimSpace(req.Role)),
		req.Resource,
		req.Action,
	)
}
