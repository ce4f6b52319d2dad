package auth

import "github.com/iliyamo/agri-supply-ledger/internal/model"

// Capability names an action a route performs.
type Capability string

const (
	CapReadLedger  Capability = "ledger:read"
	CapWriteLedger Capability = "ledger:write"
	CapManageUsers Capability = "users:manage"
)

// Policy decides whether a principal holds a capability.
type Policy interface {
	Allow(u *model.User, c Capability) bool
}

// AnyActivePrincipal grants every capability to every active principal.
type AnyActivePrincipal struct{}

func (AnyActivePrincipal) Allow(u *model.User, _ Capability) bool {
	return u != nil && u.IsActive
}

// RolePolicy restricts selected capabilities to a set of roles.
// Capabilities without a rule are granted to every active principal.
type RolePolicy struct {
	rules map[Capability]map[string]struct{}
}

func NewRolePolicy(rules map[Capability][]string) *RolePolicy {
	p := &RolePolicy{rules: make(map[Capability]map[string]struct{}, len(rules))}
	for c, roles := range rules {
		set := make(map[string]struct{}, len(roles))
		for _, r := range roles {
			set[r] = struct{}{}
		}
		p.rules[c] = set
	}
	return p
}

func (p *RolePolicy) Allow(u *model.User, c Capability) bool {
	if u == nil || !u.IsActive {
		return false
	}
	roles, ok := p.rules[c]
	if !ok {
		return true
	}
	_, ok = roles[u.Role]
	return ok
}

// PolicyFromAdminRoles returns AnyActivePrincipal when adminRoles is empty,
// otherwise a RolePolicy reserving user management for those roles.
func PolicyFromAdminRoles(adminRoles []string) Policy {
	if len(adminRoles) == 0 {
		return AnyActivePrincipal{}
	}
	return NewRolePolicy(map[Capability][]string{CapManageUsers: adminRoles})
}
