package entities

// Role enumerates account roles. Roles form two non-exclusive
// capability tiers rather than a hierarchy; every policy check below
// goes through this file so the tier lists cannot drift between call
// sites.
type Role string

const (
	// RoleSuperAdmin has every capability.
	RoleSuperAdmin Role = "SUPER_ADMIN"
	// RoleAdmin manages users and boards.
	RoleAdmin Role = "ADMIN"
	// RoleAdminDesign is an admin of the design side.
	RoleAdminDesign Role = "ADMIN_DESIGN"
	// RoleAdminPublisher is an admin of the publishing side.
	RoleAdminPublisher Role = "ADMIN_PUBLISHER"
	// RolePublisher submits requests.
	RolePublisher Role = "PUBLISHER"
	// RoleDesigner works on assigned requests.
	RoleDesigner Role = "DESIGNER"
)

// Roles lists every valid role.
var Roles = []Role{RoleSuperAdmin, RoleAdmin, RoleAdminDesign, RoleAdminPublisher, RolePublisher, RoleDesigner}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ViewScope describes which requests on a board an identity may see.
type ViewScope int

const (
	// ScopeAll grants unconditional visibility of a board's requests.
	ScopeAll ViewScope = iota
	// ScopeOwnOrAssigned restricts visibility to requests where the
	// identity is the author or the assignee.
	ScopeOwnOrAssigned
)

// BoardViewScope resolves the request visibility scope for a role.
// Admin-tier roles see every request on a board; contributor-tier
// roles see only their own or assigned requests.
func BoardViewScope(r Role) ViewScope {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleAdminDesign, RoleAdminPublisher:
		return ScopeAll
	default:
		return ScopeOwnOrAssigned
	}
}

// CanCreateRequests reports whether the role belongs to the publisher
// tier allowed to submit requests.
func CanCreateRequests(r Role) bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RolePublisher, RoleAdminPublisher, RoleAdminDesign:
		return true
	}
	return false
}

// CanAdminister reports whether the role may perform administrative
// mutations: create boards, create or delete users, manage board
// membership.
func CanAdminister(r Role) bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

// ListableRoles returns the roles an identity may see in global user
// listings. SUPER_ADMIN sees everyone; ADMIN sees everyone below
// SUPER_ADMIN; other roles see nothing.
func ListableRoles(r Role) []Role {
	switch r {
	case RoleSuperAdmin:
		return Roles
	case RoleAdmin:
		return []Role{RoleAdmin, RoleAdminDesign, RoleAdminPublisher, RolePublisher, RoleDesigner}
	default:
		return nil
	}
}
