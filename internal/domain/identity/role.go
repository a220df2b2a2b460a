package identity

// Role is a user's assigned role. Roles are fixed: permissions come
// from a static allow-list per role, not from a roles table.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleMarketingTeam  Role = "marketing_team"
	RoleOrderManager   Role = "order_manager"
	RoleProductManager Role = "product_manager"
)

// IsValid checks if the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMarketingTeam, RoleOrderManager, RoleProductManager:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// AllRoles returns every assignable role
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleMarketingTeam, RoleOrderManager, RoleProductManager}
}

// Permission is a resource:action code, e.g. "orders:write"
type Permission string

const (
	PermOrdersRead     Permission = "orders:read"
	PermOrdersWrite    Permission = "orders:write"
	PermProductsRead   Permission = "products:read"
	PermProductsWrite  Permission = "products:write"
	PermCustomersRead  Permission = "customers:read"
	PermCustomersWrite Permission = "customers:write"
	PermCampaignsRead  Permission = "campaigns:read"
	PermCampaignsWrite Permission = "campaigns:write"
	PermReportsRead    Permission = "reports:read"
	PermUsersRead      Permission = "users:read"
	PermUsersWrite     Permission = "users:write"
)

// rolePermissions is the per-role allow-list. Admin is handled in
// HasPermission and is not listed here.
var rolePermissions = map[Role][]Permission{
	RoleMarketingTeam: {
		PermCampaignsRead, PermCampaignsWrite, PermReportsRead,
	},
	RoleOrderManager: {
		PermOrdersRead, PermOrdersWrite, PermCustomersRead,
	},
	RoleProductManager: {
		PermProductsRead, PermProductsWrite, PermReportsRead,
	},
}

// Permissions returns the role's allow-list. Admin gets every permission.
func (r Role) Permissions() []Permission {
	if r == RoleAdmin {
		return []Permission{
			PermOrdersRead, PermOrdersWrite,
			PermProductsRead, PermProductsWrite,
			PermCustomersRead, PermCustomersWrite,
			PermCampaignsRead, PermCampaignsWrite,
			PermReportsRead,
			PermUsersRead, PermUsersWrite,
		}
	}
	perms := rolePermissions[r]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// HasPermission reports whether the role grants the permission
func (r Role) HasPermission(p Permission) bool {
	if r == RoleAdmin {
		return true
	}
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}
