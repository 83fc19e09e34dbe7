package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Requests
	PermissionRequestCreate  Permission = "request.create"
	PermissionRequestViewOwn Permission = "request.view_own"
	PermissionRequestViewAll Permission = "request.view_all"
	PermissionRequestDecide  Permission = "request.decide"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

var employeePermissions = []Permission{
	PermissionViewOwnProfile,
	PermissionEditOwnProfile,
	PermissionRequestCreate,
	PermissionRequestViewOwn,
}

var approverPermissions = append(append([]Permission{}, employeePermissions...),
	PermissionRequestViewAll,
	PermissionRequestDecide,
	PermissionUserManage,
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin:    approverPermissions,
	RoleHR:       approverPermissions,
	RoleEmployee: employeePermissions,
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// CanDecide is the single policy for approving or denying requests and for
// seeing every request.
func CanDecide(role Role) bool {
	return HasPermission(role, PermissionRequestDecide)
}

// CanManageUsers is the single policy for listing, activating and editing
// accounts.
func CanManageUsers(role Role) bool {
	return HasPermission(role, PermissionUserManage)
}
