// Package auth implements role-based access control for hive. Roles map
// to fixed permission sets; commands gate themselves with Can before
// touching the datastore.
package auth

// Role is the access level a user operates at.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// Permission names a single guarded capability.
type Permission string

const (
	PermCreateOrder  Permission = "create_order"
	PermViewOrder    Permission = "view_order"
	PermEditOrder    Permission = "edit_order"
	PermDeleteOrder  Permission = "delete_order"
	PermUpdateStatus Permission = "update_status"

	PermViewCustomers   Permission = "view_customers"
	PermManageCustomers Permission = "manage_customers"

	PermViewInventory   Permission = "view_inventory"
	PermManageInventory Permission = "manage_inventory"

	PermViewPrinters   Permission = "view_printers"
	PermManagePrinters Permission = "manage_printers"

	PermViewStatistics Permission = "view_statistics"
	PermViewFinancial  Permission = "view_financial"
	PermExportData     Permission = "export_data"

	PermManageUsers    Permission = "manage_users"
	PermManageSettings Permission = "manage_settings"
	PermSystemBackup   Permission = "system_backup"
)

// userPermissions is the restricted set granted to the User role. Admin
// is not listed here; it holds every permission.
var userPermissions = map[Permission]bool{
	PermCreateOrder:   true,
	PermViewOrder:     true,
	PermEditOrder:     true,
	PermUpdateStatus:  true,
	PermViewCustomers: true,
	PermViewInventory: true,
	PermViewPrinters:  true,
}

// ParseRole normalizes a role string, defaulting unknown values to the
// restricted User role.
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Can reports whether role holds the permission.
func Can(role Role, perm Permission) bool {
	if role == RoleAdmin {
		return true
	}
	return userPermissions[perm]
}

// Permissions returns every permission held by role.
func Permissions(role Role) []Permission {
	all := []Permission{
		PermCreateOrder, PermViewOrder, PermEditOrder, PermDeleteOrder, PermUpdateStatus,
		PermViewCustomers, PermManageCustomers,
		PermViewInventory, PermManageInventory,
		PermViewPrinters, PermManagePrinters,
		PermViewStatistics, PermViewFinancial, PermExportData,
		PermManageUsers, PermManageSettings, PermSystemBackup,
	}
	if role == RoleAdmin {
		return all
	}
	var out []Permission
	for _, p := range all {
		if userPermissions[p] {
			out = append(out, p)
		}
	}
	return out
}
