package models

type UserRole string
type UserStatus string

const (
	UserRoleUser      UserRole = "User"
	UserRoleCompanyHR UserRole = "Company_HR"
	UserRoleAdmin     UserRole = "Admin"

	UserStatusOnline  UserStatus = "online"
	UserStatusOffline UserStatus = "offline"
)

// ValidRole reports whether the role is one of the three known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case UserRoleUser, UserRoleCompanyHR, UserRoleAdmin:
		return true
	}
	return false
}
