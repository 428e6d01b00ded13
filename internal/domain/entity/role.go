package entity

// Role ID constants
const (
	RoleIDCenterStaff  = 1
	RoleIDPractitioner = 2
	RoleIDPatient      = 3
)

// RoleNames constants
const (
	RoleCenterStaff  = "CENTER_STAFF"
	RolePractitioner = "PRACTITIONER"
	RolePatient      = "PATIENT"
)

// RoleName maps a role id to its wire name.
func RoleName(roleID int) string {
	switch roleID {
	case RoleIDCenterStaff:
		return RoleCenterStaff
	case RoleIDPractitioner:
		return RolePractitioner
	case RoleIDPatient:
		return RolePatient
	default:
		return ""
	}
}
