package utils

const (
	RoleCustomer    = "customer"
	RoleSeller      = "seller"
	RoleRentalOwner = "rental_owner"
	RoleAdmin       = "admin"
)

var ValidRoles = []string{RoleCustomer, RoleSeller, RoleRentalOwner, RoleAdmin}

func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if role == r {
			return true
		}
	}
	return false
}
