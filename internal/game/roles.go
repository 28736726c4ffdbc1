package game

// Supply chain roles, ordered downstream to upstream. The retailer faces
// external customer demand; every other role's demand is the order its
// downstream partner placed in the previous round.
const (
	RoleRetailer     = "retailer"
	RoleWholesaler   = "wholesaler"
	RoleDistributor  = "distributor"
	RoleManufacturer = "manufacturer"
)

// Roles is the fixed pipeline order used by the settle step.
var Roles = []string{RoleRetailer, RoleWholesaler, RoleDistributor, RoleManufacturer}

// ValidRole reports whether the string names one of the four roles.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Downstream returns the role one step closer to the customer, or "" for
// the retailer.
func Downstream(role string) string {
	for i, r := range Roles {
		if r == role {
			if i == 0 {
				return ""
			}
			return Roles[i-1]
		}
	}
	return ""
}

// Upstream returns the role one step away from the customer, or "" for
// the manufacturer.
func Upstream(role string) string {
	for i, r := range Roles {
		if r == role {
			if i == len(Roles)-1 {
				return ""
			}
			return Roles[i+1]
		}
	}
	return ""
}
