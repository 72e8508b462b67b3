package entity

// StaffRole distinguishes floor associates from supervisors (§3, §4.12).
type StaffRole string

const (
	RoleAssociate  StaffRole = "ASSOCIATE"
	RoleSupervisor StaffRole = "SUPERVISOR"
)

// StaffMember is an eligible assignee for replenishment tasks and
// receiving orders (§3, §4.12).
type StaffMember struct {
	ID       string
	Name     string
	Role     StaffRole
	OnShift  bool
	AllZones bool     // zone scope "all"
	Zones    []string // zone scope: specific location ids (ignored if AllZones)
}

// InScope reports whether this staff member's zone scope covers locationID.
func (s StaffMember) InScope(locationID string) bool {
	if s.AllZones {
		return true
	}
	for _, z := range s.Zones {
		if z == locationID {
			return true
		}
	}
	return false
}
