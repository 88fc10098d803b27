// internal/domain/models/groupmembership.go
package models

// Member is one entry of a group's member listing.
type Member struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`   // OWNER | MANAGER | MEMBER
	Type   string `json:"type"`   // USER | GROUP | CUSTOMER | EXTERNAL
	Status string `json:"status"` // ACTIVE | SUSPENDED | ...
}

// Members is the full (all pages) member listing of one group.
type Members struct {
	Members []Member `json:"members"`
}

// Has reports whether email appears in the listing. Comparison is exact,
// matching how the directory reports addresses.
func (m Members) Has(email string) bool {
	for _, mem := range m.Members {
		if mem.Email == email {
			return true
		}
	}
	return false
}

// MembershipSet maps a group ID to that group's members.
type MembershipSet map[string]Members
