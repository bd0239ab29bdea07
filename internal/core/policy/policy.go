// Package policy holds the pure role-to-capability mapping used to gate
// routes and features. Capabilities are derived on every check, never stored.
package policy

import "github.com/hotelchain/booking-portal/internal/core/domain"

// Capability names a single permission the portal understands.
type Capability string

const (
	CapManageUsers    Capability = "manage-users"
	CapManageRooms    Capability = "manage-rooms"
	CapManageBookings Capability = "manage-bookings"
	CapViewDashboard  Capability = "view-dashboard"
	CapViewStatistics Capability = "view-statistics"
)

// AllCapabilities enumerates every capability the policy can grant.
var AllCapabilities = []Capability{
	CapManageUsers,
	CapManageRooms,
	CapManageBookings,
	CapViewDashboard,
	CapViewStatistics,
}

// grants is the authoritative capability table. Roles absent from this map
// (and any unrecognised role) hold no elevated capabilities.
var grants = map[domain.Role]map[Capability]struct{}{
	domain.RoleEmployee: {
		CapManageRooms:    {},
		CapManageBookings: {},
		CapViewDashboard:  {},
	},
	domain.RoleManager: {
		CapManageRooms:    {},
		CapManageBookings: {},
		CapViewDashboard:  {},
		CapViewStatistics: {},
	},
	domain.RoleAdministrator: {
		CapManageUsers:    {},
		CapManageRooms:    {},
		CapManageBookings: {},
		CapViewDashboard:  {},
		CapViewStatistics: {},
	},
}

// HasCapability reports whether role holds cap. Unknown roles and RoleClient
// hold nothing.
func HasCapability(role domain.Role, cap Capability) bool {
	_, ok := grants[role][cap]
	return ok
}

// Capabilities returns the full capability set for role. The result is a
// fresh copy; callers may not mutate the table through it.
func Capabilities(role domain.Role) []Capability {
	set := grants[role]
	out := make([]Capability, 0, len(set))
	for _, cap := range AllCapabilities {
		if _, ok := set[cap]; ok {
			out = append(out, cap)
		}
	}
	return out
}

// RolesWith returns every role granted cap, in enumeration order. Used to
// declare route requirements from a capability rather than a role list.
func RolesWith(cap Capability) []domain.Role {
	roles := make([]domain.Role, 0, 3)
	for _, r := range []domain.Role{
		domain.RoleClient,
		domain.RoleEmployee,
		domain.RoleManager,
		domain.RoleAdministrator,
	} {
		if HasCapability(r, cap) {
			roles = append(roles, r)
		}
	}
	return roles
}
