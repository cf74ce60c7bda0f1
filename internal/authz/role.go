package authz

import "fmt"

// Role identifies a member's function within a conflict.
// The zero value means the caller is not a member.
type Role string

const (
	RoleNone     Role = ""
	RolePartyA   Role = "partyA"
	RolePartyB   Role = "partyB"
	RoleWitness1 Role = "witness1"
	RoleWitness2 Role = "witness2"
	RoleArbiter  Role = "arb"
)

var roles = map[Role]struct{}{
	RolePartyA:   {},
	RolePartyB:   {},
	RoleWitness1: {},
	RoleWitness2: {},
	RoleArbiter:  {},
}

// ParseRole validates a role string.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roles[r]; !ok {
		return RoleNone, fmt.Errorf("invalid role: %q", s)
	}
	return r, nil
}

// Member reports whether the role represents an actual membership.
func (r Role) Member() bool {
	_, ok := roles[r]
	return ok
}

// IsParty reports whether the role is one of the two disputing parties.
func (r Role) IsParty() bool {
	return r == RolePartyA || r == RolePartyB
}

// IsWitness reports whether the role is a witness.
func (r Role) IsWitness() bool {
	return r == RoleWitness1 || r == RoleWitness2
}
