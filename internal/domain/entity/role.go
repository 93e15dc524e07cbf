package entity

// Role is carried in session tokens. Every signed-in merchant administers their own store,
// so there is a single role.
type Role string

// RoleAdmin is granted to every merchant signed in through the auth provider.
const RoleAdmin Role = "admin"

func (r Role) String() string {
	return string(r)
}

// Roles is the role list of a session token.
type Roles []Role

// ToStrings converts Roles to the claim representation.
func (rs Roles) ToStrings() []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		if r != "" {
			out = append(out, r.String())
		}
	}

	return out
}
