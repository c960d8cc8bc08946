package role

import "fmt"

// Role хранится в JWT и в таблице users как int
type Role int

const (
	Buyer Role = iota
	Admin
)

func (r Role) String() string {
	switch r {
	case Buyer:
		return "buyer"
	case Admin:
		return "admin"
	default:
		return "unknown"
	}
}

// Parse - обратное String
func Parse(s string) (Role, error) {
	switch s {
	case "buyer":
		return Buyer, nil
	case "admin":
		return Admin, nil
	default:
		return 0, fmt.Errorf("unknown role %q", s)
	}
}
