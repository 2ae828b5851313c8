package identity

import (
	"fmt"

	"gitlab.com/foodshare/backend/internal/domainerr"
)

const (
	RoleDonor  = "donor"
	RoleNgo    = "ngo"
	RoleFarmer = "farmer"
)

// Role is closed: Donor, Ngo and Farmer are its only implementations.
type Role interface {
	Kind() string
	isRole()
}

type Donor struct {
	ID string
}

type Ngo struct {
	ID   string
	Name string
}

type Farmer struct {
	ID string
}

func (Donor) Kind() string  { return RoleDonor }
func (Ngo) Kind() string    { return RoleNgo }
func (Farmer) Kind() string { return RoleFarmer }

func (Donor) isRole()  {}
func (Ngo) isRole()    {}
func (Farmer) isRole() {}

func ValidRole(kind string) bool {
	switch kind {
	case RoleDonor, RoleNgo, RoleFarmer:
		return true
	default:
		return false
	}
}

// Principal is the verified identity behind a request.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (p Principal) AsRole() (Role, error) {
	switch p.Role {
	case RoleDonor:
		return Donor{ID: p.ID}, nil
	case RoleNgo:
		return Ngo{ID: p.ID, Name: p.Name}, nil
	case RoleFarmer:
		return Farmer{ID: p.ID}, nil
	default:
		return nil, domainerr.New(domainerr.CodeUnauthorized, fmt.Sprintf("unknown role %q", p.Role))
	}
}
