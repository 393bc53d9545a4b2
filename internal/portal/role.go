// Package portal defines the four role portals: which records each shows,
// with which columns and bulk actions, and how their demo sources are built.
package portal

import (
	"errors"
	"fmt"
	"strings"
)

// Role selects a portal.
type Role string

// Roles.
const (
	RoleAdmin       Role = "admin"
	RoleMerchant    Role = "merchant"
	RolePartnerBank Role = "partner-bank"
	RoleSubMerchant Role = "sub-merchant"
)

// Entity names the record type a portal lists.
type Entity string

// Entities.
const (
	EntityTransactions Entity = "transactions"
	EntityTerminals    Entity = "terminals"
	EntitySettlements  Entity = "settlements"
)

// ErrUnknownRole is returned by ParseRole.
var ErrUnknownRole = errors.New("unknown role")

// Roles returns every role in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleMerchant, RolePartnerBank, RoleSubMerchant}
}

// ParseRole parses a role name, case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Roles() {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w %q: must be one of admin, merchant, partner-bank, sub-merchant", ErrUnknownRole, s)
}

func (r Role) String() string { return string(r) }

// Title is the portal heading.
func (r Role) Title() string {
	switch r {
	case RoleAdmin:
		return "Admin Portal"
	case RoleMerchant:
		return "Merchant Portal"
	case RolePartnerBank:
		return "Partner Bank Portal"
	case RoleSubMerchant:
		return "Sub-Merchant Portal"
	default:
		return "Portal"
	}
}

// Entity returns the record type listed by the role's portal.
func (r Role) Entity() Entity {
	switch r {
	case RolePartnerBank:
		return EntitySettlements
	case RoleSubMerchant:
		return EntityTerminals
	default:
		return EntityTransactions
	}
}
