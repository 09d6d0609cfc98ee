// Package policy wires the generic gate to the workspace's user model.
// Authorization here is deliberately coarse: two booleans on the user row
// (isActive, canCreateTemplate) plus the ADMIN role.
package policy

import (
	"context"

	"github.com/patronacct/draftboard/gate"
	"github.com/patronacct/draftboard/internal/models"
)

// Resource type names registered on the gate.
const (
	ResourceTemplate   = "template"
	ResourceResolution = "resolution"
	ResourceUser       = "user"
	ResourceClient     = "client"
)

// Owned is implemented by records that belong to a user.
type Owned interface {
	OwnerID() string
}

// New builds the workspace gate with all policies registered.
func New() *gate.Gate[*models.User] {
	g := gate.NewGate[*models.User]()
	g.Register(ResourceTemplate, gate.PolicyFunc[*models.User](templatePolicy))
	g.Register(ResourceResolution, gate.PolicyFunc[*models.User](ownerOrAdminPolicy))
	g.Register(ResourceClient, gate.PolicyFunc[*models.User](activeUserPolicy))
	g.Register(ResourceUser, gate.PolicyFunc[*models.User](adminOnlyPolicy))
	return g
}

// templatePolicy: any active user may view and use templates; creating one
// requires the canCreateTemplate grant (admins always may); deleting is an
// admin operation or the owner removing their own template.
func templatePolicy(_ context.Context, u *models.User, action gate.Action, resource any) bool {
	if !u.IsActive {
		return false
	}
	switch action {
	case gate.ActionCreate:
		return u.IsAdmin() || u.CanCreateTemplate
	case gate.ActionDelete:
		return u.IsAdmin() || ownedBy(resource, u.ID)
	default:
		return true
	}
}

// ownerOrAdminPolicy: mutations require ownership or the ADMIN role;
// list/create only require an active account.
func ownerOrAdminPolicy(_ context.Context, u *models.User, action gate.Action, resource any) bool {
	if !u.IsActive {
		return false
	}
	switch action {
	case gate.ActionList, gate.ActionCreate:
		return true
	default:
		return u.IsAdmin() || resource == nil || ownedBy(resource, u.ID)
	}
}

func activeUserPolicy(_ context.Context, u *models.User, _ gate.Action, _ any) bool {
	return u.IsActive
}

func adminOnlyPolicy(_ context.Context, u *models.User, _ gate.Action, _ any) bool {
	return u.IsActive && u.IsAdmin()
}

func ownedBy(resource any, userID string) bool {
	o, ok := resource.(Owned)
	return ok && o.OwnerID() == userID
}
