// Package gate provides a small Gate/Policy authorization system. The Gate
// is a central registry of policies; each Policy defines the authorization
// rules for one resource type. The package has no dependencies on domain
// models and uses generics so any user/subject type can be the subject:
//
//   - Gate[string] for user-id based auth
//   - Gate[*User] for full user struct based auth
package gate

import (
	"context"
	"errors"
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNoPolicyDefined = errors.New("no policy defined for resource type")
)

// Action describes the kind of operation a user wants to perform.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
)

// Policy decides whether a user can perform an action on a resource.
// resource may be nil for list/create checks.
type Policy[U comparable] interface {
	Can(ctx context.Context, user U, action Action, resource any) bool
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc[U comparable] func(ctx context.Context, user U, action Action, resource any) bool

func (f PolicyFunc[U]) Can(ctx context.Context, user U, action Action, resource any) bool {
	return f(ctx, user, action, resource)
}

// Gate is the central authorization checkpoint. Register policies by
// resource type name, then call Authorize or Can.
type Gate[U comparable] struct {
	policies map[string]Policy[U]
}

// NewGate creates an empty Gate ready to register policies.
func NewGate[U comparable]() *Gate[U] {
	return &Gate[U]{policies: make(map[string]Policy[U])}
}

// Register adds a policy for a given resource type (e.g. "template").
// Overwrites any existing policy for that type.
func (g *Gate[U]) Register(resourceType string, p Policy[U]) {
	g.policies[resourceType] = p
}

// Authorize checks authorization and returns an error if denied. A
// zero-value user is always denied; an unregistered resource type returns
// ErrNoPolicyDefined.
func (g *Gate[U]) Authorize(ctx context.Context, user U, action Action, resourceType string, resource any) error {
	var zero U
	if user == zero {
		return ErrUnauthorized
	}
	p, ok := g.policies[resourceType]
	if !ok {
		return ErrNoPolicyDefined
	}
	if !p.Can(ctx, user, action, resource) {
		return ErrUnauthorized
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate[U]) Can(ctx context.Context, user U, action Action, resourceType string, resource any) bool {
	return g.Authorize(ctx, user, action, resourceType, resource) == nil
}
