package gate

import (
	"context"
	"errors"
	"testing"
)

func TestGateAuthorize(t *testing.T) {
	g := NewGate[string]()
	g.Register("doc", PolicyFunc[string](func(_ context.Context, user string, action Action, _ any) bool {
		return user == "owner" || action == ActionView
	}))

	ctx := context.Background()
	if err := g.Authorize(ctx, "owner", ActionDelete, "doc", nil); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := g.Authorize(ctx, "guest", ActionView, "doc", nil); err != nil {
		t.Fatalf("guest view: %v", err)
	}
	if err := g.Authorize(ctx, "guest", ActionDelete, "doc", nil); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGateZeroUserDenied(t *testing.T) {
	g := NewGate[string]()
	g.Register("doc", PolicyFunc[string](func(context.Context, string, Action, any) bool { return true }))
	if err := g.Authorize(context.Background(), "", ActionView, "doc", nil); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for zero user, got %v", err)
	}
}

func TestGateUnknownResource(t *testing.T) {
	g := NewGate[string]()
	if err := g.Authorize(context.Background(), "u", ActionView, "missing", nil); !errors.Is(err, ErrNoPolicyDefined) {
		t.Fatalf("expected ErrNoPolicyDefined, got %v", err)
	}
}
