package engine

import (
	"context"

	"cart-sync/internal/model"
)

// Engine defines the cart mutation API presented to callers. Every
// operation first attempts the remote cart service; item mutations
// that fail at the transport level are computed locally against the
// persisted snapshot instead, so from the caller's perspective they
// always succeed. Both paths return the same cart state shape, and a
// caller cannot tell which one served a given response.
//
// ApplyCoupon is the exception: coupon validity is owned by the remote
// authority and cannot be decided locally, so its failures surface.
type Engine interface {
	// Fetch returns the remote cart, or the last persisted snapshot
	// when the remote is unreachable.
	Fetch(ctx context.Context) (*model.CartState, error)

	// AddItem adds a product to the cart, merging with an existing
	// line item that has the same product/variant pair.
	AddItem(ctx context.Context, req *model.AddItemRequest) (*model.CartState, error)

	// UpdateQuantity replaces a line item's quantity. Quantities below
	// one are ignored and the prior state is returned unchanged.
	UpdateQuantity(ctx context.Context, itemID string, quantity int) (*model.CartState, error)

	// RemoveItem deletes a line item. Removing an unknown ID is a
	// no-op returning the unchanged state.
	RemoveItem(ctx context.Context, itemID string) (*model.CartState, error)

	// Clear empties the cart.
	Clear(ctx context.Context) (*model.CartState, error)

	// ApplyCoupon applies a coupon code via the remote authority.
	// Remote failures of any kind surface to the caller.
	ApplyCoupon(ctx context.Context, code string) (*model.CartState, error)

	// RemoveCoupon removes the active coupon.
	RemoveCoupon(ctx context.Context) (*model.CartState, error)
}
