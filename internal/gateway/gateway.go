package gateway

import (
	"context"

	"cart-sync/internal/model"
)

// Gateway defines the interface to the remote cart service. Each call
// maps to one REST request and returns the full cart state the remote
// considers authoritative. The gateway is deliberately thin: no
// retries, no backoff, no timeout policy beyond the HTTP client's.
//
// Failures are reported as *model.TransportError when the remote never
// produced an authoritative answer (network error, timeout, 5xx), and
// as *model.DomainError when the remote explicitly rejected the
// request (e.g. an invalid coupon code).
type Gateway interface {
	// GetCart retrieves the remote cart state.
	GetCart(ctx context.Context) (*model.CartState, error)

	// AddItem adds a product to the remote cart.
	AddItem(ctx context.Context, req *model.AddItemRequest) (*model.CartState, error)

	// UpdateItem changes the quantity of a remote cart line item.
	UpdateItem(ctx context.Context, itemID string, quantity int) (*model.CartState, error)

	// RemoveItem deletes a line item from the remote cart.
	RemoveItem(ctx context.Context, itemID string) (*model.CartState, error)

	// Clear empties the remote cart.
	Clear(ctx context.Context) (*model.CartState, error)

	// ApplyCoupon asks the remote authority to validate and apply a
	// coupon code.
	ApplyCoupon(ctx context.Context, code string) (*model.CartState, error)

	// RemoveCoupon removes the active coupon from the remote cart.
	RemoveCoupon(ctx context.Context) (*model.CartState, error)
}
