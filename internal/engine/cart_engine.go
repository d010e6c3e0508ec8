package engine

import (
	"context"
	"errors"
	"sync"

	"cart-sync/internal/gateway"
	"cart-sync/internal/model"
	"cart-sync/internal/store"
	"cart-sync/internal/totals"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartEngine implements Engine. A single mutex serializes mutations so
// two rapid operations cannot interleave their read-modify-write
// against the snapshot slot; the fallback path additionally re-reads
// the store at commit time rather than reusing a state captured when
// the call started.
type cartEngine struct {
	gateway gateway.Gateway
	store   store.Store
	logger  zerolog.Logger
	mu      sync.Mutex
}

// NewCartEngine creates a reconciliation engine over the given remote
// gateway and snapshot store.
func NewCartEngine(gw gateway.Gateway, st store.Store, logger zerolog.Logger) Engine {
	return &cartEngine{
		gateway: gw,
		store:   st,
		logger:  logger.With().Str("component", "cart-engine").Logger(),
	}
}

// Fetch returns the remote cart, or the last persisted snapshot when
// the remote is unreachable.
func (e *cartEngine) Fetch(ctx context.Context) (*model.CartState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.gateway.GetCart(ctx)
	if err == nil {
		e.persist(ctx, *state)
		return state, nil
	}

	if !isTransportFailure(err) {
		return nil, err
	}

	e.logger.Warn().Err(err).Msg("remote cart unreachable, serving persisted snapshot")

	snapshot := e.loadSnapshot(ctx)
	return &snapshot, nil
}

// AddItem adds a product to the cart, merging with an existing line
// item that has the same product/variant pair.
func (e *cartEngine) AddItem(ctx context.Context, req *model.AddItemRequest) (*model.CartState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Caller contract: invalid quantities are ignored before either
	// path is attempted, and the prior state is reported as success.
	if req == nil || req.Quantity < 1 {
		e.logger.Warn().Msg("add item with invalid quantity ignored")
		snapshot := e.loadSnapshot(ctx)
		return &snapshot, nil
	}

	state, err := e.gateway.AddItem(ctx, req)
	if err == nil {
		e.persist(ctx, *state)
		return state, nil
	}

	if !isTransportFailure(err) {
		return nil, err
	}

	e.logger.Warn().
		Err(err).
		Str("product_id", req.ProductID).
		Msg("remote add failed, applying local fallback")

	local := e.loadSnapshot(ctx)
	if idx := local.FindProduct(req.ProductID, req.Variant); idx >= 0 {
		local.Items[idx].Quantity += req.Quantity
	} else {
		local.Items = append(local.Items, model.LineItem{
			ID:        "local-" + uuid.NewString(),
			ProductID: req.ProductID,
			Variant:   req.Variant,
			Quantity:  req.Quantity,
			Price:     req.Price,
			Name:      req.Name,
			Image:     req.Image,
		})
	}

	totals.Apply(&local, local.Discount)
	e.persist(ctx, local)

	return &local, nil
}

// UpdateQuantity replaces a line item's quantity.
func (e *cartEngine) UpdateQuantity(ctx context.Context, itemID string, quantity int) (*model.CartState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if quantity < 1 {
		e.logger.Warn().
			Str("item_id", itemID).
			Int("quantity", quantity).
			Msg("quantity update below one ignored")
		snapshot := e.loadSnapshot(ctx)
		return &snapshot, nil
	}

	state, err := e.gateway.UpdateItem(ctx, itemID, quantity)
	if err == nil {
		e.persist(ctx, *state)
		return state, nil
	}

	if !isTransportFailure(err) {
		return nil, err
	}

	e.logger.Warn().
		Err(err).
		Str("item_id", itemID).
		Msg("remote update failed, applying local fallback")

	local := e.loadSnapshot(ctx)
	idx := local.FindItem(itemID)
	if idx < 0 {
		return &local, nil
	}

	local.Items[idx].Quantity = quantity
	totals.Apply(&local, local.Discount)
	e.persist(ctx, local)

	return &local, nil
}

// RemoveItem deletes a line item from the cart.
func (e *cartEngine) RemoveItem(ctx context.Context, itemID string) (*model.CartState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.gateway.RemoveItem(ctx, itemID)
	if err == nil {
		e.persist(ctx, *state)
		return state, nil
	}

	if !isTransportFailure(err) {
		return nil, err
	}

	e.logger.Warn().
		Err(err).
		Str("item_id", itemID).
		Msg("remote remove failed, applying local fallback")

	local := e.loadSnapshot(ctx)
	idx := local.FindItem(itemID)
	if idx < 0 {
		return &local, nil
	}

	local.Items = append(local.Items[:idx], local.Items[idx+1:]...)
	totals.Apply(&local, local.Discount)
	e.persist(ctx, local)

	return &local, nil
}

// Clear empties the cart.
func (e *cartEngine) Clear(ctx context.Context) (*model.CartState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.gateway.Clear(ctx)
	if err == nil {
		e.persist(ctx, *state)
		return state, nil
	}

	if !isTransportFailure(err) {
		return nil, err
	}

	e.logger.Warn().Err(err).Msg("remote clear failed, applying local fallback")

	local := model.EmptyCartState()
	e.persist(ctx, local)

	return &local, nil
}

// ApplyCoupon applies a coupon code via the remote authority. There is
// no local fallback: coupon validity (expiry, eligibility, limits) is
// an authority-owned decision that cannot be faked offline, so this
// path fails loudly instead of fabricating a discount.
func (e *cartEngine) ApplyCoupon(ctx context.Context, code string) (*model.CartState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.gateway.ApplyCoupon(ctx, code)
	if err != nil {
		e.logger.Warn().Err(err).Str("coupon_code", code).Msg("coupon apply failed")
		return nil, err
	}

	e.logger.Info().
		Str("coupon_code", code).
		Float64("discount", state.Discount).
		Msg("coupon applied")

	e.persist(ctx, *state)

	return state, nil
}

// RemoveCoupon removes the active coupon. Unlike apply, removal is
// safe to perform locally: it only clears the discount and recomputes
// the total from the subtotal.
func (e *cartEngine) RemoveCoupon(ctx context.Context) (*model.CartState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	state, err := e.gateway.RemoveCoupon(ctx)
	if err == nil {
		e.persist(ctx, *state)
		return state, nil
	}

	if !isTransportFailure(err) {
		return nil, err
	}

	e.logger.Warn().Err(err).Msg("remote coupon removal failed, applying local fallback")

	local := e.loadSnapshot(ctx)
	local.Coupon = nil
	totals.Apply(&local, 0)
	e.persist(ctx, local)

	return &local, nil
}

// loadSnapshot reads the persisted snapshot, degrading to the empty
// cart when the store fails. The snapshot slot is best-effort and a
// store failure must never surface through a mutation.
func (e *cartEngine) loadSnapshot(ctx context.Context) model.CartState {
	state, err := e.store.Load(ctx)
	if err != nil {
		e.logger.Error().Err(err).Msg("failed to load snapshot, starting from empty cart")
		return model.EmptyCartState()
	}
	return state
}

// persist writes the snapshot slot. Failures are logged and swallowed;
// persistence is best-effort, not transactional.
func (e *cartEngine) persist(ctx context.Context, state model.CartState) {
	if err := e.store.Save(ctx, state); err != nil {
		e.logger.Error().Err(err).Msg("failed to persist snapshot")
	}
}

// isTransportFailure reports whether the error means the remote never
// produced an authoritative answer. Only these trigger the local
// fallback; explicit authority rejections propagate untouched.
func isTransportFailure(err error) bool {
	var te *model.TransportError
	return errors.As(err, &te)
}
