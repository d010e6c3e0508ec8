package model

// AddItemRequest represents the payload for adding a product to the
// cart. Price, Name and Image are the add-time product snapshot kept
// on the line item for offline rendering.
type AddItemRequest struct {
	ProductID string  `json:"productId" validate:"required"`
	Variant   string  `json:"variant,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price" validate:"gte=0"`
	Name      string  `json:"name" validate:"required"`
	Image     string  `json:"image,omitempty"`
}

// UpdateItemRequest represents the payload for changing a line item's
// quantity. Quantity is deliberately unconstrained here: quantities
// below one are the engine's ignore-and-return-prior-state contract,
// not a request shape violation.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// ApplyCouponRequest represents the payload for applying a coupon code.
type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required"`
}
