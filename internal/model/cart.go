package model

// DiscountType identifies how a coupon's discount value is interpreted.
type DiscountType string

const (
	DiscountTypePercentage DiscountType = "percentage"
	DiscountTypeFixed      DiscountType = "fixed"
)

// Coupon represents a server-validated discount applied to the cart.
type Coupon struct {
	Code          string       `json:"code"`
	DiscountType  DiscountType `json:"discountType"`
	DiscountValue float64      `json:"discountValue"`
}

// LineItem represents a single product entry in the cart.
// Price, Name and Image are snapshots taken at add time so the cart
// can be rendered while the remote catalogue is unreachable.
type LineItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Variant   string  `json:"variant,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Name      string  `json:"name"`
	Image     string  `json:"image,omitempty"`
}

// Matches reports whether the line item corresponds to the given
// product/variant pair. Items added remotely carry opaque IDs, so
// merging on add always goes through this pair, never the ID.
func (li LineItem) Matches(productID, variant string) bool {
	return li.ProductID == productID && li.Variant == variant
}

// CartState is the sole aggregate: the ordered line items plus totals
// derived from them. Item order is insertion order.
type CartState struct {
	Items          []LineItem `json:"items"`
	TotalItemCount int        `json:"totalItemCount"`
	Subtotal       float64    `json:"subtotal"`
	Discount       float64    `json:"discount"`
	Total          float64    `json:"total"`
	Coupon         *Coupon    `json:"coupon,omitempty"`
}

// EmptyCartState returns the zero-value cart: no items, all totals
// zero, no coupon. Items is non-nil so the JSON form is always
// `"items": []` rather than null.
func EmptyCartState() CartState {
	return CartState{Items: []LineItem{}}
}

// FindItem returns the index of the item with the given ID, or -1.
func (c CartState) FindItem(itemID string) int {
	for i, item := range c.Items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

// FindProduct returns the index of the item matching the given
// product/variant pair, or -1.
func (c CartState) FindProduct(productID, variant string) int {
	for i, item := range c.Items {
		if item.Matches(productID, variant) {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the cart state. Engine mutations work
// on a clone so a failed operation never leaves a half-applied state
// visible to the caller.
func (c CartState) Clone() CartState {
	out := c
	out.Items = make([]LineItem, len(c.Items))
	copy(out.Items, c.Items)
	if c.Coupon != nil {
		coupon := *c.Coupon
		out.Coupon = &coupon
	}
	return out
}
