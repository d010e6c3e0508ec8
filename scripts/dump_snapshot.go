package main

import (
	"encoding/json"
	"fmt"
	"os"

	"cart-sync/internal/model"
)

// dump_snapshot pretty-prints a persisted cart snapshot file so the
// slot contents can be inspected without starting the daemon.
//
// Usage: go run scripts/dump_snapshot.go [path]
func main() {
	path := "data/cart_snapshot.json"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read snapshot %s: %v\n", path, err)
		os.Exit(1)
	}

	var state model.CartState
	if err := json.Unmarshal(data, &state); err != nil {
		fmt.Fprintf(os.Stderr, "snapshot %s is not a valid cart state: %v\n", path, err)
		os.Exit(1)
	}

	fmt.Printf("snapshot: %s\n", path)
	fmt.Printf("items: %d (count %d)\n", len(state.Items), state.TotalItemCount)
	for _, item := range state.Items {
		fmt.Printf("  %-14s %-20s x%-3d @ %.2f", item.ID, item.Name, item.Quantity, item.Price)
		if item.Variant != "" {
			fmt.Printf(" (%s)", item.Variant)
		}
		fmt.Println()
	}
	if state.Coupon != nil {
		fmt.Printf("coupon: %s (%s %.2f)\n", state.Coupon.Code, state.Coupon.DiscountType, state.Coupon.DiscountValue)
	}
	fmt.Printf("subtotal: %.2f  discount: %.2f  total: %.2f\n", state.Subtotal, state.Discount, state.Total)
}
