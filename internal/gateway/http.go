package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"cart-sync/internal/model"

	"github.com/rs/zerolog"
)

// httpGateway implements Gateway over the remote service's REST API.
type httpGateway struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

// NewHTTPGateway creates a gateway for the remote cart service at the
// given base URL. The client's timeout is the only timeout policy.
func NewHTTPGateway(baseURL string, client *http.Client, logger zerolog.Logger) Gateway {
	if client == nil {
		client = http.DefaultClient
	}

	return &httpGateway{
		baseURL: baseURL,
		client:  client,
		logger:  logger.With().Str("component", "cart-gateway").Logger(),
	}
}

// GetCart retrieves the remote cart state.
func (g *httpGateway) GetCart(ctx context.Context) (*model.CartState, error) {
	return g.do(ctx, "getCart", http.MethodGet, "/api/cart", nil)
}

// AddItem adds a product to the remote cart.
func (g *httpGateway) AddItem(ctx context.Context, req *model.AddItemRequest) (*model.CartState, error) {
	return g.do(ctx, "addItem", http.MethodPost, "/api/cart/items", req)
}

// UpdateItem changes the quantity of a remote cart line item.
func (g *httpGateway) UpdateItem(ctx context.Context, itemID string, quantity int) (*model.CartState, error) {
	path := "/api/cart/items/" + url.PathEscape(itemID)
	return g.do(ctx, "updateItem", http.MethodPut, path, &model.UpdateItemRequest{Quantity: quantity})
}

// RemoveItem deletes a line item from the remote cart.
func (g *httpGateway) RemoveItem(ctx context.Context, itemID string) (*model.CartState, error) {
	path := "/api/cart/items/" + url.PathEscape(itemID)
	return g.do(ctx, "removeItem", http.MethodDelete, path, nil)
}

// Clear empties the remote cart.
func (g *httpGateway) Clear(ctx context.Context) (*model.CartState, error) {
	return g.do(ctx, "clearCart", http.MethodDelete, "/api/cart", nil)
}

// ApplyCoupon asks the remote authority to validate and apply a coupon.
func (g *httpGateway) ApplyCoupon(ctx context.Context, code string) (*model.CartState, error) {
	return g.do(ctx, "applyCoupon", http.MethodPost, "/api/cart/coupon", &model.ApplyCouponRequest{Code: code})
}

// RemoveCoupon removes the active coupon from the remote cart.
func (g *httpGateway) RemoveCoupon(ctx context.Context) (*model.CartState, error) {
	return g.do(ctx, "removeCoupon", http.MethodDelete, "/api/cart/coupon", nil)
}

// do performs one request/response round trip and maps the outcome to
// either a cart state, a domain rejection, or a transport error.
func (g *httpGateway) do(ctx context.Context, op, method, path string, body interface{}) (*model.CartState, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s request: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn().Err(err).Str("op", op).Msg("remote cart request failed")
		return nil, model.NewTransportError(op, 0, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		g.logger.Warn().Err(err).Str("op", op).Msg("failed to read remote cart response")
		return nil, model.NewTransportError(op, resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, g.mapErrorResponse(op, resp.StatusCode, data)
	}

	var state model.CartState
	if err := json.Unmarshal(data, &state); err != nil {
		g.logger.Warn().Err(err).Str("op", op).Msg("malformed remote cart payload")
		return nil, model.NewTransportError(op, resp.StatusCode, err)
	}

	if state.Items == nil {
		state.Items = []model.LineItem{}
	}

	g.logger.Debug().
		Str("op", op).
		Int("status", resp.StatusCode).
		Int("items", len(state.Items)).
		Msg("remote cart request succeeded")

	return &state, nil
}

// mapErrorResponse distinguishes an explicit authority rejection from a
// transport-level failure. A 4xx with a parseable error body is a
// domain error; anything else never produced an authoritative answer.
func (g *httpGateway) mapErrorResponse(op string, status int, data []byte) error {
	if status >= 400 && status < 500 {
		var errResp model.ErrorResponse
		if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error != "" {
			g.logger.Debug().
				Str("op", op).
				Int("status", status).
				Str("code", errResp.Error).
				Msg("remote cart rejected request")
			return model.NewDomainError(errResp.Error, errResp.Message)
		}
	}

	g.logger.Warn().Str("op", op).Int("status", status).Msg("remote cart returned non-2xx")
	return model.NewTransportError(op, status, nil)
}
