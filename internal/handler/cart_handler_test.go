package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cart-sync/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockEngine is a mock implementation of engine.Engine.
type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Fetch(ctx context.Context) (*model.CartState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartState), args.Error(1)
}

func (m *MockEngine) AddItem(ctx context.Context, req *model.AddItemRequest) (*model.CartState, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartState), args.Error(1)
}

func (m *MockEngine) UpdateQuantity(ctx context.Context, itemID string, quantity int) (*model.CartState, error) {
	args := m.Called(ctx, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartState), args.Error(1)
}

func (m *MockEngine) RemoveItem(ctx context.Context, itemID string) (*model.CartState, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartState), args.Error(1)
}

func (m *MockEngine) Clear(ctx context.Context) (*model.CartState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartState), args.Error(1)
}

func (m *MockEngine) ApplyCoupon(ctx context.Context, code string) (*model.CartState, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartState), args.Error(1)
}

func (m *MockEngine) RemoveCoupon(ctx context.Context) (*model.CartState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartState), args.Error(1)
}

func testCartState() *model.CartState {
	return &model.CartState{
		Items:          []model.LineItem{{ID: "a", ProductID: "p1", Quantity: 2, Price: 100, Name: "Robe"}},
		TotalItemCount: 2,
		Subtotal:       200,
		Total:          200,
	}
}

func TestCartHandler_Get_Success(t *testing.T) {
	eng := &MockEngine{}
	eng.On("Fetch", mock.Anything).Return(testCartState(), nil)

	h := NewCartHandler(eng, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	w := httptest.NewRecorder()
	h.Get(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subtotal":200`)
	eng.AssertExpectations(t)
}

func TestCartHandler_AddItem_Success(t *testing.T) {
	eng := &MockEngine{}
	eng.On("AddItem", mock.Anything, mock.MatchedBy(func(req *model.AddItemRequest) bool {
		return req.ProductID == "p1" && req.Quantity == 2
	})).Return(testCartState(), nil)

	h := NewCartHandler(eng, zerolog.Nop())

	body := `{"productId": "p1", "quantity": 2, "price": 100, "name": "Robe"}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.AddItem(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	eng.AssertExpectations(t)
}

func TestCartHandler_AddItem_InvalidJSON(t *testing.T) {
	eng := &MockEngine{}
	h := NewCartHandler(eng, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader("{broken"))
	w := httptest.NewRecorder()
	h.AddItem(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	eng.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything)
}

func TestCartHandler_AddItem_MissingRequiredFields(t *testing.T) {
	eng := &MockEngine{}
	h := NewCartHandler(eng, zerolog.Nop())

	// No productId or name
	body := `{"quantity": 2, "price": 100}`
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.AddItem(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	eng.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything)
}

func TestCartHandler_UpdateItem_Success(t *testing.T) {
	eng := &MockEngine{}
	eng.On("UpdateQuantity", mock.Anything, "a", 4).Return(testCartState(), nil)

	h := NewCartHandler(eng, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPut, "/api/cart/items/a", strings.NewReader(`{"quantity": 4}`))
	w := httptest.NewRecorder()
	h.UpdateItem(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	eng.AssertExpectations(t)
}

func TestCartHandler_UpdateItem_MissingID(t *testing.T) {
	eng := &MockEngine{}
	h := NewCartHandler(eng, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPut, "/api/cart/items/", strings.NewReader(`{"quantity": 4}`))
	w := httptest.NewRecorder()
	h.UpdateItem(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCartHandler_RemoveItem_Success(t *testing.T) {
	eng := &MockEngine{}
	eng.On("RemoveItem", mock.Anything, "a").Return(testCartState(), nil)

	h := NewCartHandler(eng, zerolog.Nop())

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/items/a", nil)
	w := httptest.NewRecorder()
	h.RemoveItem(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	eng.AssertExpectations(t)
}

func TestCartHandler_ApplyCoupon_DomainErrorIs400(t *testing.T) {
	eng := &MockEngine{}
	eng.On("ApplyCoupon", mock.Anything, "BOGUS123").Return(nil, model.ErrCouponRejected)

	h := NewCartHandler(eng, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/cart/coupon", strings.NewReader(`{"code": "BOGUS123"}`))
	w := httptest.NewRecorder()
	h.ApplyCoupon(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "rejected")
}

func TestCartHandler_ApplyCoupon_TransportErrorIs502(t *testing.T) {
	eng := &MockEngine{}
	eng.On("ApplyCoupon", mock.Anything, "SAVE20").
		Return(nil, model.NewTransportError("applyCoupon", 0, errors.New("connection refused")))

	h := NewCartHandler(eng, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/cart/coupon", strings.NewReader(`{"code": "SAVE20"}`))
	w := httptest.NewRecorder()
	h.ApplyCoupon(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
}

func TestCartHandler_ApplyCoupon_MissingCode(t *testing.T) {
	eng := &MockEngine{}
	h := NewCartHandler(eng, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/cart/coupon", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.ApplyCoupon(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	eng.AssertNotCalled(t, "ApplyCoupon", mock.Anything, mock.Anything)
}

func TestCartHandler_Clear_Success(t *testing.T) {
	eng := &MockEngine{}
	empty := model.EmptyCartState()
	eng.On("Clear", mock.Anything).Return(&empty, nil)

	h := NewCartHandler(eng, zerolog.Nop())

	req := httptest.NewRequest(http.MethodDelete, "/api/cart", nil)
	w := httptest.NewRecorder()
	h.Clear(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"items":[]`)
}

func TestCartHandler_RemoveCoupon_Success(t *testing.T) {
	eng := &MockEngine{}
	eng.On("RemoveCoupon", mock.Anything).Return(testCartState(), nil)

	h := NewCartHandler(eng, zerolog.Nop())

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/coupon", nil)
	w := httptest.NewRecorder()
	h.RemoveCoupon(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, eng)
	eng.AssertExpectations(t)
}
