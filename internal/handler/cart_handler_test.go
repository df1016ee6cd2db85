package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pourpal/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCartService is a mock implementation of service.CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetCart(ctx context.Context, cartID string) (*model.CartView, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockCartService) IncrementItem(ctx context.Context, cartID, itemID string) (*model.CartView, error) {
	args := m.Called(ctx, cartID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockCartService) DecrementItem(ctx context.Context, cartID, itemID string) (*model.CartView, error) {
	args := m.Called(ctx, cartID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockCartService) SetItemQuantity(ctx context.Context, cartID, itemID string, quantity int) (*model.CartView, error) {
	args := m.Called(ctx, cartID, itemID, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, cartID, itemID string) (*model.CartView, error) {
	args := m.Called(ctx, cartID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartView), args.Error(1)
}

func cartRouter(service *MockCartService) http.Handler {
	h := NewCartHandler(service, zerolog.Nop())
	r := chi.NewRouter()
	r.Get("/cart", h.Get)
	r.Post("/cart/{item_id}/increment", h.Increment)
	r.Post("/cart/{item_id}/decrement", h.Decrement)
	r.Put("/cart/{item_id}", h.SetQuantity)
	r.Delete("/cart/{item_id}", h.Remove)
	return r
}

func testCartView(cartID string, created bool) *model.CartView {
	return &model.CartView{
		NewCart:        created,
		CartID:         cartID,
		CartItems:      []model.CartItem{},
		TotalCartPrice: "0.00",
	}
}

func TestCartHandler_Get(t *testing.T) {
	tests := []struct {
		name           string
		authorization  string
		cartID         string
		mockReturn     *model.CartView
		mockError      error
		expectedStatus int
	}{
		{
			name:           "New cart without token",
			authorization:  "",
			cartID:         "",
			mockReturn:     testCartView("cart-1", true),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Existing cart by bearer value",
			authorization:  "Bearer cart-1",
			cartID:         "cart-1",
			mockReturn:     testCartView("cart-1", false),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Service error",
			authorization:  "Bearer cart-1",
			cartID:         "cart-1",
			mockError:      errors.New("database down"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCartService)
			mockService.On("GetCart", mock.Anything, tt.cartID).Return(tt.mockReturn, tt.mockError)

			req := httptest.NewRequest(http.MethodGet, "/cart", nil)
			if tt.authorization != "" {
				req.Header.Set("Authorization", tt.authorization)
			}
			rec := httptest.NewRecorder()

			cartRouter(mockService).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedStatus == http.StatusOK {
				var view model.CartView
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
				assert.Equal(t, tt.mockReturn.CartID, view.CartID)
				assert.Equal(t, tt.mockReturn.NewCart, view.NewCart)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestCartHandler_Increment(t *testing.T) {
	mockService := new(MockCartService)
	mockService.On("IncrementItem", mock.Anything, "cart-1", "item-1").Return(testCartView("cart-1", false), nil)

	req := httptest.NewRequest(http.MethodPost, "/cart/item-1/increment", nil)
	req.Header.Set("Authorization", "Bearer cart-1")
	rec := httptest.NewRecorder()

	cartRouter(mockService).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}

func TestCartHandler_Increment_ItemNotInCart(t *testing.T) {
	mockService := new(MockCartService)
	mockService.On("IncrementItem", mock.Anything, "cart-1", "item-404").Return(nil, model.ErrItemNotInCart)

	req := httptest.NewRequest(http.MethodPost, "/cart/item-404/increment", nil)
	req.Header.Set("Authorization", "Bearer cart-1")
	rec := httptest.NewRecorder()

	cartRouter(mockService).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Item not found in cart", body.Message)
}

func TestCartHandler_Decrement_QuantityTooLow(t *testing.T) {
	mockService := new(MockCartService)
	mockService.On("DecrementItem", mock.Anything, "cart-1", "item-1").Return(nil, model.ErrQuantityTooLow)

	req := httptest.NewRequest(http.MethodPost, "/cart/item-1/decrement", nil)
	req.Header.Set("Authorization", "Bearer cart-1")
	rec := httptest.NewRecorder()

	cartRouter(mockService).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartHandler_SetQuantity(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectService  bool
		quantity       int
		mockError      error
		expectedStatus int
	}{
		{
			name:           "Valid quantity",
			query:          "?quantity=5",
			expectService:  true,
			quantity:       5,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing quantity",
			query:          "",
			expectService:  false,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Non-numeric quantity",
			query:          "?quantity=lots",
			expectService:  false,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Zero quantity rejected by service",
			query:          "?quantity=0",
			expectService:  true,
			quantity:       0,
			mockError:      model.ErrInvalidQuantity,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockCartService)
			if tt.expectService {
				var view *model.CartView
				if tt.mockError == nil {
					view = testCartView("cart-1", false)
				}
				mockService.On("SetItemQuantity", mock.Anything, "cart-1", "item-1", tt.quantity).Return(view, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPut, "/cart/item-1"+tt.query, nil)
			req.Header.Set("Authorization", "Bearer cart-1")
			rec := httptest.NewRecorder()

			cartRouter(mockService).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if !tt.expectService {
				mockService.AssertNotCalled(t, "SetItemQuantity")
			}
		})
	}
}

func TestCartHandler_Remove(t *testing.T) {
	mockService := new(MockCartService)
	mockService.On("RemoveItem", mock.Anything, "cart-1", "item-1").Return(testCartView("cart-1", false), nil)

	req := httptest.NewRequest(http.MethodDelete, "/cart/item-1", nil)
	req.Header.Set("Authorization", "Bearer cart-1")
	rec := httptest.NewRecorder()

	cartRouter(mockService).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockService.AssertExpectations(t)
}
