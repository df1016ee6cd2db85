package service

import (
	"context"
	"errors"
	"fmt"

	"pourpal/internal/model"
	"pourpal/internal/repository"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	itemRepo  repository.ItemRepository
	logger    zerolog.Logger
}

// NewOrderService creates an order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	itemRepo repository.ItemRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		itemRepo:  itemRepo,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// CreateOrder converts a cart into a pending order.
//
// Stock is validated for every line before anything is mutated. Inventory is
// then taken with guarded decrements: the storage filter requires sufficient
// stock, so a concurrent checkout of the same item cannot oversell; if a
// decrement or the order insert fails partway, the decrements already applied
// are compensated and no order exists. Once the order document is durable,
// cart cleanup failures are logged but not rolled back.
func (s *orderService) CreateOrder(ctx context.Context, cartID string, userID *string, delivery model.DeliveryInformation) (*model.Order, error) {
	if cartID == "" {
		return nil, model.ErrEmptyCart
	}

	cart, err := s.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart == nil || len(cart.CartItems) == 0 {
		return nil, model.ErrEmptyCart
	}

	// Full pre-check across every line before any mutation.
	currency := model.CurrencyEUR
	for _, line := range cart.CartItems {
		item, err := s.itemRepo.FindByID(ctx, line.ItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to check stock: %w", err)
		}
		if item == nil || item.Quantity < line.Quantity {
			name := line.ItemID
			if item != nil {
				name = item.Title
			}
			s.logger.Warn().
				Str("cart_id", cartID).
				Str("item_id", line.ItemID).
				Int("requested", line.Quantity).
				Msg("insufficient stock")
			return nil, model.NewDomainError(model.ErrCodeInsufficientStock,
				fmt.Sprintf("Insufficient stock for item: %s", name))
		}
		currency = line.UnitPrice.Currency
	}

	total := model.Money{Amount: cart.TotalPrice(), Currency: currency}

	// Guarded decrements; compensate everything taken so far on failure.
	taken := make([]model.CartItem, 0, len(cart.CartItems))
	for _, line := range cart.CartItems {
		if err := s.itemRepo.DecrementStock(ctx, line.ItemID, line.Quantity); err != nil {
			s.compensate(ctx, taken)
			if errors.Is(err, repository.ErrStockConflict) {
				return nil, model.NewDomainError(model.ErrCodeInsufficientStock,
					fmt.Sprintf("Insufficient stock for item: %s", line.ItemID))
			}
			return nil, fmt.Errorf("failed to reserve stock: %w", err)
		}
		taken = append(taken, line)
	}

	number, err := s.orderRepo.NextOrderNumber(ctx)
	if err != nil {
		s.compensate(ctx, taken)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order := model.NewOrder(number, userID, delivery, cart.CartItems, total)
	if err := s.orderRepo.Insert(ctx, order); err != nil {
		s.compensate(ctx, taken)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// The order is durable from here on.
	if err := s.cartRepo.Delete(ctx, cartID); err != nil {
		s.logger.Warn().
			Err(err).
			Str("cart_id", cartID).
			Str("order_id", order.OrderID).
			Msg("order persisted but cart cleanup failed")
	}

	s.logger.Info().
		Str("order_id", order.OrderID).
		Str("order_number", order.OrderNumber).
		Int("item_count", len(order.OrderItems)).
		Str("total", order.TotalPrice.Amount.String()).
		Msg("order created")

	return order, nil
}

// compensate restores stock taken before a failed checkout step.
func (s *orderService) compensate(ctx context.Context, taken []model.CartItem) {
	for _, line := range taken {
		if err := s.itemRepo.IncrementStock(ctx, line.ItemID, line.Quantity); err != nil {
			s.logger.Error().
				Err(err).
				Str("item_id", line.ItemID).
				Int("quantity", line.Quantity).
				Msg("failed to compensate stock decrement")
		}
	}
}

// ListOrders retrieves all orders, newest first.
func (s *orderService) ListOrders(ctx context.Context, page model.PageRequest) (*model.OrderPage, error) {
	return s.list(ctx, nil, page)
}

// ListUserOrders retrieves one user's orders, newest first.
func (s *orderService) ListUserOrders(ctx context.Context, userID string, page model.PageRequest) (*model.OrderPage, error) {
	return s.list(ctx, &userID, page)
}

func (s *orderService) list(ctx context.Context, userID *string, page model.PageRequest) (*model.OrderPage, error) {
	page = page.Normalize()

	orders, total, err := s.orderRepo.List(ctx, userID, page)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return &model.OrderPage{
		Orders: orders,
		Paging: model.NewPaging(len(orders), page, total),
	}, nil
}
