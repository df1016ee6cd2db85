package service

import (
	"context"
	"fmt"
	"time"

	"pourpal/internal/model"
	"pourpal/internal/repository"

	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo repository.CartRepository
	itemRepo repository.ItemRepository
	ttl      time.Duration
	logger   zerolog.Logger
}

// NewCartService creates a cart service with the given sliding TTL.
func NewCartService(
	cartRepo repository.CartRepository,
	itemRepo repository.ItemRepository,
	ttl time.Duration,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo: cartRepo,
		itemRepo: itemRepo,
		ttl:      ttl,
		logger:   logger.With().Str("service", "cart").Logger(),
	}
}

// resolve returns a live cart for the identifier. A missing identifier, an
// absent document, or an expired cart all yield a fresh empty cart with a new
// identifier; otherwise the existing cart's expiration slides forward. Every
// cart operation funnels through here, so expiration is checked uniformly.
func (s *cartService) resolve(ctx context.Context, cartID string) (*model.Cart, bool, error) {
	now := time.Now().UTC()

	if cartID != "" {
		cart, err := s.cartRepo.FindByID(ctx, cartID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to resolve cart: %w", err)
		}
		if cart != nil && !cart.Expired(now) {
			cart.ExpirationTime = now.Add(s.ttl)
			if err := s.cartRepo.UpdateExpiration(ctx, cart.CartID, cart.ExpirationTime); err != nil {
				return nil, false, fmt.Errorf("failed to refresh cart: %w", err)
			}
			return cart, false, nil
		}
		if cart != nil {
			s.logger.Debug().Str("cart_id", cartID).Msg("cart expired, replacing")
		}
	}

	cart := model.NewCart(now, s.ttl)
	if err := s.cartRepo.Insert(ctx, cart); err != nil {
		return nil, false, fmt.Errorf("failed to create cart: %w", err)
	}

	s.logger.Debug().Str("cart_id", cart.CartID).Msg("new cart created")
	return cart, true, nil
}

// GetCart resolves the cart, creating or replacing it as needed.
func (s *cartService) GetCart(ctx context.Context, cartID string) (*model.CartView, error) {
	cart, created, err := s.resolve(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return model.NewCartView(cart, created), nil
}

// IncrementItem raises an existing line's quantity by one and rederives its
// total.
func (s *cartService) IncrementItem(ctx context.Context, cartID, itemID string) (*model.CartView, error) {
	cart, created, err := s.resolve(ctx, cartID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItem(itemID)
	if idx < 0 {
		return nil, model.ErrItemNotInCart
	}

	line := &cart.CartItems[idx]
	line.Quantity++
	line.TotalPrice = model.LineTotal(line.Quantity, line.UnitPrice)

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("cart_id", cart.CartID).
		Str("item_id", itemID).
		Int("quantity", line.Quantity).
		Msg("cart item incremented")

	return model.NewCartView(cart, created), nil
}

// DecrementItem lowers an existing line's quantity by one. Decrementing a
// quantity-1 line is refused rather than removing it; removal is a separate
// operation.
func (s *cartService) DecrementItem(ctx context.Context, cartID, itemID string) (*model.CartView, error) {
	cart, created, err := s.resolve(ctx, cartID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItem(itemID)
	if idx < 0 {
		return nil, model.ErrItemNotInCart
	}

	line := &cart.CartItems[idx]
	if line.Quantity <= 1 {
		return nil, model.ErrQuantityTooLow
	}
	line.Quantity--
	line.TotalPrice = model.LineTotal(line.Quantity, line.UnitPrice)

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}

	return model.NewCartView(cart, created), nil
}

// SetItemQuantity overwrites an existing line's quantity, or appends a new
// line priced at the catalog item's current unit price.
func (s *cartService) SetItemQuantity(ctx context.Context, cartID, itemID string, quantity int) (*model.CartView, error) {
	if quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}

	cart, created, err := s.resolve(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if idx := cart.FindItem(itemID); idx >= 0 {
		line := &cart.CartItems[idx]
		line.Quantity = quantity
		line.TotalPrice = model.LineTotal(quantity, line.UnitPrice)
	} else {
		item, err := s.itemRepo.FindByID(ctx, itemID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up catalog item: %w", err)
		}
		if item == nil {
			return nil, model.ErrItemNotFound
		}
		cart.CartItems = append(cart.CartItems, model.NewCartItem(itemID, quantity, item.Price))
	}

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("cart_id", cart.CartID).
		Str("item_id", itemID).
		Int("quantity", quantity).
		Msg("cart item quantity set")

	return model.NewCartView(cart, created), nil
}

// RemoveItem deletes a line from the cart entirely, preserving the order of
// the remaining lines.
func (s *cartService) RemoveItem(ctx context.Context, cartID, itemID string) (*model.CartView, error) {
	cart, created, err := s.resolve(ctx, cartID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItem(itemID)
	if idx < 0 {
		return nil, model.ErrItemNotInCart
	}
	cart.CartItems = append(cart.CartItems[:idx], cart.CartItems[idx+1:]...)

	if err := s.persist(ctx, cart); err != nil {
		return nil, err
	}

	return model.NewCartView(cart, created), nil
}

// persist writes the mutated item list back with the already-refreshed
// expiration.
func (s *cartService) persist(ctx context.Context, cart *model.Cart) error {
	if err := s.cartRepo.UpdateItems(ctx, cart.CartID, cart.CartItems, cart.ExpirationTime); err != nil {
		s.logger.Error().Err(err).Str("cart_id", cart.CartID).Msg("failed to persist cart")
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
