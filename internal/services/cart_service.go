package services

import (
	"database/sql"
	"fmt"

	"mercadito/internal/domain"
	"mercadito/internal/repos"
	"mercadito/internal/validate"
)

// CartService owns the one-cart-per-user model: lazy creation, line-item
// merge/overwrite/removal, and the buyer-role gate on every read or mutation
// except removal (removal historically skipped the role check; kept that way).
type CartService struct {
	Carts *repos.CartRepo
	Prods *repos.ProductRepo
}

func NewCartService(carts *repos.CartRepo, prods *repos.ProductRepo) *CartService {
	return &CartService{Carts: carts, Prods: prods}
}

func (s *CartService) load(cartID, userID string) (*domain.Cart, error) {
	lines, err := s.Carts.Lines(cartID)
	if err != nil {
		return nil, err
	}
	return &domain.Cart{ID: cartID, UserID: userID, Items: lines}, nil
}

// GetOrCreate returns the caller's cart, creating an empty one on first
// access. Safe under concurrent first calls: the storage layer's uniqueness
// constraint makes the losing insert a no-op and both callers re-read the
// same row.
func (s *CartService) GetOrCreate(userID, role string) (*domain.Cart, error) {
	if role != domain.RoleBuyer {
		return nil, ErrForbidden
	}
	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return nil, err
	}
	return s.load(cartID, userID)
}

// AddItems validates every referenced product in one batch lookup, then
// merges the items into the cart: an already-present product has its
// quantity incremented, a new product appends a line. Any missing product
// fails the whole call with no partial mutation.
func (s *CartService) AddItems(userID, role string, items []repos.LineInput) (*domain.Cart, error) {
	if role != domain.RoleBuyer {
		return nil, ErrForbidden
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: products are required", ErrValidation)
	}
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := validate.ID(it.ProductID); !ok {
			return nil, fmt.Errorf("%w: product id", ErrValidation)
		}
		if !validate.Qty(it.Quantity) {
			return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
		}
		ids = append(ids, it.ProductID)
	}

	uniq := dedupe(ids)
	found, err := s.Prods.ByIDs(uniq)
	if err != nil {
		return nil, err
	}
	if len(found) != len(uniq) {
		return nil, fmt.Errorf("%w: one or more products", ErrNotFound)
	}

	cartID, err := s.Carts.EnsureCart(userID)
	if err != nil {
		return nil, err
	}
	if err := s.Carts.MergeItems(cartID, items); err != nil {
		return nil, err
	}
	return s.load(cartID, userID)
}

// UpdateItemQuantity overwrites a line's quantity (absolute set, not delta).
// Unlike RemoveItem it is strict: no cart or no line for the product is
// NotFound.
func (s *CartService) UpdateItemQuantity(userID, role, productID string, qty int) (*domain.Cart, error) {
	if role != domain.RoleBuyer {
		return nil, ErrForbidden
	}
	if !validate.Qty(qty) {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrValidation)
	}
	cartID, err := s.Carts.ByUser(userID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: cart", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Carts.SetQty(cartID, productID, qty); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: product not in cart", ErrNotFound)
		}
		return nil, err
	}
	return s.load(cartID, userID)
}

// RemoveItem deletes the line for productID if present. Removing an absent
// product succeeds and returns the cart unchanged; only a missing cart is an
// error.
func (s *CartService) RemoveItem(userID, productID string) (*domain.Cart, error) {
	cartID, err := s.Carts.ByUser(userID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: cart", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if err := s.Carts.RemoveItem(cartID, productID); err != nil {
		return nil, err
	}
	return s.load(cartID, userID)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
