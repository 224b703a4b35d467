package catalog

import "errors"

var (
	ErrInvalidQuantity   = errors.New("quantity must be at least 1")
	ErrInsufficientStock = errors.New("not enough stock for this variant")
)

// Cart returns a snapshot of the cart lines.
func (s *Store) Cart() []CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart := make([]CartItem, len(s.cart))
	copy(cart, s.cart)
	return cart
}

// AddToCart puts qty units of a product variant in the cart. Adding a pair
// that is already present accumulates its quantity instead of creating a
// second line. The accumulated quantity may not exceed the variant's stock.
func (s *Store) AddToCart(product Product, variant ProductVariant, qty int) error {
	if qty < 1 {
		s.fail(ErrInvalidQuantity)
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := CartItemID(product.ID, variant.RAM)
	for i, item := range s.cart {
		if item.ID != id {
			continue
		}
		if item.Quantity+qty > variant.Quantity {
			s.lastErr = ErrInsufficientStock.Error()
			return ErrInsufficientStock
		}
		s.cart[i].Quantity += qty
		return nil
	}

	if qty > variant.Quantity {
		s.lastErr = ErrInsufficientStock.Error()
		return ErrInsufficientStock
	}

	s.cart = append(s.cart, CartItem{
		ID:       id,
		Product:  product,
		Variant:  variant,
		Quantity: qty,
	})
	return nil
}

// RemoveFromCart drops the line with this composite key. Removing an absent
// key is a no-op.
func (s *Store) RemoveFromCart(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.cart {
		if item.ID == id {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return
		}
	}
}

// CartCount is the number of units across all lines.
func (s *Store) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.cart {
		count += item.Quantity
	}
	return count
}

// CartTotal is the cart price: quantity times variant price, summed.
func (s *Store) CartTotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0.0
	for _, item := range s.cart {
		total += float64(item.Quantity) * item.Variant.Price
	}
	return total
}
