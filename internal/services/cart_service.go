package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"lunashop/internal/models"
	"lunashop/internal/repositories"
	"lunashop/internal/session"
)

// CartLine is one cart entry resolved against the current catalog.
type CartLine struct {
	Product   models.Product  `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartSnapshot is the cart priced at read time. Prices are never stored in
// the cart itself; they are resolved from the catalog on every snapshot.
type CartSnapshot struct {
	Lines      []CartLine      `json:"lines"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// CartService is stateless logic over the session-held cart value. Every
// mutation writes the session back to its store.
type CartService struct {
	store    session.Store
	products repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(store session.Store, products repositories.ProductRepository) *CartService {
	return &CartService{
		store:    store,
		products: products,
	}
}

// Add appends one unit of the product to the session's cart. Repeated calls
// raise the quantity. The product must currently exist in the catalog.
func (s *CartService) Add(ctx context.Context, sess *session.Session, productID string) error {
	if _, err := s.products.GetByID(productID); err != nil {
		return err
	}
	sess.Cart = sess.Cart.Add(productID)
	if err := s.store.Save(ctx, sess); err != nil {
		return &PersistenceError{Op: "save cart", Err: err}
	}
	return nil
}

// Remove strips all units of the product from the session's cart.
func (s *CartService) Remove(ctx context.Context, sess *session.Session, productID string) error {
	sess.Cart = sess.Cart.Remove(productID)
	if err := s.store.Save(ctx, sess); err != nil {
		return &PersistenceError{Op: "save cart", Err: err}
	}
	return nil
}

// Clear empties the session's cart.
func (s *CartService) Clear(ctx context.Context, sess *session.Session) error {
	sess.Cart = nil
	if err := s.store.Save(ctx, sess); err != nil {
		return &PersistenceError{Op: "save cart", Err: err}
	}
	return nil
}

// Snapshot prices the cart against the current catalog. Product ids no
// longer present in the catalog are silently excluded from the lines and the
// total; that is display degradation, not an error.
func (s *CartService) Snapshot(cart models.Cart) (*CartSnapshot, error) {
	snapshot := &CartSnapshot{
		Lines:      []CartLine{},
		GrandTotal: decimal.Zero,
	}
	if cart.IsEmpty() {
		return snapshot, nil
	}

	products, err := s.products.GetByIDs(cart.ProductIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to price cart: %w", err)
	}

	qty := cart.Quantities()
	for _, p := range products {
		q := qty[p.ID]
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(q)))
		snapshot.Lines = append(snapshot.Lines, CartLine{
			Product:   p,
			Quantity:  q,
			LineTotal: lineTotal,
		})
		snapshot.GrandTotal = snapshot.GrandTotal.Add(lineTotal)
	}
	return snapshot, nil
}
